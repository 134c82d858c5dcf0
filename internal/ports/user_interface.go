package ports

import (
	"cloud-drive-server/internal/model"
	"cloud-drive-server/internal/security"
	"context"
	"github.com/jmoiron/sqlx"
)

type UserRepository interface {
	CreateIfAbsent(ctx context.Context, exec sqlx.ExtContext, user *model.User) (*model.User, error)
	FindByUUID(ctx context.Context, exec sqlx.ExtContext, uuid string) (*model.User, error)
	FindByExternalUID(ctx context.Context, exec sqlx.ExtContext, externalUID string) (*model.User, error)
	FindByEmail(ctx context.Context, exec sqlx.ExtContext, email string) (*model.User, error)
}

type UserService interface {
	CreateIfAbsent(ctx context.Context, user *model.User) (*model.User, error)
	GetProfile(ctx context.Context, claims *security.Claims) (*model.User, error)
}

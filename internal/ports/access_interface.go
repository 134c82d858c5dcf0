package ports

import (
	"cloud-drive-server/internal/model"
	"cloud-drive-server/internal/security"
	"context"
	"github.com/jmoiron/sqlx"
)

// AccessGate : решает, разрешена ли операция над файлом или папкой.
// Работает только с проверенными claims из JWT, никогда с сырыми заголовками.
type AccessGate interface {
	ResolveUser(ctx context.Context, exec sqlx.ExtContext, claims *security.Claims) (*model.User, error)
	AuthorizeRead(ctx context.Context, exec sqlx.ExtContext, file *model.File, claims *security.Claims) error
	AuthorizeOwner(ctx context.Context, exec sqlx.ExtContext, ownerUUID string, claims *security.Claims) (*model.User, error)
}

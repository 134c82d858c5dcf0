package ports

import (
	"cloud-drive-server/internal/model"
	"cloud-drive-server/internal/security"
	"context"
	"github.com/jmoiron/sqlx"
)

// ShareRepository : журнал приглашений доступа к файлам
type ShareRepository interface {
	Create(ctx context.Context, exec sqlx.ExtContext, share *model.Share) (*model.Share, error)
	ListByUser(ctx context.Context, exec sqlx.ExtContext, userUUID string) ([]model.Share, error)
	ListByFile(ctx context.Context, exec sqlx.ExtContext, fileUUID string) ([]model.Share, error)
}

type ShareService interface {
	CreateShare(ctx context.Context, claims *security.Claims, fileUUID string, sharedWithEmail string, permission string) (*model.Share, error)
	ListShares(ctx context.Context, claims *security.Claims, fileUUID string) ([]model.Share, error)
}

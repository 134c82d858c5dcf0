package ports

import (
	"cloud-drive-server/internal/model"
	"context"
)

// CacheRepository : Redis слой
type CacheRepository interface {
	SetFile(ctx context.Context, file *model.File) error
	GetFile(ctx context.Context, uuid string) (*model.File, error)
	DeleteFile(ctx context.Context, uuid string) error
}

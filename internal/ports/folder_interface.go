package ports

import (
	"cloud-drive-server/internal/model"
	"cloud-drive-server/internal/security"
	"context"
	"github.com/jmoiron/sqlx"
)

// FolderRepository : SQL слой папок
type FolderRepository interface {
	Create(ctx context.Context, exec sqlx.ExtContext, folder *model.Folder) (*model.Folder, error)
	GetByUUID(ctx context.Context, exec sqlx.ExtContext, folderUUID string) (*model.Folder, error)
	ListByOwner(ctx context.Context, exec sqlx.ExtContext, ownerUUID string, parentUUID *string) ([]model.Folder, error)
	Update(ctx context.Context, exec sqlx.ExtContext, folder *model.Folder) (*model.Folder, error)
	Delete(ctx context.Context, exec sqlx.ExtContext, folderUUID string) error
	BeginTX(ctx context.Context) (sqlx.ExtContext, func() error, func() error, error)
}

type FolderService interface {
	ListFolders(ctx context.Context, claims *security.Claims, parentUUID *string) ([]model.Folder, error)
	CreateFolder(ctx context.Context, claims *security.Claims, name string, parentUUID *string) (*model.Folder, error)
	UpdateFolder(ctx context.Context, claims *security.Claims, folderUUID string, name *string, parentUUID *string, moveToRoot bool) (*model.Folder, error)
	DeleteFolder(ctx context.Context, claims *security.Claims, folderUUID string) error
}

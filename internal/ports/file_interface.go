package ports

import (
	"cloud-drive-server/internal/model"
	"cloud-drive-server/internal/security"
	"context"
	"github.com/jmoiron/sqlx"
	"io"
)

// FileRepository : SQL слой файлов
type FileRepository interface {
	Create(ctx context.Context, exec sqlx.ExtContext, file *model.File) (*model.File, error)
	GetByUUID(ctx context.Context, exec sqlx.ExtContext, fileUUID string) (*model.File, error)
	GetByShareToken(ctx context.Context, exec sqlx.ExtContext, token string) (*model.File, error)
	ListByOwner(ctx context.Context, exec sqlx.ExtContext, ownerUUID string, folderUUID *string) ([]model.File, error)
	ListRecent(ctx context.Context, exec sqlx.ExtContext, ownerUUID string, limit int) ([]model.File, error)
	SetShareToken(ctx context.Context, exec sqlx.ExtContext, fileUUID string, token string) (*model.File, error)
	ListStoragePathsUnderFolder(ctx context.Context, exec sqlx.ExtContext, folderUUID string) ([]string, error)
	Delete(ctx context.Context, exec sqlx.ExtContext, fileUUID string) error
	BeginTX(ctx context.Context) (sqlx.ExtContext, func() error, func() error, error)
}

// FileContent : поток содержимого файла вместе с его метаданными
type FileContent struct {
	File    *model.File
	Content io.ReadCloser
}

type FileService interface {
	ListFiles(ctx context.Context, claims *security.Claims, folderUUID *string) ([]model.File, error)
	ListRecentFiles(ctx context.Context, claims *security.Claims, limit int) ([]model.File, error)
	Upload(ctx context.Context, claims *security.Claims, originalName string, mimeType string, folderUUID *string, content io.Reader) (*model.File, error)
	GetContent(ctx context.Context, claims *security.Claims, fileUUID string) (*FileContent, error)
	IssueShareLink(ctx context.Context, claims *security.Claims, fileUUID string) (string, *model.File, error)
	GetByShareToken(ctx context.Context, token string) (*model.File, error)
	DeleteFile(ctx context.Context, claims *security.Claims, fileUUID string) error
}

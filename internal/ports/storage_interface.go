package ports

import (
	"context"
	"io"
)

// StoredObject : результат записи содержимого в хранилище
type StoredObject struct {
	Path      string
	Name      string
	SizeBytes int64
}

// BlobStorage : байтовое хранилище загруженных файлов.
// Get и Delete по отсутствующему пути возвращают apperrors.ErrNotFound.
type BlobStorage interface {
	Put(ctx context.Context, content io.Reader, originalName string) (*StoredObject, error)
	Get(ctx context.Context, path string) (io.ReadCloser, error)
	Delete(ctx context.Context, path string) error
}

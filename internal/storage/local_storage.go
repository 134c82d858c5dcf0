package storage

import (
	"cloud-drive-server/internal/apperrors"
	"cloud-drive-server/internal/ports"
	"cloud-drive-server/internal/util"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalStorage : хранилище загруженных файлов на локальном диске
type LocalStorage struct {
	dir string
}

func NewLocalStorage(dir string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, util.LogError("[LocalStorage] не удалось создать директорию хранилища", err)
	}
	return &LocalStorage{dir: dir}, nil
}

// Put : пишет содержимое во временный файл и атомарно переименовывает его
// в сгенерированное имя, чтобы при сбое не оставался частично записанный объект
func (s *LocalStorage) Put(ctx context.Context, content io.Reader, originalName string) (*ports.StoredObject, error) {
	name, err := MakeStorageName(originalName)
	if err != nil {
		return nil, err
	}

	tmpFile, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return nil, util.LogError("[LocalStorage] не удалось создать временный файл", err)
	}

	written, err := io.Copy(tmpFile, content)
	if closeErr := tmpFile.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(tmpFile.Name())
		return nil, util.LogError("[LocalStorage] ошибка записи содержимого", err)
	}

	finalPath := filepath.Join(s.dir, name)
	if err := os.Rename(tmpFile.Name(), finalPath); err != nil {
		os.Remove(tmpFile.Name())
		return nil, util.LogError("[LocalStorage] не удалось переименовать временный файл", err)
	}

	return &ports.StoredObject{
		Path:      finalPath,
		Name:      name,
		SizeBytes: written,
	}, nil
}

func (s *LocalStorage) Get(ctx context.Context, path string) (io.ReadCloser, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("[LocalStorage] объект %s отсутствует на диске: %w", path, apperrors.ErrNotFound)
		}
		return nil, util.LogError("[LocalStorage] ошибка открытия объекта", err)
	}
	return file, nil
}

func (s *LocalStorage) Delete(ctx context.Context, path string) error {
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("[LocalStorage] объект %s отсутствует на диске: %w", path, apperrors.ErrNotFound)
		}
		return util.LogError("[LocalStorage] ошибка удаления объекта", err)
	}
	return nil
}

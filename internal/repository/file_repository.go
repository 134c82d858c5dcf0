package repository

import (
	"cloud-drive-server/config"
	"cloud-drive-server/internal/apperrors"
	"cloud-drive-server/internal/model"
	"cloud-drive-server/internal/util"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"github.com/jmoiron/sqlx"
)

const fileColumns = `uuid, storage_name, original_name, mime_type, size_bytes, storage_path,
		owner_uuid, folder_uuid, is_public, share_token, created_at, updated_at`

type FileRepository struct {
	*config.Database
}

func NewFileRepository(database *config.Database) *FileRepository {
	return &FileRepository{database}
}

// Create : сохраняет запись каталога о загруженном файле
func (r *FileRepository) Create(ctx context.Context, exec sqlx.ExtContext, file *model.File) (*model.File, error) {
	query := `
		INSERT INTO files (uuid, storage_name, original_name, mime_type, size_bytes, storage_path, owner_uuid, folder_uuid)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + fileColumns

	created := &model.File{}
	err := exec.QueryRowxContext(
		ctx,
		query,
		file.UUID,
		file.StorageName,
		file.OriginalName,
		file.MimeType,
		file.SizeBytes,
		file.StoragePath,
		file.OwnerUUID,
		file.FolderUUID,
	).StructScan(created)
	if err != nil {
		return nil, util.LogError("[FileRepo] ошибка вставки файла в БД", err)
	}

	return created, nil
}

// GetByUUID : возвращает файл по UUID без проверки владельца (её делает access gate)
func (r *FileRepository) GetByUUID(ctx context.Context, exec sqlx.ExtContext, fileUUID string) (*model.File, error) {
	query := `SELECT ` + fileColumns + ` FROM files WHERE uuid = $1`

	var file model.File
	err := sqlx.GetContext(ctx, exec, &file, query, fileUUID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("[FileRepo] файл %s: %w", fileUUID, apperrors.ErrNotFound)
		}
		return nil, util.LogError("[FileRepo] не удалось найти файл", err)
	}

	return &file, nil
}

// GetByShareToken : возвращает публичный файл по действующему токену
func (r *FileRepository) GetByShareToken(ctx context.Context, exec sqlx.ExtContext, token string) (*model.File, error) {
	query := `SELECT ` + fileColumns + ` FROM files WHERE share_token = $1 AND is_public = TRUE`

	var file model.File
	err := sqlx.GetContext(ctx, exec, &file, query, token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("[FileRepo] публичный файл по токену: %w", apperrors.ErrNotFound)
		}
		return nil, util.LogError("[FileRepo] не удалось найти файл по токену", err)
	}

	return &file, nil
}

// ListByOwner : файлы владельца в папке (nil — верхний уровень), свежие по updated_at первыми
func (r *FileRepository) ListByOwner(ctx context.Context, exec sqlx.ExtContext, ownerUUID string, folderUUID *string) ([]model.File, error) {
	queryTopLevel := `
		SELECT ` + fileColumns + `
		FROM files
		WHERE owner_uuid = $1 AND folder_uuid IS NULL
		ORDER BY updated_at DESC
	`
	queryByFolder := `
		SELECT ` + fileColumns + `
		FROM files
		WHERE owner_uuid = $1 AND folder_uuid = $2
		ORDER BY updated_at DESC
	`

	files := []model.File{}
	var err error
	if folderUUID == nil {
		err = sqlx.SelectContext(ctx, exec, &files, queryTopLevel, ownerUUID)
	} else {
		err = sqlx.SelectContext(ctx, exec, &files, queryByFolder, ownerUUID, *folderUUID)
	}
	if err != nil {
		return nil, util.LogError("[FileRepo] не удалось получить список файлов", err)
	}

	return files, nil
}

// ListRecent : limit последних обновлённых файлов владельца независимо от папки
func (r *FileRepository) ListRecent(ctx context.Context, exec sqlx.ExtContext, ownerUUID string, limit int) ([]model.File, error) {
	query := `
		SELECT ` + fileColumns + `
		FROM files
		WHERE owner_uuid = $1
		ORDER BY updated_at DESC
		LIMIT $2
	`

	files := []model.File{}
	if err := sqlx.SelectContext(ctx, exec, &files, query, ownerUUID, limit); err != nil {
		return nil, util.LogError("[FileRepo] не удалось получить последние файлы", err)
	}

	return files, nil
}

// SetShareToken : выставляет токен и флаг публичности одним UPDATE.
// Ничто другое не имеет права менять эти поля по отдельности.
// Повторный вызов перезаписывает старый токен — прежняя ссылка перестаёт работать.
func (r *FileRepository) SetShareToken(ctx context.Context, exec sqlx.ExtContext, fileUUID string, token string) (*model.File, error) {
	query := `
		UPDATE files
		SET share_token = $2, is_public = TRUE, updated_at = NOW()
		WHERE uuid = $1
		RETURNING ` + fileColumns

	updated := &model.File{}
	err := exec.QueryRowxContext(ctx, query, fileUUID, token).StructScan(updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("[FileRepo] файл %s: %w", fileUUID, apperrors.ErrNotFound)
		}
		return nil, util.LogError("[FileRepo] не удалось сохранить токен", err)
	}

	return updated, nil
}

// ListStoragePathsUnderFolder : пути объектов всех файлов в папке и её подпапках.
// Собираются до каскадного удаления строк, чтобы после коммита убрать объекты с диска.
func (r *FileRepository) ListStoragePathsUnderFolder(ctx context.Context, exec sqlx.ExtContext, folderUUID string) ([]string, error) {
	query := `
		WITH RECURSIVE subtree AS (
			SELECT uuid FROM folders WHERE uuid = $1
			UNION ALL
			SELECT f.uuid FROM folders AS f
			JOIN subtree AS s ON f.parent_uuid = s.uuid
		)
		SELECT storage_path FROM files WHERE folder_uuid IN (SELECT uuid FROM subtree)
	`

	paths := []string{}
	if err := sqlx.SelectContext(ctx, exec, &paths, query, folderUUID); err != nil {
		return nil, util.LogError("[FileRepo] не удалось собрать пути файлов папки", err)
	}

	return paths, nil
}

// Delete : удаляет запись каталога
func (r *FileRepository) Delete(ctx context.Context, exec sqlx.ExtContext, fileUUID string) error {
	result, err := exec.ExecContext(ctx, `DELETE FROM files WHERE uuid = $1`, fileUUID)
	if err != nil {
		return util.LogError("[FileRepo] не удалось удалить файл из БД", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return util.LogError("[FileRepo] ошибка проверки результата удаления", err)
	}
	if affected == 0 {
		return fmt.Errorf("[FileRepo] файл %s: %w", fileUUID, apperrors.ErrNotFound)
	}

	return nil
}

func (r *FileRepository) BeginTX(ctx context.Context) (sqlx.ExtContext, func() error, func() error, error) {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return nil, nil, nil, err
	}
	return tx, func() error { return tx.Rollback() }, func() error { return tx.Commit() }, nil
}

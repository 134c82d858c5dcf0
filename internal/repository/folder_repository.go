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

type FolderRepository struct {
	*config.Database
}

func NewFolderRepository(database *config.Database) *FolderRepository {
	return &FolderRepository{database}
}

// Create : сохраняет новую папку
func (r *FolderRepository) Create(ctx context.Context, exec sqlx.ExtContext, folder *model.Folder) (*model.Folder, error) {
	query := `
		INSERT INTO folders (uuid, name, owner_uuid, parent_uuid)
		VALUES ($1, $2, $3, $4)
		RETURNING uuid, name, owner_uuid, parent_uuid, created_at, updated_at
	`

	created := &model.Folder{}
	err := exec.QueryRowxContext(ctx, query, folder.UUID, folder.Name, folder.OwnerUUID, folder.ParentUUID).
		StructScan(created)
	if err != nil {
		return nil, util.LogError("[FolderRepo] ошибка вставки папки в БД", err)
	}

	return created, nil
}

// GetByUUID : возвращает папку по UUID без проверки владельца (её делает access gate)
func (r *FolderRepository) GetByUUID(ctx context.Context, exec sqlx.ExtContext, folderUUID string) (*model.Folder, error) {
	query := `
		SELECT uuid, name, owner_uuid, parent_uuid, created_at, updated_at
		FROM folders
		WHERE uuid = $1
	`

	var folder model.Folder
	err := sqlx.GetContext(ctx, exec, &folder, query, folderUUID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("[FolderRepo] папка %s: %w", folderUUID, apperrors.ErrNotFound)
		}
		return nil, util.LogError("[FolderRepo] не удалось найти папку", err)
	}

	return &folder, nil
}

// ListByOwner : папки владельца под parentUUID (nil — верхний уровень), отсортированы по имени
func (r *FolderRepository) ListByOwner(ctx context.Context, exec sqlx.ExtContext, ownerUUID string, parentUUID *string) ([]model.Folder, error) {
	queryTopLevel := `
		SELECT uuid, name, owner_uuid, parent_uuid, created_at, updated_at
		FROM folders
		WHERE owner_uuid = $1 AND parent_uuid IS NULL
		ORDER BY name ASC
	`
	queryByParent := `
		SELECT uuid, name, owner_uuid, parent_uuid, created_at, updated_at
		FROM folders
		WHERE owner_uuid = $1 AND parent_uuid = $2
		ORDER BY name ASC
	`

	folders := []model.Folder{}
	var err error
	if parentUUID == nil {
		err = sqlx.SelectContext(ctx, exec, &folders, queryTopLevel, ownerUUID)
	} else {
		err = sqlx.SelectContext(ctx, exec, &folders, queryByParent, ownerUUID, *parentUUID)
	}
	if err != nil {
		return nil, util.LogError("[FolderRepo] не удалось получить список папок", err)
	}

	return folders, nil
}

// Update : переименование/перенос; updated_at выставляет БД, а не вызывающий
func (r *FolderRepository) Update(ctx context.Context, exec sqlx.ExtContext, folder *model.Folder) (*model.Folder, error) {
	query := `
		UPDATE folders
		SET name = $2, parent_uuid = $3, updated_at = NOW()
		WHERE uuid = $1
		RETURNING uuid, name, owner_uuid, parent_uuid, created_at, updated_at
	`

	updated := &model.Folder{}
	err := exec.QueryRowxContext(ctx, query, folder.UUID, folder.Name, folder.ParentUUID).
		StructScan(updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("[FolderRepo] папка %s: %w", folder.UUID, apperrors.ErrNotFound)
		}
		return nil, util.LogError("[FolderRepo] не удалось обновить папку", err)
	}

	return updated, nil
}

// Delete : удаляет папку; вложенные папки и файлы каскадно удаляет БД
func (r *FolderRepository) Delete(ctx context.Context, exec sqlx.ExtContext, folderUUID string) error {
	result, err := exec.ExecContext(ctx, `DELETE FROM folders WHERE uuid = $1`, folderUUID)
	if err != nil {
		return util.LogError("[FolderRepo] не удалось удалить папку", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return util.LogError("[FolderRepo] ошибка проверки результата удаления", err)
	}
	if affected == 0 {
		return fmt.Errorf("[FolderRepo] папка %s: %w", folderUUID, apperrors.ErrNotFound)
	}

	return nil
}

func (r *FolderRepository) BeginTX(ctx context.Context) (sqlx.ExtContext, func() error, func() error, error) {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return nil, nil, nil, err
	}
	return tx, func() error { return tx.Rollback() }, func() error { return tx.Commit() }, nil
}

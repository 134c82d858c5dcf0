package repository

import (
	"cloud-drive-server/config"
	"cloud-drive-server/internal/model"
	"cloud-drive-server/internal/util"
	"context"
	"github.com/jmoiron/sqlx"
)

// ShareRepository : журнал приглашений (create/list, без workflow-переходов)
type ShareRepository struct {
	*config.Database
}

func NewShareRepository(database *config.Database) *ShareRepository {
	return &ShareRepository{database}
}

// Create : сохраняет приглашение со статусом pending
func (r *ShareRepository) Create(ctx context.Context, exec sqlx.ExtContext, share *model.Share) (*model.Share, error) {
	query := `
		INSERT INTO shares (uuid, file_uuid, shared_by_uuid, shared_with_email, permission, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING uuid, file_uuid, shared_by_uuid, shared_with_email, permission, status, created_at
	`

	created := &model.Share{}
	err := exec.QueryRowxContext(
		ctx,
		query,
		share.UUID,
		share.FileUUID,
		share.SharedByUUID,
		share.SharedWithEmail,
		share.Permission,
		share.Status,
	).StructScan(created)
	if err != nil {
		return nil, util.LogError("[ShareRepo] ошибка вставки приглашения в БД", err)
	}

	return created, nil
}

// ListByUser : приглашения, созданные пользователем, свежие первыми
func (r *ShareRepository) ListByUser(ctx context.Context, exec sqlx.ExtContext, userUUID string) ([]model.Share, error) {
	query := `
		SELECT uuid, file_uuid, shared_by_uuid, shared_with_email, permission, status, created_at
		FROM shares
		WHERE shared_by_uuid = $1
		ORDER BY created_at DESC
	`

	shares := []model.Share{}
	if err := sqlx.SelectContext(ctx, exec, &shares, query, userUUID); err != nil {
		return nil, util.LogError("[ShareRepo] не удалось получить список приглашений", err)
	}

	return shares, nil
}

// ListByFile : приглашения для конкретного файла
func (r *ShareRepository) ListByFile(ctx context.Context, exec sqlx.ExtContext, fileUUID string) ([]model.Share, error) {
	query := `
		SELECT uuid, file_uuid, shared_by_uuid, shared_with_email, permission, status, created_at
		FROM shares
		WHERE file_uuid = $1
		ORDER BY created_at DESC
	`

	shares := []model.Share{}
	if err := sqlx.SelectContext(ctx, exec, &shares, query, fileUUID); err != nil {
		return nil, util.LogError("[ShareRepo] не удалось получить приглашения файла", err)
	}

	return shares, nil
}

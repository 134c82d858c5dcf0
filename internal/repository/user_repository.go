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

type UserRepository struct {
	*config.Database
}

func NewUserRepository(database *config.Database) *UserRepository {
	return &UserRepository{database}
}

// CreateIfAbsent : создаёт пользователя при первом входе через внешнего провайдера.
// Повторный вызов с тем же external_uid возвращает существующую запись (upsert)
func (r *UserRepository) CreateIfAbsent(ctx context.Context, exec sqlx.ExtContext, user *model.User) (*model.User, error) {
	query := `
		INSERT INTO users (uuid, external_uid, email, display_name, photo_url)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (external_uid) DO UPDATE
		SET email = EXCLUDED.email,
		    display_name = EXCLUDED.display_name,
		    photo_url = EXCLUDED.photo_url
		RETURNING uuid, external_uid, email, display_name, photo_url, created_at
	`

	created := &model.User{}
	err := exec.QueryRowxContext(ctx, query, user.UUID, user.ExternalUID, user.Email, user.DisplayName, user.PhotoURL).
		StructScan(created)

	if err != nil {
		return nil, util.LogError("[UserRepo] ошибка вставки данных в БД", err)
	}

	return created, nil
}

// FindByUUID : ищет пользователя по UUID
func (r *UserRepository) FindByUUID(ctx context.Context, exec sqlx.ExtContext, uuid string) (*model.User, error) {
	query := `SELECT uuid, external_uid, email, display_name, photo_url, created_at FROM users WHERE uuid = $1`
	var user model.User
	err := sqlx.GetContext(ctx, exec, &user, query, uuid)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("[UserRepo] пользователь %s: %w", uuid, apperrors.ErrNotFound)
		}
		return nil, util.LogError("[UserRepo] не удалось найти пользователя в БД", err)
	}
	return &user, nil
}

// FindByExternalUID : ищет пользователя по subject внешнего провайдера
func (r *UserRepository) FindByExternalUID(ctx context.Context, exec sqlx.ExtContext, externalUID string) (*model.User, error) {
	query := `SELECT uuid, external_uid, email, display_name, photo_url, created_at FROM users WHERE external_uid = $1`
	var user model.User
	err := sqlx.GetContext(ctx, exec, &user, query, externalUID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("[UserRepo] пользователь с uid %s: %w", externalUID, apperrors.ErrNotFound)
		}
		return nil, util.LogError("[UserRepo] не удалось найти пользователя по external_uid", err)
	}
	return &user, nil
}

// FindByEmail : ищет пользователя по email
func (r *UserRepository) FindByEmail(ctx context.Context, exec sqlx.ExtContext, email string) (*model.User, error) {
	query := `SELECT uuid, external_uid, email, display_name, photo_url, created_at FROM users WHERE email = $1`
	var user model.User
	err := sqlx.GetContext(ctx, exec, &user, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("[UserRepo] пользователь с email %s: %w", email, apperrors.ErrNotFound)
		}
		return nil, util.LogError("[UserRepo] не удалось найти пользователя по email", err)
	}
	return &user, nil
}

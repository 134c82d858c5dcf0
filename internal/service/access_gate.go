package service

import (
	"cloud-drive-server/internal/apperrors"
	"cloud-drive-server/internal/model"
	"cloud-drive-server/internal/ports"
	"cloud-drive-server/internal/security"
	"context"
	"fmt"
	"github.com/jmoiron/sqlx"
)

// AccessGate : единая точка принятия решений о доступе.
// На вход получает только проверенные claims, сырых заголовков не видит.
type AccessGate struct {
	userRepository ports.UserRepository
}

func NewAccessGate(userRepository ports.UserRepository) *AccessGate {
	return &AccessGate{userRepository: userRepository}
}

// ResolveUser : превращает claims в запись пользователя.
// nil claims — личность не предъявлена (401), нерезолвящийся uid — доступ запрещён (403).
func (g *AccessGate) ResolveUser(ctx context.Context, exec sqlx.ExtContext, claims *security.Claims) (*model.User, error) {
	if claims == nil {
		return nil, fmt.Errorf("[AccessGate] личность не предъявлена: %w", apperrors.ErrUnauthenticated)
	}

	user, err := g.userRepository.FindByExternalUID(ctx, exec, claims.ExternalUID)
	if err != nil {
		return nil, fmt.Errorf("[AccessGate] личность не резолвится в пользователя: %w", apperrors.ErrForbidden)
	}

	return user, nil
}

// AuthorizeRead : правило чтения файла.
// Публичный файл с действующим токеном читается без личности,
// иначе требуется владелец.
func (g *AccessGate) AuthorizeRead(ctx context.Context, exec sqlx.ExtContext, file *model.File, claims *security.Claims) error {
	if file.IsPublic && file.ShareToken != nil {
		return nil
	}

	if claims == nil {
		return fmt.Errorf("[AccessGate] чтение приватного файла без личности: %w", apperrors.ErrForbidden)
	}

	user, err := g.userRepository.FindByExternalUID(ctx, exec, claims.ExternalUID)
	if err != nil || user.UUID != file.OwnerUUID {
		return fmt.Errorf("[AccessGate] файл принадлежит другому пользователю: %w", apperrors.ErrForbidden)
	}

	return nil
}

// AuthorizeOwner : правило записи/удаления — всегда только владелец, публичного пути записи нет
func (g *AccessGate) AuthorizeOwner(ctx context.Context, exec sqlx.ExtContext, ownerUUID string, claims *security.Claims) (*model.User, error) {
	user, err := g.ResolveUser(ctx, exec, claims)
	if err != nil {
		return nil, err
	}

	if user.UUID != ownerUUID {
		return nil, fmt.Errorf("[AccessGate] объект принадлежит другому пользователю: %w", apperrors.ErrForbidden)
	}

	return user, nil
}

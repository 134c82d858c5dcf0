package service

import (
	"cloud-drive-server/config"
	"cloud-drive-server/internal/apperrors"
	"cloud-drive-server/internal/model"
	"cloud-drive-server/internal/ports"
	"cloud-drive-server/internal/security"
	"cloud-drive-server/internal/util"
	"context"
	"fmt"
	"github.com/google/uuid"
	"strings"
)

// ShareService : журнал приглашений доступа к файлам.
// Только создание и чтение, workflow принятия приглашений здесь не реализован.
type ShareService struct {
	shareRepository ports.ShareRepository
	fileRepository  ports.FileRepository
	gate            ports.AccessGate
	db              *config.Database
}

func NewShareService(
	shareRepository ports.ShareRepository,
	fileRepository ports.FileRepository,
	gate ports.AccessGate,
	db *config.Database,
) *ShareService {
	return &ShareService{
		shareRepository: shareRepository,
		fileRepository:  fileRepository,
		gate:            gate,
		db:              db,
	}
}

// CreateShare : приглашение может выдать только владелец файла
func (s *ShareService) CreateShare(ctx context.Context, claims *security.Claims, fileUUID string, sharedWithEmail string, permission string) (*model.Share, error) {
	if strings.TrimSpace(sharedWithEmail) == "" || !strings.Contains(sharedWithEmail, "@") {
		return nil, fmt.Errorf("[ShareService] некорректный email получателя: %w", apperrors.ErrValidation)
	}
	if permission == "" {
		permission = model.PermissionView
	}
	if !model.ValidPermission(permission) {
		return nil, fmt.Errorf("[ShareService] неизвестный уровень доступа %q: %w", permission, apperrors.ErrValidation)
	}

	file, err := s.fileRepository.GetByUUID(ctx, s.db, fileUUID)
	if err != nil {
		return nil, err
	}

	user, err := s.gate.AuthorizeOwner(ctx, s.db, file.OwnerUUID, claims)
	if err != nil {
		return nil, err
	}

	share := &model.Share{
		UUID:            uuid.New().String(),
		FileUUID:        file.UUID,
		SharedByUUID:    user.UUID,
		SharedWithEmail: sharedWithEmail,
		Permission:      permission,
		Status:          model.ShareStatusPending,
	}

	created, err := s.shareRepository.Create(ctx, s.db, share)
	if err != nil {
		return nil, util.LogError("[ShareService] не удалось сохранить приглашение", err)
	}

	return created, nil
}

// ListShares : приглашения, созданные вызывающим.
// Если передан fileUUID, возвращает приглашения этого файла (только владельцу).
func (s *ShareService) ListShares(ctx context.Context, claims *security.Claims, fileUUID string) ([]model.Share, error) {
	user, err := s.gate.ResolveUser(ctx, s.db, claims)
	if err != nil {
		return nil, err
	}

	if fileUUID == "" {
		return s.shareRepository.ListByUser(ctx, s.db, user.UUID)
	}

	file, err := s.fileRepository.GetByUUID(ctx, s.db, fileUUID)
	if err != nil {
		return nil, err
	}
	if _, err := s.gate.AuthorizeOwner(ctx, s.db, file.OwnerUUID, claims); err != nil {
		return nil, err
	}

	return s.shareRepository.ListByFile(ctx, s.db, file.UUID)
}

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

type UserService struct {
	userRepository ports.UserRepository
	gate           ports.AccessGate
	db             *config.Database
}

func NewUserService(userRepository ports.UserRepository, gate ports.AccessGate, db *config.Database) *UserService {
	return &UserService{
		userRepository: userRepository,
		gate:           gate,
		db:             db,
	}
}

// CreateIfAbsent : заводит пользователя при первом входе через внешнего провайдера.
// Повторный вызов с тем же external_uid не создаёт дубликата.
func (s *UserService) CreateIfAbsent(ctx context.Context, user *model.User) (*model.User, error) {
	if strings.TrimSpace(user.ExternalUID) == "" {
		return nil, fmt.Errorf("[UserService] не указан uid: %w", apperrors.ErrValidation)
	}
	if strings.TrimSpace(user.Email) == "" || !strings.Contains(user.Email, "@") {
		return nil, fmt.Errorf("[UserService] некорректный email: %w", apperrors.ErrValidation)
	}

	user.UUID = uuid.New().String()

	created, err := s.userRepository.CreateIfAbsent(ctx, s.db, user)
	if err != nil {
		return nil, util.LogError("[UserService] ошибка создания пользователя", err)
	}

	return created, nil
}

// GetProfile : запись пользователя по его собственным claims
func (s *UserService) GetProfile(ctx context.Context, claims *security.Claims) (*model.User, error) {
	return s.gate.ResolveUser(ctx, s.db, claims)
}

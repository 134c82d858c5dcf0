package service_test

import (
	"cloud-drive-server/internal/apperrors"
	"cloud-drive-server/internal/model"
	"cloud-drive-server/internal/security"
	"cloud-drive-server/internal/service"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestUserService() (*service.UserService, *MockUserRepository, *MockAccessGate) {
	mockUserRepo := new(MockUserRepository)
	mockGate := new(MockAccessGate)
	svc := service.NewUserService(mockUserRepo, mockGate, nil)
	return svc, mockUserRepo, mockGate
}

func TestCreateUserIfAbsent(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		user        *model.User
		setupMocks  func(userRepo *MockUserRepository)
		expectedErr error
	}{
		{
			name: "Success, uuid assigned",
			user: &model.User{ExternalUID: "uid-1", Email: "user@example.com", DisplayName: "Ivan"},
			setupMocks: func(userRepo *MockUserRepository) {
				userRepo.On("CreateIfAbsent", ctx, mock.Anything, mock.MatchedBy(func(u *model.User) bool {
					return u.UUID != "" && u.ExternalUID == "uid-1"
				})).Return(&model.User{UUID: "user-1", ExternalUID: "uid-1", Email: "user@example.com"}, nil)
			},
		},
		{
			name:        "Missing uid",
			user:        &model.User{Email: "user@example.com"},
			setupMocks:  func(userRepo *MockUserRepository) {},
			expectedErr: apperrors.ErrValidation,
		},
		{
			name:        "Invalid email",
			user:        &model.User{ExternalUID: "uid-1", Email: "broken"},
			setupMocks:  func(userRepo *MockUserRepository) {},
			expectedErr: apperrors.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, userRepo, _ := newTestUserService()
			tt.setupMocks(userRepo)

			created, err := svc.CreateIfAbsent(ctx, tt.user)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				userRepo.AssertNotCalled(t, "CreateIfAbsent", mock.Anything, mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "user-1", created.UUID)
			userRepo.AssertExpectations(t)
		})
	}
}

func TestGetProfile(t *testing.T) {
	svc, _, gate := newTestUserService()
	ctx := context.Background()
	claims := &security.Claims{ExternalUID: "uid-1"}
	user := &model.User{UUID: "user-1", ExternalUID: "uid-1"}

	gate.On("ResolveUser", ctx, mock.Anything, claims).Return(user, nil)

	profile, err := svc.GetProfile(ctx, claims)

	require.NoError(t, err)
	assert.Equal(t, user, profile)
}

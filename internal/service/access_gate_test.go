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

func TestResolveUser(t *testing.T) {
	ctx := context.Background()
	user := &model.User{UUID: "user-1", ExternalUID: "uid-1"}

	tests := []struct {
		name        string
		claims      *security.Claims
		setupMocks  func(userRepo *MockUserRepository)
		expectedErr error
	}{
		{
			name:   "Success",
			claims: &security.Claims{ExternalUID: "uid-1"},
			setupMocks: func(userRepo *MockUserRepository) {
				userRepo.On("FindByExternalUID", ctx, mock.Anything, "uid-1").Return(user, nil)
			},
		},
		{
			name:        "No identity",
			claims:      nil,
			setupMocks:  func(userRepo *MockUserRepository) {},
			expectedErr: apperrors.ErrUnauthenticated,
		},
		{
			name:   "Unknown uid",
			claims: &security.Claims{ExternalUID: "ghost"},
			setupMocks: func(userRepo *MockUserRepository) {
				userRepo.On("FindByExternalUID", ctx, mock.Anything, "ghost").Return(nil, apperrors.ErrNotFound)
			},
			expectedErr: apperrors.ErrForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := new(MockUserRepository)
			tt.setupMocks(userRepo)
			gate := service.NewAccessGate(userRepo)

			resolved, err := gate.ResolveUser(ctx, nil, tt.claims)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, user, resolved)
		})
	}
}

func TestAuthorizeRead(t *testing.T) {
	ctx := context.Background()
	token := "tok"

	publicFile := &model.File{UUID: "file-1", OwnerUUID: "user-1", IsPublic: true, ShareToken: &token}
	privateFile := &model.File{UUID: "file-2", OwnerUUID: "user-1"}

	tests := []struct {
		name        string
		file        *model.File
		claims      *security.Claims
		setupMocks  func(userRepo *MockUserRepository)
		expectedErr error
	}{
		{
			name:       "Public file, anonymous caller",
			file:       publicFile,
			claims:     nil,
			setupMocks: func(userRepo *MockUserRepository) {},
		},
		{
			name:   "Private file, owner",
			file:   privateFile,
			claims: &security.Claims{ExternalUID: "uid-1"},
			setupMocks: func(userRepo *MockUserRepository) {
				userRepo.On("FindByExternalUID", ctx, mock.Anything, "uid-1").
					Return(&model.User{UUID: "user-1"}, nil)
			},
		},
		{
			name:        "Private file, anonymous caller",
			file:        privateFile,
			claims:      nil,
			setupMocks:  func(userRepo *MockUserRepository) {},
			expectedErr: apperrors.ErrForbidden,
		},
		{
			name:   "Private file, another user",
			file:   privateFile,
			claims: &security.Claims{ExternalUID: "uid-2"},
			setupMocks: func(userRepo *MockUserRepository) {
				userRepo.On("FindByExternalUID", ctx, mock.Anything, "uid-2").
					Return(&model.User{UUID: "user-2"}, nil)
			},
			expectedErr: apperrors.ErrForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := new(MockUserRepository)
			tt.setupMocks(userRepo)
			gate := service.NewAccessGate(userRepo)

			err := gate.AuthorizeRead(ctx, nil, tt.file, tt.claims)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestAuthorizeOwner(t *testing.T) {
	ctx := context.Background()
	user := &model.User{UUID: "user-1", ExternalUID: "uid-1"}

	t.Run("Owner allowed", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("FindByExternalUID", ctx, mock.Anything, "uid-1").Return(user, nil)
		gate := service.NewAccessGate(userRepo)

		resolved, err := gate.AuthorizeOwner(ctx, nil, "user-1", &security.Claims{ExternalUID: "uid-1"})

		require.NoError(t, err)
		assert.Equal(t, user, resolved)
	})

	t.Run("Not owner", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("FindByExternalUID", ctx, mock.Anything, "uid-1").Return(user, nil)
		gate := service.NewAccessGate(userRepo)

		_, err := gate.AuthorizeOwner(ctx, nil, "other-user", &security.Claims{ExternalUID: "uid-1"})

		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})

	t.Run("No identity", func(t *testing.T) {
		gate := service.NewAccessGate(new(MockUserRepository))

		_, err := gate.AuthorizeOwner(ctx, nil, "user-1", nil)

		assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
	})
}

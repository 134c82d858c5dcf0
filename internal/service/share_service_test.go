package service_test

import (
	"cloud-drive-server/internal/apperrors"
	"cloud-drive-server/internal/model"
	"cloud-drive-server/internal/security"
	"cloud-drive-server/internal/service"
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockShareRepository struct{ mock.Mock }

func (m *MockShareRepository) Create(ctx context.Context, exec sqlx.ExtContext, share *model.Share) (*model.Share, error) {
	args := m.Called(ctx, exec, share)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Share), args.Error(1)
}

func (m *MockShareRepository) ListByUser(ctx context.Context, exec sqlx.ExtContext, userUUID string) ([]model.Share, error) {
	args := m.Called(ctx, exec, userUUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Share), args.Error(1)
}

func (m *MockShareRepository) ListByFile(ctx context.Context, exec sqlx.ExtContext, fileUUID string) ([]model.Share, error) {
	args := m.Called(ctx, exec, fileUUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Share), args.Error(1)
}

func newTestShareService() (*service.ShareService, *MockShareRepository, *MockFileRepository, *MockAccessGate) {
	mockShareRepo := new(MockShareRepository)
	mockFileRepo := new(MockFileRepository)
	mockGate := new(MockAccessGate)

	svc := service.NewShareService(mockShareRepo, mockFileRepo, mockGate, nil)

	return svc, mockShareRepo, mockFileRepo, mockGate
}

func TestCreateShare_AllCases(t *testing.T) {
	ctx := context.Background()
	claims := &security.Claims{ExternalUID: "uid-1"}
	user := &model.User{UUID: "user-1"}
	file := &model.File{UUID: "file-1", OwnerUUID: "user-1"}

	tests := []struct {
		name        string
		email       string
		permission  string
		setupMocks  func(shareRepo *MockShareRepository, fileRepo *MockFileRepository, gate *MockAccessGate)
		expectedErr error
	}{
		{
			name:       "Success with default permission",
			email:      "friend@example.com",
			permission: "",
			setupMocks: func(shareRepo *MockShareRepository, fileRepo *MockFileRepository, gate *MockAccessGate) {
				fileRepo.On("GetByUUID", ctx, mock.Anything, "file-1").Return(file, nil)
				gate.On("AuthorizeOwner", ctx, mock.Anything, "user-1", claims).Return(user, nil)
				shareRepo.On("Create", ctx, mock.Anything, mock.MatchedBy(func(s *model.Share) bool {
					return s.Permission == model.PermissionView &&
						s.Status == model.ShareStatusPending &&
						s.SharedByUUID == "user-1"
				})).Return(&model.Share{UUID: "share-1", Permission: model.PermissionView}, nil)
			},
		},
		{
			name:        "Invalid email",
			email:       "not-an-email",
			permission:  model.PermissionView,
			setupMocks:  func(shareRepo *MockShareRepository, fileRepo *MockFileRepository, gate *MockAccessGate) {},
			expectedErr: apperrors.ErrValidation,
		},
		{
			name:        "Unknown permission",
			email:       "friend@example.com",
			permission:  "superuser",
			setupMocks:  func(shareRepo *MockShareRepository, fileRepo *MockFileRepository, gate *MockAccessGate) {},
			expectedErr: apperrors.ErrValidation,
		},
		{
			name:       "Not owner of file",
			email:      "friend@example.com",
			permission: model.PermissionEdit,
			setupMocks: func(shareRepo *MockShareRepository, fileRepo *MockFileRepository, gate *MockAccessGate) {
				fileRepo.On("GetByUUID", ctx, mock.Anything, "file-1").Return(file, nil)
				gate.On("AuthorizeOwner", ctx, mock.Anything, "user-1", claims).Return(nil, apperrors.ErrForbidden)
			},
			expectedErr: apperrors.ErrForbidden,
		},
		{
			name:       "File not found",
			email:      "friend@example.com",
			permission: model.PermissionView,
			setupMocks: func(shareRepo *MockShareRepository, fileRepo *MockFileRepository, gate *MockAccessGate) {
				fileRepo.On("GetByUUID", ctx, mock.Anything, "file-1").Return(nil, apperrors.ErrNotFound)
			},
			expectedErr: apperrors.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, shareRepo, fileRepo, gate := newTestShareService()
			tt.setupMocks(shareRepo, fileRepo, gate)

			share, err := svc.CreateShare(ctx, claims, "file-1", tt.email, tt.permission)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				shareRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, model.PermissionView, share.Permission)
			shareRepo.AssertExpectations(t)
		})
	}
}

func TestListShares(t *testing.T) {
	svc, shareRepo, _, gate := newTestShareService()
	ctx := context.Background()
	claims := &security.Claims{ExternalUID: "uid-1"}

	gate.On("ResolveUser", ctx, mock.Anything, claims).Return(&model.User{UUID: "user-1"}, nil)
	shareRepo.On("ListByUser", ctx, mock.Anything, "user-1").Return([]model.Share{
		{UUID: "share-1", SharedByUUID: "user-1"},
	}, nil)

	shares, err := svc.ListShares(ctx, claims, "")

	require.NoError(t, err)
	assert.Len(t, shares, 1)
	shareRepo.AssertExpectations(t)
}

func TestListShares_ByFile(t *testing.T) {
	ctx := context.Background()
	claims := &security.Claims{ExternalUID: "uid-1"}
	user := &model.User{UUID: "user-1"}
	file := &model.File{UUID: "file-1", OwnerUUID: "user-1"}

	t.Run("Owner gets file shares", func(t *testing.T) {
		svc, shareRepo, fileRepo, gate := newTestShareService()
		gate.On("ResolveUser", ctx, mock.Anything, claims).Return(user, nil)
		fileRepo.On("GetByUUID", ctx, mock.Anything, "file-1").Return(file, nil)
		gate.On("AuthorizeOwner", ctx, mock.Anything, "user-1", claims).Return(user, nil)
		shareRepo.On("ListByFile", ctx, mock.Anything, "file-1").Return([]model.Share{
			{UUID: "share-1", FileUUID: "file-1"},
		}, nil)

		shares, err := svc.ListShares(ctx, claims, "file-1")

		require.NoError(t, err)
		assert.Len(t, shares, 1)
		shareRepo.AssertExpectations(t)
	})

	t.Run("Foreign file forbidden", func(t *testing.T) {
		svc, shareRepo, fileRepo, gate := newTestShareService()
		gate.On("ResolveUser", ctx, mock.Anything, claims).Return(user, nil)
		fileRepo.On("GetByUUID", ctx, mock.Anything, "file-2").Return(&model.File{UUID: "file-2", OwnerUUID: "user-9"}, nil)
		gate.On("AuthorizeOwner", ctx, mock.Anything, "user-9", claims).Return(nil, apperrors.ErrForbidden)

		_, err := svc.ListShares(ctx, claims, "file-2")

		assert.ErrorIs(t, err, apperrors.ErrForbidden)
		shareRepo.AssertNotCalled(t, "ListByFile", mock.Anything, mock.Anything, mock.Anything)
	})
}

package repository_test

import (
	"cloud-drive-server/config"
	"cloud-drive-server/internal/apperrors"
	"cloud-drive-server/internal/repository"
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fileColumns = []string{
	"uuid", "storage_name", "original_name", "mime_type", "size_bytes", "storage_path",
	"owner_uuid", "folder_uuid", "is_public", "share_token", "created_at", "updated_at",
}

func newFileRepoWithMock(t *testing.T) (*repository.FileRepository, sqlmock.Sqlmock, func()) {
	db, sqlMock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)

	database := &config.Database{DB: sqlx.NewDb(db, "sqlmock")}
	repo := repository.NewFileRepository(database)

	return repo, sqlMock, func() { db.Close() }
}

func fileRow(uuid string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(fileColumns).AddRow(
		uuid, "170000-abc-photo.jpg", "photo.jpg", "image/jpeg", int64(10240), "/data/blobs/170000-abc-photo.jpg",
		"user-1", nil, false, nil, now, now,
	)
}

func TestFileRepository_GetByUUID(t *testing.T) {
	repo, sqlMock, closeFn := newFileRepoWithMock(t)
	defer closeFn()
	ctx := context.Background()

	sqlMock.ExpectQuery(`SELECT .+ FROM files WHERE uuid = \$1`).
		WithArgs("file-1").
		WillReturnRows(fileRow("file-1"))

	file, err := repo.GetByUUID(ctx, repo.Database, "file-1")

	require.NoError(t, err)
	assert.Equal(t, "file-1", file.UUID)
	assert.Equal(t, "photo.jpg", file.OriginalName)
	require.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestFileRepository_GetByUUID_NotFound(t *testing.T) {
	repo, sqlMock, closeFn := newFileRepoWithMock(t)
	defer closeFn()
	ctx := context.Background()

	sqlMock.ExpectQuery(`SELECT .+ FROM files WHERE uuid = \$1`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(fileColumns))

	_, err := repo.GetByUUID(ctx, repo.Database, "missing")

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestFileRepository_GetByShareToken(t *testing.T) {
	repo, sqlMock, closeFn := newFileRepoWithMock(t)
	defer closeFn()
	ctx := context.Background()

	t.Run("Only public rows match", func(t *testing.T) {
		sqlMock.ExpectQuery(`SELECT .+ FROM files WHERE share_token = \$1 AND is_public = TRUE`).
			WithArgs("tok-1").
			WillReturnRows(fileRow("file-1"))

		file, err := repo.GetByShareToken(ctx, repo.Database, "tok-1")
		require.NoError(t, err)
		assert.Equal(t, "file-1", file.UUID)
	})

	t.Run("Revoked token", func(t *testing.T) {
		sqlMock.ExpectQuery(`SELECT .+ FROM files WHERE share_token = \$1 AND is_public = TRUE`).
			WithArgs("old-token").
			WillReturnRows(sqlmock.NewRows(fileColumns))

		_, err := repo.GetByShareToken(ctx, repo.Database, "old-token")
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestFileRepository_ListByOwner(t *testing.T) {
	repo, sqlMock, closeFn := newFileRepoWithMock(t)
	defer closeFn()
	ctx := context.Background()

	t.Run("Top level uses IS NULL", func(t *testing.T) {
		sqlMock.ExpectQuery(`folder_uuid IS NULL`).
			WithArgs("user-1").
			WillReturnRows(fileRow("file-1"))

		files, err := repo.ListByOwner(ctx, repo.Database, "user-1", nil)
		require.NoError(t, err)
		assert.Len(t, files, 1)
	})

	t.Run("Folder filter", func(t *testing.T) {
		folderUUID := "folder-1"
		sqlMock.ExpectQuery(`folder_uuid = \$2`).
			WithArgs("user-1", folderUUID).
			WillReturnRows(sqlmock.NewRows(fileColumns))

		files, err := repo.ListByOwner(ctx, repo.Database, "user-1", &folderUUID)
		require.NoError(t, err)
		assert.Empty(t, files)
	})
}

func TestFileRepository_ListRecent(t *testing.T) {
	repo, sqlMock, closeFn := newFileRepoWithMock(t)
	defer closeFn()
	ctx := context.Background()

	sqlMock.ExpectQuery(`ORDER BY updated_at DESC\s+LIMIT \$2`).
		WithArgs("user-1", 10).
		WillReturnRows(fileRow("file-1"))

	files, err := repo.ListRecent(ctx, repo.Database, "user-1", 10)

	require.NoError(t, err)
	assert.Len(t, files, 1)
}

func TestFileRepository_SetShareToken(t *testing.T) {
	repo, sqlMock, closeFn := newFileRepoWithMock(t)
	defer closeFn()
	ctx := context.Background()

	now := time.Now()
	token := "V1StGXR8_Z5jdHi6B-myTV1StGXR8_Z5"
	rows := sqlmock.NewRows(fileColumns).AddRow(
		"file-1", "sn", "photo.jpg", "image/jpeg", int64(1), "/data/blobs/sn",
		"user-1", nil, true, token, now, now,
	)

	sqlMock.ExpectQuery(`UPDATE files\s+SET share_token = \$2, is_public = TRUE, updated_at = NOW\(\)`).
		WithArgs("file-1", token).
		WillReturnRows(rows)

	updated, err := repo.SetShareToken(ctx, repo.Database, "file-1", token)

	require.NoError(t, err)
	assert.True(t, updated.IsPublic)
	require.NotNil(t, updated.ShareToken)
	assert.Equal(t, token, *updated.ShareToken)
}

func TestFileRepository_ListStoragePathsUnderFolder(t *testing.T) {
	repo, sqlMock, closeFn := newFileRepoWithMock(t)
	defer closeFn()
	ctx := context.Background()

	sqlMock.ExpectQuery(`WITH RECURSIVE subtree`).
		WithArgs("folder-1").
		WillReturnRows(sqlmock.NewRows([]string{"storage_path"}).
			AddRow("/data/blobs/a").
			AddRow("/data/blobs/b"))

	paths, err := repo.ListStoragePathsUnderFolder(ctx, repo.Database, "folder-1")

	require.NoError(t, err)
	assert.Equal(t, []string{"/data/blobs/a", "/data/blobs/b"}, paths)
}

func TestFileRepository_Delete(t *testing.T) {
	repo, sqlMock, closeFn := newFileRepoWithMock(t)
	defer closeFn()
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		sqlMock.ExpectExec(`DELETE FROM files WHERE uuid = \$1`).
			WithArgs("file-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(ctx, repo.Database, "file-1"))
	})

	t.Run("Missing row", func(t *testing.T) {
		sqlMock.ExpectExec(`DELETE FROM files WHERE uuid = \$1`).
			WithArgs("missing").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(ctx, repo.Database, "missing")
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

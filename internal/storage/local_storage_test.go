package storage_test

import (
	"cloud-drive-server/internal/apperrors"
	"cloud-drive-server/internal/storage"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_PutGetDelete(t *testing.T) {
	ctx := context.Background()
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	stored, err := store.Put(ctx, strings.NewReader("содержимое файла"), "отчёт 2025.txt")
	require.NoError(t, err)
	assert.Equal(t, int64(len("содержимое файла")), stored.SizeBytes)
	assert.NotEmpty(t, stored.Name)

	reader, err := store.Get(ctx, stored.Path)
	require.NoError(t, err)
	data, err := io.ReadAll(reader)
	require.NoError(t, err)
	require.NoError(t, reader.Close())
	assert.Equal(t, "содержимое файла", string(data))

	require.NoError(t, store.Delete(ctx, stored.Path))

	_, err = store.Get(ctx, stored.Path)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestLocalStorage_DeleteMissing(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store, err := storage.NewLocalStorage(dir)
	require.NoError(t, err)

	err = store.Delete(ctx, filepath.Join(dir, "no-such-object"))
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestLocalStorage_NoTempLeftovers(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store, err := storage.NewLocalStorage(dir)
	require.NoError(t, err)

	_, err = store.Put(ctx, strings.NewReader("x"), "a.txt")
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, entry := range entries {
		assert.False(t, strings.HasPrefix(entry.Name(), ".upload-"),
			"временный файл %s остался после успешной записи", entry.Name())
	}
}

func TestLocalStorage_SameNameNoCollision(t *testing.T) {
	ctx := context.Background()
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	first, err := store.Put(ctx, strings.NewReader("один"), "photo.jpg")
	require.NoError(t, err)
	second, err := store.Put(ctx, strings.NewReader("два"), "photo.jpg")
	require.NoError(t, err)

	assert.NotEqual(t, first.Path, second.Path)

	reader, err := store.Get(ctx, first.Path)
	require.NoError(t, err)
	data, _ := io.ReadAll(reader)
	reader.Close()
	assert.Equal(t, "один", string(data))
}

func TestMakeStorageName(t *testing.T) {
	tests := []struct {
		name         string
		originalName string
		wantSuffix   string
	}{
		{name: "Plain name kept", originalName: "photo.jpg", wantSuffix: "-photo.jpg"},
		{name: "Path components stripped", originalName: "../../etc/passwd", wantSuffix: "-passwd"},
		{name: "Windows path stripped", originalName: `C:\temp\doc.pdf`, wantSuffix: "-doc.pdf"},
		{name: "Spaces replaced", originalName: "my report.txt", wantSuffix: "-my_report.txt"},
		{name: "Garbage falls back", originalName: "///", wantSuffix: "-file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := storage.MakeStorageName(tt.originalName)
			require.NoError(t, err)
			assert.True(t, strings.HasSuffix(got, tt.wantSuffix), "имя %q", got)
			assert.NotContains(t, got, "/")
			assert.NotContains(t, got, `\`)
		})
	}
}

func TestMakeStorageName_Unique(t *testing.T) {
	first, err := storage.MakeStorageName("a.txt")
	require.NoError(t, err)
	second, err := storage.MakeStorageName("a.txt")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

package storage_test

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/mrqz-remodeling/console-api/internal/config"
	"github.com/mrqz-remodeling/console-api/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestQuotationKey(t *testing.T) {
	id := uuid.MustParse("7c1f0b8f-1b72-4e6d-8c1b-2e8a4f3b0001")
	assert.Equal(t, "quotations/7c1f0b8f-1b72-4e6d-8c1b-2e8a4f3b0001/proyecto-101.pdf", storage.QuotationKey(id, "proyecto-101.pdf"))
	assert.Equal(t, "quotations/7c1f0b8f-1b72-4e6d-8c1b-2e8a4f3b0001/evil.pdf", storage.QuotationKey(id, "../../evil.pdf"))
}

func TestLocalStorage_PutGetReplaceDelete(t *testing.T) {
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()
	key := "quotations/p1/proyecto-101.pdf"

	size, err := store.Put(ctx, key, "application/pdf", strings.NewReader("first"))
	require.NoError(t, err)
	assert.Equal(t, int64(5), size)

	_, err = store.Put(ctx, key, "application/pdf", strings.NewReader("second version"))
	require.NoError(t, err)

	rc, err := store.Get(ctx, key)
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, rc.Close())
	require.NoError(t, err)
	assert.Equal(t, "second version", string(data))

	require.NoError(t, store.Delete(ctx, key))
	require.NoError(t, store.Delete(ctx, key), "deleting twice is fine")

	_, err = store.Get(ctx, key)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestLocalStorage_RejectsEscapingKeys(t *testing.T) {
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"../outside.pdf", "a/../../b.pdf", ""} {
		_, err := store.Put(context.Background(), key, "application/pdf", strings.NewReader("x"))
		assert.ErrorIs(t, err, storage.ErrInvalidKey, key)
	}
}

func TestNewStorage_Modes(t *testing.T) {
	store, err := storage.NewStorage(&config.StorageConfig{Mode: "local", LocalBasePath: t.TempDir()}, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &storage.LocalStorage{}, store)

	_, err = storage.NewStorage(&config.StorageConfig{Mode: "azure"}, zap.NewNop())
	assert.Error(t, err)

	_, err = storage.NewStorage(&config.StorageConfig{Mode: "ftp"}, zap.NewNop())
	assert.Error(t, err)
}

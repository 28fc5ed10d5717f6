package content

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alex-pober/actslaw-rag/internal/errors"
)

func TestHandleStoreCreateGet(t *testing.T) {
	store := NewHandleStore()

	data := []byte("%PDF-1.4 payload")
	handle := store.Create(data, "application/pdf", "exhibit a.pdf")

	require.NotEmpty(t, handle.ID)
	assert.True(t, len(handle.ID) > len("blob_"))
	assert.Contains(t, handle.ID, "blob_")
	assert.Equal(t, "exhibit a.pdf", handle.FileName)
	assert.False(t, handle.CreatedAt.IsZero())

	got, err := store.Get(handle.ID)
	require.NoError(t, err)
	assert.Equal(t, data, got.Data)
	assert.Equal(t, "application/pdf", got.ContentType)
}

func TestHandleStoreGetMissing(t *testing.T) {
	store := NewHandleStore()

	_, err := store.Get("blob_nope")
	assert.ErrorIs(t, err, errors.ErrHandleNotFound)
}

func TestHandleStoreRelease(t *testing.T) {
	store := NewHandleStore()

	handle := store.Create([]byte("x"), "application/pdf", "a.pdf")
	assert.Equal(t, 1, store.Len())

	assert.True(t, store.Release(handle.ID))
	assert.Equal(t, 0, store.Len())
	assert.False(t, store.Release(handle.ID))

	_, err := store.Get(handle.ID)
	assert.ErrorIs(t, err, errors.ErrHandleNotFound)
}

func TestHandleStoreSanitizesFilename(t *testing.T) {
	store := NewHandleStore()

	handle := store.Create([]byte("x"), "application/pdf", "../../etc/passwd\x00.pdf")
	assert.NotContains(t, handle.FileName, "/")
	assert.NotContains(t, handle.FileName, "\x00")
}

func TestHandleStoreReleaseExpired(t *testing.T) {
	store := NewHandleStore().(*handleStore)

	stale := store.Create([]byte("old"), "application/pdf", "old.pdf")
	store.handles[stale.ID].CreatedAt = time.Now().UTC().Add(-2 * time.Hour)
	fresh := store.Create([]byte("new"), "application/pdf", "new.pdf")

	released := store.ReleaseExpired(time.Hour)
	assert.Equal(t, 1, released)

	_, err := store.Get(stale.ID)
	assert.ErrorIs(t, err, errors.ErrHandleNotFound)
	_, err = store.Get(fresh.ID)
	assert.NoError(t, err)

	assert.Equal(t, 0, store.ReleaseExpired(time.Hour))
}

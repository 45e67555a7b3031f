package repositories

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	appErrors "splitpay/internal/errors"
	"splitpay/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecipientFileStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "paynow_info.json")

	store, err := NewRecipientFileStore(path)
	require.NoError(t, err)

	_, err = store.Get(ctx, "42")
	assert.ErrorIs(t, err, appErrors.ErrRecipientNotFound)

	require.NoError(t, store.Save(ctx, &models.Recipient{UserID: "42", Phone: "+6591234567", Name: "John Doe"}))
	require.NoError(t, store.Save(ctx, &models.Recipient{UserID: "7", Phone: "+6581234567", Name: "Jane"}))

	got, err := store.Get(ctx, "42")
	require.NoError(t, err)
	assert.Equal(t, "42", got.UserID)
	assert.Equal(t, "+6591234567", got.Phone)
	assert.Equal(t, "John Doe", got.Name)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"42": {"phone": "+6591234567", "name": "John Doe"},
		"7":  {"phone": "+6581234567", "name": "Jane"}
	}`, string(raw))
	assert.Contains(t, string(raw), "\n  \"42\": {\n    \"phone\"")

	list, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "42", list[0].UserID)
	assert.Equal(t, "7", list[1].UserID)

	// A fresh store sees the persisted data.
	reopened, err := NewRecipientFileStore(path)
	require.NoError(t, err)
	got, err = reopened.Get(ctx, "7")
	require.NoError(t, err)
	assert.Equal(t, "Jane", got.Name)

	require.NoError(t, store.Delete(ctx, "7"))
	assert.ErrorIs(t, store.Delete(ctx, "7"), appErrors.ErrRecipientNotFound)
	_, err = store.Get(ctx, "7")
	assert.ErrorIs(t, err, appErrors.ErrRecipientNotFound)
}

func TestRecipientFileStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "paynow_info.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := NewRecipientFileStore(path)
	assert.Error(t, err)
}

func TestRecipientFileStoreFailedWriteKeepsState(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store, err := NewRecipientFileStore(filepath.Join(dir, "missing-dir", "paynow_info.json"))
	require.NoError(t, err)

	err = store.Save(ctx, &models.Recipient{UserID: "1", Phone: "1", Name: "x"})
	assert.Error(t, err)

	_, err = store.Get(ctx, "1")
	assert.ErrorIs(t, err, appErrors.ErrRecipientNotFound)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/incorporate/pkg/adapters/file"
	"github.com/aretw0/incorporate/pkg/domain"
	"github.com/aretw0/incorporate/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Store implements SessionStore
var _ ports.SessionStore = (*file.Store)(nil)

func TestFileStore_Contract(t *testing.T) {
	ports.RunSessionStoreContract(t, file.New(t.TempDir()))
}

func TestFileStore_Layout(t *testing.T) {
	dir := t.TempDir()
	store := file.New(dir)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "s-1", domain.NewSession("s-1", time.Now())))
	require.NoError(t, store.Save(ctx, "s-1", domain.NewSession("s-1", time.Now())), "overwrite")

	_, err := os.Stat(filepath.Join(dir, "s-1.json"))
	require.NoError(t, err)

	// Stray temp files from an interrupted save are not sessions.
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".s-2-123.tmp"), []byte("{"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"s-1"}, ids)
}

func TestFileStore_ListsTempLookingIDs(t *testing.T) {
	store := file.New(t.TempDir())
	ctx := context.Background()

	for _, id := range []string{"tmp-foo", ".tmp-bar", "s.tmp"} {
		require.NoError(t, store.Save(ctx, id, domain.NewSession(id, time.Now())), id)
	}

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{".tmp-bar", "s.tmp", "tmp-foo"}, ids)
}

func TestFileStore_InvalidIDs(t *testing.T) {
	store := file.New(t.TempDir())
	ctx := context.Background()

	for _, id := range []string{"", "../escape", `a\b`, ".."} {
		assert.Error(t, store.Save(ctx, id, domain.NewSession(id, time.Now())), id)
		_, err := store.Load(ctx, id)
		assert.Error(t, err, id)
		assert.NotErrorIs(t, err, domain.ErrSessionNotFound, id)
	}
}

func TestFileStore_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.json"), []byte("not json"), 0644))

	_, err := file.New(dir).Load(context.Background(), "bad")
	assert.ErrorContains(t, err, "failed to unmarshal session")
}

func TestFileStore_ListMissingDir(t *testing.T) {
	ids, err := file.New(filepath.Join(t.TempDir(), "never-created")).List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ids)
}

package storage

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dashboard-api/internal/config"
)

func newTestStore(t *testing.T) *LocalStore {
	t.Helper()
	store, err := NewLocalStore(&config.LocalStorageConfig{
		UploadDir:     t.TempDir(),
		MaxUploadSize: 1 << 20,
	})
	require.NoError(t, err)
	return store
}

func TestSaveUniqueSuffix(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	name1, size, err := store.Save(ctx, "report.pdf", strings.NewReader("one"))
	require.NoError(t, err)
	assert.Equal(t, "report.pdf", name1)
	assert.Equal(t, int64(3), size)

	name2, _, err := store.Save(ctx, "report.pdf", strings.NewReader("two"))
	require.NoError(t, err)
	assert.Equal(t, "report (1).pdf", name2)

	name3, _, err := store.Save(ctx, "report.pdf", strings.NewReader("three"))
	require.NoError(t, err)
	assert.Equal(t, "report (2).pdf", name3)
}

func TestSaveSanitizesPath(t *testing.T) {
	store := newTestStore(t)

	name, _, err := store.Save(context.Background(), "../../etc/passwd", strings.NewReader("x"))
	require.NoError(t, err)
	assert.Equal(t, "passwd", name)
}

func TestOpenAndRemove(t *testing.T) {
	store := newTestStore(t)

	name, _, err := store.Save(context.Background(), "note.txt", strings.NewReader("hello"))
	require.NoError(t, err)

	f, err := store.Open(name)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	require.NoError(t, store.Remove(name))

	_, err = store.Open(name)
	assert.Error(t, err)

	// 删除不存在的文件视为成功
	assert.NoError(t, store.Remove(name))
}

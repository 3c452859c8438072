package storage

import (
	"io"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	store, err := NewStore(fs, "images")
	require.NoError(t, err)
	return store, fs
}

func TestNewStoreCreatesDir(t *testing.T) {
	_, fs := newTestStore(t)

	exists, err := afero.DirExists(fs, "images")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestValidName(t *testing.T) {
	valid := []string{"a.png", "a1b2c3.gif", "noext", "weird%2fname", "..hidden"}
	for _, name := range valid {
		assert.True(t, ValidName(name), "expected %q to be valid", name)
	}

	invalid := []string{"", ".", "..", "a/b.png", `a\b.png`, "../escape.png", "../../etc/passwd", "/etc/passwd"}
	for _, name := range invalid {
		assert.False(t, ValidName(name), "expected %q to be invalid", name)
	}
}

func TestSaveAndOpen(t *testing.T) {
	store, _ := newTestStore(t)

	require.NoError(t, store.Save("a.png", strings.NewReader("hello")))

	f, err := store.Open("a.png")
	require.NoError(t, err)
	defer f.Close()

	content, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(content))
}

func TestSaveCollision(t *testing.T) {
	store, _ := newTestStore(t)

	require.NoError(t, store.Save("a.png", strings.NewReader("original")))
	assert.ErrorIs(t, store.Save("a.png", strings.NewReader("clobber")), ErrExists)

	// 冲突后原文件内容保持不变
	f, err := store.Open("a.png")
	require.NoError(t, err)
	defer f.Close()
	content, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "original", string(content))
}

func TestSaveInvalidName(t *testing.T) {
	store, fs := newTestStore(t)

	assert.ErrorIs(t, store.Save("../escape.png", strings.NewReader("x")), ErrInvalidName)

	exists, err := afero.Exists(fs, "escape.png")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestDelete(t *testing.T) {
	store, _ := newTestStore(t)
	require.NoError(t, store.Save("a.png", strings.NewReader("x")))

	t.Run("existing", func(t *testing.T) {
		require.NoError(t, store.Delete("a.png"))
		_, err := store.Open("a.png")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("missing", func(t *testing.T) {
		assert.ErrorIs(t, store.Delete("a.png"), ErrNotFound)
	})

	t.Run("traversal", func(t *testing.T) {
		assert.ErrorIs(t, store.Delete("../../etc/passwd"), ErrInvalidName)
	})
}

func TestListSorted(t *testing.T) {
	store, fs := newTestStore(t)

	require.NoError(t, store.Save("b.png", strings.NewReader("b")))
	require.NoError(t, store.Save("a.png", strings.NewReader("a")))
	require.NoError(t, store.Save("c.gif", strings.NewReader("c")))

	// 子目录不计入列表
	require.NoError(t, fs.MkdirAll("images/sub", 0o755))

	names, err := store.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"a.png", "b.png", "c.gif"}, names)
}

func TestListEmpty(t *testing.T) {
	store, _ := newTestStore(t)

	names, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, names)
}

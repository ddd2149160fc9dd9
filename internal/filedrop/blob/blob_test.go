package blob

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStoreCreateAndOpen(t *testing.T) {
	t.Parallel()

	s, err := NewStore(t.TempDir())
	require.NoError(t, err)

	content := []byte("hello filedrop")
	n, err := s.Create("2f5c1d9e-0000-4000-8000-000000000001", bytes.NewReader(content))
	require.NoError(t, err)
	require.Equal(t, int64(len(content)), n)

	f, err := s.Open("2f5c1d9e-0000-4000-8000-000000000001")
	require.NoError(t, err)
	defer f.Close()

	got, err := io.ReadAll(f)
	require.NoError(t, err)
	require.Equal(t, content, got)
}

func TestStoreShardsByPrefix(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	s, err := NewStore(root)
	require.NoError(t, err)

	_, err = s.Create("ab12", strings.NewReader("x"))
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(root, "ab", "ab12"))
	require.NoError(t, err)
}

func TestStoreCreateConflict(t *testing.T) {
	t.Parallel()

	s, err := NewStore(t.TempDir())
	require.NoError(t, err)

	_, err = s.Create("cafe", strings.NewReader("first"))
	require.NoError(t, err)

	_, err = s.Create("cafe", strings.NewReader("second"))
	require.ErrorIs(t, err, ErrConflict)

	// The original bytes survive the refused overwrite.
	f, err := s.Open("cafe")
	require.NoError(t, err)
	defer f.Close()

	got, err := io.ReadAll(f)
	require.NoError(t, err)
	require.Equal(t, "first", string(got))
}

func TestStoreOpenNotFound(t *testing.T) {
	t.Parallel()

	s, err := NewStore(t.TempDir())
	require.NoError(t, err)

	_, err = s.Open("deadbeef")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestStoreRejectsUnsafeIDs(t *testing.T) {
	t.Parallel()

	s, err := NewStore(t.TempDir())
	require.NoError(t, err)

	for _, id := range []string{"", "a", "../etc/passwd", "ab/cd", `ab\cd`, "ab..cd"} {
		_, err := s.Create(id, strings.NewReader("x"))
		require.ErrorIs(t, err, ErrInvalidID, "id %q", id)
	}
}

func TestStoreRemove(t *testing.T) {
	t.Parallel()

	s, err := NewStore(t.TempDir())
	require.NoError(t, err)

	_, err = s.Create("feed", strings.NewReader("x"))
	require.NoError(t, err)

	require.NoError(t, s.Remove("feed"))
	require.False(t, s.Exists("feed"))

	// Removing again is a no-op.
	require.NoError(t, s.Remove("feed"))
}

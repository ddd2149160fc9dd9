package seed

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/oatfile/filedrop/internal/filedrop/store"
	"github.com/oatfile/filedrop/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	cryptox.SetPepperPath(filepath.Join(os.TempDir(), "filedrop-seed-test-pepper"))
	os.Exit(m.Run())
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
users:
  - username: alice
    full_name: Alice Example
    password: s3cret
  - username: bob
    full_name: Bob Example
    password: hunter2
    disabled: true
`), 0600))

	s, err := LoadFile(path)
	require.NoError(t, err)
	require.Equal(t, 2, s.Len())

	ctx := context.Background()

	alice, err := s.GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, "Alice Example", alice.FullName)
	require.False(t, alice.Disabled)
	require.NoError(t, cryptox.VerifyPassword("s3cret", alice.PasswordHash))

	bob, err := s.GetUserByUsername(ctx, "bob")
	require.NoError(t, err)
	require.True(t, bob.Disabled)
}

func TestLoadFile_Invalid(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(dir, "nope.yaml"))
		require.Error(t, err)
	})

	t.Run("empty user list", func(t *testing.T) {
		path := filepath.Join(dir, "empty.yaml")
		require.NoError(t, os.WriteFile(path, []byte("users: []\n"), 0600))
		_, err := LoadFile(path)
		require.Error(t, err)
	})

	t.Run("duplicate username", func(t *testing.T) {
		path := filepath.Join(dir, "dup.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
users:
  - {username: alice, password: a}
  - {username: alice, password: b}
`), 0600))
		_, err := LoadFile(path)
		require.Error(t, err)
	})

	t.Run("no credential", func(t *testing.T) {
		path := filepath.Join(dir, "nocred.yaml")
		require.NoError(t, os.WriteFile(path, []byte("users:\n  - {username: alice}\n"), 0600))
		_, err := LoadFile(path)
		require.Error(t, err)
	})
}

func TestLookupIsExactAndCaseSensitive(t *testing.T) {
	s, err := DevSeed()
	require.NoError(t, err)

	ctx := context.Background()

	_, err = s.GetUserByUsername(ctx, "john_doe")
	require.NoError(t, err)

	_, err = s.GetUserByUsername(ctx, "John_Doe")
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.GetUserByUsername(ctx, "john_doe ")
	require.ErrorIs(t, err, store.ErrNotFound)
}

package secrets

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTokenLifecycle(t *testing.T) {
	t.Parallel()
	s := &Store{Dir: filepath.Join(t.TempDir(), "cfg")}

	_, err := s.FetchToken("https://admin.example.test")
	require.ErrorIs(t, err, ErrTokenNotFound)

	require.NoError(t, s.StoreToken("https://Admin.example.test/", "s3cret"))
	got, err := s.FetchToken("https://admin.example.test")
	require.NoError(t, err)
	require.Equal(t, "s3cret", got)

	raw, err := os.ReadFile(filepath.Join(s.Dir, fileName))
	require.NoError(t, err)
	require.False(t, strings.Contains(string(raw), "s3cret"))

	info, err := os.Stat(filepath.Join(s.Dir, fileName))
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	require.NoError(t, s.DeleteToken("https://admin.example.test"))
	_, err = s.FetchToken("https://admin.example.test")
	require.ErrorIs(t, err, ErrTokenNotFound)
	require.NoError(t, s.DeleteToken("https://admin.example.test"))
}

func TestBackendRequired(t *testing.T) {
	t.Parallel()
	s := &Store{Dir: t.TempDir()}
	require.Error(t, s.StoreToken("  ", "x"))
	_, err := s.FetchToken("")
	require.Error(t, err)
}

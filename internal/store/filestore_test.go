package store

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileStoreSurvivesReopen(t *testing.T) {
	dir := t.TempDir()

	fs, err := NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, fs.Set(KeyToken, "tok123"))
	require.NoError(t, fs.Set(KeyTheme, "light"))

	// a new FileStore over the same dir stands in for a process restart
	reopened, err := NewFileStore(dir)
	require.NoError(t, err)

	tok, err := reopened.Get(KeyToken)
	require.NoError(t, err)
	require.Equal(t, "tok123", tok)

	theme, err := reopened.Get(KeyTheme)
	require.NoError(t, err)
	require.Equal(t, "light", theme)
}

func TestFileStoreMissAndDelete(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	_, err = fs.Get(KeyAPIKey)
	require.ErrorIs(t, err, ErrMiss)

	require.NoError(t, fs.Set(KeyAPIKey, "key-abc"))
	require.NoError(t, fs.Delete(KeyAPIKey))
	_, err = fs.Get(KeyAPIKey)
	require.ErrorIs(t, err, ErrMiss)

	// deleting an absent key is not an error
	require.NoError(t, fs.Delete(KeyAPIKey))
}

func TestFileStoreEmptyValueDeletes(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, fs.Set(KeyToken, "tok"))
	require.NoError(t, fs.Set(KeyToken, ""))
	_, err = fs.Get(KeyToken)
	require.ErrorIs(t, err, ErrMiss)
}

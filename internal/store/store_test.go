package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	bolt "go.etcd.io/bbolt"
)

func TestBlobStoreRoundTripOnDisk(t *testing.T) {
	dir := t.TempDir()
	s, err := NewBlobStore(dir)
	require.NoError(t, err)

	_, ok, err := s.Read("WATCHLIST_V1")
	require.NoError(t, err)
	assert.False(t, ok, "fresh store should not have the key")

	require.NoError(t, s.Write("WATCHLIST_V1", `[{"id":1,"title":"A"}]`))
	require.NoError(t, s.Close())

	// Reopen to prove the value was persisted
	s, err = NewBlobStore(dir)
	require.NoError(t, err)
	defer s.Close()

	v, ok, err := s.Read("WATCHLIST_V1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":1,"title":"A"}]`, v)
	assert.Equal(t, filepath.Join(dir, dbFileName), s.Path())
}

func TestBlobStoreReadsBypassMemory(t *testing.T) {
	dir := t.TempDir()
	s, err := NewBlobStore(dir)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Write("k", "one"))

	// Mutate the bucket directly; Read must observe it
	require.NoError(t, s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketKV).Put([]byte("k"), []byte("two"))
	}))

	v, _, err := s.Read("k")
	require.NoError(t, err)
	assert.Equal(t, "two", v)
}

func TestBlobStoreMemoryOnly(t *testing.T) {
	s, err := NewBlobStore("")
	require.NoError(t, err)

	require.NoError(t, s.Write("k", "v"))
	v, ok, err := s.Read("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", v)

	assert.Empty(t, s.Path())
	assert.NoError(t, s.Close())
}

func TestNewBlobStoreFailsOnFilePath(t *testing.T) {
	file := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	_, err := NewBlobStore(file)
	assert.Error(t, err)
}

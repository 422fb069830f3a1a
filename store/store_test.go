package store

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/subchain-network/subchain/lib"
)

func newTestStore(t *testing.T) *Store {
	db, err := NewStoreInMemory(lib.NewNullLogger())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestStoreCRUD(t *testing.T) {
	db := newTestStore(t)
	key, value := []byte("key"), []byte("value")
	// absent keys read as nil without error
	got, err := db.Get(key)
	require.NoError(t, err)
	require.Nil(t, got)
	require.NoError(t, db.Set(key, value))
	got, err = db.Get(key)
	require.NoError(t, err)
	require.Equal(t, value, got)
	require.NoError(t, db.Delete(key))
	got, err = db.Get(key)
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestStoreCommitAndVersion(t *testing.T) {
	db := newTestStore(t)
	require.EqualValues(t, 0, db.Version())
	require.NoError(t, db.Set([]byte("a"), []byte("1")))
	require.NoError(t, db.Commit())
	require.EqualValues(t, 1, db.Version())
	// committed writes remain visible through the fresh writer
	got, err := db.Get([]byte("a"))
	require.NoError(t, err)
	require.Equal(t, []byte("1"), got)
}

func TestStoreReset(t *testing.T) {
	db := newTestStore(t)
	require.NoError(t, db.Set([]byte("a"), []byte("1")))
	require.NoError(t, db.Commit())
	require.NoError(t, db.Set([]byte("b"), []byte("2")))
	db.Reset()
	// the uncommitted write is gone, the committed one survives
	got, err := db.Get([]byte("b"))
	require.NoError(t, err)
	require.Nil(t, got)
	got, err = db.Get([]byte("a"))
	require.NoError(t, err)
	require.Equal(t, []byte("1"), got)
}

func TestStoreIterator(t *testing.T) {
	db := newTestStore(t)
	pairs := map[string]string{
		"p/a": "1",
		"p/b": "2",
		"p/c": "3",
		"q/x": "9", // outside the prefix
	}
	for k, v := range pairs {
		require.NoError(t, db.Set([]byte(k), []byte(v)))
	}
	it, err := db.Iterator([]byte("p/"))
	require.NoError(t, err)
	defer it.Close()
	var keys []string
	for ; it.Valid(); it.Next() {
		keys = append(keys, string(it.Key()))
		require.Equal(t, pairs[string(it.Key())], string(it.Value()))
	}
	// lexicographical order, prefix bounded
	require.Equal(t, []string{"p/a", "p/b", "p/c"}, keys)
}

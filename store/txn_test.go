package store

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTxnShadowsParent(t *testing.T) {
	db := newTestStore(t)
	require.NoError(t, db.Set([]byte("a"), []byte("parent")))
	txn := NewTxn(db)
	// overlay write shadows the parent without touching it
	require.NoError(t, txn.Set([]byte("a"), []byte("overlay")))
	got, err := txn.Get([]byte("a"))
	require.NoError(t, err)
	require.Equal(t, []byte("overlay"), got)
	got, err = db.Get([]byte("a"))
	require.NoError(t, err)
	require.Equal(t, []byte("parent"), got)
	// overlay delete hides the parent value
	require.NoError(t, txn.Delete([]byte("a")))
	got, err = txn.Get([]byte("a"))
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestTxnWriteFlushes(t *testing.T) {
	db := newTestStore(t)
	require.NoError(t, db.Set([]byte("a"), []byte("1")))
	txn := NewTxn(db)
	require.NoError(t, txn.Set([]byte("b"), []byte("2")))
	require.NoError(t, txn.Delete([]byte("a")))
	require.NoError(t, txn.Write())
	// both the set and the delete landed in the parent
	got, err := db.Get([]byte("b"))
	require.NoError(t, err)
	require.Equal(t, []byte("2"), got)
	got, err = db.Get([]byte("a"))
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestTxnDiscard(t *testing.T) {
	db := newTestStore(t)
	txn := NewTxn(db)
	require.NoError(t, txn.Set([]byte("a"), []byte("1")))
	txn.Discard()
	require.NoError(t, txn.Write())
	// nothing reached the parent
	got, err := db.Get([]byte("a"))
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestTxnIteratorMerges(t *testing.T) {
	tests := []struct {
		name     string
		detail   string
		parent   map[string]string
		sets     map[string]string
		deletes  []string
		expected [][2]string
	}{
		{
			name:     "interleaved keys",
			detail:   "overlay and parent keys merge in lexicographical order",
			parent:   map[string]string{"p/b": "1", "p/d": "2"},
			sets:     map[string]string{"p/a": "3", "p/c": "4"},
			expected: [][2]string{{"p/a", "3"}, {"p/b", "1"}, {"p/c", "4"}, {"p/d", "2"}},
		},
		{
			name:     "overlay shadows parent",
			detail:   "an overlay write for an existing key wins",
			parent:   map[string]string{"p/a": "old"},
			sets:     map[string]string{"p/a": "new"},
			expected: [][2]string{{"p/a", "new"}},
		},
		{
			name:     "overlay delete hides parent",
			detail:   "a deleted key is skipped entirely",
			parent:   map[string]string{"p/a": "1", "p/b": "2"},
			deletes:  []string{"p/a"},
			expected: [][2]string{{"p/b", "2"}},
		},
		{
			name:     "overlay only",
			detail:   "iteration works with an empty parent",
			sets:     map[string]string{"p/a": "1", "p/b": "2"},
			expected: [][2]string{{"p/a", "1"}, {"p/b", "2"}},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			db := newTestStore(t)
			for k, v := range test.parent {
				require.NoError(t, db.Set([]byte(k), []byte(v)))
			}
			txn := NewTxn(db)
			for k, v := range test.sets {
				require.NoError(t, txn.Set([]byte(k), []byte(v)))
			}
			for _, k := range test.deletes {
				require.NoError(t, txn.Delete([]byte(k)))
			}
			it, err := txn.Iterator([]byte("p/"))
			require.NoError(t, err)
			defer it.Close()
			var got [][2]string
			for ; it.Valid(); it.Next() {
				got = append(got, [2]string{string(it.Key()), string(it.Value())})
			}
			require.Equal(t, test.expected, got)
		})
	}
}

func TestTxnSortedInsertOrderIndependent(t *testing.T) {
	db := newTestStore(t)
	txn := NewTxn(db)
	// insert out of order, iterate in order
	for _, k := range []string{"p/c", "p/a", "p/b"} {
		require.NoError(t, txn.Set([]byte(k), []byte("v")))
	}
	it, err := txn.Iterator([]byte("p/"))
	require.NoError(t, err)
	defer it.Close()
	var keys []string
	for ; it.Valid(); it.Next() {
		keys = append(keys, string(it.Key()))
	}
	require.Equal(t, []string{"p/a", "p/b", "p/c"}, keys)
}

package store

import (
	"encoding/binary"
	"errors"
	"path/filepath"

	"github.com/dgraph-io/badger/v4"
	"github.com/subchain-network/subchain/lib"
)

/*
	The Store is a thin versioned abstraction over a single BadgerDB instance.

	All reads and writes flow through one long-lived read-write badger transaction: the single
	logical writer of the deterministic execution model. Commit() flushes that transaction and
	increments the version (block height); Reset() throws the uncommitted writes away. Nested
	atomicity inside a single state transition is provided by the in-memory overlay Txn
	(txn.go), not by badger, as badger transactions do not nest.
*/

var (
	versionKey = []byte("s/version") // tracks the committed height of the store
)

var _ lib.StoreI = &Store{}

// Store is the badger-backed implementation of lib.StoreI
type Store struct {
	db      *badger.DB  // the underlying database
	writer  *badger.Txn // the single in-flight read-write transaction
	version uint64      // committed height
	log     lib.LoggerI // logger
}

// New() opens (or creates) the store under the configured data directory
func New(c lib.Config, log lib.LoggerI) (*Store, lib.ErrorI) {
	if c.InMemory {
		return NewStoreInMemory(log)
	}
	path := filepath.Join(c.DataDirPath, c.DBName)
	db, err := badger.Open(badger.DefaultOptions(path).WithLogger(nil))
	if err != nil {
		return nil, ErrOpenDB(err)
	}
	return newStore(db, log)
}

// NewStoreInMemory() opens a throwaway store backed by memory only
func NewStoreInMemory(log lib.LoggerI) (*Store, lib.ErrorI) {
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	if err != nil {
		return nil, ErrOpenDB(err)
	}
	return newStore(db, log)
}

// newStore() loads the persisted version and opens the writer transaction
func newStore(db *badger.DB, log lib.LoggerI) (*Store, lib.ErrorI) {
	s := &Store{db: db, writer: db.NewTransaction(true), log: log}
	bz, err := s.Get(versionKey)
	if err != nil {
		return nil, err
	}
	if len(bz) == 8 {
		s.version = binary.BigEndian.Uint64(bz)
	}
	return s, nil
}

// Get() retrieves value bytes for a key; (nil, nil) when the key is absent
func (s *Store) Get(key []byte) ([]byte, lib.ErrorI) {
	item, err := s.writer.Get(key)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, ErrStoreGet(err)
	}
	value, err := item.ValueCopy(nil)
	if err != nil {
		return nil, ErrStoreGet(err)
	}
	return value, nil
}

// Set() upserts a key-value pair
func (s *Store) Set(key, value []byte) lib.ErrorI {
	if err := s.writer.Set(key, value); err != nil {
		return ErrStoreSet(err)
	}
	return nil
}

// Delete() removes a key-value pair
func (s *Store) Delete(key []byte) lib.ErrorI {
	if err := s.writer.Delete(key); err != nil {
		return ErrStoreDelete(err)
	}
	return nil
}

// Iterator() iterates lexicographically over all keys under a prefix
func (s *Store) Iterator(prefix []byte) (lib.IteratorI, lib.ErrorI) {
	it := s.writer.NewIterator(badger.IteratorOptions{
		PrefetchValues: true,
		Prefix:         prefix,
	})
	it.Rewind()
	return &Iterator{it: it, prefix: prefix}, nil
}

// NewTxn() wraps the store in a discardable in-memory overlay
func (s *Store) NewTxn() lib.StoreTxnI { return NewTxn(s) }

// Version() returns the committed height of the store
func (s *Store) Version() uint64 { return s.version }

// Commit() persists all writes, increments the version, and opens a fresh writer
func (s *Store) Commit() lib.ErrorI {
	next := s.version + 1
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, next)
	if err := s.writer.Set(versionKey, bz); err != nil {
		return ErrCommitDB(err)
	}
	if err := s.writer.Commit(); err != nil {
		return ErrCommitDB(err)
	}
	s.version, s.writer = next, s.db.NewTransaction(true)
	return nil
}

// Reset() discards all uncommitted writes
func (s *Store) Reset() {
	s.writer.Discard()
	s.writer = s.db.NewTransaction(true)
}

// Close() discards the writer and stops the database
func (s *Store) Close() lib.ErrorI {
	s.writer.Discard()
	if err := s.db.Close(); err != nil {
		return ErrCloseDB(err)
	}
	return nil
}

var _ lib.IteratorI = &Iterator{}

// Iterator is the badger-backed implementation of lib.IteratorI
type Iterator struct {
	it     *badger.Iterator
	prefix []byte
}

func (i *Iterator) Valid() bool { return i.it.ValidForPrefix(i.prefix) }
func (i *Iterator) Next()       { i.it.Next() }
func (i *Iterator) Close()      { i.it.Close() }
func (i *Iterator) Key() []byte { return i.it.Item().KeyCopy(nil) }
func (i *Iterator) Value() []byte {
	value, err := i.it.Item().ValueCopy(nil)
	if err != nil {
		return nil
	}
	return value
}

package lib

/* This file contains the persistence interfaces used throughout the repository */

// StoreI defines the interface for the writable, versioned chain storage
type StoreI interface {
	RWStoreI
	NewTxn() StoreTxnI   // wrap the store in a discardable nested store
	Version() uint64     // access the height of the store
	Commit() ErrorI      // persist all writes and increment the version
	Reset()              // discard all uncommitted writes
	Close() ErrorI       // gracefully stop the database
}

// RWStoreI defines the Read/Write interface for basic db CRUD operations
type RWStoreI interface {
	RStoreI
	WStoreI
}

// WStoreI defines an interface for basic write operations
type WStoreI interface {
	Set(key, value []byte) ErrorI // set value bytes referenced by key bytes
	Delete(key []byte) ErrorI     // delete the key value pair referenced by key bytes
}

// RStoreI defines an interface for basic read operations
type RStoreI interface {
	Get(key []byte) ([]byte, ErrorI)            // access value bytes using key bytes; (nil, nil) if absent
	Iterator(prefix []byte) (IteratorI, ErrorI) // iterate KV pairs under a prefix in lexicographical order
}

// StoreTxnI is a discardable write overlay enabling all-or-nothing multi-step operations
type StoreTxnI interface {
	RWStoreI
	Write() ErrorI // flush the in-memory operations to the parent store
	Discard()      // throw away the in-memory operations
}

// IteratorI defines an interface for iterating over key-value pairs in a data store
type IteratorI interface {
	Valid() bool           // if the item the iterator is pointing at is valid
	Next()                 // move to the next item
	Key() (key []byte)     // retrieve the key
	Value() (value []byte) // retrieve the value
	Close()                // close the iterator when done
}

// MessageI is implemented by every state-transition message the state machine can handle
type MessageI interface {
	Check() ErrorI // stateless sanity validation of the message fields
	Name() string  // the unique registered name of the message
}

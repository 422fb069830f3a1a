package fsm

import (
	"encoding/binary"

	"github.com/subchain-network/subchain/lib"
)

/*
	StateMachine is the deterministic engine that applies messages against the chain state.

	It executes under a single logical writer: the surrounding node applies one message at a
	time, so no internal locking exists. Multi-step operations that must not leave partial
	state behind wrap the store in a discardable transaction (TxnWrap) and either flush it
	whole or throw it away.
*/

type StateMachine struct {
	store  lib.RWStoreI // the key value database where the state is held
	height uint64       // the block height currently being executed
	Config lib.Config   // the configuration of the node
	events []*Event     // events emitted during the current block, in order
	log    lib.LoggerI  // the logger
}

// New() creates a StateMachine over a store, running genesis when the store is empty
func New(c lib.Config, store lib.StoreI, log lib.LoggerI) (*StateMachine, lib.ErrorI) {
	sm := &StateMachine{
		store:  store,
		height: store.Version() + 1,
		Config: c,
		log:    log,
	}
	if store.Version() == 0 {
		if err := sm.NewFromGenesisFile(); err != nil {
			return nil, err
		}
	}
	return sm, nil
}

// NewWithGenesis() creates a StateMachine over an empty store using an in-memory genesis
// object instead of the genesis file
func NewWithGenesis(c lib.Config, store lib.StoreI, genesis *GenesisState, log lib.LoggerI) (*StateMachine, lib.ErrorI) {
	sm := &StateMachine{
		store:  store,
		height: store.Version() + 1,
		Config: c,
		log:    log,
	}
	if store.Version() == 0 {
		if err := sm.NewStateFromGenesis(genesis); err != nil {
			return nil, err
		}
	}
	return sm, nil
}

// Store() returns the current store backing the state machine
func (s *StateMachine) Store() lib.RWStoreI { return s.store }

// SetStore() swaps the store backing the state machine; used to enter and exit a wrapped txn
func (s *StateMachine) SetStore(store lib.RWStoreI) { s.store = store }

// Height() returns the block height currently being executed
func (s *StateMachine) Height() uint64 { return s.height }

// SetHeight() positions the state machine at a specific executing height
func (s *StateMachine) SetHeight(height uint64) { s.height = height }

// TxnWrap() wraps the current store in a discardable transaction and installs it
// as the active store; the caller restores the previous store when done
func (s *StateMachine) TxnWrap() (lib.StoreTxnI, lib.ErrorI) {
	withTxn, ok := s.store.(interface{ NewTxn() lib.StoreTxnI })
	if !ok {
		return nil, ErrWrongStoreType()
	}
	txn := withTxn.NewTxn()
	s.store = txn
	return txn, nil
}

// Set() upserts a key value pair into the state
func (s *StateMachine) Set(key, value []byte) lib.ErrorI { return s.store.Set(key, value) }

// Get() retrieves value bytes from the state; (nil, nil) when the key is absent
func (s *StateMachine) Get(key []byte) ([]byte, lib.ErrorI) { return s.store.Get(key) }

// Delete() removes a key value pair from the state
func (s *StateMachine) Delete(key []byte) lib.ErrorI { return s.store.Delete(key) }

// Iterator() iterates the state under a prefix in lexicographical key order
func (s *StateMachine) Iterator(prefix []byte) (lib.IteratorI, lib.ErrorI) {
	return s.store.Iterator(prefix)
}

// IterateAndExecute() runs a callback for every key value pair under a prefix
func (s *StateMachine) IterateAndExecute(prefix []byte, callback func(key, value []byte) lib.ErrorI) lib.ErrorI {
	it, err := s.Iterator(prefix)
	if err != nil {
		return err
	}
	defer it.Close()
	for ; it.Valid(); it.Next() {
		if err = callback(it.Key(), it.Value()); err != nil {
			return err
		}
	}
	return nil
}

// GetUint64() reads a raw 8-byte big-endian scalar; absent keys read as zero
func (s *StateMachine) GetUint64(key []byte) (uint64, lib.ErrorI) {
	bz, err := s.Get(key)
	if err != nil {
		return 0, err
	}
	if len(bz) != 8 {
		return 0, nil
	}
	return binary.BigEndian.Uint64(bz), nil
}

// SetUint64() writes a raw 8-byte big-endian scalar
func (s *StateMachine) SetUint64(key []byte, value uint64) lib.ErrorI {
	return s.Set(key, lib.FormatUint64(value))
}

// GetObject() reads and unmarshals a record into ptr; absent keys leave ptr zero valued
func (s *StateMachine) GetObject(key []byte, ptr any) lib.ErrorI {
	bz, err := s.Get(key)
	if err != nil {
		return err
	}
	return lib.Unmarshal(bz, ptr)
}

// SetObject() marshals and writes a record
func (s *StateMachine) SetObject(key []byte, obj any) lib.ErrorI {
	bz, err := lib.Marshal(obj)
	if err != nil {
		return err
	}
	return s.Set(key, bz)
}

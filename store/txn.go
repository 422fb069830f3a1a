package store

import (
	"sort"
	"strings"

	"github.com/subchain-network/subchain/lib"
)

/*
	Txn is an in-memory write overlay on top of any RWStoreI.

	Writes land in a map keyed by the string form of the key; reads consult the overlay first
	and fall through to the parent on a miss. Write() flushes the buffered operations to the
	parent in sorted key order; Discard() drops them. This gives a state transition all-or-
	nothing semantics without touching the parent until the transition has fully succeeded.
*/

var _ lib.StoreTxnI = &Txn{}

// Txn is the in-memory overlay implementation of lib.StoreTxnI
type Txn struct {
	parent lib.RWStoreI     // the store this overlay shadows
	ops    map[string]txnOp // buffered writes keyed by string(key)
	sorted []string         // sorted buffered keys, maintained on insert
}

// txnOp is a single buffered write
type txnOp struct {
	value  []byte // the value to set
	delete bool   // true if the op is a deletion
}

// NewTxn() creates a fresh overlay over a parent store
func NewTxn(parent lib.RWStoreI) *Txn {
	return &Txn{parent: parent, ops: make(map[string]txnOp)}
}

// Get() reads the overlay first and falls through to the parent on a miss
func (t *Txn) Get(key []byte) ([]byte, lib.ErrorI) {
	if op, found := t.ops[string(key)]; found {
		if op.delete {
			return nil, nil
		}
		return op.value, nil
	}
	return t.parent.Get(key)
}

// Set() buffers an upsert in the overlay
func (t *Txn) Set(key, value []byte) lib.ErrorI {
	t.update(string(key), txnOp{value: value})
	return nil
}

// Delete() buffers a deletion in the overlay
func (t *Txn) Delete(key []byte) lib.ErrorI {
	t.update(string(key), txnOp{delete: true})
	return nil
}

// update() records an op and keeps the sorted key list current
func (t *Txn) update(key string, op txnOp) {
	if _, found := t.ops[key]; !found {
		i := sort.SearchStrings(t.sorted, key)
		t.sorted = append(t.sorted, "")
		copy(t.sorted[i+1:], t.sorted[i:])
		t.sorted[i] = key
	}
	t.ops[key] = op
}

// Iterator() merges the parent iterator with the overlay in lexicographical key order
func (t *Txn) Iterator(prefix []byte) (lib.IteratorI, lib.ErrorI) {
	parent, err := t.parent.Iterator(prefix)
	if err != nil {
		return nil, err
	}
	return newTxnIterator(parent, t.ops, t.sorted, string(prefix)), nil
}

// Write() flushes the buffered operations to the parent store
func (t *Txn) Write() lib.ErrorI {
	for _, key := range t.sorted {
		op := t.ops[string(key)]
		if op.delete {
			if err := t.parent.Delete([]byte(key)); err != nil {
				return err
			}
		} else {
			if err := t.parent.Set([]byte(key), op.value); err != nil {
				return err
			}
		}
	}
	t.Discard()
	return nil
}

// Discard() drops all buffered operations
func (t *Txn) Discard() {
	t.ops, t.sorted = make(map[string]txnOp), nil
}

var _ lib.IteratorI = &TxnIterator{}

// TxnIterator walks the parent iterator and the overlay ops simultaneously,
// yielding each key once with the overlay shadowing the parent
type TxnIterator struct {
	parent  lib.IteratorI    // the underlying store iterator
	ops     map[string]txnOp // overlay ops at creation time
	sorted  []string         // overlay keys under the prefix, ascending
	index   int              // cursor into sorted
	invalid bool             // set once both sources are exhausted
	useTxn  bool             // true when the current element comes from the overlay
}

// newTxnIterator() positions a merged iterator at the first visible element
func newTxnIterator(parent lib.IteratorI, ops map[string]txnOp, sorted []string, prefix string) *TxnIterator {
	t := &TxnIterator{parent: parent, ops: ops}
	for _, key := range sorted {
		if strings.HasPrefix(key, prefix) {
			t.sorted = append(t.sorted, key)
		}
	}
	t.seek()
	return t
}

// Valid() returns false once both the parent and the overlay are exhausted
func (t *TxnIterator) Valid() bool { return !t.invalid }

// Next() advances whichever source produced the current element, then re-seeks
func (t *TxnIterator) Next() {
	if t.useTxn {
		t.index++
	} else {
		t.parent.Next()
	}
	t.seek()
}

func (t *TxnIterator) Key() []byte {
	if t.useTxn {
		return []byte(t.sorted[t.index])
	}
	return t.parent.Key()
}

func (t *TxnIterator) Value() []byte {
	if t.useTxn {
		return t.ops[t.sorted[t.index]].value
	}
	return t.parent.Value()
}

func (t *TxnIterator) Close() { t.parent.Close() }

// seek() selects the smaller of the two heads, skipping parent keys that the
// overlay shadows and overlay entries that are deletions
func (t *TxnIterator) seek() {
	for {
		txnValid, parentValid := t.index < len(t.sorted), t.parent.Valid()
		switch {
		case !txnValid && !parentValid:
			t.invalid = true
			return
		case !txnValid:
			if _, shadowed := t.ops[string(t.parent.Key())]; shadowed {
				t.parent.Next()
				continue
			}
			t.useTxn = false
			return
		case !parentValid:
			if t.ops[t.sorted[t.index]].delete {
				t.index++
				continue
			}
			t.useTxn = true
			return
		default:
			txnKey, parentKey := t.sorted[t.index], string(t.parent.Key())
			if txnKey == parentKey {
				t.parent.Next()
				continue
			}
			if txnKey < parentKey {
				if t.ops[txnKey].delete {
					t.index++
					continue
				}
				t.useTxn = true
				return
			}
			if _, shadowed := t.ops[parentKey]; shadowed {
				t.parent.Next()
				continue
			}
			t.useTxn = false
			return
		}
	}
}

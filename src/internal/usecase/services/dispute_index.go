package services

import (
	"github.com/api-sage/payments-engine/src/internal/domain"
)

// DisputeIndex is the exact-key store of every disputable transaction seen
// in a run, keyed by transaction id. At most one entry ever exists per id;
// entries are mutated in place and never removed.
type DisputeIndex struct {
	entries map[uint32]*domain.DisputableEntry
}

func NewDisputeIndex() *DisputeIndex {
	return &DisputeIndex{
		entries: make(map[uint32]*domain.DisputableEntry),
	}
}

// Insert registers a newly posted deposit or withdrawal. A second insert
// for the same transaction id is malformed input and is refused.
func (d *DisputeIndex) Insert(entry domain.DisputableEntry) error {
	if _, ok := d.entries[entry.TxID]; ok {
		return domain.ErrDuplicateTransactionID
	}

	d.entries[entry.TxID] = &entry
	return nil
}

// Get looks up the entry for a transaction id, if one was ever posted.
func (d *DisputeIndex) Get(txID uint32) (*domain.DisputableEntry, bool) {
	entry, ok := d.entries[txID]
	return entry, ok
}

// Contains reports whether the transaction id was ever posted.
func (d *DisputeIndex) Contains(txID uint32) bool {
	_, ok := d.entries[txID]
	return ok
}

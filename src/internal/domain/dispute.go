package domain

import "github.com/shopspring/decimal"

type DisputeStatus string

const (
	DisputeStatusPosted      DisputeStatus = "POSTED"
	DisputeStatusDisputed    DisputeStatus = "DISPUTED"
	DisputeStatusResolved    DisputeStatus = "RESOLVED"
	DisputeStatusChargedBack DisputeStatus = "CHARGED_BACK"
)

// DisputableEntry records one successfully posted deposit or withdrawal so
// that later dispute, resolve and chargeback records can be validated
// against it. Entries live for the whole run; a settled entry stays in the
// index to reject a second dispute of the same transaction id.
type DisputableEntry struct {
	TxID     uint32
	ClientID uint16
	Kind     TransactionKind
	Amount   decimal.Decimal
	Status   DisputeStatus
}

// OpenDispute moves the entry from POSTED to DISPUTED.
func (e *DisputableEntry) OpenDispute() error {
	switch e.Status {
	case DisputeStatusPosted:
		e.Status = DisputeStatusDisputed
		return nil
	case DisputeStatusDisputed:
		return ErrAlreadyDisputed
	default:
		return ErrDisputeClosed
	}
}

// Settle closes an open dispute with a terminal status, either RESOLVED or
// CHARGED_BACK. Settled entries are never reopened.
func (e *DisputableEntry) Settle(status DisputeStatus) error {
	if e.Status != DisputeStatusDisputed {
		return ErrNotDisputed
	}

	e.Status = status
	return nil
}

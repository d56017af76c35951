package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

type TransactionKind string

const (
	TransactionKindDeposit    TransactionKind = "deposit"
	TransactionKindWithdrawal TransactionKind = "withdrawal"
	TransactionKindDispute    TransactionKind = "dispute"
	TransactionKindResolve    TransactionKind = "resolve"
	TransactionKindChargeback TransactionKind = "chargeback"
)

// ParseTransactionKind normalizes a raw kind cell. Input kinds are matched
// case-insensitively with surrounding whitespace ignored.
func ParseTransactionKind(raw string) (TransactionKind, error) {
	switch TransactionKind(strings.ToLower(strings.TrimSpace(raw))) {
	case TransactionKindDeposit:
		return TransactionKindDeposit, nil
	case TransactionKindWithdrawal:
		return TransactionKindWithdrawal, nil
	case TransactionKindDispute:
		return TransactionKindDispute, nil
	case TransactionKindResolve:
		return TransactionKindResolve, nil
	case TransactionKindChargeback:
		return TransactionKindChargeback, nil
	}
	return "", ErrUnknownTransactionKind
}

// Transaction is one already-decoded input record. Amount is nil for
// dispute, resolve and chargeback records; absent is not the same as zero.
type Transaction struct {
	Kind     TransactionKind
	ClientID uint16
	TxID     uint32
	Amount   *decimal.Decimal
}

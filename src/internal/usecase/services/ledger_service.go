package services

import (
	"sort"

	"github.com/api-sage/payments-engine/src/internal/domain"
)

// LedgerService applies transaction records to client accounts, one record
// at a time in arrival order. It owns every account it touches and the
// dispute index; nothing else mutates either.
type LedgerService struct {
	accounts map[uint16]*domain.Account
	disputes *DisputeIndex
	stats    Stats
}

// Stats counts per-record verdicts for the run report.
type Stats struct {
	Accepted  uint64
	Rejected  uint64
	Malformed uint64
}

func (s *Stats) Add(other Stats) {
	s.Accepted += other.Accepted
	s.Rejected += other.Rejected
	s.Malformed += other.Malformed
}

func NewLedgerService() *LedgerService {
	return &LedgerService{
		accounts: make(map[uint16]*domain.Account),
		disputes: NewDisputeIndex(),
	}
}

// Apply processes a single record and reports the verdict. Malformed and
// rejected records leave every account untouched; the stream continues
// regardless of the verdict.
func (s *LedgerService) Apply(tx domain.Transaction) domain.Outcome {
	outcome := s.apply(tx)
	switch outcome.Code {
	case domain.OutcomeAccepted:
		s.stats.Accepted++
	case domain.OutcomeRejected:
		s.stats.Rejected++
	case domain.OutcomeMalformed:
		s.stats.Malformed++
	}
	return outcome
}

func (s *LedgerService) apply(tx domain.Transaction) domain.Outcome {
	if account, ok := s.accounts[tx.ClientID]; ok && account.Locked {
		return domain.Rejected(domain.ErrAccountLocked)
	}

	switch tx.Kind {
	case domain.TransactionKindDeposit:
		return s.applyDeposit(tx)
	case domain.TransactionKindWithdrawal:
		return s.applyWithdrawal(tx)
	case domain.TransactionKindDispute:
		return s.applyDispute(tx)
	case domain.TransactionKindResolve:
		return s.applySettlement(tx, domain.DisputeStatusResolved)
	case domain.TransactionKindChargeback:
		return s.applySettlement(tx, domain.DisputeStatusChargedBack)
	default:
		return domain.Malformed(domain.ErrUnknownTransactionKind)
	}
}

func (s *LedgerService) applyDeposit(tx domain.Transaction) domain.Outcome {
	if tx.Amount == nil {
		return domain.Malformed(domain.ErrAmountRequired)
	}
	if !tx.Amount.IsPositive() {
		return domain.Malformed(domain.ErrAmountNotPositive)
	}
	if s.disputes.Contains(tx.TxID) {
		return domain.Malformed(domain.ErrDuplicateTransactionID)
	}

	account := s.account(tx.ClientID)
	if err := account.Deposit(*tx.Amount); err != nil {
		return domain.Malformed(err)
	}

	// Insert cannot fail here: the duplicate check above already passed.
	_ = s.disputes.Insert(domain.DisputableEntry{
		TxID:     tx.TxID,
		ClientID: tx.ClientID,
		Kind:     domain.TransactionKindDeposit,
		Amount:   *tx.Amount,
		Status:   domain.DisputeStatusPosted,
	})

	return domain.Accepted()
}

func (s *LedgerService) applyWithdrawal(tx domain.Transaction) domain.Outcome {
	if tx.Amount == nil {
		return domain.Malformed(domain.ErrAmountRequired)
	}
	if !tx.Amount.IsPositive() {
		return domain.Malformed(domain.ErrAmountNotPositive)
	}
	if s.disputes.Contains(tx.TxID) {
		return domain.Malformed(domain.ErrDuplicateTransactionID)
	}

	// A withdrawal for a client with no account is an overdraft attempt
	// against a zero balance; no account is materialized for it.
	account, ok := s.accounts[tx.ClientID]
	if !ok {
		return domain.Rejected(domain.ErrInsufficientBalance)
	}

	if err := account.Withdraw(*tx.Amount); err != nil {
		return domain.Rejected(err)
	}

	_ = s.disputes.Insert(domain.DisputableEntry{
		TxID:     tx.TxID,
		ClientID: tx.ClientID,
		Kind:     domain.TransactionKindWithdrawal,
		Amount:   *tx.Amount,
		Status:   domain.DisputeStatusPosted,
	})

	return domain.Accepted()
}

func (s *LedgerService) applyDispute(tx domain.Transaction) domain.Outcome {
	entry, outcome := s.referencedEntry(tx)
	if entry == nil {
		return outcome
	}

	if err := entry.OpenDispute(); err != nil {
		return domain.Rejected(err)
	}

	// The entry exists, so the posting deposit or withdrawal already
	// materialized this account.
	account := s.accounts[tx.ClientID]
	switch entry.Kind {
	case domain.TransactionKindDeposit:
		account.HoldDeposit(entry.Amount)
	case domain.TransactionKindWithdrawal:
		account.HoldWithdrawal(entry.Amount)
	}

	return domain.Accepted()
}

func (s *LedgerService) applySettlement(tx domain.Transaction, status domain.DisputeStatus) domain.Outcome {
	entry, outcome := s.referencedEntry(tx)
	if entry == nil {
		return outcome
	}

	if err := entry.Settle(status); err != nil {
		return domain.Rejected(err)
	}

	account := s.accounts[tx.ClientID]
	switch {
	case status == domain.DisputeStatusResolved && entry.Kind == domain.TransactionKindDeposit:
		account.ReleaseDepositHold(entry.Amount)
	case status == domain.DisputeStatusResolved && entry.Kind == domain.TransactionKindWithdrawal:
		account.ReleaseWithdrawalHold(entry.Amount)
	case status == domain.DisputeStatusChargedBack && entry.Kind == domain.TransactionKindDeposit:
		account.ChargeBackDeposit(entry.Amount)
	case status == domain.DisputeStatusChargedBack && entry.Kind == domain.TransactionKindWithdrawal:
		account.ChargeBackWithdrawal(entry.Amount)
	}

	return domain.Accepted()
}

// referencedEntry validates the transaction id reference shared by dispute,
// resolve and chargeback records. A nil entry means the outcome carries the
// rejection.
func (s *LedgerService) referencedEntry(tx domain.Transaction) (*domain.DisputableEntry, domain.Outcome) {
	entry, ok := s.disputes.Get(tx.TxID)
	if !ok {
		return nil, domain.Rejected(domain.ErrUnknownTransaction)
	}
	if entry.ClientID != tx.ClientID {
		return nil, domain.Rejected(domain.ErrClientMismatch)
	}
	return entry, domain.Accepted()
}

func (s *LedgerService) account(clientID uint16) *domain.Account {
	account, ok := s.accounts[clientID]
	if !ok {
		account = domain.NewAccount(clientID)
		s.accounts[clientID] = account
	}
	return account
}

// Snapshot returns one summary per touched client, ordered by ascending
// client id. The order is part of the contract: reports and tests rely on
// it being deterministic.
func (s *LedgerService) Snapshot() []domain.AccountSummary {
	summaries := make([]domain.AccountSummary, 0, len(s.accounts))
	for _, account := range s.accounts {
		summaries = append(summaries, account.Summary())
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].ClientID < summaries[j].ClientID
	})

	return summaries
}

// Stats returns the verdict counters accumulated so far.
func (s *LedgerService) Stats() Stats {
	return s.stats
}

package domain

import "github.com/shopspring/decimal"

// Account holds the funds of one client. Total is never stored: it is
// always derived from Available and Held, so total == available + held
// cannot drift no matter which mutation runs.
type Account struct {
	ClientID  uint16
	Available decimal.Decimal
	Held      decimal.Decimal
	Locked    bool
}

func NewAccount(clientID uint16) *Account {
	return &Account{
		ClientID:  clientID,
		Available: decimal.Zero,
		Held:      decimal.Zero,
	}
}

func (a *Account) Total() decimal.Decimal {
	return a.Available.Add(a.Held)
}

func (a *Account) Deposit(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrAmountNotPositive
	}

	a.Available = a.Available.Add(amount)
	return nil
}

func (a *Account) Withdraw(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrAmountNotPositive
	}
	if a.Available.LessThan(amount) {
		return ErrInsufficientBalance
	}

	a.Available = a.Available.Sub(amount)
	return nil
}

// HoldDeposit freezes a disputed deposit: the amount moves from available
// into held. Available may go negative when the deposit was already spent.
func (a *Account) HoldDeposit(amount decimal.Decimal) {
	a.Available = a.Available.Sub(amount)
	a.Held = a.Held.Add(amount)
}

// ReleaseDepositHold settles a deposit dispute in the client's favour,
// restoring the exact pre-dispute balances.
func (a *Account) ReleaseDepositHold(amount decimal.Decimal) {
	a.Held = a.Held.Sub(amount)
	a.Available = a.Available.Add(amount)
}

// ChargeBackDeposit removes the held amount entirely and freezes the
// account against any further mutation.
func (a *Account) ChargeBackDeposit(amount decimal.Decimal) {
	a.Held = a.Held.Sub(amount)
	a.Locked = true
}

// HoldWithdrawal provisionally re-credits a disputed withdrawal into held
// while the dispute is reviewed. Available is untouched: the funds already
// left the account when the withdrawal posted.
func (a *Account) HoldWithdrawal(amount decimal.Decimal) {
	a.Held = a.Held.Add(amount)
}

// ReleaseWithdrawalHold settles a withdrawal dispute against the client:
// the provisional credit is dropped and balances return to their
// pre-dispute values.
func (a *Account) ReleaseWithdrawalHold(amount decimal.Decimal) {
	a.Held = a.Held.Sub(amount)
}

// ChargeBackWithdrawal reverses a disputed withdrawal: the provisional
// credit becomes available again and the account is frozen.
func (a *Account) ChargeBackWithdrawal(amount decimal.Decimal) {
	a.Held = a.Held.Sub(amount)
	a.Available = a.Available.Add(amount)
	a.Locked = true
}

// AccountSummary is one row of the final report.
type AccountSummary struct {
	ClientID  uint16
	Available decimal.Decimal
	Held      decimal.Decimal
	Total     decimal.Decimal
	Locked    bool
}

func (a *Account) Summary() AccountSummary {
	return AccountSummary{
		ClientID:  a.ClientID,
		Available: a.Available,
		Held:      a.Held,
		Total:     a.Total(),
		Locked:    a.Locked,
	}
}

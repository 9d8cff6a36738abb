// Package ledger implements the balance mutations a client account accepts:
// deposit, withdraw, hold, release, and chargeback. Every function here
// takes the account it mutates by pointer and reports whether the operation
// was applied; callers are responsible for looking the account up and for
// deciding what a rejected operation means for the record that triggered it.
package ledger

import (
	"payments-engine/internal/domain/models"
	"payments-engine/internal/domain/money"
)

// Deposit credits amount to the account's available and total balances.
// It is rejected once the account is locked.
func Deposit(acc *models.Account, amount money.Money) bool {
	if acc.Locked {
		return false
	}

	acc.Available = acc.Available.Add(amount)
	acc.Total = acc.Total.Add(amount)
	return true
}

// Withdraw debits amount from the account's available and total balances.
// It is rejected when the account is locked or available funds are
// insufficient.
func Withdraw(acc *models.Account, amount money.Money) bool {
	if acc.Locked {
		return false
	}
	if acc.Available.LessThan(amount) {
		return false
	}

	acc.Available = acc.Available.Sub(amount)
	acc.Total = acc.Total.Sub(amount)
	return true
}

// Hold moves amount from available to held, placing it behind an open
// dispute. It is rejected once the account is locked.
func Hold(acc *models.Account, amount money.Money) bool {
	if acc.Locked {
		return false
	}

	acc.Available = acc.Available.Sub(amount)
	acc.Held = acc.Held.Add(amount)
	return true
}

// Release moves amount from held back to available, closing a dispute in
// the client's favor. It is rejected once the account is locked.
func Release(acc *models.Account, amount money.Money) bool {
	if acc.Locked {
		return false
	}

	acc.Held = acc.Held.Sub(amount)
	acc.Available = acc.Available.Add(amount)
	return true
}

// Chargeback removes amount from held and total and locks the account,
// closing a dispute against the client. It is rejected once the account is
// already locked.
func Chargeback(acc *models.Account, amount money.Money) bool {
	if acc.Locked {
		return false
	}

	acc.Held = acc.Held.Sub(amount)
	acc.Total = acc.Total.Sub(amount)
	acc.Locked = true
	return true
}

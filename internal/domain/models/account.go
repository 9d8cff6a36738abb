// Package models holds the plain data types the ledger and engine operate
// on. Nothing in this package mutates state on its own; the ledger package
// owns the rules for how these values change.
package models

import "payments-engine/internal/domain/money"

// ClientID identifies an account. The source format encodes it as an
// unsigned 16-bit integer.
type ClientID = uint16

// TxID identifies a transaction. The source format encodes it as an
// unsigned 32-bit integer.
type TxID = uint32

// Account is a single client's balance sheet.
//
// Invariant: Total always equals Available + Held.
// Invariant: once Locked is true, no further mutation is permitted.
type Account struct {
	Client    ClientID
	Available money.Money
	Held      money.Money
	Total     money.Money
	Locked    bool
}

// NewAccount returns a fresh, unlocked account with zero balances.
func NewAccount(client ClientID) *Account {
	return &Account{Client: client}
}

// StoredTx is the record kept for a deposit so that later dispute,
// resolve, and chargeback events can be matched back to it.
//
// Invariant: Amount is immutable once recorded.
// Invariant: UnderDispute is true only between a dispute and its resolve or
// chargeback.
type StoredTx struct {
	TxID         TxID
	Client       ClientID
	Amount       money.Money
	UnderDispute bool
}

// NewStoredTx records a deposit for later dispute lifecycle lookups.
func NewStoredTx(tx TxID, client ClientID, amount money.Money) *StoredTx {
	return &StoredTx{TxID: tx, Client: client, Amount: amount}
}

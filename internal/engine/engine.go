// Package engine implements the dispute-aware transaction processor: it
// consumes a stream of raw records, applies deposit, withdrawal, dispute,
// resolve, and chargeback semantics against a per-client ledger, and
// produces a final account snapshot. Every malformed or out-of-sequence
// record is dropped and logged; only I/O and cancellation faults propagate
// to the caller.
package engine

import (
	"context"
	"errors"
	"io"
	"sort"
	"strings"

	"payments-engine/internal/domain/ledger"
	"payments-engine/internal/domain/models"
	"payments-engine/internal/domain/money"
	"payments-engine/internal/pkg/logging"
	"payments-engine/internal/stats"
)

// Engine owns the full in-memory state of a single run: one account per
// client seen so far and one stored transaction per accepted deposit.
type Engine struct {
	accounts map[models.ClientID]*models.Account
	txs      map[models.TxID]*models.StoredTx
	stats    *stats.Stats
}

// New returns an empty engine ready to ingest records.
func New() *Engine {
	return &Engine{
		accounts: make(map[models.ClientID]*models.Account),
		txs:      make(map[models.TxID]*models.StoredTx),
		stats:    stats.New(),
	}
}

// AccountSnapshot is one row of the final balance report.
type AccountSnapshot struct {
	Client    models.ClientID
	Available money.Money
	Held      money.Money
	Total     money.Money
	Locked    bool
}

// IngestAll reads from src until it is exhausted, dispatching every decoded
// record and logging and skipping every one that fails to decode or fails a
// dispatch rule. It returns a non-nil error only when ctx is canceled
// between rows; record-level faults never escape this method.
func (e *Engine) IngestAll(ctx context.Context, src RecordSource) error {
	row := 1
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		row++
		raw, err := src.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		e.stats.ObserveRow()
		if err != nil {
			logging.Warn("dropping unreadable row", map[string]interface{}{
				"row":   row,
				"error": err.Error(),
			})
			continue
		}

		e.ingest(row, raw)
	}
}

func (e *Engine) ingest(row int, raw RawRecord) {
	switch normalizeKind(raw.RowType) {
	case KindDeposit:
		e.ingestDeposit(row, raw)
	case KindWithdrawal:
		e.ingestWithdrawal(row, raw)
	case KindDispute:
		e.ingestLifecycle(row, raw, KindDispute)
	case KindResolve:
		e.ingestLifecycle(row, raw, KindResolve)
	case KindChargeback:
		e.ingestLifecycle(row, raw, KindChargeback)
	default:
		logging.Warn("dropping record with unrecognized type", map[string]interface{}{
			"row":  row,
			"type": raw.RowType,
		})
		e.stats.Drop(string(kindUnknown))
	}
}

func (e *Engine) ingestDeposit(row int, raw RawRecord) {
	amt, ok := e.requiredAmount(row, KindDeposit, raw.Amount)
	if !ok {
		return
	}

	acc := e.ensureAccount(raw.Client)
	if acc.Locked {
		logging.Debug("dropping deposit for locked account", map[string]interface{}{"row": row, "client": raw.Client})
		e.stats.Drop(string(KindDeposit))
		return
	}
	if _, exists := e.txs[raw.Tx]; exists {
		logging.Warn("dropping deposit with duplicate transaction id", map[string]interface{}{"row": row, "tx": raw.Tx})
		e.stats.Drop(string(KindDeposit))
		return
	}

	ledger.Deposit(acc, amt)
	e.txs[raw.Tx] = models.NewStoredTx(raw.Tx, raw.Client, amt)
	e.stats.Accept(string(KindDeposit))
}

func (e *Engine) ingestWithdrawal(row int, raw RawRecord) {
	amt, ok := e.requiredAmount(row, KindWithdrawal, raw.Amount)
	if !ok {
		return
	}

	acc := e.ensureAccount(raw.Client)
	if acc.Locked {
		logging.Debug("dropping withdrawal for locked account", map[string]interface{}{"row": row, "client": raw.Client})
		e.stats.Drop(string(KindWithdrawal))
		return
	}
	if _, exists := e.txs[raw.Tx]; exists {
		logging.Warn("dropping withdrawal with duplicate transaction id", map[string]interface{}{"row": row, "tx": raw.Tx})
		e.stats.Drop(string(KindWithdrawal))
		return
	}

	if !ledger.Withdraw(acc, amt) {
		logging.Debug("dropping withdrawal with insufficient funds", map[string]interface{}{"row": row, "client": raw.Client})
		e.stats.Drop(string(KindWithdrawal))
		return
	}
	e.stats.Accept(string(KindWithdrawal))
}

func (e *Engine) ingestLifecycle(row int, raw RawRecord, kind Kind) {
	acc, exists := e.accounts[raw.Client]
	if !exists {
		logging.Debug("dropping lifecycle event for unknown account", map[string]interface{}{"row": row, "kind": kind, "client": raw.Client})
		e.stats.Drop(string(kind))
		return
	}
	if acc.Locked {
		logging.Debug("dropping lifecycle event for locked account", map[string]interface{}{"row": row, "kind": kind, "client": raw.Client})
		e.stats.Drop(string(kind))
		return
	}

	stored, exists := e.txs[raw.Tx]
	if !exists {
		logging.Debug("dropping lifecycle event for unknown transaction", map[string]interface{}{"row": row, "kind": kind, "tx": raw.Tx})
		e.stats.Drop(string(kind))
		return
	}
	if stored.Client != raw.Client {
		logging.Warn("dropping lifecycle event for mismatched owner", map[string]interface{}{"row": row, "kind": kind, "tx": raw.Tx, "client": raw.Client})
		e.stats.Drop(string(kind))
		return
	}

	switch kind {
	case KindDispute:
		if stored.UnderDispute {
			logging.Debug("dropping dispute already open", map[string]interface{}{"row": row, "tx": raw.Tx})
			e.stats.Drop(string(kind))
			return
		}
		stored.UnderDispute = true
		ledger.Hold(acc, stored.Amount)
	case KindResolve:
		if !stored.UnderDispute {
			logging.Debug("dropping resolve with no open dispute", map[string]interface{}{"row": row, "tx": raw.Tx})
			e.stats.Drop(string(kind))
			return
		}
		stored.UnderDispute = false
		ledger.Release(acc, stored.Amount)
	case KindChargeback:
		if !stored.UnderDispute {
			logging.Debug("dropping chargeback with no open dispute", map[string]interface{}{"row": row, "tx": raw.Tx})
			e.stats.Drop(string(kind))
			return
		}
		stored.UnderDispute = false
		ledger.Chargeback(acc, stored.Amount)
	}

	e.stats.Accept(string(kind))
}

func (e *Engine) requiredAmount(row int, kind Kind, raw *string) (money.Money, bool) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		logging.Warn("dropping record with missing amount", map[string]interface{}{"row": row, "kind": kind})
		e.stats.Drop(string(kind))
		return money.Money{}, false
	}

	amt, err := money.Parse(*raw)
	if err != nil {
		logging.Warn("dropping record with unparseable amount", map[string]interface{}{"row": row, "kind": kind, "error": err.Error()})
		e.stats.Drop(string(kind))
		return money.Money{}, false
	}
	return amt, true
}

func (e *Engine) ensureAccount(client models.ClientID) *models.Account {
	acc, ok := e.accounts[client]
	if !ok {
		acc = models.NewAccount(client)
		e.accounts[client] = acc
	}
	return acc
}

// account returns the account for client, if any. It exists for white-box
// assertions in this package's own tests; external packages only ever see
// Snapshot.
func (e *Engine) account(client models.ClientID) (*models.Account, bool) {
	acc, ok := e.accounts[client]
	return acc, ok
}

// Snapshot returns every account seen so far, ordered by client id.
func (e *Engine) Snapshot() []AccountSnapshot {
	out := make([]AccountSnapshot, 0, len(e.accounts))
	for _, acc := range e.accounts {
		out = append(out, AccountSnapshot{
			Client:    acc.Client,
			Available: acc.Available,
			Held:      acc.Held,
			Total:     acc.Total,
			Locked:    acc.Locked,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Client < out[j].Client })
	return out
}

// Stats returns a point-in-time summary of how many records were accepted
// or dropped, by kind, over the run so far.
func (e *Engine) Stats() stats.Snapshot {
	return e.stats.Snapshot()
}

package engine

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"payments-engine/internal/domain/money"
)

// fakeSource replays a fixed list of RawRecords, then io.EOF.
type fakeSource struct {
	rows []RawRecord
	pos  int
}

func (s *fakeSource) Next() (RawRecord, error) {
	if s.pos >= len(s.rows) {
		return RawRecord{}, io.EOF
	}
	r := s.rows[s.pos]
	s.pos++
	return r, nil
}

func amt(s string) *string { return &s }

func deposit(client uint16, tx uint32, amount string) RawRecord {
	return RawRecord{RowType: "deposit", Client: client, Tx: tx, Amount: amt(amount)}
}

func withdrawal(client uint16, tx uint32, amount string) RawRecord {
	return RawRecord{RowType: "withdrawal", Client: client, Tx: tx, Amount: amt(amount)}
}

func dispute(client uint16, tx uint32) RawRecord {
	return RawRecord{RowType: "dispute", Client: client, Tx: tx}
}

func resolve(client uint16, tx uint32) RawRecord {
	return RawRecord{RowType: "resolve", Client: client, Tx: tx}
}

func chargeback(client uint16, tx uint32) RawRecord {
	return RawRecord{RowType: "chargeback", Client: client, Tx: tx}
}

func run(t *testing.T, rows []RawRecord) *Engine {
	t.Helper()
	e := New()
	require.NoError(t, e.IngestAll(context.Background(), &fakeSource{rows: rows}))
	return e
}

func TestBasicDepositsAndWithdrawal(t *testing.T) {
	e := run(t, []RawRecord{
		deposit(1, 1, "10"),
		deposit(2, 2, "20"),
		withdrawal(1, 3, "5"),
	})

	acc1, ok := e.account(1)
	require.True(t, ok)
	assert.Equal(t, "5.0000", acc1.Available.String())
	assert.Equal(t, "5.0000", acc1.Total.String())

	acc2, ok := e.account(2)
	require.True(t, ok)
	assert.Equal(t, "20.0000", acc2.Available.String())
}

func TestWithdrawalInsufficientFundsIsDropped(t *testing.T) {
	e := run(t, []RawRecord{
		deposit(1, 1, "10"),
		withdrawal(1, 2, "50"),
	})

	acc, ok := e.account(1)
	require.True(t, ok)
	assert.Equal(t, "10.0000", acc.Available.String())
	assert.False(t, acc.Locked)
}

func TestDisputeHoldsFunds(t *testing.T) {
	e := run(t, []RawRecord{
		deposit(1, 1, "10"),
		dispute(1, 1),
	})

	acc, ok := e.account(1)
	require.True(t, ok)
	assert.Equal(t, "0.0000", acc.Available.String())
	assert.Equal(t, "10.0000", acc.Held.String())
	assert.Equal(t, "10.0000", acc.Total.String())
}

func TestResolveReleasesHeldFunds(t *testing.T) {
	e := run(t, []RawRecord{
		deposit(1, 1, "10"),
		dispute(1, 1),
		resolve(1, 1),
	})

	acc, ok := e.account(1)
	require.True(t, ok)
	assert.Equal(t, "10.0000", acc.Available.String())
	assert.Equal(t, "0.0000", acc.Held.String())
	assert.False(t, acc.Locked)
}

func TestChargebackLocksAccountAndRemovesFunds(t *testing.T) {
	e := run(t, []RawRecord{
		deposit(1, 1, "10"),
		dispute(1, 1),
		chargeback(1, 1),
	})

	acc, ok := e.account(1)
	require.True(t, ok)
	assert.Equal(t, "0.0000", acc.Available.String())
	assert.Equal(t, "0.0000", acc.Held.String())
	assert.Equal(t, "0.0000", acc.Total.String())
	assert.True(t, acc.Locked)
}

func TestPostLockActivityIsDropped(t *testing.T) {
	e := run(t, []RawRecord{
		deposit(1, 1, "10"),
		dispute(1, 1),
		chargeback(1, 1),
		deposit(1, 2, "99"),
		withdrawal(1, 3, "1"),
	})

	acc, ok := e.account(1)
	require.True(t, ok)
	assert.Equal(t, "0.0000", acc.Total.String())
	assert.True(t, acc.Locked)
}

func TestDuplicateTxIDIsDropped(t *testing.T) {
	e := run(t, []RawRecord{
		deposit(1, 1, "10"),
		deposit(1, 1, "999"),
	})

	acc, ok := e.account(1)
	require.True(t, ok)
	assert.Equal(t, "10.0000", acc.Available.String())
}

func TestDisputeOnUnknownTxIsDropped(t *testing.T) {
	e := run(t, []RawRecord{
		deposit(1, 1, "10"),
		dispute(1, 999),
	})

	acc, ok := e.account(1)
	require.True(t, ok)
	assert.Equal(t, "10.0000", acc.Available.String())
	assert.Equal(t, "0.0000", acc.Held.String())
}

func TestDisputeByWrongClientIsDropped(t *testing.T) {
	e := run(t, []RawRecord{
		deposit(1, 1, "10"),
		dispute(2, 1),
	})

	acc, ok := e.account(1)
	require.True(t, ok)
	assert.Equal(t, "10.0000", acc.Available.String())
	assert.Equal(t, "0.0000", acc.Held.String())
}

func TestChargebackWithoutOpenDisputeIsNoOp(t *testing.T) {
	e := run(t, []RawRecord{
		deposit(1, 1, "10"),
		chargeback(1, 1),
	})

	acc, ok := e.account(1)
	require.True(t, ok)
	assert.False(t, acc.Locked)
	assert.Equal(t, "10.0000", acc.Available.String())
}

func TestMissingAmountDropsWithoutCreatingAccount(t *testing.T) {
	e := run(t, []RawRecord{
		{RowType: "deposit", Client: 5, Tx: 1, Amount: nil},
	})

	_, ok := e.account(5)
	assert.False(t, ok)
}

func TestUnparseableAmountDropsWithoutCreatingAccount(t *testing.T) {
	e := run(t, []RawRecord{
		deposit(5, 1, "not-a-number"),
	})

	_, ok := e.account(5)
	assert.False(t, ok)
}

func TestUnknownKindIsDropped(t *testing.T) {
	e := run(t, []RawRecord{
		{RowType: "teleport", Client: 1, Tx: 1, Amount: amt("10")},
	})

	_, ok := e.account(1)
	assert.False(t, ok)
}

func TestSnapshotIsSortedByClient(t *testing.T) {
	e := run(t, []RawRecord{
		deposit(3, 1, "1"),
		deposit(1, 2, "1"),
		deposit(2, 3, "1"),
	})

	snap := e.Snapshot()
	require.Len(t, snap, 3)
	assert.Equal(t, uint16(1), snap[0].Client)
	assert.Equal(t, uint16(2), snap[1].Client)
	assert.Equal(t, uint16(3), snap[2].Client)
}

func TestStatsTracksAcceptedAndDropped(t *testing.T) {
	e := run(t, []RawRecord{
		deposit(1, 1, "10"),
		deposit(1, 1, "10"), // duplicate, dropped
		withdrawal(1, 2, "1000"), // insufficient funds, dropped
	})

	snap := e.Stats()
	assert.Equal(t, 3, snap.TotalRows)
	assert.Equal(t, 1, snap.Accepted["deposit"])
	assert.Equal(t, 1, snap.Dropped["deposit"])
	assert.Equal(t, 1, snap.Dropped["withdrawal"])
}

func TestIngestAllStopsOnContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := New()
	err := e.IngestAll(ctx, &fakeSource{rows: []RawRecord{deposit(1, 1, "10")}})
	assert.Error(t, err)

	_, ok := e.account(1)
	assert.False(t, ok)
}

func TestMoneyZeroIsCanonical(t *testing.T) {
	assert.True(t, money.Zero.Equal(money.MustParse("0")))
}

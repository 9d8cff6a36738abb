package stats_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"payments-engine/internal/stats"
)

func TestSnapshotAggregatesByKindAndOutcome(t *testing.T) {
	s := stats.New()
	s.ObserveRow()
	s.ObserveRow()
	s.Accept("deposit")
	s.Accept("deposit")
	s.Drop("deposit")
	s.Accept("withdrawal")

	snap := s.Snapshot()
	assert.Equal(t, 2, snap.TotalRows)
	assert.Equal(t, 2, snap.Accepted["deposit"])
	assert.Equal(t, 1, snap.Dropped["deposit"])
	assert.Equal(t, 1, snap.Accepted["withdrawal"])
	assert.Equal(t, 0, snap.Dropped["withdrawal"])
}

func TestFieldsIsDeterministic(t *testing.T) {
	s := stats.New()
	s.Accept("withdrawal")
	s.Drop("dispute")

	fields := s.Snapshot().Fields()
	assert.Equal(t, 0, fields["rows"])
	assert.Equal(t, 1, fields["withdrawal_accepted"])
	assert.Equal(t, 1, fields["dispute_dropped"])
}

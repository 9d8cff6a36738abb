package ingest

import (
	"encoding/csv"
	"io"
	"strconv"

	"payments-engine/internal/engine"
)

// WriteSnapshot writes rows as CSV with a header, one line per account.
// Callers are expected to pass an already-ordered slice, such as the one
// Engine.Snapshot returns.
func WriteSnapshot(w io.Writer, rows []engine.AccountSnapshot) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"client", "available", "held", "total", "locked"}); err != nil {
		return err
	}

	for _, row := range rows {
		record := []string{
			strconv.FormatUint(uint64(row.Client), 10),
			row.Available.String(),
			row.Held.String(),
			row.Total.String(),
			strconv.FormatBool(row.Locked),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

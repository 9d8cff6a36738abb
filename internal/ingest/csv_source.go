// Package ingest adapts CSV text to and from the engine's record types. It
// reads rows lazily so ingesting a large file never requires holding the
// whole input in memory, and writes the final snapshot back out the same
// way the reference format expects it.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"payments-engine/internal/engine"
)

// CSVSource decodes one transaction row at a time from an io.Reader,
// skipping the header row on construction.
type CSVSource struct {
	r         *csv.Reader
	headerErr error
}

// NewCSVSource wraps r as a record source. Extra or missing trailing fields
// are tolerated since only a trailing, optional amount ever varies.
func NewCSVSource(r io.Reader) *CSVSource {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	s := &CSVSource{r: cr}
	_, s.headerErr = cr.Read()
	return s
}

// Next returns the next decoded record, or io.EOF once the input is
// exhausted.
func (s *CSVSource) Next() (engine.RawRecord, error) {
	if s.headerErr != nil {
		err := s.headerErr
		s.headerErr = nil
		if err == io.EOF {
			return engine.RawRecord{}, io.EOF
		}
		return engine.RawRecord{}, fmt.Errorf("reading header: %w", err)
	}

	fields, err := s.r.Read()
	if err != nil {
		return engine.RawRecord{}, err
	}
	return decodeRow(fields)
}

func decodeRow(fields []string) (engine.RawRecord, error) {
	field := func(i int) string {
		if i >= len(fields) {
			return ""
		}
		return strings.TrimSpace(fields[i])
	}

	clientStr := field(1)
	client, err := strconv.ParseUint(clientStr, 10, 16)
	if err != nil {
		return engine.RawRecord{}, fmt.Errorf("invalid client id %q: %w", clientStr, err)
	}

	txStr := field(2)
	tx, err := strconv.ParseUint(txStr, 10, 32)
	if err != nil {
		return engine.RawRecord{}, fmt.Errorf("invalid transaction id %q: %w", txStr, err)
	}

	var amount *string
	if a := field(3); a != "" {
		amount = &a
	}

	return engine.RawRecord{
		RowType: field(0),
		Client:  uint16(client),
		Tx:      uint32(tx),
		Amount:  amount,
	}, nil
}

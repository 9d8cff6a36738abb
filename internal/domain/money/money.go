// Package money implements the fixed-point currency type every balance and
// transaction amount in this module is expressed in.
package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Scale is the number of fractional digits every Money value is normalized
// to, matching the four decimal places the source ledger format uses.
const Scale = 4

// Money is an exact, fixed-point decimal amount. The zero value is 0.0000
// and is safe to use without initialization.
type Money struct {
	v decimal.Decimal
}

// Zero is the canonical zero amount.
var Zero = Money{}

// Parse reads a Money value from its textual form, trimming surrounding
// whitespace and truncating any precision beyond Scale rather than rounding,
// mirroring how the reference engine rescales parsed decimals.
func Parse(s string) (Money, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Money{}, &ParseError{Input: s}
	}
	d, err := decimal.NewFromString(trimmed)
	if err != nil {
		return Money{}, &ParseError{Input: s, Cause: err}
	}
	return Money{v: d.Truncate(Scale)}, nil
}

// MustParse parses s and panics on failure. Intended for tests and constants,
// never for data coming from an external record source.
func MustParse(s string) Money {
	m, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return m
}

// Add returns m + other.
func (m Money) Add(other Money) Money {
	return Money{v: m.v.Add(other.v).Truncate(Scale)}
}

// Sub returns m - other.
func (m Money) Sub(other Money) Money {
	return Money{v: m.v.Sub(other.v).Truncate(Scale)}
}

// Equal reports whether m and other represent the same amount, independent
// of how each value's sign was written (e.g. "0" and "-0" are both Zero).
func (m Money) Equal(other Money) bool {
	return m.v.Equal(other.v)
}

// LessThan reports whether m < other.
func (m Money) LessThan(other Money) bool {
	return m.v.LessThan(other.v)
}

// GreaterThan reports whether m > other.
func (m Money) GreaterThan(other Money) bool {
	return m.v.GreaterThan(other.v)
}

// IsNegative reports whether m < 0.
func (m Money) IsNegative() bool {
	return m.v.IsNegative()
}

// String formats m with exactly Scale fractional digits.
func (m Money) String() string {
	return m.v.StringFixed(Scale)
}

// ParseError is returned when a textual amount cannot be parsed as Money.
type ParseError struct {
	Input string
	Cause error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("money: cannot parse %q: %v", e.Input, e.Cause)
	}
	return fmt.Sprintf("money: cannot parse %q: empty value", e.Input)
}

func (e *ParseError) Unwrap() error { return e.Cause }

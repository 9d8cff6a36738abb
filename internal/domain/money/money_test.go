package money_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"payments-engine/internal/domain/money"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "whole number", input: "10", want: "10.0000"},
		{name: "four decimals", input: "1.2345", want: "1.2345"},
		{name: "padded with whitespace", input: "  2.5  ", want: "2.5000"},
		{name: "negative", input: "-3.1", want: "-3.1000"},
		{name: "zero", input: "0", want: "0.0000"},
		{name: "negative zero normalizes", input: "-0.0000", want: "0.0000"},
		{name: "truncates excess precision", input: "1.23456789", want: "1.2345"},
		{name: "empty string", input: "", wantErr: true},
		{name: "whitespace only", input: "   ", wantErr: true},
		{name: "not a number", input: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := money.Parse(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				var parseErr *money.ParseError
				require.ErrorAs(t, err, &parseErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestArithmetic(t *testing.T) {
	a := money.MustParse("10.5")
	b := money.MustParse("3.25")

	assert.Equal(t, "13.7500", a.Add(b).String())
	assert.Equal(t, "7.2500", a.Sub(b).String())
	assert.True(t, b.LessThan(a))
	assert.True(t, a.GreaterThan(b))
	assert.False(t, a.LessThan(b))
}

func TestEqual(t *testing.T) {
	assert.True(t, money.Zero.Equal(money.MustParse("-0.0000")))
	assert.True(t, money.MustParse("5").Equal(money.MustParse("5.0000")))
	assert.False(t, money.MustParse("5").Equal(money.MustParse("5.0001")))
}

func TestIsNegative(t *testing.T) {
	assert.True(t, money.MustParse("-0.0001").IsNegative())
	assert.False(t, money.Zero.IsNegative())
	assert.False(t, money.MustParse("0.0001").IsNegative())
}

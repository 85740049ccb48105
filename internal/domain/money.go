package domain

import (
	"github.com/shopspring/decimal"
)

// Money is a currency figure. It keeps full precision in memory and is
// rounded to two places only when written as JSON.
type Money struct {
	decimal.Decimal
}

// NewMoney wraps d.
func NewMoney(d decimal.Decimal) Money {
	return Money{Decimal: d}
}

// MarshalJSON writes the value as a bare JSON number with two decimals.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.StringFixed(2)), nil
}

// UnmarshalJSON accepts quoted and bare numbers.
func (m *Money) UnmarshalJSON(b []byte) error {
	return m.Decimal.UnmarshalJSON(b)
}

// Number is an unrounded figure such as a quantity or percentage.
type Number struct {
	decimal.Decimal
}

// NewNumber wraps d.
func NewNumber(d decimal.Decimal) Number {
	return Number{Decimal: d}
}

// MarshalJSON writes the value as a bare JSON number.
func (n Number) MarshalJSON() ([]byte, error) {
	return []byte(n.String()), nil
}

// UnmarshalJSON accepts quoted and bare numbers.
func (n *Number) UnmarshalJSON(b []byte) error {
	return n.Decimal.UnmarshalJSON(b)
}

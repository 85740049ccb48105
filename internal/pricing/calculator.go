// Package pricing derives line amounts and document totals from raw operator input.
package pricing

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"quotegen/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// maxNumericLen bounds the text accepted as a number. Longer input is treated
// as unparseable.
const maxNumericLen = 24

// plainNumber matches decimal notation without exponents.
var plainNumber = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)$`)

// numericPrefix matches the leading number of text such as "-5abc".
var numericPrefix = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)`)

// Formula selects how a line amount is derived.
type Formula string

const (
	// FormulaSimple prices a line as quantity × unit price.
	FormulaSimple Formula = "simple"
	// FormulaDiscountedTaxed applies the line discount and then the line tax.
	FormulaDiscountedTaxed Formula = "discounted_taxed"
)

// FormulaFor returns the formula implied by a capability set.
func FormulaFor(caps domain.Capabilities) Formula {
	if caps.HasDiscountTax {
		return FormulaDiscountedTaxed
	}
	return FormulaSimple
}

// CoerceNumericOrZero parses raw operator text as a decimal. Blank or
// unparseable text yields zero; the raw text itself is left to the caller.
// Only plain decimal notation of at most maxNumericLen characters parses, so
// "1e5" coerces to zero.
func CoerceNumericOrZero(raw string) decimal.Decimal {
	s := strings.TrimSpace(raw)
	if s == "" || len(s) > maxNumericLen || !plainNumber.MatchString(s) {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// IsNegative reports whether the leading number of raw is below zero, so
// "-5abc" counts as negative even though it coerces to zero. Text without a
// leading number is not negative.
func IsNegative(raw string) bool {
	prefix := numericPrefix.FindString(strings.TrimSpace(raw))
	if prefix == "" {
		return false
	}
	d, err := decimal.NewFromString(prefix)
	if err != nil {
		return false
	}
	return d.IsNegative()
}

// Calculator computes line amounts. It never fails.
type Calculator struct {
	formula Formula
}

// NewCalculator returns a Calculator for the given formula.
func NewCalculator(formula Formula) *Calculator {
	return &Calculator{formula: formula}
}

// Formula returns the configured formula.
func (c *Calculator) Formula() Formula {
	return c.formula
}

// Compute returns quantity × unitPrice × (1 − discount/100) × (1 + tax/100).
// Under FormulaSimple discount and tax are treated as zero.
func (c *Calculator) Compute(line *domain.MaterialLine) decimal.Decimal {
	qty := CoerceNumericOrZero(line.Quantity)
	price := CoerceNumericOrZero(line.UnitPrice)
	discount, tax := decimal.Zero, decimal.Zero
	if c.formula == FormulaDiscountedTaxed {
		discount = CoerceNumericOrZero(line.Discount)
		tax = CoerceNumericOrZero(line.Tax)
	}

	amount := qty.Mul(price)
	amount = amount.Mul(decimal.NewFromInt(1).Sub(discount.Div(hundred)))
	amount = amount.Mul(decimal.NewFromInt(1).Add(tax.Div(hundred)))
	return amount
}

// Recompute returns a copy of line with Amount refreshed.
func (c *Calculator) Recompute(line domain.MaterialLine) domain.MaterialLine {
	line.Amount = domain.NewMoney(c.Compute(&line))
	return line
}

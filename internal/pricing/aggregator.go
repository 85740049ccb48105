package pricing

import (
	"github.com/shopspring/decimal"
)

// DefaultComponentRate is the rate applied to each of the two tax components.
var DefaultComponentRate = decimal.NewFromInt(9)

// Totals is the aggregate of a document's lines.
type Totals struct {
	Surcharge decimal.Decimal
	Untaxed   decimal.Decimal
	SGST      decimal.Decimal
	CGST      decimal.Decimal
	Total     decimal.Decimal
}

// Aggregator sums line amounts and applies the SGST/CGST split.
type Aggregator struct {
	componentRate decimal.Decimal
}

// NewAggregator returns an Aggregator charging componentRate percent for
// each tax component. A negative rate falls back to DefaultComponentRate.
func NewAggregator(componentRate decimal.Decimal) *Aggregator {
	if componentRate.IsNegative() {
		componentRate = DefaultComponentRate
	}
	return &Aggregator{componentRate: componentRate}
}

// ComponentRate returns the percentage applied per tax component.
func (a *Aggregator) ComponentRate() decimal.Decimal {
	return a.componentRate
}

// Aggregate computes untaxed = Σ amounts + surcharge, one tax figure per
// component on the untaxed amount, and their total. No rounding is applied.
func (a *Aggregator) Aggregate(amounts []decimal.Decimal, surchargeRaw string) Totals {
	surcharge := CoerceNumericOrZero(surchargeRaw)

	untaxed := decimal.Sum(surcharge, amounts...)
	sgst := a.component(untaxed)
	cgst := a.component(untaxed)

	return Totals{
		Surcharge: surcharge,
		Untaxed:   untaxed,
		SGST:      sgst,
		CGST:      cgst,
		Total:     untaxed.Add(sgst).Add(cgst),
	}
}

func (a *Aggregator) component(untaxed decimal.Decimal) decimal.Decimal {
	return untaxed.Mul(a.componentRate).Div(hundred)
}

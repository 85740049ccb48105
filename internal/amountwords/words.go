// Package amountwords spells out whole rupee amounts on the Indian numbering scale.
package amountwords

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// CurrencySuffix is appended to every spelled-out total.
const CurrencySuffix = " Rupees only"

var ones = [...]string{
	"Zero", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen",
	"Seventeen", "Eighteen", "Nineteen",
}

var tens = [...]string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}

// scales are tried largest first. Values at or above a crore recurse on the
// crore count, so arbitrarily large inputs spell as "... Crore ...".
var scales = []struct {
	value int64
	word  string
}{
	{10_000_000, "Crore"},
	{100_000, "Lakh"},
	{1_000, "Thousand"},
}

// ToWords spells n, e.g. 1500000 → "Fifteen Lakh". Zero is "Zero".
// Negative input returns "".
func ToWords(n int64) string {
	if n < 0 {
		return ""
	}
	if n == 0 {
		return ones[0]
	}
	return spell(n)
}

func spell(n int64) string {
	switch {
	case n < 20:
		return ones[n]
	case n < 100:
		if n%10 == 0 {
			return tens[n/10]
		}
		return tens[n/10] + " " + ones[n%10]
	case n < 1_000:
		s := ones[n/100] + " Hundred"
		if rem := n % 100; rem != 0 {
			s += " and " + spell(rem)
		}
		return s
	}
	for _, sc := range scales {
		if n >= sc.value {
			s := spell(n/sc.value) + " " + sc.word
			if rem := n % sc.value; rem != 0 {
				s += " " + spell(rem)
			}
			return s
		}
	}
	return ""
}

var bigCrore = big.NewInt(10_000_000)

// spellBig handles values beyond int64 by recursing on the crore count.
func spellBig(n *big.Int) string {
	if n.IsInt64() {
		return spell(n.Int64())
	}
	q, r := new(big.Int).QuoRem(n, bigCrore, new(big.Int))
	s := spellBig(q) + " Crore"
	if r.Sign() != 0 {
		s += " " + spell(r.Int64())
	}
	return s
}

// Rupees rounds total half-up to whole rupees and spells it with
// CurrencySuffix. Negative totals return "".
func Rupees(total decimal.Decimal) string {
	if total.IsNegative() {
		return ""
	}
	n := total.Round(0).BigInt()
	if n.IsInt64() {
		return ToWords(n.Int64()) + CurrencySuffix
	}
	return spellBig(n) + CurrencySuffix
}

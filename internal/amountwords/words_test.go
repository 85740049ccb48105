package amountwords_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"quotegen/internal/amountwords"
)

func TestToWords(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "Zero"},
		{1, "One"},
		{19, "Nineteen"},
		{20, "Twenty"},
		{21, "Twenty One"},
		{99, "Ninety Nine"},
		{100, "One Hundred"},
		{101, "One Hundred and One"},
		{110, "One Hundred and Ten"},
		{999, "Nine Hundred and Ninety Nine"},
		{1000, "One Thousand"},
		{1180, "One Thousand One Hundred and Eighty"},
		{20005, "Twenty Thousand Five"},
		{99999, "Ninety Nine Thousand Nine Hundred and Ninety Nine"},
		{100000, "One Lakh"},
		{1500000, "Fifteen Lakh"},
		{10000000, "One Crore"},
		{12345678, "One Crore Twenty Three Lakh Forty Five Thousand Six Hundred and Seventy Eight"},
		{1000000000, "One Hundred Crore"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, amountwords.ToWords(tt.n))
		})
	}
}

func TestToWords_Negative(t *testing.T) {
	assert.Equal(t, "", amountwords.ToWords(-5))
}

func TestRupees(t *testing.T) {
	tests := []struct {
		total string
		want  string
	}{
		{"1180", "One Thousand One Hundred and Eighty Rupees only"},
		{"1180.49", "One Thousand One Hundred and Eighty Rupees only"},
		{"1180.5", "One Thousand One Hundred and Eighty One Rupees only"},
		{"0", "Zero Rupees only"},
		{"0.4", "Zero Rupees only"},
	}
	for _, tt := range tests {
		t.Run(tt.total, func(t *testing.T) {
			assert.Equal(t, tt.want, amountwords.Rupees(decimal.RequireFromString(tt.total)))
		})
	}
}

func TestRupees_Negative(t *testing.T) {
	assert.Equal(t, "", amountwords.Rupees(decimal.NewFromInt(-1)))
}

func TestRupees_BeyondInt64(t *testing.T) {
	// 10^19 = 10^12 crore
	total := decimal.RequireFromString("10000000000000000000")
	assert.Equal(t, "One Lakh Crore Crore Rupees only", amountwords.Rupees(total))

	// 2 * 10^19 + 5 spells the crore count first, then the remainder.
	total = decimal.RequireFromString("20000000000000000005.4")
	assert.Equal(t, "Two Lakh Crore Crore Five Rupees only", amountwords.Rupees(total))
}

func TestRupees_LargeValuesNeverWrap(t *testing.T) {
	for _, raw := range []string{"9300000000000000000", "9223372036854775808", "10000000000000000000000000000"} {
		got := amountwords.Rupees(decimal.RequireFromString(raw))
		assert.NotEqual(t, amountwords.CurrencySuffix, got, raw)
		assert.Contains(t, got, "Crore", raw)
	}
}

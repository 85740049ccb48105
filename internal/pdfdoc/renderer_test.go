package pdfdoc

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quotegen/internal/domain"
)

func samplePayload(withRates bool) *domain.InvoicePayload {
	item := domain.PayloadItem{
		Name:      "Cement",
		HSN:       "2523",
		Qty:       domain.NewNumber(decimal.NewFromInt(10)),
		UnitPrice: domain.NewNumber(decimal.NewFromInt(100)),
		Amount:    domain.NewMoney(decimal.NewFromInt(1000)),
	}
	if withRates {
		zero := domain.NewNumber(decimal.Zero)
		item.Discount = &zero
		item.Tax = &zero
	}
	return &domain.InvoicePayload{
		Date:             "202501151030",
		QuotationNo:      "INV150120251030",
		RecipientName:    "Acme",
		RecipientAddress: "Pune",
		Items:            []domain.PayloadItem{item},
		UntaxedAmount:    domain.NewMoney(decimal.NewFromInt(1000)),
		SGST:             domain.NewMoney(decimal.NewFromInt(90)),
		CGST:             domain.NewMoney(decimal.NewFromInt(90)),
		Total:            domain.NewMoney(decimal.NewFromInt(1180)),
		TotalInWords:     "One Thousand One Hundred and Eighty Rupees only",
		Terms:            []string{"Delivery within 7 days"},
		PaymentTerm:      "Immediate payment",
	}
}

func TestRender_WritesPDF(t *testing.T) {
	for _, withRates := range []bool{true, false} {
		var buf bytes.Buffer
		err := NewRenderer("INVOICE").Render(&buf, samplePayload(withRates))

		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	}
}

func TestRender_WithInstallationCharge(t *testing.T) {
	p := samplePayload(false)
	charge := domain.NewMoney(decimal.NewFromInt(500))
	p.InstallationCharge = &charge
	p.Terms = nil
	p.PaymentTerm = ""

	var buf bytes.Buffer
	require.NoError(t, NewRenderer("QUOTATION").Render(&buf, p))
	assert.NotZero(t, buf.Len())
}

func TestNewRenderer_DefaultTitle(t *testing.T) {
	assert.Equal(t, "INVOICE", NewRenderer("  ").Title())
	assert.Equal(t, "QUOTATION", NewRenderer("QUOTATION").Title())
}

func TestDisplayDate(t *testing.T) {
	assert.Equal(t, "15/01/2025", displayDate("202501151030"))
	assert.Equal(t, "next Monday", displayDate("next Monday"))
}

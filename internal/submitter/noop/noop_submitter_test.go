package noop_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quotegen/internal/domain"
	"quotegen/internal/submitter/noop"
)

func TestNoopSubmitter_Submit(t *testing.T) {
	s := noop.NewNoopSubmitter()

	result, err := s.Submit(context.Background(), &domain.InvoicePayload{
		QuotationNo:   "QT150120251030",
		RecipientName: "Acme",
		Total:         domain.NewMoney(decimal.NewFromInt(1770)),
	})

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, result.StatusCode)
	assert.JSONEq(t, `{"status":"logged","quotationNo":"QT150120251030"}`, string(result.Body))
}

package httpapi_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quotegen/internal/config"
	"quotegen/internal/domain"
	"quotegen/internal/submitter/httpapi"
)

func newTestSubmitter(serverURL string) *httpapi.Submitter {
	cfg := &config.SubmitterConfig{
		Provider:    "http",
		TimeoutSecs: 5,
	}
	return httpapi.NewSubmitterWithEndpoint(cfg, serverURL)
}

func samplePayload() *domain.InvoicePayload {
	return &domain.InvoicePayload{
		Date:             "202501151030",
		QuotationNo:      "INV150120251030",
		RecipientName:    "Acme",
		RecipientAddress: "Pune",
		RecipientGSTIN:   "27AAACA1234A1Z5",
		Items: []domain.PayloadItem{
			{
				Name:      "Cement",
				HSN:       "2523",
				Qty:       domain.NewNumber(decimal.NewFromInt(10)),
				UnitPrice: domain.NewNumber(decimal.NewFromInt(100)),
				Amount:    domain.NewMoney(decimal.NewFromInt(1000)),
			},
		},
		UntaxedAmount: domain.NewMoney(decimal.NewFromInt(1000)),
		SGST:          domain.NewMoney(decimal.NewFromInt(90)),
		CGST:          domain.NewMoney(decimal.NewFromInt(90)),
		Total:         domain.NewMoney(decimal.NewFromInt(1180)),
		TotalInWords:  "One Thousand One Hundred and Eighty Rupees only",
		Terms:         []string{},
	}
}

func TestHTTPSubmitter_Submit_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var reqBody map[string]interface{}
		err := json.NewDecoder(r.Body).Decode(&reqBody)
		assert.NoError(t, err)
		assert.Equal(t, "INV150120251030", reqBody["quotationNo"])
		assert.Equal(t, "Acme", reqBody["recipientName"])
		assert.Equal(t, float64(1180), reqBody["total"])

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"url":"https://files.example.com/INV150120251030.pdf"}`))
	}))
	defer server.Close()

	result, err := newTestSubmitter(server.URL).Submit(context.Background(), samplePayload())

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, result.StatusCode)
	assert.JSONEq(t, `{"url":"https://files.example.com/INV150120251030.pdf"}`, string(result.Body))
}

func TestHTTPSubmitter_Submit_CreatedCountsAsSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	result, err := newTestSubmitter(server.URL).Submit(context.Background(), samplePayload())

	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, result.StatusCode)
}

func TestHTTPSubmitter_Submit_NonJSONBodyWrapped(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("generated"))
	}))
	defer server.Close()

	result, err := newTestSubmitter(server.URL).Submit(context.Background(), samplePayload())

	require.NoError(t, err)
	assert.Equal(t, `"generated"`, string(result.Body))
}

func TestHTTPSubmitter_Submit_EmptyBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	result, err := newTestSubmitter(server.URL).Submit(context.Background(), samplePayload())

	require.NoError(t, err)
	assert.Nil(t, result.Body)
}

func TestHTTPSubmitter_Submit_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"template missing"}`))
	}))
	defer server.Close()

	result, err := newTestSubmitter(server.URL).Submit(context.Background(), samplePayload())

	assert.Nil(t, result)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestHTTPSubmitter_Submit_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	url := server.URL
	server.Close()

	result, err := newTestSubmitter(url).Submit(context.Background(), samplePayload())

	assert.Nil(t, result)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "calling document service")
}

func TestHTTPSubmitter_Submit_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(1500 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	s := httpapi.NewSubmitterWithEndpoint(&config.SubmitterConfig{TimeoutSecs: 1}, server.URL)
	result, err := s.Submit(context.Background(), samplePayload())

	assert.Nil(t, result)
	assert.Error(t, err)
}

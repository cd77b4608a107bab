package pg_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/govalues/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"checkout/internal/adapter/client/pg"
	"checkout/internal/adapter/config"
	"checkout/internal/core/domain"
	"checkout/internal/core/port"
)

func testConfig(srv *httptest.Server) *config.Gateway {
	return &config.Gateway{
		HostString:         strings.TrimPrefix(srv.URL, "http://"),
		CallbackURL:        "http://localhost:8080/api/payments/callback",
		RequestTimeout:     time.Second,
		MaxRetries:         2,
		RetryBackoff:       time.Millisecond,
		BreakerMinRequests: 100,
		BreakerFailureRate: 0.5,
		BreakerOpenFor:     time.Second,
	}
}

func TestClient_RequestPayment(t *testing.T) {
	logger := zap.NewNop()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/payments", r.URL.Path)
		assert.Equal(t, "alice", r.Header.Get("X-USER-ID"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"transactionKey":"tx-1","status":"PENDING","amount":"7000"}`))
	}))
	defer srv.Close()

	client, err := pg.NewClient(testConfig(srv), logger)
	assert.NoError(t, err)

	result, err := client.RequestPayment(context.Background(), "alice", port.GatewayRequest{
		OrderID:  9,
		CardType: "CREDIT",
		CardNo:   "1234-5678",
		Amount:   decimal.MustParse("7000"),
	})
	assert.NoError(t, err)
	assert.Equal(t, "tx-1", result.TransactionKey)
	assert.Equal(t, port.GatewayStatusPending, result.Status)
	assert.Equal(t, 0, result.Amount.Cmp(decimal.MustParse("7000")))
}

func TestClient_RetriesTransportFailures(t *testing.T) {
	logger := zap.NewNop()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`{"transactionKey":"tx-1","status":"SUCCESS","amount":"7000"}`))
	}))
	defer srv.Close()

	client, err := pg.NewClient(testConfig(srv), logger)
	assert.NoError(t, err)

	result, err := client.GetPayment(context.Background(), "alice", "tx-1")
	assert.NoError(t, err)
	assert.Equal(t, port.GatewayStatusSuccess, result.Status)
	assert.Equal(t, int32(2), calls.Load())
}

func TestClient_RetriesExhausted(t *testing.T) {
	logger := zap.NewNop()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client, err := pg.NewClient(testConfig(srv), logger)
	assert.NoError(t, err)

	_, err = client.GetPayment(context.Background(), "alice", "tx-1")
	assert.Error(t, err)
	// one initial attempt plus two retries
	assert.Equal(t, int32(3), calls.Load())
}

func TestClient_BreakerOpensAndFailsFast(t *testing.T) {
	logger := zap.NewNop()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	cfg := testConfig(srv)
	cfg.MaxRetries = 0
	cfg.BreakerMinRequests = 2

	client, err := pg.NewClient(cfg, logger)
	assert.NoError(t, err)

	for i := 0; i < 2; i++ {
		_, err = client.GetPayment(context.Background(), "alice", "tx-1")
		assert.Error(t, err)
	}

	before := calls.Load()
	_, err = client.GetPayment(context.Background(), "alice", "tx-1")
	assert.ErrorIs(t, err, domain.ErrGatewayUnavailable)
	// the open breaker short-circuits without touching the network
	assert.Equal(t, before, calls.Load())
}

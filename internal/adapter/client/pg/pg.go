package pg

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/govalues/decimal"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"checkout/internal/adapter/config"
	"checkout/internal/core/domain"
	"checkout/internal/core/port"
)

// Client talks to the external payment gateway over HTTP. Every call is
// bounded by the configured request timeout, retried on transport
// errors only, and funneled through a circuit breaker so a dead gateway
// fails fast instead of tying up request handlers.
type Client struct {
	logger      *zap.Logger
	host        string
	callbackURL string
	httpClient  *http.Client
	breaker     *gobreaker.CircuitBreaker
	maxRetries  int
	backoff     time.Duration
}

func NewClient(cfg *config.Gateway, log *zap.Logger) (*Client, error) {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "payment-gateway",
		Timeout: cfg.BreakerOpenFor,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRate := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= cfg.BreakerMinRequests && failureRate >= cfg.BreakerFailureRate
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("circuit breaker state change",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})

	return &Client{
		logger:      log,
		host:        cfg.HostString,
		callbackURL: cfg.CallbackURL,
		httpClient:  &http.Client{Timeout: cfg.RequestTimeout},
		breaker:     breaker,
		maxRetries:  cfg.MaxRetries,
		backoff:     cfg.RetryBackoff,
	}, nil
}

type paymentRequest struct {
	OrderID     uint64 `json:"orderId"`
	CardType    string `json:"cardType"`
	CardNo      string `json:"cardNo"`
	Amount      string `json:"amount"`
	CallbackURL string `json:"callbackUrl"`
}

type paymentResponse struct {
	TransactionKey string `json:"transactionKey"`
	Status         string `json:"status"`
	Amount         string `json:"amount"`
	Reason         string `json:"reason"`
}

func (c *Client) RequestPayment(ctx context.Context, username string, req port.GatewayRequest) (*port.GatewayPayment, error) {
	body, err := json.Marshal(paymentRequest{
		OrderID:     req.OrderID,
		CardType:    req.CardType,
		CardNo:      req.CardNo,
		Amount:      req.Amount.String(),
		CallbackURL: c.callbackURL,
	})
	if err != nil {
		return nil, err
	}

	url := "http://" + c.host + "/api/payments"
	return c.call(ctx, username, func(ctx context.Context) (*http.Request, error) {
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		httpReq.Header.Set("Content-Type", "application/json")
		return httpReq, nil
	})
}

func (c *Client) GetPayment(ctx context.Context, username, transactionKey string) (*port.GatewayPayment, error) {
	url := "http://" + c.host + "/api/payments/" + transactionKey
	return c.call(ctx, username, func(ctx context.Context) (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	})
}

// call runs one gateway exchange through the breaker with bounded
// retries. Only transport failures are retried; a gateway response that
// reports a declined payment is a business outcome, not an error.
func (c *Client) call(ctx context.Context, username string, build func(ctx context.Context) (*http.Request, error)) (*port.GatewayPayment, error) {
	result, err := c.breaker.Execute(func() (any, error) {
		var lastErr error
		for attempt := 0; attempt <= c.maxRetries; attempt++ {
			if attempt > 0 {
				select {
				case <-time.After(c.backoff):
				case <-ctx.Done():
					return nil, ctx.Err()
				}
			}

			httpReq, err := build(ctx)
			if err != nil {
				return nil, err
			}
			httpReq.Header.Set("X-USER-ID", username)

			payment, err := c.do(httpReq)
			if err == nil {
				return payment, nil
			}
			lastErr = err
			c.logger.Debug("gateway request failed",
				zap.Int("attempt", attempt),
				zap.Error(err))
		}
		return nil, lastErr
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %w", domain.ErrGatewayUnavailable, err)
		}
		return nil, err
	}
	return result.(*port.GatewayPayment), nil
}

func (c *Client) do(req *http.Request) (*port.GatewayPayment, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gateway returned status %d", resp.StatusCode)
	}

	var body paymentResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("error decoding gateway response: %w", err)
	}

	amount, err := decimal.Parse(body.Amount)
	if err != nil {
		return nil, fmt.Errorf("error parsing gateway amount %q: %w", body.Amount, err)
	}

	return &port.GatewayPayment{
		TransactionKey: body.TransactionKey,
		Status:         body.Status,
		Amount:         amount,
		Reason:         body.Reason,
	}, nil
}

package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/andrescamacho/stellar-hauler/internal/application/game"
	"github.com/andrescamacho/stellar-hauler/internal/domain/shared"
)

const (
	defaultClientTimeout = 10 * time.Second
	defaultMaxRetries    = 3
	defaultBackoffBase   = 200 * time.Millisecond
)

// APIError is a non-2xx answer from the game server
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("game server returned %d (%s): %s", e.Status, e.Code, e.Message)
}

// retryableError marks failures worth another attempt
type retryableError struct {
	message    string
	retryAfter time.Duration
}

func (e *retryableError) Error() string {
	return e.message
}

// Client talks to a running game server. It is what the console uses in
// remote mode.
type Client struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	breaker     *CircuitBreaker
	baseURL     string
	maxRetries  int
	backoffBase time.Duration
	clock       shared.Clock
}

// ClientOption customizes a Client
type ClientOption func(*Client)

// WithHTTPClient replaces the default http.Client
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

// WithRetries sets the retry count and the backoff base
func WithRetries(maxRetries int, backoffBase time.Duration) ClientOption {
	return func(c *Client) {
		c.maxRetries = maxRetries
		c.backoffBase = backoffBase
	}
}

// WithClientClock injects the clock used for backoff sleeps
func WithClientClock(clock shared.Clock) ClientOption {
	return func(c *Client) {
		if clock != nil {
			c.clock = clock
			c.breaker.clock = clock
		}
	}
}

// WithClientRateLimit throttles outgoing requests
func WithClientRateLimit(requestsPerSecond float64, burst int) ClientOption {
	return func(c *Client) { c.rateLimiter = rate.NewLimiter(rate.Limit(requestsPerSecond), burst) }
}

// NewClient creates a client for the server at baseURL (e.g. http://localhost:8080)
func NewClient(baseURL string, opts ...ClientOption) *Client {
	clock := shared.NewRealClock()
	c := &Client{
		httpClient:  &http.Client{Timeout: defaultClientTimeout},
		rateLimiter: rate.NewLimiter(rate.Limit(10), 10),
		breaker:     NewCircuitBreaker(5, 10*time.Second, clock),
		baseURL:     strings.TrimRight(baseURL, "/"),
		maxRetries:  defaultMaxRetries,
		backoffBase: defaultBackoffBase,
		clock:       clock,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// View fetches the displayable frame
func (c *Client) View(ctx context.Context) (*game.View, error) {
	var view game.View
	if err := c.do(ctx, http.MethodGet, "/api/view", nil, &view); err != nil {
		return nil, fmt.Errorf("failed to get view: %w", err)
	}
	return &view, nil
}

// Ledger fetches the transaction history and the P&L
func (c *Client) Ledger(ctx context.Context, limit int) (*LedgerResponse, error) {
	path := "/api/ledger"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	var ledger LedgerResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &ledger); err != nil {
		return nil, fmt.Errorf("failed to get ledger: %w", err)
	}
	return &ledger, nil
}

// Buy buys one unit of a good
func (c *Client) Buy(ctx context.Context, goodID string) (*TradeResponse, error) {
	var resp TradeResponse
	if err := c.do(ctx, http.MethodPost, "/api/buy", TradeRequest{GoodID: goodID}, &resp); err != nil {
		return nil, fmt.Errorf("failed to buy: %w", err)
	}
	return &resp, nil
}

// Sell sells one unit of a good
func (c *Client) Sell(ctx context.Context, goodID string) (*TradeResponse, error) {
	var resp TradeResponse
	if err := c.do(ctx, http.MethodPost, "/api/sell", TradeRequest{GoodID: goodID}, &resp); err != nil {
		return nil, fmt.Errorf("failed to sell: %w", err)
	}
	return &resp, nil
}

// Travel departs for a destination
func (c *Client) Travel(ctx context.Context, destinationID string) (*TravelResponse, error) {
	var resp TravelResponse
	if err := c.do(ctx, http.MethodPost, "/api/travel", TravelRequest{DestinationID: destinationID}, &resp); err != nil {
		return nil, fmt.Errorf("failed to travel: %w", err)
	}
	return &resp, nil
}

// Refuel fills the tank
func (c *Client) Refuel(ctx context.Context) (*RefuelResponse, error) {
	var resp RefuelResponse
	if err := c.do(ctx, http.MethodPost, "/api/refuel", struct{}{}, &resp); err != nil {
		return nil, fmt.Errorf("failed to refuel: %w", err)
	}
	return &resp, nil
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	return c.breaker.Call(func() error {
		return c.request(ctx, method, path, body, result)
	})
}

// request retries 429 and 503 answers with exponential backoff and jitter.
// Network errors are only retried for GET; a POST may already have run.
func (c *Client) request(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	var payload []byte
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		payload = data
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter error: %w", err)
		}

		err := c.attempt(ctx, method, path, payload, result)
		if err == nil {
			return nil
		}
		retry, ok := err.(*retryableError)
		if !ok {
			return err
		}
		lastErr = err

		if attempt >= c.maxRetries {
			break
		}
		if ctx.Err() != nil {
			return fmt.Errorf("context cancelled: %w", ctx.Err())
		}

		delay := addJitter(c.backoffBase * time.Duration(1<<attempt))
		if retry.retryAfter > 0 {
			delay = retry.retryAfter
		}
		c.clock.Sleep(delay)
	}

	return fmt.Errorf("max retries exceeded: %w", lastErr)
}

func (c *Client) attempt(ctx context.Context, method, path string, payload []byte, result interface{}) error {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if method == http.MethodGet {
			return &retryableError{message: fmt.Sprintf("network error: %v", err)}
		}
		return fmt.Errorf("network error: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		var retryAfter time.Duration
		if seconds, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil {
			retryAfter = time.Duration(seconds) * time.Second
		}
		return &retryableError{message: "rate limited (429)", retryAfter: retryAfter}
	case resp.StatusCode == http.StatusServiceUnavailable:
		return &retryableError{message: "service unavailable (503)"}
	case resp.StatusCode >= 400:
		var apiErr ErrorResponse
		_ = json.Unmarshal(respBody, &apiErr)
		return &APIError{Status: resp.StatusCode, Code: apiErr.Code, Message: apiErr.Error}
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// addJitter spreads a delay by up to ±10%
func addJitter(d time.Duration) time.Duration {
	if d <= 0 {
		return d
	}
	spread := int64(d) / 10
	if spread == 0 {
		return d
	}
	return d + time.Duration(rand.Int63n(2*spread+1)-spread)
}

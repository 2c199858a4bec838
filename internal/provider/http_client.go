package provider

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/time/rate"

	"github.com/yourusername/ekiden-tracker/internal/metrics"
)

// HTTPClientConfig holds configuration for the document HTTP client
type HTTPClientConfig struct {
	Timeout                time.Duration
	MaxRetries             int
	RetryWaitMin           time.Duration
	RetryWaitMax           time.Duration
	RateLimit              float64       // requests per second
	Burst                  int           // rate limiter burst size
	CircuitBreakerMax      int           // consecutive failures before the circuit opens
	CircuitBreakerCooldown time.Duration // how long an open circuit rejects before probing again
}

// DefaultHTTPClientConfig returns recommended defaults for polling a
// static-file host every few tens of seconds.
func DefaultHTTPClientConfig() HTTPClientConfig {
	return HTTPClientConfig{
		Timeout:                15 * time.Second,
		MaxRetries:             3,
		RetryWaitMin:           100 * time.Millisecond,
		RetryWaitMax:           5 * time.Second,
		RateLimit:              10.0,
		Burst:                  5,
		CircuitBreakerMax:      5,
		CircuitBreakerCooldown: 30 * time.Second,
	}
}

// RateLimitedHTTPClient wraps retryablehttp.Client with rate limiting and a
// circuit breaker, so a broken document host is not hammered every cycle.
// An open circuit rejects requests only for the cooldown window; after that
// requests pass through again to probe the host, and the first success
// closes the circuit.
type RateLimitedHTTPClient struct {
	client            *retryablehttp.Client
	limiter           *rate.Limiter
	circuitBreakerMax int
	cooldown          time.Duration
	logger            *log.Logger

	mu                sync.Mutex
	consecutiveErrors int
	isOpen            bool
	openedAt          time.Time
	lastError         error
}

// NewRateLimitedHTTPClient creates a new rate-limited HTTP client
func NewRateLimitedHTTPClient(cfg HTTPClientConfig, logger *log.Logger) *RateLimitedHTTPClient {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	retryClient := retryablehttp.NewClient()
	retryClient.HTTPClient.Timeout = cfg.Timeout
	retryClient.RetryMax = cfg.MaxRetries
	retryClient.RetryWaitMin = cfg.RetryWaitMin
	retryClient.RetryWaitMax = cfg.RetryWaitMax
	retryClient.CheckRetry = documentRetryPolicy()
	retryClient.Logger = logger

	cooldown := cfg.CircuitBreakerCooldown
	if cooldown <= 0 {
		cooldown = 30 * time.Second
	}

	return &RateLimitedHTTPClient{
		client:            retryClient,
		limiter:           rate.NewLimiter(rate.Limit(cfg.RateLimit), max(cfg.Burst, 1)),
		circuitBreakerMax: cfg.CircuitBreakerMax,
		cooldown:          cooldown,
		logger:            logger,
	}
}

// Do executes an HTTP request with rate limiting and circuit breaking
func (c *RateLimitedHTTPClient) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	c.mu.Lock()
	if c.isOpen && time.Since(c.openedAt) < c.cooldown {
		lastErr := c.lastError
		c.mu.Unlock()
		return nil, fmt.Errorf("circuit breaker open: %v", lastErr)
	}
	c.mu.Unlock()

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	retryReq, err := retryablehttp.FromRequest(req.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to build retryable request: %w", err)
	}

	resp, err := c.client.Do(retryReq)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		c.consecutiveErrors++
		c.lastError = err
		if c.consecutiveErrors >= c.circuitBreakerMax {
			if !c.isOpen {
				metrics.RecordCircuitBreakerTrip()
				c.logger.Printf("Circuit breaker opened after %d consecutive errors: %v", c.consecutiveErrors, err)
			}
			c.isOpen = true
			// A failed probe restarts the cooldown window.
			c.openedAt = time.Now()
		}
		return nil, err
	}

	if resp.StatusCode < 500 {
		c.consecutiveErrors = 0
		c.isOpen = false
	}

	return resp, nil
}

// Get executes a GET request
func (c *RateLimitedHTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	return c.Do(ctx, req)
}

// Close closes any resources held by the client
func (c *RateLimitedHTTPClient) Close() error {
	c.client.HTTPClient.CloseIdleConnections()
	return nil
}

// documentRetryPolicy retries network errors, 429 and 5xx responses; other
// client errors fail immediately so the whole cycle can be discarded fast.
func documentRetryPolicy() retryablehttp.CheckRetry {
	return func(ctx context.Context, resp *http.Response, err error) (bool, error) {
		if err != nil {
			return true, err
		}
		switch resp.StatusCode {
		case http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true, nil
		}
		return false, nil
	}
}

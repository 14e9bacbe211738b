package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const (
	defaultProviderTimeout = 10 * time.Second
	maxErrorBodyBytes      = 512
)

// ProviderClientConfig configures the HTTP client shared by the price and rate providers.
type ProviderClientConfig struct {
	// Timeout bounds a single request attempt.
	Timeout time.Duration

	// MaxRetries is the number of retries after the first attempt.
	MaxRetries int

	// RetryBackoff is the initial wait between attempts; it grows exponentially.
	RetryBackoff time.Duration

	// HTTPClient is an optional custom HTTP client (for testing).
	HTTPClient *http.Client
}

// StatusError is returned when a provider answers with a non-200 status.
type StatusError struct {
	StatusCode int
	Body       string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Body)
}

// retryable reports whether another attempt may succeed.
func (e *StatusError) retryable() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= http.StatusInternalServerError
}

// providerClient performs JSON GET requests with a per-attempt timeout and bounded retries.
type providerClient struct {
	httpClient   *http.Client
	timeout      time.Duration
	maxRetries   int
	retryBackoff time.Duration
}

func newProviderClient(config ProviderClientConfig) *providerClient {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = defaultProviderTimeout
	}
	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	maxRetries := config.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &providerClient{
		httpClient:   httpClient,
		timeout:      timeout,
		maxRetries:   maxRetries,
		retryBackoff: config.RetryBackoff,
	}
}

// getJSON fetches url and decodes the JSON body into out.
func (c *providerClient) getJSON(ctx context.Context, url string, headers map[string]string, out any) error {
	attempt := 0
	operation := func() error {
		attempt++
		err := c.doGet(ctx, url, headers, out)
		if err == nil {
			return nil
		}
		if statusErr, ok := err.(*StatusError); ok && !statusErr.retryable() {
			return backoff.Permanent(err)
		}
		if ctx.Err() != nil {
			return backoff.Permanent(err)
		}
		return err
	}

	notify := func(err error, wait time.Duration) {
		slog.Warn("Provider request failed, retrying",
			"url", url,
			"attempt", attempt,
			"wait", wait,
			"error", err,
		)
	}

	return backoff.RetryNotify(operation, c.newBackOff(ctx), notify)
}

func (c *providerClient) newBackOff(ctx context.Context) backoff.BackOff {
	if c.retryBackoff <= 0 {
		return backoff.WithContext(backoff.WithMaxRetries(&backoff.ZeroBackOff{}, uint64(c.maxRetries)), ctx)
	}
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = c.retryBackoff
	exp.MaxInterval = 8 * c.retryBackoff
	exp.MaxElapsedTime = 0
	return backoff.WithContext(backoff.WithMaxRetries(exp, uint64(c.maxRetries)), ctx)
}

func (c *providerClient) doGet(ctx context.Context, url string, headers map[string]string, out any) error {
	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

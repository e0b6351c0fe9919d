package openmeteo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	defaultTimeout         = 10 * time.Second
	defaultBreakerFailures = 5
	userAgent              = "weather-now/1.0"
)

var (
	// ErrRequestFailed means no response was received from the API
	ErrRequestFailed = errors.New("request failed")
	// ErrCircuitOpen means the request was not attempted because the API has been failing
	ErrCircuitOpen = errors.New("circuit breaker open")
	// ErrDecode means a 200 response carried a body that could not be decoded
	ErrDecode = errors.New("failed to decode response")
)

// StatusError is returned when the API responds with a non-200 status
type StatusError struct {
	StatusCode int
	Reason     string
	Body       string
}

func (e *StatusError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("fetch returned status %d: %s", e.StatusCode, e.Reason)
	}
	return fmt.Sprintf("fetch returned status %d: %s", e.StatusCode, e.Body)
}

func newStatusError(statusCode int, body []byte) *StatusError {
	statusErr := &StatusError{
		StatusCode: statusCode,
		Body:       strings.TrimSpace(string(body)),
	}
	var errResp ErrorResponse
	if json.Unmarshal(body, &errResp) == nil && errResp.Error {
		statusErr.Reason = errResp.Reason
	}
	return statusErr
}

// Options configure the HTTP layer shared by the Open-Meteo clients.
// Zero values select the defaults.
type Options struct {
	BaseURL         string
	Timeout         time.Duration
	BreakerFailures uint32
	HTTPClient      *http.Client
}

func (o Options) httpClient() *http.Client {
	if o.HTTPClient != nil {
		return o.HTTPClient
	}
	timeout := o.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
}

func (o Options) baseURL(def string) string {
	if o.BaseURL != "" {
		return o.BaseURL
	}
	return def
}

// newBreaker trips after a run of consecutive transport failures or 5xx
// responses and rejects calls until the open timeout elapses. It never retries.
func newBreaker(name string, failures uint32, logger *slog.Logger) *gobreaker.CircuitBreaker {
	if failures == 0 {
		failures = defaultBreakerFailures
	}
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				"breaker", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	})
}

// outcome carries results the breaker must not count as upstream failures
type outcome struct {
	resp *http.Response
	err  error
}

// getJSON performs a single GET through the breaker and decodes a 200 body into out
func getJSON(ctx context.Context, httpClient *http.Client, cb *gobreaker.CircuitBreaker, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	result, err := cb.Execute(func() (interface{}, error) {
		resp, err := httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				// cancelled by the caller, the upstream may be fine
				return outcome{err: fmt.Errorf("%w: %w", ErrRequestFailed, err)}, nil
			}
			return nil, fmt.Errorf("%w: %w", ErrRequestFailed, err)
		}
		if resp.StatusCode >= http.StatusInternalServerError {
			body, _ := io.ReadAll(resp.Body)
			_ = resp.Body.Close()
			return nil, newStatusError(resp.StatusCode, body)
		}
		return outcome{resp: resp}, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return fmt.Errorf("%w: %w", ErrCircuitOpen, err)
		}
		return err
	}

	res := result.(outcome)
	if res.err != nil {
		return res.err
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(res.resp.Body)

	if res.resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(res.resp.Body)
		return newStatusError(res.resp.StatusCode, body)
	}

	if err := json.NewDecoder(res.resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return nil
}

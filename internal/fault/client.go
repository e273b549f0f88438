package fault

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/flor3z/fault-bot/internal/apperr"
	"github.com/flor3z/fault-bot/internal/metrics"
	"github.com/flor3z/fault-bot/internal/retry"
)

const (
	// DefaultBaseURL is the public Fault API
	DefaultBaseURL = "https://api.playfault.com"
)

// Client is a Fault public API client. It implements game.Gateway.
type Client struct {
	baseURL    string
	httpClient *http.Client
	retry      retry.Options
}

// NewClient creates a new Fault API client
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	opts := retry.DefaultOptions()
	opts.Classifier = isTransient

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		retry: opts,
	}
}

// statusError is a non-200 response
type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("API error: status %d, body: %s", e.code, e.body)
}

// isTransient retries transport failures, rate limiting and server errors
func isTransient(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var se *statusError
	if errors.As(err, &se) {
		return se.code == http.StatusTooManyRequests || se.code >= 500
	}
	return true
}

// get performs a GET request with retries and decodes the JSON response.
// endpoint names the API operation for metrics and errors.
func (c *Client) get(ctx context.Context, endpoint, path string, result interface{}) error {
	var payload []byte
	err := retry.Do(ctx, func() error {
		var err error
		payload, err = c.fetch(ctx, endpoint, path)
		return err
	}, c.retry)
	if err != nil {
		var se *statusError
		if errors.As(err, &se) && se.code == http.StatusNotFound {
			return apperr.NewNotFoundError(endpoint, path)
		}
		return apperr.NewUnavailableError(endpoint, err)
	}

	if err := json.Unmarshal(payload, result); err != nil {
		return apperr.NewValidationError(endpoint, fmt.Sprintf("failed to decode response: %v", err))
	}

	return nil
}

// fetch performs a single request and returns the body of a 200 response
func (c *Client) fetch(ctx context.Context, endpoint, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.GatewayRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.GatewayRequestsTotal.WithLabelValues(endpoint, "error").Inc()
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	metrics.GatewayRequestsTotal.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &statusError{code: resp.StatusCode, body: string(body)}
	}

	return body, nil
}

// flexInt accepts ids and counters encoded either as JSON numbers or strings
type flexInt int64

func (f *flexInt) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		*f = flexInt(n)
		return nil
	}
	fl, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid integer %q", s)
	}
	*f = flexInt(int64(fl))
	return nil
}

// flexFloat accepts ratings encoded either as JSON numbers or strings
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	fl, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid number %q", s)
	}
	*f = flexFloat(fl)
	return nil
}

package calil

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is the production Calil API endpoint.
const DefaultBaseURL = "https://api.calil.jp"

const (
	defaultPollInterval  = time.Second
	defaultMaxPollRounds = 5
)

// Logger is an optional interface for observability during API calls.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: logging must be best-effort; Logf should not panic.
// - Ownership: format/args are read-only.
type Logger interface {
	// Logf logs a formatted message.
	Logf(format string, args ...any)
}

// Config holds the configuration for a Client.
type Config struct {
	// AppKey is the Calil application key sent with every request.
	// Required; its absence is a startup-time condition, not a per-call one.
	AppKey string

	// BaseURL overrides the production endpoint. Useful for tests.
	// Defaults to DefaultBaseURL.
	BaseURL string

	// HTTPClient issues the requests. Defaults to http.DefaultClient.
	// Transport-level retry policy belongs here, not in the poller.
	HTTPClient *http.Client

	// PollInterval is the wait between continuation rounds. The upstream is
	// asynchronous; polling faster has no benefit and risks rate limiting.
	// Defaults to 1s.
	PollInterval time.Duration

	// MaxPollRounds caps continuation rounds before the check is treated as
	// timed out. Defaults to 5.
	MaxPollRounds int

	// Logger is an optional logger for observability.
	Logger Logger
}

// Validate checks that all required fields are set.
// Returns ErrConfiguration if any required field is missing.
func (c *Config) Validate() error {
	var missing []string

	if strings.TrimSpace(c.AppKey) == "" {
		missing = append(missing, "AppKey")
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: missing required fields: %s",
			ErrConfiguration, strings.Join(missing, ", "))
	}
	return nil
}

// applyDefaults sets default values for optional fields.
func (c *Config) applyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.HTTPClient == nil {
		c.HTTPClient = http.DefaultClient
	}
	if c.PollInterval <= 0 {
		c.PollInterval = defaultPollInterval
	}
	if c.MaxPollRounds <= 0 {
		c.MaxPollRounds = defaultMaxPollRounds
	}
}

// Client talks to the Calil API. It holds no mutable state after construction
// and is safe for concurrent use; concurrent resolutions share only the
// credential and tuning values.
type Client struct {
	config Config
}

// New creates a new Client with the given config.
func New(cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &Client{config: cfg}, nil
}

func (c *Client) logf(format string, args ...any) {
	if c.config.Logger != nil {
		c.config.Logger.Logf(format, args...)
	}
}

// get issues one GET round and returns the raw body text. Non-2xx responses
// and transport failures surface as *UpstreamError.
func (c *Client) get(ctx context.Context, path string, query url.Values) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.config.BaseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("building request for %s: %w", path, err)
	}

	resp, err := c.config.HTTPClient.Do(req)
	if err != nil {
		return "", &UpstreamError{Endpoint: path, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &UpstreamError{Endpoint: path, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &UpstreamError{Status: resp.StatusCode, Endpoint: path}
	}
	return string(body), nil
}

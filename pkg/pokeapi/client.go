// Package pokeapi is the concrete resource-fetch service the research core
// is normally wired to. It owns all transport concerns: pacing, retry with
// exponential backoff, and timeouts. The scheduler only ever sees the
// Fetch method.
package pokeapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// ErrResourceMiss marks a 404: the identifier was well-formed but the
// catalog upstream has no such resource.
var ErrResourceMiss = errors.New("resource not found upstream")

const (
	DefaultBaseURL     = "https://pokeapi.co/api/v2"
	DefaultTimeoutSecs = 30
	DefaultPacingMs    = 100
	DefaultMaxRetries  = 3
)

// Config controls the upstream client.
type Config struct {
	BaseURL     string `yaml:"base_url"`
	TimeoutSecs int    `yaml:"timeout_seconds"`
	// PacingMs is the fixed delay applied before every request.
	PacingMs   int    `yaml:"pacing_ms"`
	MaxRetries int    `yaml:"max_retries"`
	UserAgent  string `yaml:"user_agent"`
}

func (c Config) WithDefaults() Config {
	if strings.TrimSpace(c.BaseURL) == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.TimeoutSecs <= 0 {
		c.TimeoutSecs = DefaultTimeoutSecs
	}
	if c.PacingMs <= 0 {
		c.PacingMs = DefaultPacingMs
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = DefaultMaxRetries
	}
	if c.UserAgent == "" {
		c.UserAgent = "deepdex/0.1"
	}
	return c
}

// CallRecord journals one upstream request for reporting.
type CallRecord struct {
	Endpoint   string    `json:"endpoint"`
	Value      string    `json:"value"`
	URL        string    `json:"url"`
	Status     int       `json:"status"`
	DurationMs int64     `json:"duration_ms"`
	At         time.Time `json:"at"`
}

// Client fetches decoded JSON resources from the PokeAPI catalog.
type Client struct {
	cfg  Config
	http *http.Client
	log  zerolog.Logger

	mu    sync.Mutex
	calls []CallRecord
}

func NewClient(cfg Config, log zerolog.Logger) *Client {
	cfg = cfg.WithDefaults()
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: time.Duration(cfg.TimeoutSecs) * time.Second},
		log:  log,
	}
}

// Fetch retrieves one resource, retrying transient failures with bounded
// exponential backoff. 404 is a miss, not a transient failure.
func (c *Client) Fetch(ctx context.Context, resourcePath, value string) (any, error) {
	url := fmt.Sprintf("%s/%s/%s", strings.TrimSuffix(c.cfg.BaseURL, "/"), strings.Trim(resourcePath, "/"), value)

	var lastErr error
	for attempt := 0; attempt < c.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			if err := sleepCtx(ctx, time.Duration(1<<(attempt-1))*time.Second); err != nil {
				return nil, err
			}
		}
		if c.cfg.PacingMs > 0 {
			if err := sleepCtx(ctx, time.Duration(c.cfg.PacingMs)*time.Millisecond); err != nil {
				return nil, err
			}
		}

		start := time.Now()
		result, status, err := c.fetchOnce(ctx, url)
		c.record(resourcePath, value, url, status, time.Since(start))
		switch {
		case err == nil:
			return result, nil
		case errors.Is(err, ErrResourceMiss):
			return nil, fmt.Errorf("%w: %s/%s", ErrResourceMiss, resourcePath, value)
		default:
			lastErr = err
			c.log.Warn().Err(err).Str("url", url).Int("attempt", attempt+1).Msg("fetch attempt failed")
		}
	}
	return nil, fmt.Errorf("fetch %s/%s: %w", resourcePath, value, lastErr)
}

func (c *Client) fetchOnce(ctx context.Context, url string) (any, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, resp.StatusCode, ErrResourceMiss
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		io.Copy(io.Discard, resp.Body)
		return nil, resp.StatusCode, fmt.Errorf("http %d: %s", resp.StatusCode, resp.Status)
	}

	var decoded any
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, resp.StatusCode, fmt.Errorf("decode response: %w", err)
	}
	return decoded, resp.StatusCode, nil
}

func (c *Client) record(endpoint, value, url string, status int, took time.Duration) {
	now := time.Now().UTC()
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, CallRecord{
		Endpoint:   endpoint,
		Value:      value,
		URL:        url,
		Status:     status,
		DurationMs: took.Milliseconds(),
		At:         now,
	})
}

// Calls returns a copy of the request journal.
func (c *Client) Calls() []CallRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]CallRecord, len(c.calls))
	copy(out, c.calls)
	return out
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

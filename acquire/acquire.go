// Package acquire fetches weather snapshots from the upstream JSON endpoint.
package acquire

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/BeatGlow/weather-display/weather"
)

// Defaults.
const (
	DefaultTimeout    = 15 * time.Second
	DefaultRetries    = 3
	DefaultRetryDelay = 2 * time.Second

	maxBody = 1 << 20
)

// Errors
var (
	ErrStatus = errors.New("acquire: unexpected status")
	ErrDecode = errors.New("acquire: malformed payload")
)

// Config for a Client.
type Config struct {
	// URL of the JSON endpoint.
	URL string

	// Timeout per request.
	Timeout time.Duration

	// Retries is the total number of attempts per fetch.
	Retries int

	// RetryDelay is the fixed spacing between attempts.
	RetryDelay time.Duration

	// Hours is the length of the precipitation series.
	Hours int
}

// Client fetches snapshots with bounded retries and a circuit breaker that is shared across
// fetches.
type Client struct {
	config  Config
	client  *http.Client
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker
	log     logrus.FieldLogger
}

// New returns a Client. Zero config values take the package defaults.
func New(config Config, log logrus.FieldLogger) *Client {
	if config.Timeout <= 0 {
		config.Timeout = DefaultTimeout
	}
	if config.Retries <= 0 {
		config.Retries = DefaultRetries
	}
	if config.RetryDelay <= 0 {
		config.RetryDelay = DefaultRetryDelay
	}
	if config.Hours <= 0 {
		config.Hours = weather.DefaultHours
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Client{
		config:  config,
		client:  &http.Client{Timeout: config.Timeout},
		limiter: rate.NewLimiter(rate.Every(config.RetryDelay), 1),
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "weather-api",
			MaxRequests: 1,
			Timeout:     2 * time.Minute,
		}),
		log: log.WithField("url", config.URL),
	}
}

// Fetch retrieves one snapshot. On failure the returned snapshot is invalid and defaulted, and
// the error wraps ErrStatus, ErrDecode, gobreaker.ErrOpenState or the transport error of the
// last attempt.
func (c *Client) Fetch(ctx context.Context) (weather.Snapshot, error) {
	var lastErr error
	for attempt := 1; attempt <= c.config.Retries; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			if lastErr == nil {
				lastErr = err
			}
			break
		}

		result, err := c.breaker.Execute(func() (interface{}, error) {
			return c.fetch(ctx)
		})
		if err == nil {
			return result.(weather.Snapshot), nil
		}
		lastErr = err

		c.log.WithFields(logrus.Fields{
			"attempt": attempt,
			"retries": c.config.Retries,
		}).WithError(err).Warn("weather fetch failed")

		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			break
		}
	}
	return weather.NewSnapshot(c.config.Hours), fmt.Errorf("acquire: fetch %s: %w", c.config.URL, lastErr)
}

func (c *Client) fetch(ctx context.Context) (weather.Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.URL, nil)
	if err != nil {
		return weather.Snapshot{}, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return weather.Snapshot{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBody))
		return weather.Snapshot{}, fmt.Errorf("%w: %d", ErrStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return weather.Snapshot{}, err
	}
	return Decode(body, c.config.Hours)
}

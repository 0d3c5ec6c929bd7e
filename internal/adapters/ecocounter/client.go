// Package ecocounter fetches daily totals from the public Eco-Counter feed
// and turns them into a count history
package ecocounter

import (
	"context"
	"io"
	"net/http"
	"time"

	"velofact/internal/core/history"
	perr "velofact/internal/platform/errors"
	"velofact/internal/platform/logger"
)

const (
	defaultTimeout   = 10 * time.Second
	defaultUA        = "velofact-bot"
	defaultMaxRetry  = 5
	defaultRetryBase = 500 * time.Millisecond
)

// Options configures the Client
type Options struct {
	// FeedURL is the full public web page data endpoint for one counter
	FeedURL   string
	UserAgent string
	Timeout   time.Duration

	// Retry config for transient failures
	MaxRetries int
	RetryBase  time.Duration
}

// Client is a minimal Eco-Counter feed client with retries
type Client struct {
	http  *http.Client
	opts  Options
	log   logger.Logger
	now   func() time.Time
	sleep func(time.Duration)
}

// NewClient creates a new Client with sane defaults.
// FeedURL is required, everything else has a fallback
func NewClient(o Options) (*Client, error) {
	if o.FeedURL == "" {
		return nil, perr.Validationf("ecocounter feed url is required")
	}
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.MaxRetries <= 0 {
		o.MaxRetries = defaultMaxRetry
	}
	if o.RetryBase <= 0 {
		o.RetryBase = defaultRetryBase
	}
	return &Client{
		http:  &http.Client{Timeout: o.Timeout},
		opts:  o,
		log:   *logger.Named("ecocounter"),
		now:   time.Now,
		sleep: time.Sleep,
	}, nil
}

// FetchDaily downloads the feed and returns the parsed daily history
func (c *Client) FetchDaily(ctx context.Context) (*history.Daily, error) {
	body, err := c.post(ctx)
	if err != nil {
		return nil, err
	}
	return ParseFeed(body)
}

// post issues the feed request with retries on transport and transient
// server errors. The feed endpoint takes an empty POST
func (c *Client) post(ctx context.Context) ([]byte, error) {
	attempts := 0
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.FeedURL, nil)
		if err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "ecocounter new request failed")
		}
		req.Header.Set("User-Agent", c.opts.UserAgent)
		req.Header.Set("Accept", "application/json")

		start := c.now()
		resp, err := c.http.Do(req)
		lat := c.now().Sub(start)

		if err != nil {
			if !c.shouldRetry(attempts) {
				return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "ecocounter feed unreachable")
			}
			back := c.backoff(attempts)
			c.log.Warn().Dur("retry_in", back).Int("attempt", attempts).Msg("ecocounter transport error retrying")
			c.sleep(back)
			attempts++
			continue
		}

		c.log.Debug().
			Int("status", resp.StatusCode).
			Int("attempt", attempts).
			Dur("latency", lat).
			Msg("ecocounter feed response")

		switch resp.StatusCode {
		case http.StatusOK:
			body, err := io.ReadAll(resp.Body)
			_ = resp.Body.Close()
			if err != nil {
				return nil, perr.Wrapf(err, perr.ErrorCodeUpstream, "ecocounter body read failed")
			}
			return body, nil
		case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			if !c.shouldRetry(attempts) {
				_ = drainAndClose(resp.Body)
				return nil, perr.Upstreamf("ecocounter transient server error %d", resp.StatusCode)
			}
			back := c.backoff(attempts)
			c.log.Warn().Dur("retry_in", back).Int("attempt", attempts).Msg("ecocounter transient error retrying")
			_ = drainAndClose(resp.Body)
			c.sleep(back)
			attempts++
			continue
		default:
			tail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
			_ = resp.Body.Close()
			return nil, perr.Upstreamf("ecocounter unexpected status %d body %s", resp.StatusCode, string(tail))
		}
	}
}

func (c *Client) backoff(attempt int) time.Duration {
	ms := int64(c.opts.RetryBase / time.Millisecond)
	ms = ms << uint(attempt)
	max := int64(30 * time.Second / time.Millisecond)
	if ms > max {
		ms = max
	}
	return time.Duration(ms) * time.Millisecond
}

func (c *Client) shouldRetry(attempt int) bool {
	return attempt < c.opts.MaxRetries
}

func drainAndClose(rc io.ReadCloser) error {
	_, _ = io.Copy(io.Discard, io.LimitReader(rc, 1<<20))
	return rc.Close()
}

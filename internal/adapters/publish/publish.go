// Package publish delivers a composed sentence to the outside world
package publish

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"
	"unicode/utf8"

	perr "velofact/internal/platform/errors"
	"velofact/internal/platform/logger"
)

// MaxPostLength is the rune cap enforced by microblogging targets
const MaxPostLength = 280

const defaultTimeout = 10 * time.Second

// Publisher delivers one message to one destination.
// Publish must fail with a publish error when CanBePublished is false,
// before touching the network
type Publisher interface {
	Publish(ctx context.Context, message string) error
	CanBePublished(message string) bool
}

// Microblog posts to a status-update endpoint guarded by a bearer token
type Microblog struct {
	http  *http.Client
	url   string
	token string
	log   logger.Logger
}

// NewMicroblog builds a Microblog publisher.
// url and token are both required
func NewMicroblog(url, token string) (*Microblog, error) {
	if url == "" {
		return nil, perr.Validationf("microblog url is required")
	}
	if token == "" {
		return nil, perr.Validationf("microblog token is required")
	}
	return &Microblog{
		http:  &http.Client{Timeout: defaultTimeout},
		url:   url,
		token: token,
		log:   *logger.Named("microblog"),
	}, nil
}

// CanBePublished reports whether the message fits the rune cap
func (m *Microblog) CanBePublished(message string) bool {
	return utf8.RuneCountInString(message) <= MaxPostLength
}

// Publish posts the message as a status update
func (m *Microblog) Publish(ctx context.Context, message string) error {
	if !m.CanBePublished(message) {
		return perr.Publishf("message exceeds %d runes, refusing to post", MaxPostLength)
	}
	body, err := json.Marshal(map[string]string{"status": message})
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeJSON, "microblog payload marshal failed")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.url, bytes.NewReader(body))
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "microblog new request failed")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+m.token)

	resp, err := m.http.Do(req)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodePublish, "microblog post failed")
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		tail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return perr.Publishf("microblog rejected status %d body %s", resp.StatusCode, string(tail))
	}
	m.log.Info().Int("runes", utf8.RuneCountInString(message)).Msg("status published")
	return nil
}

// Webhook posts to an incoming-webhook endpoint with a simple text payload
type Webhook struct {
	http *http.Client
	url  string
	log  logger.Logger
}

// NewWebhook builds a Webhook publisher
func NewWebhook(url string) (*Webhook, error) {
	if url == "" {
		return nil, perr.Validationf("webhook url is required")
	}
	return &Webhook{
		http: &http.Client{Timeout: defaultTimeout},
		url:  url,
		log:  *logger.Named("webhook"),
	}, nil
}

// CanBePublished always holds, webhooks carry no length cap
func (w *Webhook) CanBePublished(string) bool { return true }

// Publish posts the message wrapped in a text payload
func (w *Webhook) Publish(ctx context.Context, message string) error {
	body, err := json.Marshal(map[string]string{"text": message})
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeJSON, "webhook payload marshal failed")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "webhook new request failed")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.http.Do(req)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodePublish, "webhook post failed")
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		tail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return perr.Publishf("webhook rejected status %d body %s", resp.StatusCode, string(tail))
	}
	w.log.Info().Msg("message delivered")
	return nil
}

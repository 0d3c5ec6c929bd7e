package domain

import (
	"context"

	"velofact/internal/core/history"
)

// FetcherPort provides the daily count history
type FetcherPort interface {
	FetchDaily(ctx context.Context) (*history.Daily, error)
}

// PublisherPort delivers one composed sentence to one destination
type PublisherPort interface {
	Publish(ctx context.Context, message string) error
	CanBePublished(message string) bool
}

// ServicePort is consumed by handlers and the bot entrypoint
type ServicePort interface {
	Compose(ctx context.Context, in ComposeInput) (Report, error)
	Summarize(ctx context.Context) (Summary, error)
	Broadcast(ctx context.Context, in ComposeInput) (Report, error)
}

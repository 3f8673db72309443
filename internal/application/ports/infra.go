package ports

import (
	"context"
	"time"

	"laudos-api/internal/domain/access"
	"laudos-api/internal/infrastructure/mq"
)

type (
	Tokens interface {
		Issue(c access.Claims) (string, time.Time, error)
		Validate(token string) (access.Claims, error)
	}

	// Revoker keeps deactivated profiles out until their sessions expire.
	Revoker interface {
		Revoke(ctx context.Context, subject, id string) error
		Clear(ctx context.Context, subject, id string) error
		IsRevoked(ctx context.Context, c access.Claims) (bool, error)
	}

	RateLimiter interface {
		Allow(ctx context.Context, key string) (bool, time.Duration, error)
		Reset(ctx context.Context, key string) error
	}

	EventPublisher interface {
		Publish(e mq.Event) bool
	}

	AttachmentURLs interface {
		GetPublicURLs(keys []string) []string
	}

	// Snapshotter writes a consistent copy of the live database to dst.
	Snapshotter interface {
		Snapshot(ctx context.Context, dst string) error
	}

	Pinger interface {
		Ping(ctx context.Context) error
	}
)

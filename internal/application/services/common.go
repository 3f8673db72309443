package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"laudos-api/internal/application/ports"
	"laudos-api/internal/infrastructure/metrics"
	"laudos-api/internal/infrastructure/mq"
)

func hashPassword(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(h), nil
}

// normalizeEmail is applied on every write and on login lookups.
func normalizeEmail(email string) string { return strings.ToLower(strings.TrimSpace(email)) }

// notifier fans a finished write out to the event stream. It never fails the
// caller: the write is already committed.
type notifier struct {
	publisher ports.EventPublisher
	revoker   ports.Revoker
	logger    *zap.Logger
	mCounter  *prometheus.CounterVec
}

func (n notifier) publish(e mq.Event) {
	if n.publisher == nil {
		return
	}
	if !n.publisher.Publish(e) && n.mCounter != nil {
		n.mCounter.WithLabelValues(metrics.EventsDropped).Inc()
	}
}

func (n notifier) revoke(ctx context.Context, subject, id string) {
	if n.revoker == nil {
		return
	}
	if err := n.revoker.Revoke(ctx, subject, id); err != nil {
		n.logger.Warn("session revocation failed", zap.String("subject", subject), zap.String("id", id), zap.Error(err))
	}
}

func (n notifier) clear(ctx context.Context, subject, id string) {
	if n.revoker == nil {
		return
	}
	if err := n.revoker.Clear(ctx, subject, id); err != nil {
		n.logger.Warn("session revocation clear failed", zap.String("subject", subject), zap.String("id", id), zap.Error(err))
	}
}

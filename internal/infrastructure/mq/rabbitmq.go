package mq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"laudos-api/config"
)

const (
	bufferSize   = 128
	dialTimeout  = 10 * time.Second
	drainTimeout = 3 * time.Second
)

var errNotConnected = errors.New("rabbitmq publisher is not connected")

// RabbitMQ publishes domain events from a buffered queue on a single worker,
// so request handlers never wait on the broker.
type RabbitMQ struct {
	cfg   config.MQ
	log   *zap.Logger
	conn  *amqp091.Connection
	pubCh *amqp091.Channel
	in    chan Event
}

func New(cfg config.MQ, logger *zap.Logger) *RabbitMQ {
	return &RabbitMQ{
		cfg: cfg,
		log: logger,
		in:  make(chan Event, bufferSize),
	}
}

func (r *RabbitMQ) Connect(ctx context.Context, dsn string) error {
	dialer := &net.Dialer{Timeout: dialTimeout}

	conn, err := amqp091.DialConfig(dsn, amqp091.Config{
		Heartbeat:  10 * time.Second,
		Locale:     "en_US",
		Properties: amqp091.Table{"connection_name": "laudos-api"},
		Dial: func(network, addr string) (net.Conn, error) {
			return dialer.DialContext(ctx, network, addr)
		},
	})
	if err != nil {
		return fmt.Errorf("amqp dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("amqp channel: %w", err)
	}
	r.conn, r.pubCh = conn, ch

	r.log.Info("rabbitmq connected successfully", zap.String("exchange", r.cfg.Exchange))

	return nil
}

func (r *RabbitMQ) Init() error {
	if r.pubCh == nil {
		return errNotConnected
	}
	return DeclareTopology(r.pubCh, r.cfg)
}

// Publish hands e to the worker without blocking. A full buffer drops the
// event and reports false.
func (r *RabbitMQ) Publish(e Event) bool {
	select {
	case r.in <- e:
		return true
	default:
		r.log.Warn("mq buffer full, event dropped", zap.String("event_type", e.Type), zap.Stringer("event_id", e.Id))
		return false
	}
}

// PublisherWorker runs until ctx is done, then flushes what is still buffered
// within drainTimeout.
func (r *RabbitMQ) PublisherWorker(ctx context.Context) {
	r.log.Info("starting publisher worker")

	for {
		select {
		case e := <-r.in:
			r.send(ctx, e)
		case <-ctx.Done():
			r.drain()
			r.log.Info("publisher worker gracefully stopped")
			return
		}
	}
}

func (r *RabbitMQ) drain() {
	ctx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()

	for {
		select {
		case e := <-r.in:
			r.send(ctx, e)
		default:
			if r.pubCh != nil {
				_ = r.pubCh.Close()
			}
			return
		}
	}
}

func (r *RabbitMQ) send(ctx context.Context, e Event) {
	if err := r.publish(ctx, e); err != nil {
		r.log.Error("mq publish error",
			zap.Error(err),
			zap.String("event_type", e.Type),
			zap.Stringer("event_id", e.Id),
		)
	}
}

func (r *RabbitMQ) publish(ctx context.Context, e Event) error {
	if r.pubCh == nil {
		return errNotConnected
	}

	body, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	// routing key is the event type, e.g. "patient.deactivated"
	return r.pubCh.PublishWithContext(ctx, r.cfg.Exchange, e.Type, false, false, amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		MessageId:    e.Id.String(),
		Timestamp:    e.TS,
		Type:         e.Type,
		Body:         body,
	})
}

func (r *RabbitMQ) GetConn() *amqp091.Connection { return r.conn }

func (r *RabbitMQ) Close() {
	if r.conn != nil {
		_ = r.conn.Close()
	}
}

// Nop is used when no broker is configured.
type Nop struct{}

func (Nop) Publish(Event) bool { return true }

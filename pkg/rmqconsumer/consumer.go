// Package rmqconsumer turns the domain event stream into an audit trail in
// the structured log.
package rmqconsumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"laudos-api/config"
	"laudos-api/internal/infrastructure/mq"
)

// can scale depends on a parallel worker count
const preFetchCount = 1

type Consumer struct {
	cfg        config.MQ
	log        *zap.Logger
	conn       *amqp091.Connection
	ownsConn   bool
	chConsume  *amqp091.Channel
	chDelivery <-chan amqp091.Delivery
}

// New shares conn with the publisher when it is not nil; otherwise call Connect.
func New(cfg config.MQ, logger *zap.Logger, conn *amqp091.Connection) *Consumer {
	return &Consumer{
		cfg:  cfg,
		log:  logger,
		conn: conn,
	}
}

func (c *Consumer) Connect(dsn string) error {
	conn, err := amqp091.Dial(dsn)
	if err != nil {
		return fmt.Errorf("amqp dial: %w", err)
	}
	c.conn = conn
	c.ownsConn = true

	c.log.Info("rabbitmq consumer connected successfully")

	return nil
}

func (c *Consumer) Init() error {
	if c.conn == nil {
		return errors.New("consumer has no connection")
	}

	ch, err := c.conn.Channel()
	if err != nil {
		return fmt.Errorf("amqp channel: %w", err)
	}
	c.chConsume = ch

	if err = mq.DeclareTopology(ch, c.cfg); err != nil {
		return err
	}

	if err = ch.Qos(preFetchCount, 0, false); err != nil {
		return fmt.Errorf("qos: %w", err)
	}

	c.chDelivery, err = ch.Consume(c.cfg.QueueName, "laudos-audit", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume: %w", err)
	}

	return nil
}

func (c *Consumer) DeliveryWorker(ctx context.Context) {
	c.log.Info("starting audit delivery worker")

	defer func() {
		c.log.Info("audit delivery worker gracefully stopped")
	}()

	for {
		select {
		case msg, ok := <-c.chDelivery:
			if !ok {
				c.log.Warn("audit delivery channel closed")
				return
			}
			if err := c.delivery(msg); err != nil {
				c.log.Error("mq read message error", zap.Error(err), zap.String("routing_key", msg.RoutingKey))
				// a malformed event will never decode; drop it instead of requeueing
				_ = msg.Nack(false, false)
				continue
			}
			_ = msg.Ack(false)
		case <-ctx.Done():
			if c.chConsume != nil {
				_ = c.chConsume.Close()
			}
			return
		}
	}
}

func (c *Consumer) delivery(msg amqp091.Delivery) error {
	var e mq.Event
	if err := json.Unmarshal(msg.Body, &e); err != nil {
		return fmt.Errorf("decode event: %w", err)
	}
	if e.Type == "" {
		e.Type = msg.RoutingKey
	}

	c.log.Info("audit",
		zap.String("event_type", e.Type),
		zap.Stringer("event_id", e.Id),
		zap.Time("time_stamp", e.TS),
		zap.String("actor_id", e.ActorID),
		zap.String("subject_id", e.Subject),
		zap.Any("payload", e.Payload),
	)

	return nil
}

func (c *Consumer) Close() {
	if c.chConsume != nil {
		_ = c.chConsume.Close()
	}
	if c.ownsConn && c.conn != nil {
		_ = c.conn.Close()
	}
}

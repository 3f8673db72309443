package mq

import (
	"fmt"

	"github.com/rabbitmq/amqp091-go"

	"laudos-api/config"
)

// Declarer is the part of *amqp091.Channel that sets up the broker topology.
type Declarer interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp091.Table) error
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp091.Table) (amqp091.Queue, error)
	QueueBind(name, key, exchange string, noWait bool, args amqp091.Table) error
}

// DeclareTopology declares the durable exchange and audit queue and binds every
// domain routing key. Both the publisher and the audit consumer run it, so
// whichever starts first leaves the broker ready for the other.
func DeclareTopology(ch Declarer, cfg config.MQ) error {
	if err := ch.ExchangeDeclare(cfg.Exchange, cfg.ExchangeType, true, false, false, false, nil); err != nil {
		return fmt.Errorf("exchange declare %s: %w", cfg.Exchange, err)
	}

	q, err := ch.QueueDeclare(cfg.QueueName, true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue declare %s: %w", cfg.QueueName, err)
	}

	for _, rk := range BindingKeys {
		if err = ch.QueueBind(q.Name, rk, cfg.Exchange, false, nil); err != nil {
			return fmt.Errorf("queue bind %s: %w", rk, err)
		}
	}

	return nil
}

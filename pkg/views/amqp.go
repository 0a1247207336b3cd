package views

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
)

// Message is published for every invalidation.
type Message struct {
	ID     string    `json:"id"`
	Source string    `json:"source"` // ID of the instance that published the message
	Paths  []string  `json:"paths"`
	At     time.Time `json:"at"`
}

// Publisher sends invalidations to all instances through a fanout exchange
// and applies the invalidations of other instances to a local Invalidator.
type Publisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	source   string
}

// NewPublisher connects to the broker at url and declares the exchange.
func NewPublisher(url, exchange string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		exchange, // name
		"fanout", // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	return &Publisher{
		conn:     conn,
		channel:  channel,
		exchange: exchange,
		source:   uuid.New().String(),
	}, nil
}

// Invalidate publishes the paths to all instances.
func (p *Publisher) Invalidate(ctx context.Context, paths ...string) error {
	body, err := json.Marshal(Message{
		ID:     uuid.New().String(),
		Source: p.source,
		Paths:  unique(paths),
		At:     time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = p.channel.PublishWithContext(
		ctx,
		p.exchange, // exchange
		"",         // routing key, ignored for fanout
		false,      // mandatory
		false,      // immediate
		amqp.Publishing{
			ContentType: "application/json",
			Timestamp:   time.Now(),
			Body:        body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish message: %w", err)
	}

	return nil
}

// Consume applies invalidations published by other instances to target
// until ctx is done.
func (p *Publisher) Consume(ctx context.Context, target Invalidator) error {
	// Every instance gets its own exclusive queue that is removed on disconnect
	queue, err := p.channel.QueueDeclare(
		"",    // name, generated by the broker
		false, // durable
		true,  // delete when unused
		true,  // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}

	err = p.channel.QueueBind(queue.Name, "", p.exchange, false, nil)
	if err != nil {
		return fmt.Errorf("bind queue: %w", err)
	}

	deliveries, err := p.channel.Consume(
		queue.Name, // queue
		"",         // consumer
		true,       // auto-ack
		true,       // exclusive
		false,      // no-local
		false,      // no-wait
		nil,        // args
	)
	if err != nil {
		return fmt.Errorf("start consuming: %w", err)
	}

	log.Info().Str("exchange", p.exchange).Str("queue", queue.Name).Msg("Consuming view invalidations")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case delivery, ok := <-deliveries:
			if !ok {
				return errors.New("delivery channel closed")
			}

			if err := p.apply(ctx, delivery.Body, target); err != nil {
				log.Error().Err(err).Msg("Failed to apply view invalidation")
			}
		}
	}
}

// apply invalidates the paths of a message published by another instance.
func (p *Publisher) apply(ctx context.Context, body []byte, target Invalidator) error {
	var msg Message
	if err := json.Unmarshal(body, &msg); err != nil {
		return fmt.Errorf("unmarshal message: %w", err)
	}

	if msg.Source == p.source {
		return nil
	}

	return target.Invalidate(ctx, msg.Paths...)
}

// Close closes the channel and the connection to the broker.
func (p *Publisher) Close() error {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

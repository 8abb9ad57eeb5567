package queue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Handler processes one decoded event. A returned error rejects the message
// without requeueing it.
type Handler func(ctx context.Context, ev ReservationEvent) error

// Consumer reads ReservationEvents from a durable queue, reconnecting with
// exponential backoff until its context ends.
type Consumer struct {
	url        string
	queue      string
	logger     *slog.Logger
	prefetch   int
	maxBackoff time.Duration
}

// NewConsumer returns a consumer for queue on the broker at url.
func NewConsumer(url, queue string, logger *slog.Logger) *Consumer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Consumer{url: url, queue: queue, logger: logger, prefetch: 50, maxBackoff: 30 * time.Second}
}

// Run consumes until ctx is cancelled and then returns ctx.Err().
func (c *Consumer) Run(ctx context.Context, handle Handler) error {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(c.url)
		if err != nil {
			c.logger.WarnContext(ctx, "rabbitmq: dial failed", "error", err, "retry_in", backoff.String())
			if !sleep(ctx, backoff) {
				return ctx.Err()
			}
			backoff = min(backoff*2, c.maxBackoff)
			continue
		}
		backoff = time.Second

		err = c.consume(ctx, conn, handle)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.logger.WarnContext(ctx, "rabbitmq: consume loop ended; reconnecting", "error", err)
		if !sleep(ctx, 2*time.Second) {
			return ctx.Err()
		}
	}
}

func (c *Consumer) consume(ctx context.Context, conn *amqp.Connection, handle Handler) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(c.prefetch, 0, false); err != nil {
		c.logger.WarnContext(ctx, "rabbitmq: set QoS failed", "error", err)
	}
	if err := declareQueue(ch, c.queue); err != nil {
		return err
	}
	deliveries, err := ch.ConsumeWithContext(ctx, c.queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-deliveries:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			if err := c.dispatch(ctx, d.Body, handle); err != nil {
				c.logger.ErrorContext(ctx, "rabbitmq: handle message failed", "error", err)
				_ = d.Nack(false, false)
				continue
			}
			_ = d.Ack(false)
		}
	}
}

func (c *Consumer) dispatch(ctx context.Context, body []byte, handle Handler) error {
	ev, err := DecodeEvent(body)
	if err != nil {
		return err
	}
	return handle(ctx, ev)
}

func sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/example/neurosync/internal/application"
)

const (
	dialTimeout  = 2 * time.Second
	flushTimeout = 5 * time.Second
	backlogSize  = 64
)

// ErrBacklogFull is returned when events arrive faster than the broker takes them.
var ErrBacklogFull = errors.New("rabbitmq: publish backlog full")

// Publisher sends ReservationEvents to a durable queue. ReservationChanged only
// enqueues; a background worker owns delivery. The connection is opened
// lazily and reopened after a failed publish.
type Publisher struct {
	url    string
	queue  string
	logger *slog.Logger
	dial   func(ctx context.Context, url string) (*amqp.Connection, error)
	flush  time.Duration

	sendMu  sync.RWMutex
	closed  bool
	pending chan ReservationEvent
	stop    context.CancelFunc
	stopCtx context.Context
	done    chan struct{}

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

// NewPublisher returns a publisher for queue on the broker at url and starts
// its delivery worker. Close stops it.
func NewPublisher(url, queue string, logger *slog.Logger) *Publisher {
	return newPublisher(url, queue, logger, dialWithTimeout(dialTimeout))
}

func newPublisher(url, queue string, logger *slog.Logger, dial func(context.Context, string) (*amqp.Connection, error)) *Publisher {
	if logger == nil {
		logger = slog.Default()
	}
	stopCtx, stop := context.WithCancel(context.Background())
	p := &Publisher{
		url:     url,
		queue:   queue,
		logger:  logger,
		dial:    dial,
		flush:   flushTimeout,
		pending: make(chan ReservationEvent, backlogSize),
		stop:    stop,
		stopCtx: stopCtx,
		done:    make(chan struct{}),
	}
	go p.run()
	return p
}

// dialWithTimeout bounds the TCP connect and the AMQP handshake, and aborts
// when ctx is cancelled.
func dialWithTimeout(timeout time.Duration) func(context.Context, string) (*amqp.Connection, error) {
	return func(ctx context.Context, url string) (*amqp.Connection, error) {
		return amqp.DialConfig(url, amqp.Config{
			Heartbeat: 10 * time.Second,
			Locale:    "en_US",
			Dial: func(network, addr string) (net.Conn, error) {
				d := net.Dialer{Timeout: timeout}
				conn, err := d.DialContext(ctx, network, addr)
				if err != nil {
					return nil, err
				}
				// Cleared by the client once the handshake completes.
				if err := conn.SetDeadline(time.Now().Add(timeout)); err != nil {
					_ = conn.Close()
					return nil, err
				}
				return conn, nil
			},
		})
	}
}

// ReservationChanged implements application.ReservationNotifier. It never
// waits on the broker.
func (p *Publisher) ReservationChanged(_ context.Context, change application.ReservationChange) error {
	p.sendMu.RLock()
	defer p.sendMu.RUnlock()
	if p.closed {
		return errors.New("rabbitmq: publisher closed")
	}
	select {
	case p.pending <- EventFromChange(change):
		return nil
	default:
		return ErrBacklogFull
	}
}

func (p *Publisher) run() {
	defer close(p.done)
	for ev := range p.pending {
		if p.stopCtx.Err() != nil {
			p.logger.Warn("rabbitmq: dropping undelivered event", "queue", p.queue, "reservation_id", ev.ReservationID, "action", ev.Action)
			continue
		}
		if err := p.Publish(p.stopCtx, ev); err != nil {
			p.logger.Warn("rabbitmq: event not delivered", "queue", p.queue, "reservation_id", ev.ReservationID, "action", ev.Action, "error", err)
		}
	}
}

// Publish sends ev as a persistent JSON message.
func (p *Publisher) Publish(ctx context.Context, ev ReservationEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("rabbitmq: marshal event: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ensureChannelLocked(ctx); err != nil {
		p.logger.ErrorContext(ctx, "rabbitmq: connect failed", "queue", p.queue, "error", err)
		return err
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		MessageId:    ev.ReservationID + ":" + ev.Action,
		Body:         body,
	}
	if err := p.ch.PublishWithContext(ctx, "", p.queue, false, false, msg); err != nil {
		p.logger.ErrorContext(ctx, "rabbitmq: publish failed", "queue", p.queue, "error", err)
		p.resetLocked()
		return fmt.Errorf("rabbitmq: publish: %w", err)
	}
	p.logger.DebugContext(ctx, "reservation event published", "queue", p.queue, "reservation_id", ev.ReservationID, "action", ev.Action)
	return nil
}

func (p *Publisher) ensureChannelLocked(ctx context.Context) error {
	if p.ch != nil && !p.ch.IsClosed() {
		return nil
	}
	p.resetLocked()

	conn, err := p.dial(ctx, p.url)
	if err != nil {
		return fmt.Errorf("rabbitmq: dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("rabbitmq: open channel: %w", err)
	}
	if err := declareQueue(ch, p.queue); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return err
	}
	p.conn, p.ch = conn, ch
	return nil
}

func (p *Publisher) resetLocked() {
	if p.ch != nil {
		_ = p.ch.Close()
		p.ch = nil
	}
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
}

// Close stops accepting events, gives the worker a few seconds to deliver the
// backlog and then releases the broker connection.
func (p *Publisher) Close() error {
	p.sendMu.Lock()
	if !p.closed {
		p.closed = true
		close(p.pending)
	}
	p.sendMu.Unlock()

	timer := time.NewTimer(p.flush)
	defer timer.Stop()
	select {
	case <-p.done:
	case <-timer.C:
		p.logger.Warn("rabbitmq: backlog not flushed before close", "queue", p.queue)
	}
	p.stop()
	<-p.done

	p.mu.Lock()
	defer p.mu.Unlock()
	p.resetLocked()
	return nil
}

// declareQueue makes sure the durable queue exists.
func declareQueue(ch *amqp.Channel, name string) error {
	if _, err := ch.QueueDeclare(name, true, false, false, false, nil); err != nil {
		return fmt.Errorf("rabbitmq: declare queue %s: %w", name, err)
	}
	return nil
}

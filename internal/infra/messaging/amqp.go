// Package messaging carries receipt jobs from the API to the receipt worker over AMQP.
package messaging

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"table-booking/internal/pkg/config"
	"table-booking/internal/pkg/errs"
	"table-booking/internal/usecase/shared"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	maxReconnectBackoff = 30 * time.Second
	contentTypeJSON     = "application/json"
)

// ReceiptHandler processes one job. Returning an error rejects the delivery without requeue.
type ReceiptHandler func(ctx context.Context, reservationID uuid.UUID) error

// ReceiptPublisher lazily dials the broker and reuses the channel across publishes.
type ReceiptPublisher struct {
	url    string
	queue  string
	logger *slog.Logger

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewReceiptPublisher(cfg config.AMQPConfig, logger *slog.Logger) *ReceiptPublisher {
	return &ReceiptPublisher{
		url:    cfg.URL,
		queue:  cfg.ReceiptQueue,
		logger: logger,
	}
}

func (p *ReceiptPublisher) Enqueue(ctx context.Context, job shared.ReceiptJob) error {
	body, err := json.Marshal(job)
	if err != nil {
		return errs.Wrap(err, "failed to encode receipt job")
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	ch, err := p.channel()
	if err != nil {
		return err
	}

	err = ch.PublishWithContext(ctx, "", p.queue, false, false, amqp.Publishing{
		ContentType:  contentTypeJSON,
		DeliveryMode: amqp.Persistent,
		MessageId:    job.ReservationID.String(),
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
	if err != nil {
		p.reset()
		return errs.Wrap(err, "failed to publish receipt job")
	}
	return nil
}

func (p *ReceiptPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.reset()
	return nil
}

func (p *ReceiptPublisher) channel() (*amqp.Channel, error) {
	if p.ch != nil && !p.ch.IsClosed() {
		return p.ch, nil
	}
	p.reset()

	conn, err := amqp.Dial(p.url)
	if err != nil {
		return nil, errs.Wrap(err, "failed to dial broker")
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, errs.Wrap(err, "failed to open channel")
	}
	if _, err := declareQueue(ch, p.queue); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}

	p.conn, p.ch = conn, ch
	return ch, nil
}

func (p *ReceiptPublisher) reset() {
	if p.ch != nil {
		_ = p.ch.Close()
		p.ch = nil
	}
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
}

type ReceiptConsumer struct {
	url      string
	queue    string
	prefetch int
	handle   ReceiptHandler
	timeout  time.Duration
	logger   *slog.Logger
}

func NewReceiptConsumer(cfg config.AMQPConfig, handle ReceiptHandler, timeout time.Duration, logger *slog.Logger) *ReceiptConsumer {
	return &ReceiptConsumer{
		url:      cfg.URL,
		queue:    cfg.ReceiptQueue,
		prefetch: cfg.Prefetch,
		handle:   handle,
		timeout:  timeout,
		logger:   logger,
	}
}

// Run reconnects with exponential backoff until ctx is cancelled.
func (c *ReceiptConsumer) Run(ctx context.Context) error {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(c.url)
		if err != nil {
			c.logger.Warn("Failed to dial broker", "error", err.Error(), "retry_in", backoff)
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(backoff):
			}
			backoff = min(backoff*2, maxReconnectBackoff)
			continue
		}
		backoff = time.Second

		err = c.consume(ctx, conn)
		_ = conn.Close()
		if ctx.Err() != nil {
			return nil
		}
		c.logger.Warn("Consume loop ended, reconnecting", "error", errString(err))
	}
}

func (c *ReceiptConsumer) consume(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return errs.Wrap(err, "failed to open channel")
	}
	defer func() { _ = ch.Close() }()

	if c.prefetch > 0 {
		if err := ch.Qos(c.prefetch, 0, false); err != nil {
			c.logger.Warn("Failed to set QoS", "error", err.Error())
		}
	}
	if _, err := declareQueue(ch, c.queue); err != nil {
		return err
	}

	deliveries, err := ch.ConsumeWithContext(ctx, c.queue, "", false, false, false, false, nil)
	if err != nil {
		return errs.Wrap(err, "failed to consume queue")
	}
	c.logger.Info("Receipt consumer started", "queue", c.queue)

	for d := range deliveries {
		c.process(ctx, d)
	}
	return errs.New("deliveries channel closed")
}

func (c *ReceiptConsumer) process(ctx context.Context, d amqp.Delivery) {
	var job shared.ReceiptJob
	if err := json.Unmarshal(d.Body, &job); err != nil || job.ReservationID == uuid.Nil {
		c.logger.Warn("Rejecting malformed receipt job", "message_id", d.MessageId)
		_ = d.Nack(false, false)
		return
	}

	jobCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.handle(jobCtx, job.ReservationID); err != nil {
		c.logger.Error("Receipt job failed",
			"reservation_id", job.ReservationID,
			"error", err.Error())
		_ = d.Nack(false, false)
		return
	}
	_ = d.Ack(false)
}

func declareQueue(ch *amqp.Channel, name string) (amqp.Queue, error) {
	q, err := ch.QueueDeclare(name, true, false, false, false, nil)
	if err != nil {
		return q, errs.Wrapf(err, "failed to declare queue %s", name)
	}
	return q, nil
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

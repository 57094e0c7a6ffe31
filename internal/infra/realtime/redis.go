package realtime

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"table-booking/internal/domain/event"
	"table-booking/internal/pkg/config"
	"table-booking/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

func NewRedisClient(cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errs.Wrap(err, "failed to ping redis")
	}
	return client, nil
}

// RedisPublisher sends every event to a pub/sub channel so all instances can relay it.
type RedisPublisher struct {
	client  redis.UniversalClient
	channel string
}

func NewRedisPublisher(client redis.UniversalClient, channel string) *RedisPublisher {
	return &RedisPublisher{client: client, channel: channel}
}

func (p *RedisPublisher) Publish(ctx context.Context, e event.Event) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return errs.Wrap(err, "failed to encode event")
	}
	if err := p.client.Publish(ctx, p.channel, payload).Err(); err != nil {
		return errs.Wrapf(err, "failed to publish %s", e.Type)
	}
	return nil
}

// RedisRelay feeds events received on the pub/sub channel into the local hub.
type RedisRelay struct {
	client  redis.UniversalClient
	channel string
	hub     *Hub
	logger  *slog.Logger
}

func NewRedisRelay(client redis.UniversalClient, channel string, hub *Hub, logger *slog.Logger) *RedisRelay {
	return &RedisRelay{
		client:  client,
		channel: channel,
		hub:     hub,
		logger:  logger,
	}
}

// Run blocks until ctx is cancelled. go-redis re-subscribes on its own after connection loss.
func (r *RedisRelay) Run(ctx context.Context) error {
	sub := r.client.Subscribe(ctx, r.channel)
	defer func() {
		if err := sub.Close(); err != nil {
			r.logger.Warn("Failed to close redis subscription", "error", err.Error())
		}
	}()

	if _, err := sub.Receive(ctx); err != nil {
		return errs.Wrap(err, "failed to subscribe to events channel")
	}
	r.logger.Info("Redis relay subscribed", "channel", r.channel)

	msgs := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return nil
			}
			var e event.Event
			if err := json.Unmarshal([]byte(msg.Payload), &e); err != nil || !e.Type.IsValid() {
				r.logger.Warn("Ignoring malformed event", "channel", msg.Channel)
				continue
			}
			_ = r.hub.Publish(ctx, e)
		}
	}
}

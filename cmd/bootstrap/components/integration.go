package components

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"table-booking/internal/infra/mailer"
	"table-booking/internal/infra/messaging"
	"table-booking/internal/infra/payment"
	"table-booking/internal/infra/realtime"
	"table-booking/internal/pkg/config"
	"table-booking/internal/usecase/commands"
	"table-booking/internal/usecase/shared"

	"go.uber.org/fx"
)

const (
	inProcessReceiptWorkers  = 2
	inProcessReceiptCapacity = 128
	receiptDeliveryTimeout   = 30 * time.Second
)

var IntegrationModule = fx.Module("integration",
	fx.Provide(
		fx.Annotate(
			NewPaymentProvider,
			fx.As(new(shared.PaymentProvider)),
		),
		NewEventHub,
		NewEventPublisher,
		NewReceiptQueue,
		fx.Annotate(
			mailer.NewLogSender,
			fx.As(new(shared.ReceiptSender)),
		),
	),
)

func NewPaymentProvider(cfg config.Config, logger *slog.Logger) *payment.Cashfree {
	return payment.NewCashfree(cfg.Payment, &http.Client{}, logger)
}

func NewEventHub(logger *slog.Logger) *realtime.Hub {
	return realtime.NewHub(realtime.DefaultSubscriberBuffer, logger)
}

// NewEventPublisher publishes straight to the local hub unless Redis is configured. With Redis,
// every instance publishes to the channel and relays the channel back into its own hub, so SSE
// clients see events regardless of which instance handled the write.
func NewEventPublisher(lc fx.Lifecycle, cfg config.Config, hub *realtime.Hub, logger *slog.Logger) (shared.EventPublisher, error) {
	if !cfg.Redis.Enabled() {
		return hub, nil
	}

	client, err := realtime.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, err
	}
	relay := realtime.NewRedisRelay(client, cfg.Redis.EventsChannel, hub, logger)

	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				if err := relay.Run(ctx); err != nil {
					logger.Error("Redis event relay stopped", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			return client.Close()
		},
	})

	return realtime.NewRedisPublisher(client, cfg.Redis.EventsChannel), nil
}

// NewReceiptQueue hands receipts to the broker when one is configured and otherwise delivers
// them from a small in-process pool.
func NewReceiptQueue(lc fx.Lifecycle, cfg config.Config, receipts commands.ReceiptCommands, logger *slog.Logger) shared.ReceiptQueue {
	if cfg.AMQP.Enabled() {
		publisher := messaging.NewReceiptPublisher(cfg.AMQP, logger)
		lc.Append(fx.Hook{
			OnStop: func(context.Context) error {
				return publisher.Close()
			},
		})
		return publisher
	}

	queue := messaging.NewInProcessQueue(
		inProcessReceiptWorkers,
		inProcessReceiptCapacity,
		receipts.DeliverReceipt,
		receiptDeliveryTimeout,
		logger,
	)
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			queue.Close()
			return nil
		},
	})
	return queue
}

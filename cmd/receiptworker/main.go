// Command receiptworker consumes receipt jobs from the broker and delivers the receipts.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"table-booking/cmd/bootstrap"
	"table-booking/cmd/bootstrap/components"
	"table-booking/internal/infra/mailer"
	"table-booking/internal/infra/messaging"
	"table-booking/internal/pkg/clock"
	"table-booking/internal/pkg/config"
	"table-booking/internal/usecase/commands"
	"table-booking/internal/usecase/shared"

	"go.uber.org/fx"
)

const deliveryTimeout = 30 * time.Second

var errBrokerNotConfigured = errors.New("AMQP_URL is required for the receipt worker")

func startConsumer(lc fx.Lifecycle, shutdowner fx.Shutdowner, cfg config.Config, receipts commands.ReceiptCommands, logger *slog.Logger) error {
	if !cfg.AMQP.Enabled() {
		return errBrokerNotConfigured
	}

	consumer := messaging.NewReceiptConsumer(cfg.AMQP, receipts.DeliverReceipt, deliveryTimeout, logger)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			logger.Info("Starting receipt worker", "queue", cfg.AMQP.ReceiptQueue)
			go func() {
				defer close(done)
				if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
					logger.Error("Receipt consumer stopped", "error", err)
					_ = shutdowner.Shutdown(fx.ExitCode(1))
				}
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
			case <-stopCtx.Done():
			}
			logger.Info("Receipt worker stopped")
			return nil
		},
	})
	return nil
}

func main() {
	app := fx.New(
		bootstrap.ConfigModule,
		bootstrap.LoggerModule,
		bootstrap.DBModule,
		components.PersistenceModule,
		fx.Provide(
			clock.NewRealClock,
			components.NewBookingLocation,
			components.NewCommandOptions,
			fx.Annotate(
				mailer.NewLogSender,
				fx.As(new(shared.ReceiptSender)),
			),
			commands.NewReceiptCommands,
		),
		fx.Invoke(startConsumer),
	)

	if err := app.Start(context.Background()); err != nil {
		slog.Error("Failed to start receipt worker", "error", err)
		os.Exit(1)
	}

	sig := <-app.Wait()

	if err := app.Stop(context.Background()); err != nil {
		slog.Error("Failed to stop receipt worker cleanly", "error", err)
	}
	os.Exit(sig.ExitCode)
}

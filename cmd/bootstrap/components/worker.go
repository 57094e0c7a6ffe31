package components

import (
	"context"
	"log/slog"

	"table-booking/internal/pkg/config"
	"table-booking/internal/usecase/commands"
	"table-booking/internal/worker"

	"go.uber.org/fx"
)

var WorkerModule = fx.Module("worker",
	fx.Invoke(StartInvoiceSweeper),
)

func StartInvoiceSweeper(lc fx.Lifecycle, cfg config.Config, receipts commands.ReceiptCommands, logger *slog.Logger) {
	sweeper := worker.NewInvoiceSweeper(receipts, cfg.Receipt.SweepInterval, logger)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				defer close(done)
				sweeper.Run(ctx)
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
			case <-stopCtx.Done():
			}
			return nil
		},
	})
}

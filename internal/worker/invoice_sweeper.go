package worker

import (
	"context"
	"log/slog"
	"time"
)

type InvoiceCleaner interface {
	ClearExpiredInvoices(ctx context.Context) (int64, error)
}

// InvoiceSweeper periodically clears receipt links whose expiry has passed.
type InvoiceSweeper struct {
	cleaner  InvoiceCleaner
	interval time.Duration
	logger   *slog.Logger
}

func NewInvoiceSweeper(cleaner InvoiceCleaner, interval time.Duration, logger *slog.Logger) *InvoiceSweeper {
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	return &InvoiceSweeper{cleaner: cleaner, interval: interval, logger: logger}
}

// Run sweeps once immediately and then on every tick until ctx is done.
func (s *InvoiceSweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.Sweep(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

func (s *InvoiceSweeper) Sweep(ctx context.Context) {
	cleared, err := s.cleaner.ClearExpiredInvoices(ctx)
	if err != nil {
		if ctx.Err() == nil {
			s.logger.Error("failed to clear expired invoices", "error", err)
		}
		return
	}
	if cleared > 0 {
		s.logger.Info("cleared expired invoices", "count", cleared)
	}
}

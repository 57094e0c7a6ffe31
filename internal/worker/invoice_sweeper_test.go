//go:build unit

package worker_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"table-booking/internal/worker"

	"github.com/stretchr/testify/assert"
)

type countingCleaner struct {
	calls atomic.Int32
	err   error
}

func (c *countingCleaner) ClearExpiredInvoices(context.Context) (int64, error) {
	c.calls.Add(1)
	return 1, c.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestInvoiceSweeperRunsUntilCancelled(t *testing.T) {
	cleaner := &countingCleaner{}
	sweeper := worker.NewInvoiceSweeper(cleaner, 10*time.Millisecond, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sweeper.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return cleaner.calls.Load() >= 3 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop after cancel")
	}
}

func TestInvoiceSweeperSurvivesErrors(t *testing.T) {
	cleaner := &countingCleaner{err: errors.New("db down")}
	sweeper := worker.NewInvoiceSweeper(cleaner, time.Hour, discardLogger())

	sweeper.Sweep(context.Background())
	sweeper.Sweep(context.Background())

	assert.Equal(t, int32(2), cleaner.calls.Load())
}

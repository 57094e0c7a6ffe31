package messaging

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"table-booking/internal/usecase/shared"
)

// InProcessQueue runs receipt jobs on a bounded pool of goroutines inside the API process.
// It is used when no broker is configured. Jobs still queued at shutdown are dropped.
type InProcessQueue struct {
	jobs    chan shared.ReceiptJob
	handle  ReceiptHandler
	timeout time.Duration
	logger  *slog.Logger
	wg      sync.WaitGroup
}

func NewInProcessQueue(workers, capacity int, handle ReceiptHandler, timeout time.Duration, logger *slog.Logger) *InProcessQueue {
	q := &InProcessQueue{
		jobs:    make(chan shared.ReceiptJob, capacity),
		handle:  handle,
		timeout: timeout,
		logger:  logger,
	}
	for range max(workers, 1) {
		q.wg.Add(1)
		go q.work()
	}
	return q
}

func (q *InProcessQueue) Enqueue(ctx context.Context, job shared.ReceiptJob) error {
	select {
	case q.jobs <- job:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops accepting jobs and waits for in-flight ones.
func (q *InProcessQueue) Close() {
	close(q.jobs)
	q.wg.Wait()
}

func (q *InProcessQueue) work() {
	defer q.wg.Done()
	for job := range q.jobs {
		ctx, cancel := context.WithTimeout(context.Background(), q.timeout)
		if err := q.handle(ctx, job.ReservationID); err != nil {
			q.logger.Error("Receipt job failed",
				"reservation_id", job.ReservationID,
				"error", err.Error())
		}
		cancel()
	}
}

//go:build unit

package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"table-booking/internal/domain/availability"
	"table-booking/internal/domain/event"
	"table-booking/internal/domain/reservation"
	"table-booking/internal/domain/user"
	"table-booking/internal/pkg/clock"
	"table-booking/internal/usecase/commands"
	"table-booking/internal/usecase/shared"
	"table-booking/tests/common/builder"
	sharedmock "table-booking/tests/mock/shared"

	"github.com/google/uuid"
	"go.uber.org/mock/gomock"
)

// now sits two days before the default builder interval.
var now = time.Date(2030, time.June, 8, 9, 0, 0, 0, builder.IST)

type deps struct {
	uow       *sharedmock.MockUnitOfWork
	tx        *sharedmock.MockTx
	reads     *sharedmock.MockCommandReads
	repo      *sharedmock.MockReservationRepository
	provider  *sharedmock.MockPaymentProvider
	publisher *sharedmock.MockEventPublisher
	receipts  *sharedmock.MockReceiptQueue
	sender    *sharedmock.MockReceiptSender
	clock     *clock.MockClock
	opts      commands.Options
	logger    *slog.Logger
}

// newDeps wires a unit of work whose transactions run the callback directly against the
// mocked repository and reads.
func newDeps(t *testing.T) *deps {
	t.Helper()
	ctrl := gomock.NewController(t)

	d := &deps{
		uow:       sharedmock.NewMockUnitOfWork(ctrl),
		tx:        sharedmock.NewMockTx(ctrl),
		reads:     sharedmock.NewMockCommandReads(ctrl),
		repo:      sharedmock.NewMockReservationRepository(ctrl),
		provider:  sharedmock.NewMockPaymentProvider(ctrl),
		publisher: sharedmock.NewMockEventPublisher(ctrl),
		receipts:  sharedmock.NewMockReceiptQueue(ctrl),
		sender:    sharedmock.NewMockReceiptSender(ctrl),
		clock:     clock.NewMockClock(now),
		opts:      commands.DefaultOptions(),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	d.opts.ProviderTimeout = time.Second
	d.opts.ReceiptTimeout = time.Second

	d.uow.EXPECT().CommandReads().Return(d.reads).AnyTimes()
	d.uow.EXPECT().Within(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context, shared.Tx) error) error {
			return fn(ctx, d.tx)
		}).AnyTimes()
	d.tx.EXPECT().Reservations().Return(d.repo).AnyTimes()
	d.tx.EXPECT().Reads().Return(d.reads).AnyTimes()
	d.tx.EXPECT().DB().Return(nil).AnyTimes()
	return d
}

func (d *deps) reservationCommands() commands.ReservationCommands {
	factory := reservation.NewFactory(d.clock, reservation.NewHourlyRateCalculator())
	return commands.NewReservationCommands(d.uow, factory, d.provider, d.publisher, d.receipts, d.clock,
		availability.DefaultPolicy(), builder.IST, d.opts, d.logger)
}

func (d *deps) cancellationCommands() commands.CancellationCommands {
	return commands.NewCancellationCommands(d.uow, d.provider, d.publisher, d.clock, d.opts, d.logger)
}

func (d *deps) paymentCommands() commands.PaymentCommands {
	factory := reservation.NewFactory(d.clock, reservation.NewHourlyRateCalculator())
	return commands.NewPaymentCommands(d.uow, factory, d.provider, d.opts)
}

func (d *deps) receiptCommands() commands.ReceiptCommands {
	return commands.NewReceiptCommands(d.uow, d.sender, d.clock, builder.IST, d.opts, d.logger)
}

func (d *deps) expectTable(id uuid.UUID, rateCents int64) {
	d.reads.EXPECT().TableByID(gomock.Any(), id).
		Return(&shared.TableSnapshot{ID: id, Number: 4, HourlyRateCents: rateCents, IsAvailable: true}, nil).
		AnyTimes()
}

// recordEvents captures every published event type in order.
func (d *deps) recordEvents() *[]event.Type {
	var types []event.Type
	d.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e event.Event) error {
			types = append(types, e.Type)
			return nil
		}).AnyTimes()
	return &types
}

func customer() user.Actor {
	return user.Actor{ID: uuid.New(), Role: user.RoleCustomer}
}

func admin() user.Actor {
	return user.Actor{ID: uuid.New(), Role: user.RoleAdmin}
}

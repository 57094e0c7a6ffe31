package commands

import (
	"context"
	"strings"
	"time"

	"table-booking/internal/domain/reservation"
	"table-booking/internal/domain/user"
	"table-booking/internal/pkg/errs"
	"table-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

const orderIDLength = 12

const (
	orderTagTable = "table_id"
	orderTagStart = "start"
	orderTagEnd   = "end"
)

type CreateOrderInput struct {
	TableID uuid.UUID
	Start   time.Time
	End     time.Time
}

type OrderResult struct {
	OrderID   string
	SessionID string
	Amount    reservation.Money
	Currency  string
}

type PaymentCommands interface {
	// CreateOrder opens a provider order for the price of the requested interval. The amount
	// is always computed here from the table rate, never taken from the client.
	CreateOrder(ctx context.Context, in CreateOrderInput, actor user.Actor) (*OrderResult, error)
	OrderStatus(ctx context.Context, orderID string) (shared.AggregatedPaymentStatus, error)
}

type paymentCommandsImpl struct {
	uow      shared.UnitOfWork
	factory  *reservation.Factory
	provider shared.PaymentProvider
	opts     Options
}

func NewPaymentCommands(uow shared.UnitOfWork, factory *reservation.Factory, provider shared.PaymentProvider, opts Options) PaymentCommands {
	return &paymentCommandsImpl{
		uow:      uow,
		factory:  factory,
		provider: provider,
		opts:     opts,
	}
}

func (uc *paymentCommandsImpl) CreateOrder(ctx context.Context, in CreateOrderInput, actor user.Actor) (*OrderResult, error) {
	slot, err := reservation.NewTimeSlot(in.Start, in.End)
	if err != nil {
		return nil, markDomain(err)
	}
	tbl, err := loadTable(ctx, uc.uow.CommandReads(), in.TableID)
	if err != nil {
		return nil, err
	}
	if err := tbl.EnsureBookable(); err != nil {
		return nil, markDomain(err)
	}
	price, err := uc.factory.Price(tbl, slot)
	if err != nil {
		return nil, markDomain(err)
	}
	contact, err := uc.uow.CommandReads().UserContact(ctx, actor.ID)
	if err != nil {
		return nil, notFound(err, errs.ErrUnauthorized)
	}

	ctx, cancel := context.WithTimeout(ctx, uc.opts.ProviderTimeout)
	defer cancel()

	order, err := uc.provider.CreateOrder(ctx, shared.OrderRequest{
		OrderID:  NewOrderID(),
		Amount:   price,
		Currency: uc.opts.Currency,
		Customer: shared.OrderCustomer{
			ID:    actor.ID.String(),
			Name:  contact.Name,
			Email: contact.Email,
			Phone: contact.Phone,
		},
		Tags: OrderTags(tbl.ID(), slot.Start(), slot.End()),
	})
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "order creation failed"), errs.ErrProviderUnavailable)
	}
	return &OrderResult{
		OrderID:   order.OrderID,
		SessionID: order.SessionID,
		Amount:    price,
		Currency:  uc.opts.Currency,
	}, nil
}

func (uc *paymentCommandsImpl) OrderStatus(ctx context.Context, orderID string) (shared.AggregatedPaymentStatus, error) {
	if strings.TrimSpace(orderID) == "" {
		return "", errs.Mark(ErrPaymentProofMissing, errs.ErrValidation)
	}
	ctx, cancel := context.WithTimeout(ctx, uc.opts.ProviderTimeout)
	defer cancel()

	status, err := uc.provider.OrderPaymentStatus(ctx, orderID)
	if err != nil {
		return "", errs.Mark(errs.Wrap(err, "order status lookup failed"), errs.ErrProviderUnavailable)
	}
	return status, nil
}

// OrderTags records the table and interval an order pays for. Instants are stored in UTC.
func OrderTags(tableID uuid.UUID, start, end time.Time) map[string]string {
	return map[string]string{
		orderTagTable: tableID.String(),
		orderTagStart: start.UTC().Format(time.RFC3339),
		orderTagEnd:   end.UTC().Format(time.RFC3339),
	}
}

// orderBinding is the booking a paid order must match before it can back a reservation.
type orderBinding struct {
	tableID    uuid.UUID
	slot       reservation.TimeSlot
	price      reservation.Money
	customerID uuid.UUID
}

func (b orderBinding) check(order *shared.OrderDetails) error {
	if order.Amount.Cents() != b.price.Cents() {
		return errs.Wrapf(ErrOrderMismatch, "order %s is for %d, booking costs %d", order.OrderID, order.Amount.Cents(), b.price.Cents())
	}
	if order.CustomerID != b.customerID.String() {
		return errs.Wrapf(ErrOrderMismatch, "order %s belongs to another customer", order.OrderID)
	}
	for k, v := range OrderTags(b.tableID, b.slot.Start(), b.slot.End()) {
		if order.Tags[k] != v {
			return errs.Wrapf(ErrOrderMismatch, "order %s %s is %q, want %q", order.OrderID, k, order.Tags[k], v)
		}
	}
	return nil
}

// NewOrderID returns a short provider order id derived from a random uuid.
func NewOrderID() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "_")
	return "order_" + id[:orderIDLength]
}

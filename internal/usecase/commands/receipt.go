package commands

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"text/template"
	"time"

	"table-booking/internal/domain/reservation"
	"table-booking/internal/pkg/clock"
	"table-booking/internal/pkg/errs"
	"table-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

var receiptTemplate = template.Must(template.New("receipt").Parse(`Hello {{.Name}},

Your booking for table {{.TableNumber}} is {{.Status}}.

  From:     {{.Start}}
  To:       {{.End}}
  Duration: {{.Minutes}} minutes
  Total:    {{.Total}} {{.Currency}}
  Payment:  {{.Payment}}

Receipt: {{.Link}}
The link is valid until {{.ExpiresAt}}.
`))

type receiptView struct {
	Name        string
	TableNumber int
	Status      string
	Start       string
	End         string
	Minutes     int
	Total       string
	Currency    string
	Payment     string
	Link        string
	ExpiresAt   string
}

type ReceiptCommands interface {
	DeliverReceipt(ctx context.Context, id uuid.UUID) error
	ClearExpiredInvoices(ctx context.Context) (int64, error)
}

type receiptCommandsImpl struct {
	uow    shared.UnitOfWork
	sender shared.ReceiptSender
	clock  clock.Clock
	loc    *time.Location
	opts   Options
	logger *slog.Logger
}

func NewReceiptCommands(uow shared.UnitOfWork, sender shared.ReceiptSender, clk clock.Clock, loc *time.Location, opts Options, logger *slog.Logger) ReceiptCommands {
	if loc == nil {
		loc = time.UTC
	}
	return &receiptCommandsImpl{
		uow:    uow,
		sender: sender,
		clock:  clk,
		loc:    loc,
		opts:   opts,
		logger: logger,
	}
}

// DeliverReceipt sends the receipt and records the expiring receipt link on the reservation.
// Redelivery of the same job sends again and refreshes the link.
func (uc *receiptCommandsImpl) DeliverReceipt(ctx context.Context, id uuid.UUID) error {
	reads := uc.uow.CommandReads()

	res, err := reads.ReservationByID(ctx, id)
	if err != nil {
		return notFound(err, ErrReservationNotFound)
	}
	tbl, err := reads.TableByID(ctx, res.TableID())
	if err != nil {
		return notFound(err, ErrTableNotFound)
	}
	contact, err := uc.contactFor(ctx, res)
	if err != nil {
		return err
	}

	now := uc.clock.Now()
	invoice := reservation.Invoice{
		Link:      fmt.Sprintf("%s/%s", uc.opts.InvoiceLinkBase, res.ID()),
		ExpiresAt: now.Add(uc.opts.InvoiceLinkTTL),
	}

	body, err := uc.render(res, tbl.Number, contact, invoice)
	if err != nil {
		return err
	}
	if err := uc.sender.Send(ctx, shared.Receipt{
		To:      *contact,
		Subject: fmt.Sprintf("Booking receipt for table %d", tbl.Number),
		Body:    body,
	}); err != nil {
		return errs.Wrap(err, "failed to send receipt")
	}

	res.AttachInvoice(invoice, now)
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Reservations().AttachInvoice(ctx, tx.DB(), res)
	})
}

func (uc *receiptCommandsImpl) ClearExpiredInvoices(ctx context.Context) (int64, error) {
	var cleared int64
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		n, err := tx.Reservations().ClearExpiredInvoices(ctx, tx.DB(), uc.clock.Now())
		cleared = n
		return err
	})
	if err != nil {
		return 0, err
	}
	if cleared > 0 {
		uc.logger.Info("expired receipt links cleared", "count", cleared)
	}
	return cleared, nil
}

func (uc *receiptCommandsImpl) contactFor(ctx context.Context, res *reservation.Reservation) (*shared.Contact, error) {
	if m := res.Holder().Manual(); m != nil {
		return &shared.Contact{Name: m.Name, Email: m.Email, Phone: m.Phone}, nil
	}
	return uc.uow.CommandReads().UserContact(ctx, *res.Holder().UserID())
}

func (uc *receiptCommandsImpl) render(res *reservation.Reservation, tableNumber int, to *shared.Contact, inv reservation.Invoice) (string, error) {
	const layout = "02 Jan 2006 15:04"

	payment := "paid online"
	if res.Payment().IsCash() {
		payment = "cash at the venue"
	}
	view := receiptView{
		Name:        to.Name,
		TableNumber: tableNumber,
		Status:      res.Status().String(),
		Start:       res.TimeSlot().Start().In(uc.loc).Format(layout),
		End:         res.TimeSlot().End().In(uc.loc).Format(layout),
		Minutes:     res.TimeSlot().DurationMinutes(),
		Total:       fmt.Sprintf("%.2f", res.Price().Amount()),
		Currency:    uc.opts.Currency,
		Payment:     payment,
		Link:        inv.Link,
		ExpiresAt:   inv.ExpiresAt.In(uc.loc).Format(layout),
	}

	var buf bytes.Buffer
	if err := receiptTemplate.Execute(&buf, view); err != nil {
		return "", errs.Wrap(err, "failed to render receipt")
	}
	return buf.String(), nil
}

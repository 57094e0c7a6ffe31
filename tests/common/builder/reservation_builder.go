//go:build unit || e2e

package builder

import (
	"time"

	"table-booking/internal/domain/reservation"
	"table-booking/internal/domain/table"
	reqdto "table-booking/internal/handler/dto/request"
	sqlc "table-booking/internal/infra/sqlc/generated"
	"table-booking/internal/pkg/clock"
	"table-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

var IST = time.FixedZone("IST", 5*3600+1800)

// ReservationBuilder produces confirmed reservations for a table priced at RateCents per hour.
type ReservationBuilder struct {
	TableID   uuid.UUID
	RateCents int64
	UserID    *uuid.UUID
	Manual    *reservation.ManualCustomer
	Start     time.Time
	End       time.Time
	Payment   reservation.Payment
	CreatedAt time.Time
}

func NewReservationBuilder() *ReservationBuilder {
	userID := uuid.New()
	start := time.Date(2030, time.June, 10, 12, 0, 0, 0, IST)
	return &ReservationBuilder{
		TableID:   uuid.New(),
		RateCents: 50000,
		UserID:    &userID,
		Start:     start,
		End:       start.Add(2 * time.Hour),
		Payment:   reservation.OnlinePayment("order_a1b2c3d4e5f6", "session_test"),
		CreatedAt: start.Add(-48 * time.Hour),
	}
}

func (b *ReservationBuilder) With(mutate func(*ReservationBuilder)) *ReservationBuilder {
	mutate(b)
	return b
}

func (b *ReservationBuilder) WithTable(id uuid.UUID) *ReservationBuilder {
	b.TableID = id
	return b
}

func (b *ReservationBuilder) WithUser(id uuid.UUID) *ReservationBuilder {
	b.UserID = &id
	b.Manual = nil
	return b
}

func (b *ReservationBuilder) WithManual(name, email, phone string) *ReservationBuilder {
	b.UserID = nil
	b.Manual = &reservation.ManualCustomer{Name: name, Email: email, Phone: phone}
	return b
}

func (b *ReservationBuilder) WithInterval(start, end time.Time) *ReservationBuilder {
	b.Start = start
	b.End = end
	return b
}

func (b *ReservationBuilder) AsCash() *ReservationBuilder {
	b.Payment = reservation.CashPayment()
	return b
}

func (b *ReservationBuilder) holder() reservation.Holder {
	if b.Manual != nil {
		h, err := reservation.ManualHolder(*b.Manual)
		if err != nil {
			panic(err)
		}
		return h
	}
	return reservation.ReconstructHolder(b.UserID, nil)
}

// BuildDomain goes through the factory so price and defaults match production.
func (b *ReservationBuilder) BuildDomain() *reservation.Reservation {
	tbl := table.ReconstructTable(b.TableID, 1, b.RateCents, true, b.CreatedAt, b.CreatedAt)
	slot, err := reservation.NewTimeSlot(b.Start, b.End)
	if err != nil {
		panic(err)
	}
	f := reservation.NewFactory(clock.NewMockClock(b.CreatedAt), reservation.NewHourlyRateCalculator())
	res, err := f.CreateReservation(tbl, b.holder(), slot, b.Payment)
	if err != nil {
		panic(err)
	}
	return res
}

func (b *ReservationBuilder) BuildInfra() sqlc.Reservations {
	res := b.BuildDomain()
	row := sqlc.Reservations{
		ID:                res.ID(),
		TableID:           res.TableID(),
		StartTime:         pgtype.Timestamptz{Time: b.Start, Valid: true},
		EndTime:           pgtype.Timestamptz{Time: b.End, Valid: true},
		DurationMinutes:   int32(res.TimeSlot().DurationMinutes()),
		TotalPriceCents:   res.Price().Cents(),
		Status:            res.Status().String(),
		PaymentStatus:     res.Payment().Status().String(),
		RefundStatus:      res.Refund().Status().String(),
		CreatedAt:         pgtype.Timestamptz{Time: b.CreatedAt, Valid: true},
		UpdatedAt:         pgtype.Timestamptz{Time: b.CreatedAt, Valid: true},
		RefundAmountCents: 0,
	}
	if b.UserID != nil {
		row.UserID = pgtype.UUID{Bytes: *b.UserID, Valid: true}
	}
	if m := res.Holder().Manual(); m != nil {
		row.ManualName = pgtype.Text{String: m.Name, Valid: true}
		row.ManualEmail = pgtype.Text{String: m.Email, Valid: true}
		row.ManualPhone = pgtype.Text{String: m.Phone, Valid: m.Phone != ""}
	}
	if id := res.Payment().OrderID(); id != "" {
		row.PaymentOrderID = pgtype.Text{String: id, Valid: true}
		row.PaymentSessionID = pgtype.Text{String: res.Payment().SessionID(), Valid: true}
	}
	return row
}

func (b *ReservationBuilder) BuildListItem() *queries.ReservationListItem {
	res := b.BuildDomain()
	return &queries.ReservationListItem{
		ID:              res.ID(),
		TableID:         res.TableID(),
		UserID:          b.UserID,
		Start:           b.Start,
		End:             b.End,
		DurationMinutes: res.TimeSlot().DurationMinutes(),
		TotalPriceCents: res.Price().Cents(),
		Status:          res.Status().String(),
		PaymentStatus:   res.Payment().Status().String(),
		RefundStatus:    res.Refund().Status().String(),
		CreatedAt:       b.CreatedAt,
	}
}

func (b *ReservationBuilder) BuildCreateRequest() reqdto.CreateReservationRequest {
	req := reqdto.CreateReservationRequest{
		TableID:   b.TableID,
		StartTime: b.Start,
		EndTime:   b.End,
	}
	if id := b.Payment.OrderID(); id != "" {
		req.Payment = &reqdto.PaymentProofRequest{OrderID: id, SessionID: b.Payment.SessionID()}
	}
	if m := b.Manual; m != nil {
		req.ManualCustomer = &reqdto.ManualCustomerRequest{Name: m.Name, Email: m.Email, Phone: m.Phone}
	}
	return req
}

package converter

import (
	"fmt"
	"math"

	"table-booking/internal/domain/reservation"
	sqlc "table-booking/internal/infra/sqlc/generated"
	"table-booking/internal/pkg/pgconv"
)

func ReservationToInfra(res *reservation.Reservation) sqlc.CreateReservationParams {
	slot := res.TimeSlot()

	minutes := slot.DurationMinutes()
	if minutes > math.MaxInt32 {
		panic(fmt.Sprintf("duration minutes out of int32 range: %d", minutes))
	}

	params := sqlc.CreateReservationParams{
		ID:                res.ID(),
		TableID:           res.TableID(),
		UserID:            pgconv.UUIDPtrToPgtype(res.Holder().UserID()),
		StartTime:         pgconv.TimeToPgtype(slot.Start()),
		EndTime:           pgconv.TimeToPgtype(slot.End()),
		DurationMinutes:   int32(minutes),
		TotalPriceCents:   res.Price().Cents(),
		Status:            res.Status().String(),
		PaymentOrderID:    pgconv.NullableText(res.Payment().OrderID()),
		PaymentSessionID:  pgconv.NullableText(res.Payment().SessionID()),
		PaymentStatus:     res.Payment().Status().String(),
		RefundStatus:      res.Refund().Status().String(),
		RefundAmountCents: res.Refund().Amount().Cents(),
		RefundID:          pgconv.NullableText(res.Refund().ID()),
		CreatedAt:         pgconv.TimeToPgtype(res.CreatedAt()),
		UpdatedAt:         pgconv.TimeToPgtype(res.UpdatedAt()),
	}

	if m := res.Holder().Manual(); m != nil {
		params.ManualName = pgconv.NullableText(m.Name)
		params.ManualEmail = pgconv.NullableText(m.Email)
		params.ManualPhone = pgconv.NullableText(m.Phone)
	}
	return params
}

// ReservationFromRow rebuilds the aggregate from a stored row. Rows are trusted: the table
// constraints already enforce the interval and holder rules.
func ReservationFromRow(row sqlc.Reservations) *reservation.Reservation {
	var manual *reservation.ManualCustomer
	if row.ManualName.Valid {
		manual = &reservation.ManualCustomer{
			Name:  row.ManualName.String,
			Email: pgconv.StringFromPgtype(row.ManualEmail),
			Phone: pgconv.StringFromPgtype(row.ManualPhone),
		}
	}

	var invoice *reservation.Invoice
	if row.InvoiceLink.Valid {
		invoice = &reservation.Invoice{
			Link:      row.InvoiceLink.String,
			ExpiresAt: pgconv.TimeFromPgtype(row.InvoiceExpiresAt),
		}
	}

	return reservation.ReconstructReservation(
		row.ID,
		row.TableID,
		reservation.ReconstructHolder(pgconv.UUIDPtrFromPgtype(row.UserID), manual),
		reservation.ReconstructTimeSlot(pgconv.TimeFromPgtype(row.StartTime), pgconv.TimeFromPgtype(row.EndTime)),
		reservation.NewMoney(row.TotalPriceCents),
		reservation.Status(row.Status),
		reservation.ReconstructPayment(
			pgconv.StringFromPgtype(row.PaymentOrderID),
			pgconv.StringFromPgtype(row.PaymentSessionID),
			reservation.PaymentStatus(row.PaymentStatus),
		),
		reservation.ReconstructRefund(
			reservation.RefundStatus(row.RefundStatus),
			reservation.NewMoney(row.RefundAmountCents),
			pgconv.StringFromPgtype(row.RefundID),
		),
		invoice,
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimeFromPgtype(row.UpdatedAt),
	)
}

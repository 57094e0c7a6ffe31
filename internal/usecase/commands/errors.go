package commands

import (
	"fmt"

	"table-booking/internal/domain/reservation"
	"table-booking/internal/domain/table"
	"table-booking/internal/infra"
	"table-booking/internal/pkg/errs"
)

var (
	ErrTableNotFound       = errs.New("table not found")
	ErrReservationNotFound = errs.New("reservation not found")
	ErrHolderRequired      = errs.New("admin bookings need a user id or a manual customer")
	ErrPaymentNotConfirmed = errs.New("payment has not succeeded for this order")
	ErrPaymentProofMissing = errs.New("payment proof is required")
	ErrOrderMismatch       = errs.New("payment order was opened for a different booking")
	ErrOrderAlreadyUsed    = errs.New("payment order already backs a reservation")
	ErrOffGrid             = errs.New("interval must start and end on the booking grid")
	ErrNotHolder           = errs.New("only the holder or an admin may manage this reservation")
)

// ConflictError reports the active reservation a candidate interval collides with.
// Existing is nil when the collision was only detected by the database constraint and the
// winner could not be read back.
type ConflictError struct {
	Existing *reservation.Reservation
}

func (e *ConflictError) Error() string {
	if e.Existing == nil {
		return "slot conflict"
	}
	return fmt.Sprintf("slot conflict with reservation %s", e.Existing.ID())
}

func (e *ConflictError) Is(target error) bool {
	return target == errs.ErrSlotConflict
}

func notFound(err error, sentinel error) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return errs.Mark(errs.Mark(err, sentinel), errs.ErrNotFound)
	}
	return err
}

// markDomain tags domain validation failures with the taxonomy used by handlers.
func markDomain(err error) error {
	switch {
	case err == nil:
		return nil
	case errs.Is(err, reservation.ErrAlreadyCancelled):
		return errs.Mark(err, errs.ErrAlreadyCancelled)
	case errs.Is(err, reservation.ErrInvalidTimeSlot),
		errs.Is(err, reservation.ErrDurationTooShort),
		errs.Is(err, reservation.ErrStartInPast),
		errs.Is(err, reservation.ErrInvalidHolder),
		errs.Is(err, reservation.ErrNegativePrice),
		errs.Is(err, reservation.ErrReservationCancelled),
		errs.Is(err, table.ErrTableNotAvailable):
		return errs.Mark(err, errs.ErrValidation)
	default:
		return err
	}
}

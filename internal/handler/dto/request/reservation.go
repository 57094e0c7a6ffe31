package request

import (
	"strings"
	"time"

	"table-booking/internal/domain/reservation"
	"table-booking/internal/usecase/commands"

	"github.com/google/uuid"
)

type ManualCustomerRequest struct {
	Name  string `json:"name" binding:"required,max=100"`
	Email string `json:"email" binding:"required,email"`
	Phone string `json:"phone,omitempty"`
}

type PaymentProofRequest struct {
	OrderID   string `json:"orderId" binding:"required"`
	SessionID string `json:"sessionId,omitempty"`
}

// CreateReservationRequest: userId and manualCustomer are read for admins only.
type CreateReservationRequest struct {
	TableID        uuid.UUID              `json:"tableId" binding:"required"`
	StartTime      time.Time              `json:"startTime" binding:"required"`
	EndTime        time.Time              `json:"endTime" binding:"required"`
	UserID         *uuid.UUID             `json:"userId,omitempty"`
	ManualCustomer *ManualCustomerRequest `json:"manualCustomer,omitempty"`
	Payment        *PaymentProofRequest   `json:"payment,omitempty"`
}

func (r CreateReservationRequest) ToInput() commands.AdmitInput {
	in := commands.AdmitInput{
		TableID: r.TableID,
		UserID:  r.UserID,
		Start:   r.StartTime,
		End:     r.EndTime,
	}
	if m := r.ManualCustomer; m != nil {
		in.Manual = &reservation.ManualCustomer{
			Name:  strings.TrimSpace(m.Name),
			Email: strings.TrimSpace(m.Email),
			Phone: strings.TrimSpace(m.Phone),
		}
	}
	if p := r.Payment; p != nil {
		in.Payment = &commands.PaymentProof{OrderID: strings.TrimSpace(p.OrderID), SessionID: p.SessionID}
	}
	return in
}

type UpdateReservationTimeRequest struct {
	StartTime time.Time `json:"startTime" binding:"required"`
	EndTime   time.Time `json:"endTime" binding:"required"`
}

func (r UpdateReservationTimeRequest) ToInput() commands.UpdateTimeInput {
	return commands.UpdateTimeInput{Start: r.StartTime, End: r.EndTime}
}

type ListReservationsQuery struct {
	Cursor string `form:"cursor"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=200"`
}

type AvailabilityQuery struct {
	Date  string `form:"date" binding:"required"`
	Start string `form:"start"`
	Mode  string `form:"mode" binding:"omitempty,oneof=all"`
}

// StartTime parses the optional RFC 3339 start instant.
func (q AvailabilityQuery) StartTime() (*time.Time, error) {
	if q.Start == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, q.Start)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (q AvailabilityQuery) All() bool {
	return q.Mode == "all"
}

type DayQuery struct {
	Date string `form:"date" binding:"required"`
}

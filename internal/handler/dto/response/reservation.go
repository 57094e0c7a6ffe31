package response

import (
	"time"

	"table-booking/internal/domain/reservation"
	"table-booking/internal/usecase/commands"
	"table-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type ManualCustomerResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

type UserSummary struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name,omitempty"`
	Email string    `json:"email,omitempty"`
	Phone string    `json:"phone,omitempty"`
}

// ReservationResponse is returned by every write endpoint.
type ReservationResponse struct {
	ID              uuid.UUID               `json:"id"`
	TableID         uuid.UUID               `json:"tableId"`
	UserID          *uuid.UUID              `json:"userId,omitempty"`
	ManualCustomer  *ManualCustomerResponse `json:"manualCustomer,omitempty"`
	StartTime       time.Time               `json:"startTime"`
	EndTime         time.Time               `json:"endTime"`
	DurationMinutes int                     `json:"durationMinutes"`
	TotalPrice      float64                 `json:"totalPrice"`
	Status          string                  `json:"status"`
	PaymentOrderID  string                  `json:"paymentOrderId,omitempty"`
	PaymentStatus   string                  `json:"paymentStatus"`
	RefundStatus    string                  `json:"refundStatus"`
	RefundAmount    float64                 `json:"refundAmount"`
	RefundID        string                  `json:"refundId,omitempty"`
	CreatedAt       time.Time               `json:"createdAt"`
	UpdatedAt       time.Time               `json:"updatedAt"`
}

type ReservationDetailResponse struct {
	ReservationResponse
	TableNumber      int          `json:"tableNumber"`
	User             *UserSummary `json:"user,omitempty"`
	InvoiceLink      *string      `json:"invoiceLink,omitempty"`
	InvoiceExpiresAt *time.Time   `json:"invoiceExpiresAt,omitempty"`
}

type ReservationListResponse struct {
	ID              uuid.UUID               `json:"id"`
	TableID         uuid.UUID               `json:"tableId"`
	TableNumber     int                     `json:"tableNumber,omitempty"`
	UserID          *uuid.UUID              `json:"userId,omitempty"`
	ManualCustomer  *ManualCustomerResponse `json:"manualCustomer,omitempty"`
	StartTime       time.Time               `json:"startTime"`
	EndTime         time.Time               `json:"endTime"`
	DurationMinutes int                     `json:"durationMinutes"`
	TotalPrice      float64                 `json:"totalPrice"`
	Status          string                  `json:"status"`
	PaymentStatus   string                  `json:"paymentStatus"`
	RefundStatus    string                  `json:"refundStatus"`
	CreatedAt       time.Time               `json:"createdAt"`
}

type ReservationPageResponse struct {
	Items      []*ReservationListResponse `json:"items"`
	NextCursor string                     `json:"nextCursor,omitempty"`
}

type CancellationResponse struct {
	Reservation  *ReservationResponse `json:"reservation"`
	RefundStatus string               `json:"refundStatus"`
	RefundAmount float64              `json:"refundAmount"`
}

func major(cents int64) float64 {
	return float64(cents) / 100.0
}

func FromReservation(r *reservation.Reservation) *ReservationResponse {
	if r == nil {
		return nil
	}
	resp := &ReservationResponse{
		ID:              r.ID(),
		TableID:         r.TableID(),
		UserID:          r.Holder().UserID(),
		StartTime:       r.TimeSlot().Start(),
		EndTime:         r.TimeSlot().End(),
		DurationMinutes: r.TimeSlot().DurationMinutes(),
		TotalPrice:      r.Price().Amount(),
		Status:          r.Status().String(),
		PaymentOrderID:  r.Payment().OrderID(),
		PaymentStatus:   r.Payment().Status().String(),
		RefundStatus:    r.Refund().Status().String(),
		RefundAmount:    r.Refund().Amount().Amount(),
		RefundID:        r.Refund().ID(),
		CreatedAt:       r.CreatedAt(),
		UpdatedAt:       r.UpdatedAt(),
	}
	if m := r.Holder().Manual(); m != nil {
		resp.ManualCustomer = &ManualCustomerResponse{Name: m.Name, Email: m.Email, Phone: m.Phone}
	}
	return resp
}

func FromReservationView(v *queries.ReservationView) *ReservationDetailResponse {
	resp := &ReservationDetailResponse{
		ReservationResponse: ReservationResponse{
			ID:              v.ID,
			TableID:         v.TableID,
			UserID:          v.UserID,
			ManualCustomer:  fromManualView(v.ManualCustomer),
			StartTime:       v.Start,
			EndTime:         v.End,
			DurationMinutes: v.DurationMinutes,
			TotalPrice:      major(v.TotalPriceCents),
			Status:          v.Status,
			PaymentStatus:   v.PaymentStatus,
			RefundStatus:    v.RefundStatus,
			RefundAmount:    major(v.RefundAmountCents),
			CreatedAt:       v.CreatedAt,
			UpdatedAt:       v.UpdatedAt,
		},
		TableNumber:      v.TableNumber,
		InvoiceLink:      v.InvoiceLink,
		InvoiceExpiresAt: v.InvoiceExpiresAt,
	}
	if v.PaymentOrderID != nil {
		resp.PaymentOrderID = *v.PaymentOrderID
	}
	if v.RefundID != nil {
		resp.RefundID = *v.RefundID
	}
	if v.UserID != nil {
		resp.User = &UserSummary{
			ID:    *v.UserID,
			Name:  deref(v.UserName),
			Email: deref(v.UserEmail),
			Phone: deref(v.UserPhone),
		}
	}
	return resp
}

func FromReservationListItem(v *queries.ReservationListItem) *ReservationListResponse {
	return &ReservationListResponse{
		ID:              v.ID,
		TableID:         v.TableID,
		TableNumber:     v.TableNumber,
		UserID:          v.UserID,
		ManualCustomer:  fromManualView(v.ManualCustomer),
		StartTime:       v.Start,
		EndTime:         v.End,
		DurationMinutes: v.DurationMinutes,
		TotalPrice:      major(v.TotalPriceCents),
		Status:          v.Status,
		PaymentStatus:   v.PaymentStatus,
		RefundStatus:    v.RefundStatus,
		CreatedAt:       v.CreatedAt,
	}
}

func FromReservationList(items []*queries.ReservationListItem) []*ReservationListResponse {
	out := make([]*ReservationListResponse, len(items))
	for i, v := range items {
		out[i] = FromReservationListItem(v)
	}
	return out
}

func FromReservationPage(items []*queries.ReservationListItem, next *queries.Cursor) *ReservationPageResponse {
	page := &ReservationPageResponse{Items: FromReservationList(items)}
	if next != nil {
		page.NextCursor = next.After
	}
	return page
}

func FromCancellation(r *commands.CancellationResult) *CancellationResponse {
	return &CancellationResponse{
		Reservation:  FromReservation(r.Reservation),
		RefundStatus: r.RefundStatus.String(),
		RefundAmount: r.RefundAmount.Amount(),
	}
}

func fromManualView(m *queries.ManualCustomerView) *ManualCustomerResponse {
	if m == nil {
		return nil
	}
	return &ManualCustomerResponse{Name: m.Name, Email: m.Email, Phone: m.Phone}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

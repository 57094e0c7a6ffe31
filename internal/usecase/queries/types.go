package queries

import (
	"time"

	"github.com/google/uuid"
)

type TableView struct {
	ID              uuid.UUID `json:"id"`
	Number          int       `json:"table_number"`
	HourlyRateCents int64     `json:"hourly_rate_cents"`
	IsAvailable     bool      `json:"is_available"`
}

type ManualCustomerView struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// ReservationView is the full detail read model, joined with table and holder.
type ReservationView struct {
	ID                uuid.UUID           `json:"id"`
	TableID           uuid.UUID           `json:"table_id"`
	TableNumber       int                 `json:"table_number"`
	UserID            *uuid.UUID          `json:"user_id,omitempty"`
	UserName          *string             `json:"user_name,omitempty"`
	UserEmail         *string             `json:"user_email,omitempty"`
	UserPhone         *string             `json:"user_phone,omitempty"`
	ManualCustomer    *ManualCustomerView `json:"manual_customer,omitempty"`
	Start             time.Time           `json:"start"`
	End               time.Time           `json:"end"`
	DurationMinutes   int                 `json:"duration_minutes"`
	TotalPriceCents   int64               `json:"total_price_cents"`
	Status            string              `json:"status"`
	PaymentOrderID    *string             `json:"payment_order_id,omitempty"`
	PaymentStatus     string              `json:"payment_status"`
	RefundStatus      string              `json:"refund_status"`
	RefundAmountCents int64               `json:"refund_amount_cents"`
	RefundID          *string             `json:"refund_id,omitempty"`
	InvoiceLink       *string             `json:"invoice_link,omitempty"`
	InvoiceExpiresAt  *time.Time          `json:"invoice_expires_at,omitempty"`
	CreatedAt         time.Time           `json:"created_at"`
	UpdatedAt         time.Time           `json:"updated_at"`
}

type ReservationListItem struct {
	ID              uuid.UUID           `json:"id"`
	TableID         uuid.UUID           `json:"table_id"`
	TableNumber     int                 `json:"table_number"`
	UserID          *uuid.UUID          `json:"user_id,omitempty"`
	ManualCustomer  *ManualCustomerView `json:"manual_customer,omitempty"`
	Start           time.Time           `json:"start"`
	End             time.Time           `json:"end"`
	DurationMinutes int                 `json:"duration_minutes"`
	TotalPriceCents int64               `json:"total_price_cents"`
	Status          string              `json:"status"`
	PaymentStatus   string              `json:"payment_status"`
	RefundStatus    string              `json:"refund_status"`
	CreatedAt       time.Time           `json:"created_at"`
}

// EndOption is one admin end candidate together with whether it can be booked.
type EndOption struct {
	End   time.Time `json:"end"`
	Valid bool      `json:"valid"`
}

// AvailabilityView is computed per request and never stored.
type AvailabilityView struct {
	TableID     uuid.UUID   `json:"table_id"`
	Date        string      `json:"date"`
	FullyBooked bool        `json:"fully_booked"`
	Starts      []time.Time `json:"starts"`
	Start       *time.Time  `json:"start,omitempty"`
	Ends        []time.Time `json:"ends,omitempty"`
	EndOptions  []EndOption `json:"end_options,omitempty"`
}

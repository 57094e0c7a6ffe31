package commands

import (
	"time"

	"table-booking/internal/domain/reservation"
)

// Options carries the tunables shared by the write side.
type Options struct {
	ProviderTimeout time.Duration
	ReceiptTimeout  time.Duration
	RefundPolicy    reservation.RefundPolicy
	Currency        string
	InvoiceLinkBase string
	InvoiceLinkTTL  time.Duration
}

func DefaultOptions() Options {
	return Options{
		ProviderTimeout: 5 * time.Second,
		ReceiptTimeout:  5 * time.Second,
		RefundPolicy:    reservation.RefundPolicy{Percent: 75},
		Currency:        "INR",
		InvoiceLinkBase: "http://localhost:8080/receipts",
		InvoiceLinkTTL:  30 * 24 * time.Hour,
	}
}

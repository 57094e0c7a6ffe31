package reservation

import (
	"table-booking/internal/domain/table"
	"table-booking/internal/pkg/clock"

	"github.com/google/uuid"
)

type Factory struct {
	Clock           clock.Clock
	PriceCalculator PriceCalculator
}

func NewFactory(clock clock.Clock, priceCalculator PriceCalculator) *Factory {
	return &Factory{
		Clock:           clock,
		PriceCalculator: priceCalculator,
	}
}

func (f *Factory) CreateReservation(
	tableEntity *table.Table,
	holder Holder,
	slot TimeSlot,
	payment Payment,
) (*Reservation, error) {
	if err := tableEntity.EnsureBookable(); err != nil {
		return nil, err
	}
	if holder.IsZero() {
		return nil, ErrInvalidHolder
	}

	price, err := f.Price(tableEntity, slot)
	if err != nil {
		return nil, err
	}

	now := f.Clock.Now()
	return &Reservation{
		id:        uuid.New(),
		tableID:   tableEntity.ID(),
		holder:    holder,
		timeSlot:  slot,
		price:     price,
		status:    StatusConfirmed,
		payment:   payment,
		refund:    Refund{status: RefundNone},
		createdAt: now,
		updatedAt: now,
	}, nil
}

func (f *Factory) Price(tableEntity *table.Table, slot TimeSlot) (Money, error) {
	cents := f.PriceCalculator.CalculatePriceCents(tableEntity, slot)
	if cents < 0 {
		return Money{}, ErrNegativePrice
	}
	return NewMoney(cents), nil
}

type PriceCalculator interface {
	CalculatePriceCents(t *table.Table, slot TimeSlot) int64
}

// HourlyRateCalculator charges the table's hourly rate pro rata per minute, rounded half-up.
type HourlyRateCalculator struct{}

func NewHourlyRateCalculator() *HourlyRateCalculator {
	return &HourlyRateCalculator{}
}

func (HourlyRateCalculator) CalculatePriceCents(t *table.Table, slot TimeSlot) int64 {
	return divRoundHalfUp(t.HourlyRateCents()*int64(slot.DurationMinutes()), 60)
}

type RefundPolicy struct {
	Percent int64
}

func NewRefundPolicy(percent int64) (RefundPolicy, error) {
	if percent < 0 || percent > 100 {
		return RefundPolicy{}, ErrInvalidRefundPercent
	}
	return RefundPolicy{Percent: percent}, nil
}

func (p RefundPolicy) AmountFor(price Money) Money {
	return price.Percent(p.Percent)
}

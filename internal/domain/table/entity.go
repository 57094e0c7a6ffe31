package table

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidNumber     = errors.New("table number must be positive")
	ErrNegativeRate      = errors.New("hourly rate cannot be negative")
	ErrTableNotAvailable = errors.New("table is not available for booking")
)

// Table is a bookable physical table. The hourly rate is kept in minor currency units.
type Table struct {
	id              uuid.UUID
	number          int
	hourlyRateCents int64
	isAvailable     bool
	createdAt       time.Time
	updatedAt       time.Time
}

func NewTable(id uuid.UUID, number int, hourlyRateCents int64, isAvailable bool) (*Table, error) {
	if number <= 0 {
		return nil, ErrInvalidNumber
	}
	if hourlyRateCents < 0 {
		return nil, ErrNegativeRate
	}
	if id == uuid.Nil {
		id = uuid.New()
	}
	return &Table{
		id:              id,
		number:          number,
		hourlyRateCents: hourlyRateCents,
		isAvailable:     isAvailable,
	}, nil
}

func ReconstructTable(id uuid.UUID, number int, hourlyRateCents int64, isAvailable bool, createdAt, updatedAt time.Time) *Table {
	return &Table{
		id:              id,
		number:          number,
		hourlyRateCents: hourlyRateCents,
		isAvailable:     isAvailable,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

func (t *Table) EnsureBookable() error {
	if !t.isAvailable {
		return ErrTableNotAvailable
	}
	return nil
}

func (t *Table) ID() uuid.UUID          { return t.id }
func (t *Table) Number() int            { return t.number }
func (t *Table) HourlyRateCents() int64 { return t.hourlyRateCents }
func (t *Table) IsAvailable() bool      { return t.isAvailable }
func (t *Table) CreatedAt() time.Time   { return t.createdAt }
func (t *Table) UpdatedAt() time.Time   { return t.updatedAt }

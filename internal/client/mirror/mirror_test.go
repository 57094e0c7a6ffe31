//go:build unit

package mirror_test

import (
	"testing"
	"time"

	"table-booking/internal/client/mirror"
	"table-booking/internal/domain/availability"
	"table-booking/internal/domain/event"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ist = time.FixedZone("IST", 5*3600+1800)

func at(h, m int) *time.Time {
	t := time.Date(2030, time.June, 10, h, m, 0, 0, ist)
	return &t
}

func payload(tableID uuid.UUID, start, end *time.Time) *event.ReservationPayload {
	return &event.ReservationPayload{
		ID:              uuid.New(),
		TableID:         tableID,
		Start:           start,
		End:             end,
		DurationMinutes: int(end.Sub(*start) / time.Minute),
		TotalPrice:      500,
		Status:          "confirmed",
		PaymentStatus:   "SUCCESS",
		RefundStatus:    "none",
	}
}

func ev(t event.Type, p *event.ReservationPayload) event.Event {
	return event.Event{Type: t, Reservation: p, OccurredAt: time.Now()}
}

func TestApplyCreated(t *testing.T) {
	tableID := uuid.New()
	m := mirror.New()
	p := payload(tableID, at(10, 0), at(11, 0))

	assert.True(t, m.Apply(ev(event.ReservationCreated, p)))
	assert.False(t, m.Apply(ev(event.ReservationCreated, p)), "duplicate create is ignored")
	assert.Len(t, m.Snapshot(), 1)
}

func TestApplyCancelledIsIdempotent(t *testing.T) {
	tableID := uuid.New()
	m := mirror.New()
	p := payload(tableID, at(10, 0), at(11, 0))
	m.Apply(ev(event.ReservationCreated, p))

	cancelled := *p
	cancelled.Status = "cancelled"
	cancelled.RefundStatus = "pending"
	cancelled.RefundAmount = 375
	cancelled.RefundID = "rf_abc"

	assert.True(t, m.Apply(ev(event.ReservationCancelled, &cancelled)))
	once := m.Snapshot()

	assert.False(t, m.Apply(ev(event.ReservationCancelled, &cancelled)))
	if diff := cmp.Diff(once, m.Snapshot()); diff != "" {
		t.Errorf("second cancel changed the mirror (-once +twice):\n%s", diff)
	}

	got, ok := m.Get(p.ID)
	require.True(t, ok)
	assert.Equal(t, "cancelled", got.Status)
	assert.Equal(t, "pending", got.RefundStatus)
	assert.InDelta(t, 375, got.RefundAmount, 0.001)
	assert.Empty(t, m.ActiveIntervals(tableID))
}

func TestApplyCancelledUnknownID(t *testing.T) {
	m := mirror.New()
	assert.False(t, m.Apply(ev(event.ReservationCancelled, payload(uuid.New(), at(10, 0), at(11, 0)))))
	assert.Empty(t, m.Snapshot())
}

func TestApplyUpdatedMergesNonEmptyFields(t *testing.T) {
	tableID := uuid.New()
	m := mirror.New()
	p := payload(tableID, at(10, 0), at(11, 0))
	m.Apply(ev(event.ReservationCreated, p))

	patch := &event.ReservationPayload{ID: p.ID, RefundStatus: "processed"}
	assert.True(t, m.Apply(ev(event.ReservationUpdated, patch)))

	got, ok := m.Get(p.ID)
	require.True(t, ok)
	assert.Equal(t, "processed", got.RefundStatus)
	assert.Equal(t, "confirmed", got.Status, "empty status keeps the mirrored value")
	assert.Equal(t, tableID, got.TableID)
	assert.True(t, got.Start.Equal(*at(10, 0)))

	moved := &event.ReservationPayload{ID: p.ID, Start: at(14, 0), End: at(15, 30), DurationMinutes: 90}
	assert.True(t, m.Apply(ev(event.ReservationUpdated, moved)))
	assert.False(t, m.Apply(ev(event.ReservationUpdated, moved)))

	assert.Equal(t, []availability.Interval{{Start: *at(14, 0), End: *at(15, 30)}}, m.ActiveIntervals(tableID))
}

func TestApplyDeleted(t *testing.T) {
	tableID := uuid.New()
	m := mirror.New()
	p := payload(tableID, at(10, 0), at(11, 0))
	m.Apply(ev(event.ReservationCreated, p))

	del := &event.ReservationPayload{ID: p.ID, TableID: tableID}
	assert.True(t, m.Apply(ev(event.ReservationDeleted, del)))
	assert.False(t, m.Apply(ev(event.ReservationDeleted, del)))
	assert.Empty(t, m.Snapshot())
}

func TestMetricsCallback(t *testing.T) {
	calls := 0
	m := mirror.New(mirror.WithMetricsCallback(func() { calls++ }))

	assert.False(t, m.Apply(event.Metrics(time.Now())))
	assert.False(t, m.Apply(event.Metrics(time.Now())))
	assert.Equal(t, 2, calls)
}

func TestTableFilterAndReplace(t *testing.T) {
	mine, other := uuid.New(), uuid.New()
	m := mirror.New(mirror.WithTable(mine))

	assert.False(t, m.Apply(ev(event.ReservationCreated, payload(other, at(10, 0), at(11, 0)))))
	assert.True(t, m.Apply(ev(event.ReservationCreated, payload(mine, at(10, 0), at(11, 0)))))

	fresh := payload(mine, at(18, 0), at(19, 0))
	m.Replace([]event.ReservationPayload{*fresh, *payload(other, at(12, 0), at(13, 0))})

	snap := m.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, fresh.ID, snap[0].ID)
}

func TestMirrorFeedsDetector(t *testing.T) {
	tableID := uuid.New()
	m := mirror.New()
	m.Apply(ev(event.ReservationCreated, payload(tableID, at(10, 0), at(11, 0))))

	policy := availability.DefaultPolicy()
	day := time.Date(2030, time.June, 10, 0, 0, 0, 0, ist)
	starts := policy.AvailableStarts(day, day, m.ActiveIntervals(tableID))

	assert.NotContains(t, starts, *at(10, 30))
	assert.Contains(t, starts, *at(11, 30))
}

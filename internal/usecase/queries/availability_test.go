//go:build unit

package queries_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"table-booking/internal/domain/availability"
	"table-booking/internal/pkg/clock"
	"table-booking/internal/pkg/errs"
	"table-booking/internal/usecase/queries"
	"table-booking/tests/common/builder"
	queriesmock "table-booking/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func at(h, m int) time.Time {
	return time.Date(2030, time.June, 10, h, m, 0, 0, builder.IST)
}

func listItem(tableID uuid.UUID, start, end time.Time) *queries.ReservationListItem {
	return builder.NewReservationBuilder().WithTable(tableID).WithInterval(start, end).BuildListItem()
}

func TestAvailability(t *testing.T) {
	tableID := uuid.New()
	dayStart := at(0, 0)

	setup := func(t *testing.T) (*queriesmock.MockReservationReadStore, queries.AvailabilityQueries, *clock.MockClock) {
		ctrl := gomock.NewController(t)
		repo := queriesmock.NewMockReservationReadStore(ctrl)
		clk := clock.NewMockClock(at(7, 0))
		return repo, queries.NewAvailabilityQueries(repo, availability.DefaultPolicy(), clk, builder.IST), clk
	}

	t.Run("start times exclude buffered reservations", func(t *testing.T) {
		repo, q, _ := setup(t)
		repo.EXPECT().TableExists(gomock.Any(), tableID).Return(true, nil)
		repo.EXPECT().FindActiveByTable(gomock.Any(), tableID, dayStart.Add(-30*time.Minute), dayStart.AddDate(0, 0, 1).Add(30*time.Minute)).
			Return([]*queries.ReservationListItem{listItem(tableID, at(10, 0), at(11, 0))}, nil)

		view, err := q.Availability(context.Background(), queries.AvailabilityRequest{TableID: tableID, Date: "2030-06-10"}, false)
		require.NoError(t, err)

		assert.Equal(t, "2030-06-10", view.Date)
		assert.False(t, view.FullyBooked)
		assert.Contains(t, view.Starts, at(9, 0))
		assert.NotContains(t, view.Starts, at(9, 30))
		assert.NotContains(t, view.Starts, at(11, 0))
		assert.Contains(t, view.Starts, at(11, 30))
		assert.Nil(t, view.Start)
	})

	t.Run("end times from a chosen start", func(t *testing.T) {
		repo, q, _ := setup(t)
		repo.EXPECT().TableExists(gomock.Any(), tableID).Return(true, nil)
		repo.EXPECT().FindActiveByTable(gomock.Any(), tableID, gomock.Any(), gomock.Any()).
			Return([]*queries.ReservationListItem{listItem(tableID, at(13, 0), at(14, 0))}, nil)

		start := at(11, 0)
		view, err := q.Availability(context.Background(), queries.AvailabilityRequest{TableID: tableID, Date: "2030-06-10", Start: &start}, false)
		require.NoError(t, err)
		assert.Equal(t, []time.Time{at(11, 30), at(12, 0), at(12, 30)}, view.Ends)
		assert.Empty(t, view.EndOptions)
	})

	t.Run("blocked start yields no ends", func(t *testing.T) {
		repo, q, _ := setup(t)
		repo.EXPECT().TableExists(gomock.Any(), tableID).Return(true, nil)
		repo.EXPECT().FindActiveByTable(gomock.Any(), tableID, gomock.Any(), gomock.Any()).
			Return([]*queries.ReservationListItem{listItem(tableID, at(10, 0), at(11, 0))}, nil)

		start := at(10, 30)
		view, err := q.Availability(context.Background(), queries.AvailabilityRequest{TableID: tableID, Date: "2030-06-10", Start: &start}, false)
		require.NoError(t, err)
		assert.Empty(t, view.Ends)
	})

	t.Run("admins see every candidate", func(t *testing.T) {
		repo, q, _ := setup(t)
		repo.EXPECT().TableExists(gomock.Any(), tableID).Return(true, nil)
		repo.EXPECT().FindActiveByTable(gomock.Any(), tableID, gomock.Any(), gomock.Any()).
			Return([]*queries.ReservationListItem{listItem(tableID, at(10, 0), at(11, 0))}, nil)

		start := at(9, 0)
		view, err := q.Availability(context.Background(), queries.AvailabilityRequest{TableID: tableID, Date: "2030-06-10", Start: &start, All: true}, true)
		require.NoError(t, err)
		require.NotEmpty(t, view.EndOptions)
		assert.Equal(t, queries.EndOption{End: at(9, 30), Valid: true}, view.EndOptions[0])
		assert.False(t, view.EndOptions[1].Valid)
	})

	t.Run("all mode is admin only", func(t *testing.T) {
		_, q, _ := setup(t)
		_, err := q.Availability(context.Background(), queries.AvailabilityRequest{TableID: tableID, Date: "2030-06-10", All: true}, false)
		assert.True(t, errs.Is(err, errs.ErrUnauthorized))
	})

	t.Run("past day is fully booked", func(t *testing.T) {
		repo, q, clk := setup(t)
		clk.Set(at(23, 45))
		repo.EXPECT().TableExists(gomock.Any(), tableID).Return(true, nil)
		repo.EXPECT().FindActiveByTable(gomock.Any(), tableID, gomock.Any(), gomock.Any()).Return(nil, nil)

		view, err := q.Availability(context.Background(), queries.AvailabilityRequest{TableID: tableID, Date: "2030-06-10"}, false)
		require.NoError(t, err)
		assert.True(t, view.FullyBooked)
		assert.Empty(t, view.Starts)
	})

	t.Run("bad date", func(t *testing.T) {
		_, q, _ := setup(t)
		_, err := q.Availability(context.Background(), queries.AvailabilityRequest{TableID: tableID, Date: "10-06-2030"}, false)
		assert.True(t, errs.Is(err, errs.ErrValidation))
	})

	t.Run("unknown table", func(t *testing.T) {
		repo, q, _ := setup(t)
		repo.EXPECT().TableExists(gomock.Any(), tableID).Return(false, nil)
		_, err := q.Availability(context.Background(), queries.AvailabilityRequest{TableID: tableID, Date: "2030-06-10"}, false)
		assert.True(t, errs.Is(err, errs.ErrNotFound))
	})

	t.Run("store failure", func(t *testing.T) {
		repo, q, _ := setup(t)
		repo.EXPECT().TableExists(gomock.Any(), tableID).Return(false, errors.New("connection reset"))
		_, err := q.Availability(context.Background(), queries.AvailabilityRequest{TableID: tableID, Date: "2030-06-10"}, false)
		require.Error(t, err)
		assert.False(t, errs.Is(err, errs.ErrNotFound))
	})
}

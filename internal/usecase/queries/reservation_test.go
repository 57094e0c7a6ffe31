//go:build unit

package queries_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"table-booking/internal/domain/availability"
	"table-booking/internal/domain/user"
	"table-booking/internal/infra"
	"table-booking/internal/pkg/errs"
	"table-booking/internal/usecase/queries"
	"table-booking/tests/common/builder"
	queriesmock "table-booking/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newReservationQueries(t *testing.T) (*queriesmock.MockReservationReadStore, queries.ReservationQueries) {
	ctrl := gomock.NewController(t)
	repo := queriesmock.NewMockReservationReadStore(ctrl)
	return repo, queries.NewReservationQueries(repo, availability.DefaultPolicy(), builder.IST)
}

func TestGetByID(t *testing.T) {
	owner := uuid.New()
	view := &queries.ReservationView{ID: uuid.New(), UserID: &owner, Status: "confirmed"}

	tests := []struct {
		name  string
		actor user.Actor
		errIs error
	}{
		{name: "holder", actor: user.Actor{ID: owner, Role: user.RoleCustomer}},
		{name: "admin", actor: user.Actor{ID: uuid.New(), Role: user.RoleAdmin}},
		{name: "someone else", actor: user.Actor{ID: uuid.New(), Role: user.RoleCustomer}, errIs: errs.ErrUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, q := newReservationQueries(t)
			repo.EXPECT().FindByID(gomock.Any(), view.ID).Return(view, nil)

			got, err := q.GetByID(context.Background(), view.ID, tt.actor)
			if tt.errIs != nil {
				assert.True(t, errs.Is(err, tt.errIs))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, view, got)
		})
	}

	t.Run("missing", func(t *testing.T) {
		repo, q := newReservationQueries(t)
		id := uuid.New()
		repo.EXPECT().FindByID(gomock.Any(), id).Return(nil, infra.WrapRepoErr("not found", errors.New("no rows"), infra.KindNotFound))

		_, err := q.GetByID(context.Background(), id, user.Actor{ID: owner, Role: user.RoleCustomer})
		assert.True(t, errs.Is(err, errs.ErrNotFound))
	})
}

func TestListByUser(t *testing.T) {
	owner := uuid.New()
	actor := user.Actor{ID: owner, Role: user.RoleCustomer}

	page := func(n int) []*queries.ReservationListItem {
		items := make([]*queries.ReservationListItem, n)
		for i := range items {
			items[i] = builder.NewReservationBuilder().WithUser(owner).BuildListItem()
			items[i].CreatedAt = time.Date(2030, time.June, 1, 0, 0, 0, 0, time.UTC).Add(-time.Duration(i) * time.Hour)
		}
		return items
	}

	t.Run("first page with a following page", func(t *testing.T) {
		repo, q := newReservationQueries(t)
		rows := page(3)
		repo.EXPECT().FindByUserFirstPage(gomock.Any(), owner, int32(3)).Return(rows, nil)

		got, next, err := q.ListByUser(context.Background(), owner, actor, nil, 2)
		require.NoError(t, err)
		require.Len(t, got, 2)
		require.NotNil(t, next)

		ts, id, err := queries.DecodeAfterCursor(next.After)
		require.NoError(t, err)
		assert.Equal(t, rows[1].ID, id)
		assert.True(t, rows[1].CreatedAt.Equal(ts))
	})

	t.Run("keyset page is the last one", func(t *testing.T) {
		repo, q := newReservationQueries(t)
		lastAt := time.Date(2030, time.May, 1, 0, 0, 0, 0, time.UTC)
		lastID := uuid.New()
		sameInstant := gomock.Cond(func(ts time.Time) bool { return ts.Equal(lastAt) })
		repo.EXPECT().FindByUserKeyset(gomock.Any(), owner, sameInstant, lastID, int32(21)).Return(page(1), nil)

		cursor := &queries.Cursor{After: queries.EncodeAfterCursor(lastAt, lastID)}
		got, next, err := q.ListByUser(context.Background(), owner, actor, cursor, 0)
		require.NoError(t, err)
		assert.Len(t, got, 1)
		assert.Nil(t, next)
	})

	t.Run("malformed cursor", func(t *testing.T) {
		_, q := newReservationQueries(t)
		_, _, err := q.ListByUser(context.Background(), owner, actor, &queries.Cursor{After: "%%%"}, 10)
		assert.True(t, errs.Is(err, errs.ErrValidation))
	})

	t.Run("other users are off limits", func(t *testing.T) {
		_, q := newReservationQueries(t)
		_, _, err := q.ListByUser(context.Background(), uuid.New(), actor, nil, 10)
		assert.True(t, errs.Is(err, errs.ErrUnauthorized))
	})
}

func TestListActiveByTableDay(t *testing.T) {
	tableID := uuid.New()

	t.Run("window covers the buffer on both sides", func(t *testing.T) {
		repo, q := newReservationQueries(t)
		day := time.Date(2030, time.June, 10, 0, 0, 0, 0, builder.IST)
		rows := []*queries.ReservationListItem{builder.NewReservationBuilder().WithTable(tableID).BuildListItem()}
		repo.EXPECT().TableExists(gomock.Any(), tableID).Return(true, nil)
		repo.EXPECT().FindActiveByTable(gomock.Any(), tableID, day.Add(-30*time.Minute), day.Add(24*time.Hour+30*time.Minute)).Return(rows, nil)

		got, err := q.ListActiveByTableDay(context.Background(), tableID, "2030-06-10")
		require.NoError(t, err)
		assert.Equal(t, rows, got)
	})

	t.Run("bad date", func(t *testing.T) {
		_, q := newReservationQueries(t)
		_, err := q.ListActiveByTableDay(context.Background(), tableID, "tomorrow")
		assert.True(t, errs.Is(err, errs.ErrValidation))
	})
}

func TestCursorRoundTrip(t *testing.T) {
	at := time.Date(2030, time.June, 10, 12, 0, 0, 123456000, time.UTC)
	id := uuid.New()

	ts, got, err := queries.DecodeAfterCursor(queries.EncodeAfterCursor(at, id))
	require.NoError(t, err)
	assert.Equal(t, id, got)
	assert.True(t, at.Equal(ts))

	_, _, err = queries.DecodeAfterCursor("")
	assert.True(t, errs.Is(err, queries.ErrInvalidCursor))

	assert.Equal(t, queries.DefaultListLimit, queries.ValidateLimit(0))
	assert.Equal(t, queries.MaxListLimit, queries.ValidateLimit(1000))
	assert.Equal(t, 7, queries.ValidateLimit(7))
}

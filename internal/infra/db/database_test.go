//go:build unit

package db

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type boolRow struct {
	value bool
	err   error
}

func (r boolRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*dest[0].(*bool) = r.value
	return nil
}

type stubQuerier struct {
	row  boolRow
	args []any
}

func (q *stubQuerier) QueryRow(_ context.Context, _ string, args ...any) pgx.Row {
	q.args = args
	return q.row
}

func TestVerifySchema(t *testing.T) {
	t.Run("constraint present", func(t *testing.T) {
		q := &stubQuerier{row: boolRow{value: true}}
		require.NoError(t, VerifySchema(context.Background(), q))
		assert.Equal(t, []any{OverlapConstraint}, q.args)
	})

	t.Run("constraint missing", func(t *testing.T) {
		err := VerifySchema(context.Background(), &stubQuerier{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), OverlapConstraint)
	})

	t.Run("query failure", func(t *testing.T) {
		boom := errors.New("connection reset")
		err := VerifySchema(context.Background(), &stubQuerier{row: boolRow{err: boom}})
		assert.ErrorIs(t, err, boom)
	})
}

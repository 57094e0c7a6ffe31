package readstore

import (
	"context"

	"table-booking/internal/infra"
	sqlc "table-booking/internal/infra/sqlc/generated"
	"table-booking/internal/pkg/pgconv"
	"table-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type TableReadQueries interface {
	GetTableByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Tables, error)
	ListTables(ctx context.Context, db sqlc.DBTX) ([]sqlc.Tables, error)
}

type TableReadStore struct {
	queries TableReadQueries
	db      sqlc.DBTX
}

func NewTableReadStore(queries TableReadQueries, db sqlc.DBTX) *TableReadStore {
	return &TableReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *TableReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.TableView, error) {
	row, err := r.queries.GetTableByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("table not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find table by ID", err)
	}
	return toTableView(row), nil
}

func (r *TableReadStore) List(ctx context.Context) ([]*queries.TableView, error) {
	rows, err := r.queries.ListTables(ctx, r.db)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list tables", err)
	}

	result := make([]*queries.TableView, len(rows))
	for i, row := range rows {
		result[i] = toTableView(row)
	}
	return result, nil
}

func toTableView(row sqlc.Tables) *queries.TableView {
	return &queries.TableView{
		ID:              row.ID,
		Number:          int(row.TableNumber),
		HourlyRateCents: row.HourlyRateCents,
		IsAvailable:     row.IsAvailable,
	}
}

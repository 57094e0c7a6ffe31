package readstore

import (
	"context"

	"table-booking/internal/infra"
	sqlc "table-booking/internal/infra/sqlc/generated"
	"table-booking/internal/pkg/pgconv"
	"table-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type UserReadQueries interface {
	GetUserByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Users, error)
}

type UserReadStore struct {
	queries UserReadQueries
	db      sqlc.DBTX
}

func NewUserReadStore(queries UserReadQueries, db sqlc.DBTX) *UserReadStore {
	return &UserReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *UserReadStore) FindContact(ctx context.Context, id uuid.UUID) (*shared.Contact, error) {
	row, err := r.queries.GetUserByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}

	return &shared.Contact{
		Name:  row.Username,
		Email: row.Email,
		Phone: row.Phone,
	}, nil
}

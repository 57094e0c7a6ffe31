//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// DBLike is satisfied by both *pgxpool.Pool and pgx.Tx.
type DBLike interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func CreateTestUser(t *testing.T, db DBLike, email, role string) uuid.UUID {
	t.Helper()

	var userID uuid.UUID
	ctx := context.Background()
	username := strings.SplitN(email, "@", 2)[0]

	err := db.QueryRow(ctx, `
		INSERT INTO users (username, email, phone, role)
		VALUES ($1, $2, '+919800000000', $3)
		ON CONFLICT (email) DO UPDATE SET role = EXCLUDED.role
		RETURNING id`,
		username, email, role).Scan(&userID)
	require.NoError(t, err)

	return userID
}

// SeedReferenceData inserts the tables every environment starts with.
func SeedReferenceData(pool *pgxpool.Pool) error {
	ctx := context.Background()

	_, err := pool.Exec(ctx, `
		INSERT INTO tables (table_number, hourly_rate_cents, is_available) VALUES
		    (1, 50000, true),
		    (2, 60000, true),
		    (3, 40000, false)
		ON CONFLICT (table_number) DO NOTHING;
	`)
	return err
}

// ResetDB empties every booking table and restores the seeded tables, so each subtest starts
// from the same three-table restaurant.
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := pool.Exec(ctx, `TRUNCATE reservations, users, tables CASCADE`); err != nil {
		return fmt.Errorf("truncate: %w", err)
	}
	return SeedReferenceData(pool)
}

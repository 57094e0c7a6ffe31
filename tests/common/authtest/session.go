//go:build unit || e2e

package authtest

import (
	"testing"

	"table-booking/internal/domain/user"
	"table-booking/internal/pkg/config"
	"table-booking/tests/common/dbtest"

	"github.com/google/uuid"
)

// CreateAndAuthenticate inserts a user and returns its id with a signed access token.
// Accounts and tokens are owned by the identity service, so tests mint both directly.
func CreateAndAuthenticate(t *testing.T, db dbtest.DBLike, cfg config.JWTConfig, email string, role user.Role) (uuid.UUID, string) {
	t.Helper()
	id := dbtest.CreateTestUser(t, db, email, role.String())
	return id, NewJWTHelper(cfg).GenerateToken(t, id, role)
}

//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"table-booking/internal/domain/user"
	"table-booking/internal/pkg/clock"
	"table-booking/internal/pkg/config"
	"table-booking/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type JWTHelper struct {
	cfg config.JWTConfig
}

func NewJWTHelper(cfg config.JWTConfig) *JWTHelper {
	return &JWTHelper{cfg: cfg}
}

func (h *JWTHelper) GenerateToken(t *testing.T, userID uuid.UUID, role user.Role) string {
	t.Helper()
	token, err := jwt.NewService(h.cfg, clock.NewRealClock()).GenerateAccessToken(userID, role)
	require.NoError(t, err)
	return token
}

func (h *JWTHelper) CreateExpiredToken(t *testing.T, userID uuid.UUID, role user.Role) string {
	t.Helper()
	issuedAt := time.Now().Add(-h.cfg.AccessTokenDuration - time.Minute)
	token, err := jwt.NewService(h.cfg, clock.NewMockClock(issuedAt)).GenerateAccessToken(userID, role)
	require.NoError(t, err)
	return token
}

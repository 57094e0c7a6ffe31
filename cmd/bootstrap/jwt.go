package bootstrap

import (
	"table-booking/internal/pkg/clock"
	"table-booking/internal/pkg/config"
	"table-booking/internal/pkg/jwt"

	"go.uber.org/fx"
)

var JWTModule = fx.Module("jwt",
	fx.Provide(
		NewJWTService,
	),
)

// NewJWTService validates against wall time regardless of the clock handed to the usecases.
func NewJWTService(cfg config.Config) *jwt.Service {
	return jwt.NewService(cfg.JWT, clock.NewRealClock())
}

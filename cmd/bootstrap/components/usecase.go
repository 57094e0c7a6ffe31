package components

import (
	"time"

	"table-booking/internal/domain/availability"
	"table-booking/internal/domain/reservation"
	"table-booking/internal/pkg/clock"
	"table-booking/internal/pkg/config"
	"table-booking/internal/usecase"
	"table-booking/internal/usecase/commands"
	"table-booking/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseAuthModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	availability.DefaultPolicy,
	NewBookingLocation,
	fx.Annotate(
		reservation.NewHourlyRateCalculator,
		fx.As(new(reservation.PriceCalculator)),
	),
	reservation.NewFactory,
	NewCommandOptions,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewReservationCommands,
		commands.NewCancellationCommands,
		commands.NewPaymentCommands,
		commands.NewReceiptCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewTableQueries,
		queries.NewAvailabilityQueries,
		queries.NewReservationQueries,
	),
)

var usecaseAuthModule = fx.Module("usecase/auth",
	fx.Provide(
		usecase.NewAuthenticator,
	),
)

func NewBookingLocation(cfg config.Config) *time.Location {
	return cfg.Booking.Location()
}

func NewCommandOptions(cfg config.Config) (commands.Options, error) {
	policy, err := reservation.NewRefundPolicy(cfg.Booking.RefundPercent)
	if err != nil {
		return commands.Options{}, err
	}
	return commands.Options{
		ProviderTimeout: cfg.Payment.Timeout,
		ReceiptTimeout:  cfg.Receipt.EnqueueTimeout,
		RefundPolicy:    policy,
		Currency:        cfg.Payment.Currency,
		InvoiceLinkBase: cfg.Receipt.LinkBaseURL,
		InvoiceLinkTTL:  cfg.Receipt.LinkTTL,
	}, nil
}

package components

import (
	"table-booking/internal/handler"
	"table-booking/internal/handler/api"
	"table-booking/internal/handler/middleware"
	"table-booking/internal/infra/realtime"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewTableHandler,
		api.NewReservationHandler,
		api.NewAdminHandler,
		api.NewPaymentHandler,
		fx.Annotate(
			func(hub *realtime.Hub) *realtime.Hub { return hub },
			fx.As(new(api.EventSource)),
		),
		api.NewEventsHandler,
		middleware.NewAuthMiddleware,
		NewHandlers,
	),
	fx.Invoke(handler.NewRouter),
)

func NewHandlers(
	tables *api.TableHandler,
	reservations *api.ReservationHandler,
	admin *api.AdminHandler,
	payments *api.PaymentHandler,
	events *api.EventsHandler,
) handler.Handlers {
	return handler.Handlers{
		Tables:       tables,
		Reservations: reservations,
		Admin:        admin,
		Payments:     payments,
		Events:       events,
	}
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"table-booking/internal/domain/user"
	"table-booking/internal/handler/api"
	"table-booking/internal/handler/middleware"
	"table-booking/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Tables       *api.TableHandler
	Reservations *api.ReservationHandler
	Admin        *api.AdminHandler
	Payments     *api.PaymentHandler
	Events       *api.EventsHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, logger *middleware.Logger, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, h, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *middleware.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(logger.LoggingMiddleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	requireAdmin := authMiddleware.RequireRoleAtLeast(user.RoleAdmin)

	apiGroup := engine.Group("/api")
	{
		tables := apiGroup.Group("/tables")
		addRoutes(tables, []route{
			{Method: http.MethodGet, Path: "", Handler: h.Tables.List},
			{Method: http.MethodGet, Path: "/:id/availability", Handler: h.Tables.Availability, Mw: []gin.HandlerFunc{authMiddleware.OptionalAuth()}},
			{Method: http.MethodGet, Path: "/:id/reservations", Handler: h.Tables.DayReservations},
		})

		apiGroup.GET("/events", h.Events.Stream)

		reservations := apiGroup.Group("/reservations")
		reservations.Use(authMiddleware.RequireAuth())
		{
			addRoutes(reservations, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Reservations.Create},
				{Method: http.MethodGet, Path: "/me", Handler: h.Reservations.ListMine},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Reservations.Get},
				{Method: http.MethodDelete, Path: "/:id", Handler: h.Reservations.Cancel},
				{Method: http.MethodGet, Path: "/:id/refund-status", Handler: h.Reservations.RefundStatus},
			})
		}

		admin := apiGroup.Group("/admin")
		admin.Use(authMiddleware.RequireAuth())
		{
			addRoutes(admin, []route{
				{Method: http.MethodPut, Path: "/reservations/:id", Handler: h.Admin.UpdateTime, Mw: []gin.HandlerFunc{requireAdmin}},
				{Method: http.MethodDelete, Path: "/reservations/:id", Handler: h.Admin.Delete, Mw: []gin.HandlerFunc{requireAdmin}},
				{Method: http.MethodGet, Path: "/users/:userId/reservations", Handler: h.Admin.ListByUser, Mw: []gin.HandlerFunc{requireAdmin}},
			})
		}

		payments := apiGroup.Group("/payments")
		payments.Use(authMiddleware.RequireAuth())
		{
			addRoutes(payments, []route{
				{Method: http.MethodPost, Path: "/orders", Handler: h.Payments.CreateOrder},
				{Method: http.MethodGet, Path: "/orders/:orderId/status", Handler: h.Payments.OrderStatus},
			})
		}

		apiGroup.POST("/webhooks/cashfree", h.Payments.RefundWebhook)
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

// chainHandlers runs hs in order inside one gin handler. c.Next() inside a chained
// middleware is a no-op here, so the loop itself advances.
func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}

package http

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter builds the echo instance with every route under /api, the health check
// and the Prometheus endpoint at /metrics.
func NewRouter(s *Server, registry *prometheus.Registry) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = newRequestValidator()
	e.HTTPErrorHandler = ErrorHandler(s.logger)

	e.Use(middleware.Recover())
	e.Use(requestLogger(s.logger))
	e.Use(NewMetrics(registry).Middleware())

	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	api := e.Group("/api")
	api.GET("/health", s.Health)

	authed := api.Group("", s.auth.Middleware())

	orders := authed.Group("/orders")
	orders.POST("", s.CreateOrder)
	orders.GET("", s.ListOrders)
	orders.GET("/:id", s.GetOrder)
	orders.PUT("/:id/status", s.UpdateOrderStatus)
	orders.PUT("/:id/cancel", s.CancelOrder)
	orders.PUT("/:id/rate", s.RateOrder)

	delivery := authed.Group("/delivery")
	delivery.GET("/available-orders", s.ListAvailableOrders)
	delivery.POST("/accept-order/:orderId", s.AcceptOrder)
	delivery.PUT("/update-location", s.UpdateLocation)
	delivery.PUT("/toggle-availability", s.ToggleAvailability)
	delivery.GET("/earnings", s.GetEarnings)

	authed.GET("/realtime", s.Realtime)

	return e
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
			}
			if v.Error != nil {
				attrs = append(attrs, "error", v.Error)
			}
			logger.LogAttrs(c.Request().Context(), levelFor(v.Status), "request", slog.Group("http", attrs...))
			return nil
		},
	})
}

func levelFor(status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

// Health handles GET /api/health.
func (s *Server) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, payload{"status": "OK", "message": "Meat delivery API is running"})
}

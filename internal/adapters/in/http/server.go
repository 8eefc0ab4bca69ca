package http

import (
	"log/slog"

	"meatdelivery/internal/adapters/out/bus"
	"meatdelivery/internal/core/application/usecases/commands"
	"meatdelivery/internal/core/application/usecases/queries"
)

// Handlers are the use cases exposed over HTTP.
type Handlers struct {
	CreateOrder           commands.CreateOrderCommandHandler
	AcceptOrder           commands.AcceptOrderCommandHandler
	UpdateOrderStatus     commands.UpdateOrderStatusCommandHandler
	CancelOrder           commands.CancelOrderCommandHandler
	RateOrder             commands.RateOrderCommandHandler
	UpdatePartnerLocation commands.UpdatePartnerLocationCommandHandler
	ToggleAvailability    commands.ToggleAvailabilityCommandHandler

	GetOrder            queries.GetOrderQueryHandler
	ListOrders          queries.ListOrdersQueryHandler
	ListAvailableOrders queries.ListAvailableOrdersQueryHandler
	GetEarnings         queries.GetEarningsQueryHandler
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	handlers Handlers
	hub      *bus.Hub
	auth     *Authenticator
	logger   *slog.Logger
}

func NewServer(handlers Handlers, hub *bus.Hub, auth *Authenticator, logger *slog.Logger) *Server {
	return &Server{
		handlers: handlers,
		hub:      hub,
		auth:     auth,
		logger:   logger.With("component", "HTTPServer"),
	}
}

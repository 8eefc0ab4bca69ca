package http

import (
	"net/http"

	"meatdelivery/internal/core/application/usecases/commands"
	"meatdelivery/internal/core/application/usecases/queries"
	"meatdelivery/internal/core/domain/model/kernel"
	"meatdelivery/internal/core/domain/model/order"
	"meatdelivery/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

func pathUUID(c echo.Context, name string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(c.Param(name))
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return id, nil
}

// CreateOrder handles POST /api/orders.
func (s *Server) CreateOrder(c echo.Context) error {
	var req createOrderRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	items, err := req.items()
	if err != nil {
		return err
	}
	address, err := req.address()
	if err != nil {
		return err
	}
	method := order.Cash
	if req.PaymentMethod != "" {
		if method, err = order.ParsePaymentMethod(req.PaymentMethod); err != nil {
			return err
		}
	}

	cmd, err := commands.NewCreateOrderCommand(principalOf(c), items, address, method, req.SpecialInstructions)
	if err != nil {
		return err
	}

	created, err := s.handlers.CreateOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ok(c, http.StatusCreated, "Order placed successfully", payload{"order": toOrderResponse(created)})
}

// ListOrders handles GET /api/orders.
func (s *Server) ListOrders(c echo.Context) error {
	query, err := queries.NewListOrdersQuery(principalOf(c))
	if err != nil {
		return err
	}

	orders, err := s.handlers.ListOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	return ok(c, http.StatusOK, "", payload{"count": len(orders), "orders": toOrderResponses(orders)})
}

// GetOrder handles GET /api/orders/:id.
func (s *Server) GetOrder(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	query, err := queries.NewGetOrderQuery(id, principalOf(c))
	if err != nil {
		return err
	}

	o, err := s.handlers.GetOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	return ok(c, http.StatusOK, "", payload{"order": toOrderResponse(o)})
}

// UpdateOrderStatus handles PUT /api/orders/:id/status.
func (s *Server) UpdateOrderStatus(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req updateStatusRequest
	if err = bind(c, &req); err != nil {
		return err
	}
	status, err := order.ParseStatus(req.Status)
	if err != nil {
		return err
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(id, principalOf(c), status, req.Note)
	if err != nil {
		return err
	}

	updated, err := s.handlers.UpdateOrderStatus.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ok(c, http.StatusOK, "Order status updated", payload{"order": toOrderResponse(updated)})
}

// CancelOrder handles PUT /api/orders/:id/cancel.
func (s *Server) CancelOrder(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req cancelOrderRequest
	if err = bind(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewCancelOrderCommand(id, principalOf(c), req.Reason)
	if err != nil {
		return err
	}

	cancelled, err := s.handlers.CancelOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ok(c, http.StatusOK, "Order cancelled successfully", payload{"order": toOrderResponse(cancelled)})
}

// RateOrder handles PUT /api/orders/:id/rate.
func (s *Server) RateOrder(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req rateOrderRequest
	if err = bind(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewRateOrderCommand(id, principalOf(c),
		order.Rating{Food: req.Food, Delivery: req.Delivery, Comment: req.Comment})
	if err != nil {
		return err
	}

	rated, err := s.handlers.RateOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ok(c, http.StatusOK, "Thank you for your feedback", payload{"order": toOrderResponse(rated)})
}

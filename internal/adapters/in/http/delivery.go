package http

import (
	"net/http"

	"meatdelivery/internal/core/application/usecases/commands"
	"meatdelivery/internal/core/application/usecases/queries"
	"meatdelivery/internal/core/domain/model/kernel"
	"meatdelivery/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// ListAvailableOrders handles GET /api/delivery/available-orders.
func (s *Server) ListAvailableOrders(c echo.Context) error {
	var req availableOrdersRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	location, err := kernel.NewGeoPoint(*req.Longitude, *req.Latitude)
	if err != nil {
		return err
	}

	query, err := queries.NewListAvailableOrdersQuery(principalOf(c), location, req.Radius)
	if err != nil {
		return err
	}

	ranked, err := s.handlers.ListAvailableOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	return ok(c, http.StatusOK, "", payload{"count": len(ranked), "orders": toRankedResponses(ranked)})
}

// AcceptOrder handles POST /api/delivery/accept-order/:orderId.
func (s *Server) AcceptOrder(c echo.Context) error {
	id, err := pathUUID(c, "orderId")
	if err != nil {
		return err
	}

	cmd, err := commands.NewAcceptOrderCommand(id, principalOf(c))
	if err != nil {
		return err
	}

	accepted, err := s.handlers.AcceptOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ok(c, http.StatusOK, "Order accepted successfully", payload{"order": toOrderResponse(accepted)})
}

// UpdateLocation handles PUT /api/delivery/update-location.
func (s *Server) UpdateLocation(c echo.Context) error {
	var req locationDTO
	if err := bind(c, &req); err != nil {
		return err
	}

	location, err := req.point()
	if err != nil {
		return err
	}

	cmd, err := commands.NewUpdatePartnerLocationCommand(principalOf(c), location)
	if err != nil {
		return err
	}

	if err = s.handlers.UpdatePartnerLocation.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	return ok(c, http.StatusOK, "Location updated", nil)
}

// ToggleAvailability handles PUT /api/delivery/toggle-availability.
func (s *Server) ToggleAvailability(c echo.Context) error {
	cmd, err := commands.NewToggleAvailabilityCommand(principalOf(c))
	if err != nil {
		return err
	}

	availability, err := s.handlers.ToggleAvailability.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ok(c, http.StatusOK, availability.Message, payload{"isAvailable": availability.IsAvailable})
}

// GetEarnings handles GET /api/delivery/earnings.
func (s *Server) GetEarnings(c echo.Context) error {
	var req earningsRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	from, err := periodBound(req.StartDate, false)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("startDate", err)
	}
	to, err := periodBound(req.EndDate, true)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("endDate", err)
	}

	query, err := queries.NewGetEarningsQuery(principalOf(c), from, to)
	if err != nil {
		return err
	}

	earnings, err := s.handlers.GetEarnings.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	stats, orders := toEarningsResponse(earnings)
	return ok(c, http.StatusOK, "", payload{"stats": stats, "orders": orders})
}

package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	http_adapter "meatdelivery/internal/adapters/in/http"
	"meatdelivery/internal/adapters/out/bus"
	postgres_adapter "meatdelivery/internal/adapters/out/postgres"
	"meatdelivery/internal/adapters/out/postgres/dbtest"
	"meatdelivery/internal/adapters/out/postgres/orderrepo"
	"meatdelivery/internal/core/application/usecases/commands"
	"meatdelivery/internal/core/application/usecases/queries"
	"meatdelivery/internal/core/domain/model/access"
	"meatdelivery/internal/core/domain/model/kernel"
	"meatdelivery/internal/core/domain/model/order/ordertest"
	"meatdelivery/internal/core/ports"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type uowFactory struct{ f *postgres_adapter.GormUnitOfWorkFactory }

func (u uowFactory) Create() commands.UoW { return u.f.Create() }

type orderUoWFactory struct{ f *postgres_adapter.GormUnitOfWorkFactory }

func (u orderUoWFactory) Create() commands.OrderUoW { return u.f.Create() }

type partnerUoWFactory struct{ f *postgres_adapter.GormUnitOfWorkFactory }

func (u partnerUoWFactory) Create() commands.PartnerUoW { return u.f.Create() }

// hubPublisher delivers synchronously so tests observe events as soon as a
// request returns.
type hubPublisher struct{ hub *bus.Hub }

func (p hubPublisher) Publish(ctx context.Context, event ports.Event) {
	_ = p.hub.Deliver(ctx, event)
}

type caller struct {
	principal access.Principal
	token     string
}

type testServer struct {
	t    *testing.T
	echo *echo.Echo
	hub  *bus.Hub
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	db := dbtest.SQLite(t)
	factory := postgres_adapter.NewGormUnitOfWorkFactory(db)
	orders := orderrepo.NewGormOrderRepository(db, nil)
	hub := bus.NewHub(bus.DefaultSubscriberBuffer, logger, nil)
	publisher := hubPublisher{hub: hub}

	auth, err := http_adapter.NewAuthenticator(testSecret)
	require.NoError(t, err)

	handlers := http_adapter.Handlers{
		CreateOrder:           commands.NewCreateOrderCommandHandler(orderUoWFactory{factory}, publisher, ordertest.Shop(t)),
		AcceptOrder:           commands.NewAcceptOrderCommandHandler(uowFactory{factory}, publisher),
		UpdateOrderStatus:     commands.NewUpdateOrderStatusCommandHandler(uowFactory{factory}, publisher),
		CancelOrder:           commands.NewCancelOrderCommandHandler(orderUoWFactory{factory}, publisher),
		RateOrder:             commands.NewRateOrderCommandHandler(uowFactory{factory}),
		UpdatePartnerLocation: commands.NewUpdatePartnerLocationCommandHandler(uowFactory{factory}, publisher),
		ToggleAvailability:    commands.NewToggleAvailabilityCommandHandler(partnerUoWFactory{factory}),
		GetOrder:              queries.NewGetOrderQueryHandler(orders),
		ListOrders:            queries.NewListOrdersQueryHandler(orders),
		ListAvailableOrders:   queries.NewListAvailableOrdersQueryHandler(orders),
		GetEarnings:           queries.NewGetEarningsQueryHandler(db),
	}

	server := http_adapter.NewServer(handlers, hub, auth, logger)
	return &testServer{
		t:    t,
		echo: http_adapter.NewRouter(server, prometheus.NewRegistry()),
		hub:  hub,
	}
}

func (s *testServer) caller(role access.Role) caller {
	s.t.Helper()
	principal := access.Principal{ID: kernel.NewUUID(), Name: "Test " + string(role), Role: role}
	return caller{principal: principal, token: sign(s.t, principal)}
}

func sign(t *testing.T, p access.Principal) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, http_adapter.Claims{
		Name: p.Name,
		Role: p.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.ID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

// do sends a request as c and decodes the response envelope.
func (s *testServer) do(c *caller, method, path string, body any) (int, map[string]any) {
	s.t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if c != nil {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+c.token)
	}
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)

	var envelope map[string]any
	if bytes.HasPrefix(bytes.TrimSpace(rec.Body.Bytes()), []byte("{")) {
		require.NoError(s.t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	}
	return rec.Code, envelope
}

func orderRequest(price float64) map[string]any {
	return map[string]any{
		"items": []map[string]any{{
			"product":     "prod-1",
			"productName": "Chicken Breast",
			"category":    "chicken",
			"cut":         map[string]any{"name": "Boneless", "price": price, "unit": "kg"},
			"quantity":    1,
			"price":       price,
		}},
		"deliveryAddress": map[string]any{
			"label":  "Home",
			"street": "1 Janpath",
			"city":   "New Delhi",
			"location": map[string]any{
				"longitude": ordertest.Delhi.Longitude,
				"latitude":  ordertest.Delhi.Latitude,
			},
		},
		"paymentMethod": "cash",
	}
}

func field(t *testing.T, envelope map[string]any, keys ...string) any {
	t.Helper()
	var v any = envelope
	for _, k := range keys {
		m, ok := v.(map[string]any)
		require.Truef(t, ok, "%v is not an object at %q", v, k)
		v = m[k]
	}
	return v
}

func (s *testServer) placeOrder(customer caller, price float64) string {
	s.t.Helper()
	status, body := s.do(&customer, http.MethodPost, "/api/orders", orderRequest(price))
	require.Equal(s.t, http.StatusCreated, status, body)
	return field(s.t, body, "order", "id").(string)
}

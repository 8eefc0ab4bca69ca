package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	http_adapter "meatdelivery/internal/adapters/in/http"
	"meatdelivery/internal/adapters/out/bus"
	"meatdelivery/internal/adapters/out/postgres"
	"meatdelivery/internal/adapters/out/postgres/orderrepo"
	"meatdelivery/internal/core/application/usecases/commands"
	"meatdelivery/internal/core/application/usecases/queries"
	"meatdelivery/internal/core/domain/model/kernel"
	"meatdelivery/internal/core/domain/model/order"
	"meatdelivery/internal/core/ports"
	"meatdelivery/internal/jobs"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"
	"gorm.io/gorm"
)

// relay carries notifications between processes through a broker.
type relay interface {
	bus.Sink
	Listen(ctx context.Context, local bus.Sink) error
}

type CompositionRoot struct {
	config     Config
	logger     *slog.Logger
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	registry   *prometheus.Registry
	hub        *bus.Hub
	dispatcher *bus.Dispatcher
	relay      relay
	shop       order.Shop
	closers    []io.Closer
}

// OpenDatabase connects to the configured database and brings its schema up to date.
func OpenDatabase(ctx context.Context, config Config) (*gorm.DB, error) {
	if config.DBDriver == DBDriverSQLite {
		return postgres.OpenSQLite(config.SQLitePath)
	}
	return postgres.OpenPostgres(ctx, config.PostgresDSN())
}

func NewCompositionRoot(ctx context.Context, config Config, logger *slog.Logger, gormDB *gorm.DB) (*CompositionRoot, error) {
	shopLocation, err := kernel.NewGeoPoint(config.ShopLongitude, config.ShopLatitude)
	if err != nil {
		return nil, fmt.Errorf("shop location: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	busMetrics := bus.NewMetrics(registry)
	c := &CompositionRoot{
		config:     config,
		logger:     logger,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		registry:   registry,
		hub:        bus.NewHub(bus.DefaultSubscriberBuffer, logger, busMetrics),
		shop:       order.Shop{Name: config.ShopName, Address: config.ShopAddress, Location: shopLocation},
	}

	if c.relay, err = c.newRelay(ctx); err != nil {
		_ = c.Close()
		return nil, err
	}

	var sink bus.Sink = c.hub
	if c.relay != nil {
		sink = c.relay
	}
	c.dispatcher = bus.NewDispatcher(sink, config.DispatchQueueSize, logger, busMetrics)

	return c, nil
}

func (c *CompositionRoot) newRelay(ctx context.Context) (relay, error) {
	switch c.config.BusDriver {
	case BusDriverRedis:
		client, err := bus.NewRedisClient(ctx, c.config.RedisURL)
		if err != nil {
			return nil, err
		}
		c.closers = append(c.closers, client)
		return bus.NewRedisRelay(client, c.config.RedisChannel, c.logger), nil
	case BusDriverAMQP:
		conn, ch, err := bus.DialAMQP(c.config.AMQPURL)
		if err != nil {
			return nil, err
		}
		c.closers = append(c.closers, conn)
		amqpRelay, err := bus.NewAMQPRelay(ch, c.config.AMQPExchange, c.logger)
		if err != nil {
			return nil, err
		}
		return amqpRelay, nil
	default:
		return nil, nil
	}
}

// Publisher is the event publisher handed to commands.
func (c *CompositionRoot) Publisher() ports.EventPublisher {
	return c.dispatcher
}

// RunDispatcher delivers published events until ctx is done.
func (c *CompositionRoot) RunDispatcher(ctx context.Context) error {
	return c.dispatcher.Run(ctx)
}

// RunRelay forwards broker notifications to local subscribers until ctx is done.
// Without a broker it returns immediately.
func (c *CompositionRoot) RunRelay(ctx context.Context) error {
	if c.relay == nil {
		return nil
	}
	return c.relay.Listen(ctx, c.hub)
}

// Close releases broker connections and the database pool.
func (c *CompositionRoot) Close() error {
	var err error
	for i := len(c.closers) - 1; i >= 0; i-- {
		err = multierr.Append(err, c.closers[i].Close())
	}
	if sqlDB, dbErr := c.gormDB.DB(); dbErr == nil {
		err = multierr.Append(err, sqlDB.Close())
	}
	return err
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.Publisher(), c.shop)
}

func (c *CompositionRoot) CreateAcceptOrderCommandHandler() commands.AcceptOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewAcceptOrderCommandHandler(f, c.Publisher())
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateOrderStatusCommandHandler(f, c.Publisher())
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelOrderCommandHandler(f, c.Publisher())
}

func (c *CompositionRoot) CreateRateOrderCommandHandler() commands.RateOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewRateOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateUpdatePartnerLocationCommandHandler() commands.UpdatePartnerLocationCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdatePartnerLocationCommandHandler(f, c.Publisher())
}

func (c *CompositionRoot) CreateToggleAvailabilityCommandHandler() commands.ToggleAvailabilityCommandHandler {
	var f commands.PartnerUoWFactory = FuncPartnerUoWFactory(func() commands.PartnerUoW {
		return c.uowFactory.Create()
	})
	return commands.NewToggleAvailabilityCommandHandler(f)
}

func (c *CompositionRoot) CreateRebroadcastPendingOrdersCommandHandler() commands.RebroadcastPendingOrdersCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRebroadcastPendingOrdersCommandHandler(f, c.Publisher())
}

// orderReader serves queries outside any unit of work.
func (c *CompositionRoot) orderReader() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(c.gormDB, nil)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.orderReader())
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.orderReader())
}

func (c *CompositionRoot) CreateListAvailableOrdersQueryHandler() queries.ListAvailableOrdersQueryHandler {
	return queries.NewListAvailableOrdersQueryHandler(c.orderReader())
}

func (c *CompositionRoot) CreateGetEarningsQueryHandler() queries.GetEarningsQueryHandler {
	return queries.NewGetEarningsQueryHandler(c.gormDB)
}

// NewHTTPServer builds the router with every use case wired in.
func (c *CompositionRoot) NewHTTPServer() (*echo.Echo, error) {
	auth, err := http_adapter.NewAuthenticator(c.config.JWTSecret)
	if err != nil {
		return nil, err
	}

	handlers := http_adapter.Handlers{
		CreateOrder:           c.CreateCreateOrderCommandHandler(),
		AcceptOrder:           c.CreateAcceptOrderCommandHandler(),
		UpdateOrderStatus:     c.CreateUpdateOrderStatusCommandHandler(),
		CancelOrder:           c.CreateCancelOrderCommandHandler(),
		RateOrder:             c.CreateRateOrderCommandHandler(),
		UpdatePartnerLocation: c.CreateUpdatePartnerLocationCommandHandler(),
		ToggleAvailability:    c.CreateToggleAvailabilityCommandHandler(),
		GetOrder:              c.CreateGetOrderQueryHandler(),
		ListOrders:            c.CreateListOrdersQueryHandler(),
		ListAvailableOrders:   c.CreateListAvailableOrdersQueryHandler(),
		GetEarnings:           c.CreateGetEarningsQueryHandler(),
	}

	server := http_adapter.NewServer(handlers, c.hub, auth, c.logger)
	return http_adapter.NewRouter(server, c.registry), nil
}

// NewJobManager builds the scheduled jobs.
func (c *CompositionRoot) NewJobManager() (*jobs.JobManager, error) {
	broadcast, err := jobs.NewPendingOrderBroadcastJob(
		c.CreateRebroadcastPendingOrdersCommandHandler(),
		jobs.PendingOrderBroadcastConfig{
			Schedule:   c.config.BroadcastCron,
			StaleAfter: c.config.BroadcastStaleAfter,
		},
		jobs.NewMetrics(c.registry),
		c.logger,
	)
	if err != nil {
		return nil, err
	}
	return jobs.NewJobManager(c.logger, broadcast), nil
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncPartnerUoWFactory func() commands.PartnerUoW

func (f FuncPartnerUoWFactory) Create() commands.PartnerUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

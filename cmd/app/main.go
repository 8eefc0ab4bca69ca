package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"meatdelivery/cmd"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	config, err := cmd.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	logger, err := cmd.NewLogger(os.Stdout, config.LogLevel, config.LogFormat)
	if err != nil {
		log.Fatalf("Error creating logger: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gormDB, err := cmd.OpenDatabase(ctx, config)
	if err != nil {
		log.Fatalf("Error opening database: %v", err)
	}

	app, err := cmd.NewCompositionRoot(ctx, config, logger, gormDB)
	if err != nil {
		log.Fatalf("Error building application: %v", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Error("Error releasing resources", "error", err)
		}
	}()

	e, err := app.NewHTTPServer()
	if err != nil {
		log.Fatalf("Error building HTTP server: %v", err)
	}

	jobManager, err := app.NewJobManager()
	if err != nil {
		log.Fatalf("Error building jobs: %v", err)
	}
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}
	defer jobManager.StopAll()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return app.RunDispatcher(gctx) })
	g.Go(func() error { return app.RunRelay(gctx) })
	g.Go(func() error { return startWebServer(gctx, e, config.HTTPPort) })

	logger.Info("Meat delivery API started", "port", config.HTTPPort,
		"db", config.DBDriver, "bus", config.BusDriver)

	if err = g.Wait(); err != nil {
		logger.Error("Shutting down", "error", err)
	}
}

// startWebServer serves until ctx is done, then drains in-flight requests.
func startWebServer(ctx context.Context, e *echo.Echo, port string) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- e.Start(fmt.Sprintf("0.0.0.0:%s", port))
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

// Package server initializes and runs the contact-exchange server: it wires
// the directory store, the rate limiter, the delivery port and the HTTP API,
// and handles graceful shutdown.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/qrcontact/internal/logging"
	"github.com/dmitrijs2005/qrcontact/internal/server/config"
	"github.com/dmitrijs2005/qrcontact/internal/server/delivery"
	"github.com/dmitrijs2005/qrcontact/internal/server/directory"
	"github.com/dmitrijs2005/qrcontact/internal/server/httpapi"
	"github.com/dmitrijs2005/qrcontact/internal/server/ratelimit"
	"github.com/dmitrijs2005/qrcontact/internal/server/services"
)

// memoryDSN selects the non-durable in-memory store; anything else is
// treated as a PostgreSQL DSN.
const memoryDSN = "mem"

type App struct {
	config *config.Config
	logger logging.Logger
	server *httpapi.Server
}

func NewApp(cfg *config.Config) (*App, error) {

	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	store, err := newStore(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("store init error: %w", err)
	}

	deliverer, err := newDeliverer(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("delivery init error: %w", err)
	}

	limiter := ratelimit.New(cfg.RateLimit, cfg.RateWindow)

	registrar := services.NewRegistrarService(store)
	exchange := services.NewExchangeService(store, limiter, deliverer, cfg.DeliveryTimeout, logger)

	handler := httpapi.NewHandler(registrar, exchange, store, cfg.BaseURL, cfg.RateWindow, logger)
	router := httpapi.NewRouter(handler, logger)
	srv := httpapi.NewServer(cfg.EndpointAddr, router, logger)

	return &App{config: cfg, logger: logger, server: srv}, nil
}

func newStore(cfg *config.Config, logger logging.Logger) (directory.Store, error) {
	if cfg.DatabaseDSN == memoryDSN {
		logger.Warn(context.Background(), "using in-memory store, data will not survive restarts")
		return directory.NewMemoryStore(), nil
	}
	return directory.NewPostgresStore(cfg.DatabaseDSN)
}

func newDeliverer(cfg *config.Config, logger logging.Logger) (delivery.Deliverer, error) {
	if cfg.SMTPHost == "" {
		return delivery.NewLogDeliverer(logger), nil
	}
	return delivery.NewSMTPDeliverer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom)
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.server.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	wg.Wait()
}

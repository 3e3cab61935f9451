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

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"gstbook/internal/config"
	"gstbook/internal/handler"
	"gstbook/internal/logging"
	"gstbook/internal/port"
	"gstbook/internal/redisstore"
	"gstbook/internal/repository/memory"
	"gstbook/internal/repository/postgres"
	"gstbook/internal/router"
	"gstbook/internal/service"
)

func main() {
	if err := run(); err != nil {
		logrus.WithError(err).Fatal("server exited")
	}
}

type stores struct {
	settings port.SettingsRepository
	invoices port.InvoiceRepository
	counter  port.InvoiceCounter
	pingers  map[string]handler.Pinger
	closers  []func() error
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := logging.New(cfg.Log)
	handler.SetLogger(logger)

	// Cloud platforms send SIGTERM on shutdown; drain in-flight requests.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var rdb *redis.Client
	if cfg.Redis.Enabled() {
		rdb, err = redisstore.NewClient(ctx, &cfg.Redis, logger)
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		defer rdb.Close()
	}

	st, err := openStores(cfg, rdb)
	if err != nil {
		return err
	}
	for _, closeFn := range st.closers {
		defer closeFn()
	}

	var locker port.ShopLocker
	if rdb != nil {
		locker = redisstore.NewLocker(rdb, cfg.Redis.LockTTL, logger)
		st.pingers["redis"] = redisstore.Pinger{Client: rdb}
	}

	// Initialize services
	sessionSvc := service.NewSessionService(cfg.Shopify)
	settingsSvc := service.NewSettingsService(st.settings, st.counter, service.SettingsDefaults{
		InvoicePrefix:  cfg.Invoice.DefaultPrefix,
		DefaultGSTRate: decimal.NewFromFloat(cfg.Invoice.DefaultGSTRate),
	})
	invoiceSvc := service.NewInvoiceService(st.settings, st.invoices, st.counter, locker, logger)
	reportSvc := service.NewReportService(st.invoices, cfg.Invoice.ExportMaxRows)

	// Initialize handlers
	gstH := handler.NewGSTHandler()
	settingsH := handler.NewSettingsHandler(settingsSvc)
	invoiceH := handler.NewInvoiceHandler(invoiceSvc)
	reportH := handler.NewReportHandler(reportSvc)
	healthH := handler.NewHealthHandler(st.pingers)

	// Setup router
	r := router.Setup(logger, sessionSvc, cfg.Server.CORSOrigins, gstH, settingsH, invoiceH, reportH, healthH)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.WithFields(logrus.Fields{
			"addr":    cfg.Server.Port,
			"backend": cfg.Storage.Backend,
			"counter": cfg.Storage.Counter,
		}).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

// openStores builds the repositories for the configured backend. The memory
// backend keeps everything in process and is meant for local development.
func openStores(cfg *config.Config, rdb *redis.Client) (*stores, error) {
	if cfg.Storage.Backend == "memory" {
		store := memory.NewStore()
		return &stores{
			settings: store,
			invoices: store,
			counter:  store,
			pingers:  map[string]handler.Pinger{},
		}, nil
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	st := &stores{
		settings: postgres.NewSettingsRepo(db),
		pingers:  map[string]handler.Pinger{"postgres": db},
		closers:  []func() error{db.Close},
	}
	if cfg.Storage.Counter == "redis" {
		st.counter = redisstore.NewCounter(rdb, st.settings)
		st.invoices = postgres.NewInvoiceRepoWithCounter(db, st.counter)
	} else {
		st.counter = postgres.NewInvoiceCounter(db)
		st.invoices = postgres.NewInvoiceRepo(db)
	}
	return st, nil
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"

	"github.com/gestora-app/gestora-backend/api/controllers"
	"github.com/gestora-app/gestora-backend/api/routes"
	"github.com/gestora-app/gestora-backend/internal/dashboard"
	"github.com/gestora-app/gestora-backend/internal/inventory"
	"github.com/gestora-app/gestora-backend/internal/invoices"
	"github.com/gestora-app/gestora-backend/internal/orders"
	"github.com/gestora-app/gestora-backend/internal/parties"
	"github.com/gestora-app/gestora-backend/internal/products"
	"github.com/gestora-app/gestora-backend/internal/quotes"
	"github.com/gestora-app/gestora-backend/internal/relay"
	"github.com/gestora-app/gestora-backend/pkg/config"
	"github.com/gestora-app/gestora-backend/pkg/db"
	"github.com/gestora-app/gestora-backend/pkg/logger"
	"github.com/gestora-app/gestora-backend/pkg/metrics"
	"github.com/gestora-app/gestora-backend/pkg/migrate"
)

const shutdownTimeout = 10 * time.Second

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	logg := logger.New(logger.Options{
		ServiceName: "gestora-backend",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx := context.Background()
	if err := run(ctx, cfg, logg); err != nil {
		logg.Error(ctx, "server exited with error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logg *logger.Logger) error {
	client, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		return err
	}

	if err := migrate.MaybeRunDev(ctx, cfg, logg, client); err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	commandMetrics := metrics.NewCommandMetrics(registry)

	partiesSvc, err := parties.NewService(parties.NewRepository(client.DB()), logg)
	if err != nil {
		return err
	}
	productsSvc, err := products.NewService(products.NewRepository(client.DB()), logg)
	if err != nil {
		return err
	}
	inventorySvc, err := inventory.NewService(inventory.NewRepository(client.DB()), logg)
	if err != nil {
		return err
	}
	ordersSvc, err := orders.NewService(orders.NewRepository(client.DB()), client, logg)
	if err != nil {
		return err
	}
	invoicesSvc, err := invoices.NewService(invoices.NewRepository(client.DB()), client, logg)
	if err != nil {
		return err
	}
	quotesSvc, err := quotes.NewService(quotes.NewRepository(client.DB()), client, logg)
	if err != nil {
		return err
	}
	dashboardSvc, err := dashboard.NewService(dashboard.NewRepository(client.DB(), client.IsSQLite()), logg)
	if err != nil {
		return err
	}

	forwarder, err := relay.NewForwarder(cfg.Relay.HTTPTimeout, cfg.Auth.LoginURL, logg)
	if err != nil {
		return err
	}
	session, err := relay.NewWSSession(logg)
	if err != nil {
		return err
	}

	handler := routes.New(logg, commandMetrics, registry, routes.Controllers{
		Parties:   controllers.NewPartiesController(partiesSvc, logg),
		Products:  controllers.NewProductsController(productsSvc, logg),
		Inventory: controllers.NewInventoryController(inventorySvc, logg),
		Orders:    controllers.NewOrdersController(ordersSvc, logg),
		Invoices:  controllers.NewInvoicesController(invoicesSvc, logg),
		Quotes:    controllers.NewQuotesController(quotesSvc, logg),
		Dashboard: controllers.NewDashboardController(dashboardSvc, logg),
		Relay:     controllers.NewRelayController(forwarder, session, logg),
		System:    controllers.NewSystemController(client, logg),
	})

	server := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logg.Info(logg.WithField(ctx, "addr", server.Addr), "http server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return multierr.Append(err, closeAll(client, session))
	case sig := <-stop:
		logg.Info(logg.WithField(ctx, "signal", sig.String()), "shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	var result error
	if err := server.Shutdown(shutdownCtx); err != nil {
		result = multierr.Append(result, err)
	}
	result = multierr.Append(result, closeAll(client, session))
	result = multierr.Append(result, <-errCh)

	if result == nil {
		logg.Info(ctx, "shutdown complete")
	}
	return result
}

func closeAll(client *db.Client, session *relay.WSSession) error {
	return multierr.Combine(
		session.Shutdown(),
		client.Close(),
	)
}

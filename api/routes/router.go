// Package routes assembles the HTTP surface.
package routes

import (
	"net/http"

	"github.com/gestora-app/gestora-backend/api/controllers"
	"github.com/gestora-app/gestora-backend/api/middleware"
	"github.com/gestora-app/gestora-backend/pkg/logger"
	"github.com/gestora-app/gestora-backend/pkg/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Controllers bundles every controller the router mounts.
type Controllers struct {
	Parties   *controllers.PartiesController
	Products  *controllers.ProductsController
	Inventory *controllers.InventoryController
	Orders    *controllers.OrdersController
	Invoices  *controllers.InvoicesController
	Quotes    *controllers.QuotesController
	Dashboard *controllers.DashboardController
	Relay     *controllers.RelayController
	System    *controllers.SystemController
}

// New builds the chi router with the shared middleware chain.
func New(logg *logger.Logger, commandMetrics *metrics.CommandMetrics, registry *prometheus.Registry, ctrl Controllers) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID(logg))
	r.Use(middleware.Recover(logg))
	r.Use(middleware.Logging(logg))
	r.Use(middleware.Metrics(commandMetrics))

	r.Get("/healthz", ctrl.System.Health)
	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/clients", func(r chi.Router) {
			r.Get("/", ctrl.Parties.ListClients)
			r.Get("/search", ctrl.Parties.SearchClients)
			r.Post("/", ctrl.Parties.CreateClient)
			r.Get("/{id}", ctrl.Parties.GetClient)
			r.Put("/{id}", ctrl.Parties.UpdateClient)
			r.Delete("/{id}", ctrl.Parties.DeleteClient)
		})

		r.Route("/suppliers", func(r chi.Router) {
			r.Get("/", ctrl.Parties.ListSuppliers)
			r.Get("/search", ctrl.Parties.SearchSuppliers)
			r.Post("/", ctrl.Parties.CreateSupplier)
			r.Get("/{id}", ctrl.Parties.GetSupplier)
			r.Put("/{id}", ctrl.Parties.UpdateSupplier)
			r.Delete("/{id}", ctrl.Parties.DeleteSupplier)
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", ctrl.Products.List)
			r.Get("/search", ctrl.Products.Search)
			r.Post("/", ctrl.Products.Create)
			r.Get("/{id}", ctrl.Products.Get)
			r.Get("/{id}/stock", ctrl.Products.Stock)
			r.Put("/{id}", ctrl.Products.Update)
			r.Delete("/{id}", ctrl.Products.Delete)
		})

		r.Route("/inventory", func(r chi.Router) {
			r.Get("/", ctrl.Inventory.List)
			r.Post("/", ctrl.Inventory.Create)
			r.Get("/{id}", ctrl.Inventory.Get)
			r.Delete("/{id}", ctrl.Inventory.Delete)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", ctrl.Orders.List)
			r.Post("/", ctrl.Orders.Create)
			r.Get("/{id}", ctrl.Orders.Get)
			r.Get("/{id}/details", ctrl.Orders.Details)
			r.Get("/{id}/products", ctrl.Orders.Products)
			r.Put("/{id}", ctrl.Orders.UpdateStatus)
			r.Delete("/{id}", ctrl.Orders.Delete)
		})

		r.Route("/invoices", func(r chi.Router) {
			r.Get("/", ctrl.Invoices.List)
			r.Post("/", ctrl.Invoices.Create)
			r.Get("/{id}", ctrl.Invoices.Get)
			r.Get("/{id}/details", ctrl.Invoices.Details)
			r.Get("/{id}/products", ctrl.Invoices.Products)
			r.Put("/{id}", ctrl.Invoices.Update)
			r.Delete("/{id}", ctrl.Invoices.Delete)
		})

		r.Route("/quotes", func(r chi.Router) {
			r.Get("/", ctrl.Quotes.List)
			r.Post("/", ctrl.Quotes.Create)
			r.Get("/{id}", ctrl.Quotes.Get)
			r.Get("/{id}/details", ctrl.Quotes.Details)
			r.Get("/{id}/products", ctrl.Quotes.Products)
			r.Delete("/{id}", ctrl.Quotes.Delete)
		})

		r.Route("/dashboard", func(r chi.Router) {
			r.Get("/mvm-stats", ctrl.Dashboard.MovementStats)
			r.Get("/top-clients", ctrl.Dashboard.TopClients)
			r.Get("/top-suppliers", ctrl.Dashboard.TopSuppliers)
			r.Get("/top-products", ctrl.Dashboard.TopProducts)
			r.Get("/status-count", ctrl.Dashboard.StatusCounts)
			r.Get("/revenue", ctrl.Dashboard.Revenue)
			r.Get("/expenses", ctrl.Dashboard.Expenses)
		})

		r.Route("/relay", func(r chi.Router) {
			r.Post("/request", ctrl.Relay.APIRequest)
			r.Post("/login", ctrl.Relay.Login)
			r.Route("/ws", func(r chi.Router) {
				r.Post("/connect", ctrl.Relay.ConnectWebSocket)
				r.Post("/send", ctrl.Relay.SendWebSocketMessage)
				r.Post("/close", ctrl.Relay.CloseWebSocket)
				r.Get("/state", ctrl.Relay.WebSocketState)
			})
		})

		r.Post("/logs", ctrl.System.LogMessage)
	})

	return r
}

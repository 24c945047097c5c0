package controllers

import (
	"net/http"

	"github.com/gestora-app/gestora-backend/api/responses"
	"github.com/gestora-app/gestora-backend/internal/dashboard"
	"github.com/gestora-app/gestora-backend/pkg/logger"
)

// DashboardController serves the aggregate endpoints.
type DashboardController struct {
	svc  dashboard.Service
	logg *logger.Logger
}

// NewDashboardController wires the dashboard controller.
func NewDashboardController(svc dashboard.Service, logg *logger.Logger) *DashboardController {
	return &DashboardController{svc: svc, logg: logg}
}

func (c *DashboardController) MovementStats(w http.ResponseWriter, r *http.Request) {
	rows, err := c.svc.MovementStats(r.Context())
	if err != nil {
		responses.Error(r.Context(), c.logg, w, err)
		return
	}
	responses.Data(w, rows)
}

func (c *DashboardController) TopClients(w http.ResponseWriter, r *http.Request) {
	rows, err := c.svc.TopClients(r.Context())
	if err != nil {
		responses.Error(r.Context(), c.logg, w, err)
		return
	}
	responses.Data(w, rows)
}

func (c *DashboardController) TopSuppliers(w http.ResponseWriter, r *http.Request) {
	rows, err := c.svc.TopSuppliers(r.Context())
	if err != nil {
		responses.Error(r.Context(), c.logg, w, err)
		return
	}
	responses.Data(w, rows)
}

func (c *DashboardController) TopProducts(w http.ResponseWriter, r *http.Request) {
	rows, err := c.svc.TopProducts(r.Context())
	if err != nil {
		responses.Error(r.Context(), c.logg, w, err)
		return
	}
	responses.Data(w, rows)
}

func (c *DashboardController) StatusCounts(w http.ResponseWriter, r *http.Request) {
	counts, err := c.svc.StatusCounts(r.Context())
	if err != nil {
		responses.Error(r.Context(), c.logg, w, err)
		return
	}
	responses.Data(w, counts)
}

func (c *DashboardController) Revenue(w http.ResponseWriter, r *http.Request) {
	rows, err := c.svc.Revenue(r.Context())
	if err != nil {
		responses.Error(r.Context(), c.logg, w, err)
		return
	}
	responses.Data(w, rows)
}

func (c *DashboardController) Expenses(w http.ResponseWriter, r *http.Request) {
	rows, err := c.svc.Expenses(r.Context())
	if err != nil {
		responses.Error(r.Context(), c.logg, w, err)
		return
	}
	responses.Data(w, rows)
}

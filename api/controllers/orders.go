package controllers

import (
	"net/http"

	"github.com/gestora-app/gestora-backend/api/responses"
	"github.com/gestora-app/gestora-backend/api/validators"
	"github.com/gestora-app/gestora-backend/internal/orders"
	"github.com/gestora-app/gestora-backend/pkg/enums"
	"github.com/gestora-app/gestora-backend/pkg/logger"
)

// OrdersController serves the order endpoints.
type OrdersController struct {
	svc  orders.Service
	logg *logger.Logger
}

// NewOrdersController wires the orders controller.
func NewOrdersController(svc orders.Service, logg *logger.Logger) *OrdersController {
	return &OrdersController{svc: svc, logg: logg}
}

type orderStatusRequest struct {
	Status enums.OrderStatus `json:"status" validate:"required"`
}

func (c *OrdersController) List(w http.ResponseWriter, r *http.Request) {
	rows, err := c.svc.List(r.Context(), listArgs(r))
	if err != nil {
		responses.Error(r.Context(), c.logg, w, err)
		return
	}
	responses.Data(w, rows)
}

func (c *OrdersController) Get(w http.ResponseWriter, r *http.Request) {
	order, err := c.svc.Get(r.Context(), pathID(r))
	if err != nil {
		responses.Error(r.Context(), c.logg, w, err)
		return
	}
	responses.Data(w, order)
}

func (c *OrdersController) Details(w http.ResponseWriter, r *http.Request) {
	details, err := c.svc.Details(r.Context(), pathID(r))
	if err != nil {
		responses.Error(r.Context(), c.logg, w, err)
		return
	}
	responses.Data(w, details)
}

func (c *OrdersController) Products(w http.ResponseWriter, r *http.Request) {
	rows, err := c.svc.Products(r.Context(), pathID(r))
	if err != nil {
		responses.Error(r.Context(), c.logg, w, err)
		return
	}
	responses.Data(w, rows)
}

func (c *OrdersController) Create(w http.ResponseWriter, r *http.Request) {
	var body orders.NewOrder
	if err := validators.DecodeJSONBody(w, r, &body); err != nil {
		responses.Error(r.Context(), c.logg, w, err)
		return
	}

	order, err := c.svc.Create(r.Context(), body)
	if err != nil {
		responses.Error(r.Context(), c.logg, w, err)
		return
	}
	responses.Created(w, order)
}

func (c *OrdersController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var body orderStatusRequest
	if err := validators.DecodeJSONBody(w, r, &body); err != nil {
		responses.Error(r.Context(), c.logg, w, err)
		return
	}

	err := c.svc.UpdateStatus(r.Context(), orders.StatusUpdate{
		ID:     pathID(r),
		Status: body.Status,
	})
	if err != nil {
		responses.Error(r.Context(), c.logg, w, err)
		return
	}
	responses.Message(w, "order updated")
}

func (c *OrdersController) Delete(w http.ResponseWriter, r *http.Request) {
	removed, err := c.svc.Delete(r.Context(), pathID(r))
	if err != nil {
		responses.Error(r.Context(), c.logg, w, err)
		return
	}
	responses.Data(w, removed)
}

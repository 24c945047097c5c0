package controllers

import (
	"net/http"

	"github.com/gestora-app/gestora-backend/api/responses"
	"github.com/gestora-app/gestora-backend/api/validators"
	"github.com/gestora-app/gestora-backend/internal/inventory"
	"github.com/gestora-app/gestora-backend/pkg/logger"
)

// InventoryController serves the stock ledger endpoints.
type InventoryController struct {
	svc  inventory.Service
	logg *logger.Logger
}

// NewInventoryController wires the inventory controller.
func NewInventoryController(svc inventory.Service, logg *logger.Logger) *InventoryController {
	return &InventoryController{svc: svc, logg: logg}
}

func (c *InventoryController) List(w http.ResponseWriter, r *http.Request) {
	rows, err := c.svc.List(r.Context(), listArgs(r))
	if err != nil {
		responses.Error(r.Context(), c.logg, w, err)
		return
	}
	responses.Data(w, rows)
}

func (c *InventoryController) Get(w http.ResponseWriter, r *http.Request) {
	movement, err := c.svc.Get(r.Context(), pathID(r))
	if err != nil {
		responses.Error(r.Context(), c.logg, w, err)
		return
	}
	responses.Data(w, movement)
}

func (c *InventoryController) Create(w http.ResponseWriter, r *http.Request) {
	var body inventory.NewMovement
	if err := validators.DecodeJSONBody(w, r, &body); err != nil {
		responses.Error(r.Context(), c.logg, w, err)
		return
	}

	movement, err := c.svc.Create(r.Context(), body)
	if err != nil {
		responses.Error(r.Context(), c.logg, w, err)
		return
	}
	responses.Created(w, movement)
}

func (c *InventoryController) Delete(w http.ResponseWriter, r *http.Request) {
	if err := c.svc.Delete(r.Context(), pathID(r)); err != nil {
		responses.Error(r.Context(), c.logg, w, err)
		return
	}
	responses.Message(w, "inventory movement deleted")
}

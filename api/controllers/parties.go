package controllers

import (
	"net/http"

	"github.com/gestora-app/gestora-backend/api/responses"
	"github.com/gestora-app/gestora-backend/api/validators"
	"github.com/gestora-app/gestora-backend/internal/parties"
	"github.com/gestora-app/gestora-backend/pkg/db/models"
	"github.com/gestora-app/gestora-backend/pkg/logger"
)

// PartiesController serves the client and supplier endpoints.
type PartiesController struct {
	svc  parties.Service
	logg *logger.Logger
}

// NewPartiesController wires the parties controller.
func NewPartiesController(svc parties.Service, logg *logger.Logger) *PartiesController {
	return &PartiesController{svc: svc, logg: logg}
}

type partyRequest struct {
	ID          string  `json:"id"`
	FullName    string  `json:"full_name" validate:"required"`
	PhoneNumber *string `json:"phone_number"`
	Email       *string `json:"email" validate:"omitempty,email"`
	Address     *string `json:"address"`
	Image       *string `json:"image"`
}

func (c *PartiesController) ListClients(w http.ResponseWriter, r *http.Request) {
	clients, err := c.svc.ListClients(r.Context(), listArgs(r))
	if err != nil {
		responses.Error(r.Context(), c.logg, w, err)
		return
	}
	responses.Data(w, clients)
}

func (c *PartiesController) SearchClients(w http.ResponseWriter, r *http.Request) {
	clients, err := c.svc.SearchClients(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		responses.Error(r.Context(), c.logg, w, err)
		return
	}
	responses.Data(w, clients)
}

func (c *PartiesController) GetClient(w http.ResponseWriter, r *http.Request) {
	client, err := c.svc.GetClient(r.Context(), pathID(r))
	if err != nil {
		responses.Error(r.Context(), c.logg, w, err)
		return
	}
	responses.Data(w, client)
}

func (c *PartiesController) CreateClient(w http.ResponseWriter, r *http.Request) {
	var body partyRequest
	if err := validators.DecodeJSONBody(w, r, &body); err != nil {
		responses.Error(r.Context(), c.logg, w, err)
		return
	}

	client, err := c.svc.CreateClient(r.Context(), models.Client{
		ID:          body.ID,
		FullName:    body.FullName,
		PhoneNumber: body.PhoneNumber,
		Email:       body.Email,
		Address:     body.Address,
		Image:       body.Image,
	})
	if err != nil {
		responses.Error(r.Context(), c.logg, w, err)
		return
	}
	responses.Created(w, client)
}

func (c *PartiesController) UpdateClient(w http.ResponseWriter, r *http.Request) {
	var body partyRequest
	if err := validators.DecodeJSONBody(w, r, &body); err != nil {
		responses.Error(r.Context(), c.logg, w, err)
		return
	}

	err := c.svc.UpdateClient(r.Context(), models.Client{
		ID:          pathID(r),
		FullName:    body.FullName,
		PhoneNumber: body.PhoneNumber,
		Email:       body.Email,
		Address:     body.Address,
		Image:       body.Image,
	})
	if err != nil {
		responses.Error(r.Context(), c.logg, w, err)
		return
	}
	responses.Message(w, "client updated")
}

func (c *PartiesController) DeleteClient(w http.ResponseWriter, r *http.Request) {
	if err := c.svc.DeleteClient(r.Context(), pathID(r)); err != nil {
		responses.Error(r.Context(), c.logg, w, err)
		return
	}
	responses.Message(w, "client deleted")
}

func (c *PartiesController) ListSuppliers(w http.ResponseWriter, r *http.Request) {
	suppliers, err := c.svc.ListSuppliers(r.Context(), listArgs(r))
	if err != nil {
		responses.Error(r.Context(), c.logg, w, err)
		return
	}
	responses.Data(w, suppliers)
}

func (c *PartiesController) SearchSuppliers(w http.ResponseWriter, r *http.Request) {
	suppliers, err := c.svc.SearchSuppliers(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		responses.Error(r.Context(), c.logg, w, err)
		return
	}
	responses.Data(w, suppliers)
}

func (c *PartiesController) GetSupplier(w http.ResponseWriter, r *http.Request) {
	supplier, err := c.svc.GetSupplier(r.Context(), pathID(r))
	if err != nil {
		responses.Error(r.Context(), c.logg, w, err)
		return
	}
	responses.Data(w, supplier)
}

func (c *PartiesController) CreateSupplier(w http.ResponseWriter, r *http.Request) {
	var body partyRequest
	if err := validators.DecodeJSONBody(w, r, &body); err != nil {
		responses.Error(r.Context(), c.logg, w, err)
		return
	}

	supplier, err := c.svc.CreateSupplier(r.Context(), models.Supplier{
		ID:          body.ID,
		FullName:    body.FullName,
		PhoneNumber: body.PhoneNumber,
		Email:       body.Email,
		Address:     body.Address,
		Image:       body.Image,
	})
	if err != nil {
		responses.Error(r.Context(), c.logg, w, err)
		return
	}
	responses.Created(w, supplier)
}

func (c *PartiesController) UpdateSupplier(w http.ResponseWriter, r *http.Request) {
	var body partyRequest
	if err := validators.DecodeJSONBody(w, r, &body); err != nil {
		responses.Error(r.Context(), c.logg, w, err)
		return
	}

	err := c.svc.UpdateSupplier(r.Context(), models.Supplier{
		ID:          pathID(r),
		FullName:    body.FullName,
		PhoneNumber: body.PhoneNumber,
		Email:       body.Email,
		Address:     body.Address,
		Image:       body.Image,
	})
	if err != nil {
		responses.Error(r.Context(), c.logg, w, err)
		return
	}
	responses.Message(w, "supplier updated")
}

func (c *PartiesController) DeleteSupplier(w http.ResponseWriter, r *http.Request) {
	if err := c.svc.DeleteSupplier(r.Context(), pathID(r)); err != nil {
		responses.Error(r.Context(), c.logg, w, err)
		return
	}
	responses.Message(w, "supplier deleted")
}

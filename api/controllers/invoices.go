package controllers

import (
	"net/http"

	"github.com/gestora-app/gestora-backend/api/responses"
	"github.com/gestora-app/gestora-backend/api/validators"
	"github.com/gestora-app/gestora-backend/internal/invoices"
	"github.com/gestora-app/gestora-backend/pkg/enums"
	"github.com/gestora-app/gestora-backend/pkg/logger"
)

// InvoicesController serves the invoice endpoints.
type InvoicesController struct {
	svc  invoices.Service
	logg *logger.Logger
}

// NewInvoicesController wires the invoices controller.
func NewInvoicesController(svc invoices.Service, logg *logger.Logger) *InvoicesController {
	return &InvoicesController{svc: svc, logg: logg}
}

type invoiceUpdateRequest struct {
	Status     enums.InvoiceStatus `json:"status" validate:"required"`
	PaidAmount float64             `json:"paid_amount" validate:"gte=0"`
}

func (c *InvoicesController) List(w http.ResponseWriter, r *http.Request) {
	rows, err := c.svc.List(r.Context(), listArgs(r))
	if err != nil {
		responses.Error(r.Context(), c.logg, w, err)
		return
	}
	responses.Data(w, rows)
}

func (c *InvoicesController) Get(w http.ResponseWriter, r *http.Request) {
	invoice, err := c.svc.Get(r.Context(), pathID(r))
	if err != nil {
		responses.Error(r.Context(), c.logg, w, err)
		return
	}
	responses.Data(w, invoice)
}

func (c *InvoicesController) Details(w http.ResponseWriter, r *http.Request) {
	details, err := c.svc.Details(r.Context(), pathID(r))
	if err != nil {
		responses.Error(r.Context(), c.logg, w, err)
		return
	}
	responses.Data(w, details)
}

func (c *InvoicesController) Products(w http.ResponseWriter, r *http.Request) {
	rows, err := c.svc.Products(r.Context(), pathID(r))
	if err != nil {
		responses.Error(r.Context(), c.logg, w, err)
		return
	}
	responses.Data(w, rows)
}

func (c *InvoicesController) Create(w http.ResponseWriter, r *http.Request) {
	var body invoices.NewInvoice
	if err := validators.DecodeJSONBody(w, r, &body); err != nil {
		responses.Error(r.Context(), c.logg, w, err)
		return
	}

	invoice, err := c.svc.Create(r.Context(), body)
	if err != nil {
		responses.Error(r.Context(), c.logg, w, err)
		return
	}
	responses.Created(w, invoice)
}

func (c *InvoicesController) Update(w http.ResponseWriter, r *http.Request) {
	var body invoiceUpdateRequest
	if err := validators.DecodeJSONBody(w, r, &body); err != nil {
		responses.Error(r.Context(), c.logg, w, err)
		return
	}

	err := c.svc.Update(r.Context(), invoices.Update{
		ID:         pathID(r),
		Status:     body.Status,
		PaidAmount: body.PaidAmount,
	})
	if err != nil {
		responses.Error(r.Context(), c.logg, w, err)
		return
	}
	responses.Message(w, "invoice updated")
}

func (c *InvoicesController) Delete(w http.ResponseWriter, r *http.Request) {
	removed, err := c.svc.Delete(r.Context(), pathID(r))
	if err != nil {
		responses.Error(r.Context(), c.logg, w, err)
		return
	}
	responses.Data(w, removed)
}

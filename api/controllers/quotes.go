package controllers

import (
	"net/http"

	"github.com/gestora-app/gestora-backend/api/responses"
	"github.com/gestora-app/gestora-backend/api/validators"
	"github.com/gestora-app/gestora-backend/internal/quotes"
	"github.com/gestora-app/gestora-backend/pkg/logger"
)

// QuotesController serves the quote endpoints.
type QuotesController struct {
	svc  quotes.Service
	logg *logger.Logger
}

// NewQuotesController wires the quotes controller.
func NewQuotesController(svc quotes.Service, logg *logger.Logger) *QuotesController {
	return &QuotesController{svc: svc, logg: logg}
}

func (c *QuotesController) List(w http.ResponseWriter, r *http.Request) {
	rows, err := c.svc.List(r.Context(), listArgs(r))
	if err != nil {
		responses.Error(r.Context(), c.logg, w, err)
		return
	}
	responses.Data(w, rows)
}

func (c *QuotesController) Get(w http.ResponseWriter, r *http.Request) {
	quote, err := c.svc.Get(r.Context(), pathID(r))
	if err != nil {
		responses.Error(r.Context(), c.logg, w, err)
		return
	}
	responses.Data(w, quote)
}

func (c *QuotesController) Details(w http.ResponseWriter, r *http.Request) {
	details, err := c.svc.Details(r.Context(), pathID(r))
	if err != nil {
		responses.Error(r.Context(), c.logg, w, err)
		return
	}
	responses.Data(w, details)
}

func (c *QuotesController) Products(w http.ResponseWriter, r *http.Request) {
	rows, err := c.svc.Products(r.Context(), pathID(r))
	if err != nil {
		responses.Error(r.Context(), c.logg, w, err)
		return
	}
	responses.Data(w, rows)
}

func (c *QuotesController) Create(w http.ResponseWriter, r *http.Request) {
	var body quotes.NewQuote
	if err := validators.DecodeJSONBody(w, r, &body); err != nil {
		responses.Error(r.Context(), c.logg, w, err)
		return
	}

	quote, err := c.svc.Create(r.Context(), body)
	if err != nil {
		responses.Error(r.Context(), c.logg, w, err)
		return
	}
	responses.Created(w, quote)
}

func (c *QuotesController) Delete(w http.ResponseWriter, r *http.Request) {
	removed, err := c.svc.Delete(r.Context(), pathID(r))
	if err != nil {
		responses.Error(r.Context(), c.logg, w, err)
		return
	}
	responses.Data(w, removed)
}

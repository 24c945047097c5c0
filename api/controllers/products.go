package controllers

import (
	"net/http"

	"github.com/gestora-app/gestora-backend/api/responses"
	"github.com/gestora-app/gestora-backend/api/validators"
	"github.com/gestora-app/gestora-backend/internal/products"
	"github.com/gestora-app/gestora-backend/pkg/db/models"
	"github.com/gestora-app/gestora-backend/pkg/logger"
)

// ProductsController serves the catalog endpoints.
type ProductsController struct {
	svc  products.Service
	logg *logger.Logger
}

// NewProductsController wires the products controller.
func NewProductsController(svc products.Service, logg *logger.Logger) *ProductsController {
	return &ProductsController{svc: svc, logg: logg}
}

type productRequest struct {
	ID          string  `json:"id"`
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description"`
	Image       *string `json:"image"`
	Price       float64 `json:"price" validate:"gte=0"`
	MinQuantity float64 `json:"min_quantity" validate:"gte=0"`
}

func (c *ProductsController) List(w http.ResponseWriter, r *http.Request) {
	rows, err := c.svc.List(r.Context(), listArgs(r))
	if err != nil {
		responses.Error(r.Context(), c.logg, w, err)
		return
	}
	responses.Data(w, rows)
}

func (c *ProductsController) Search(w http.ResponseWriter, r *http.Request) {
	rows, err := c.svc.Search(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		responses.Error(r.Context(), c.logg, w, err)
		return
	}
	responses.Data(w, rows)
}

func (c *ProductsController) Get(w http.ResponseWriter, r *http.Request) {
	product, err := c.svc.Get(r.Context(), pathID(r))
	if err != nil {
		responses.Error(r.Context(), c.logg, w, err)
		return
	}
	responses.Data(w, product)
}

func (c *ProductsController) Stock(w http.ResponseWriter, r *http.Request) {
	stock, err := c.svc.Stock(r.Context(), pathID(r))
	if err != nil {
		responses.Error(r.Context(), c.logg, w, err)
		return
	}
	responses.Data(w, stock)
}

func (c *ProductsController) Create(w http.ResponseWriter, r *http.Request) {
	var body productRequest
	if err := validators.DecodeJSONBody(w, r, &body); err != nil {
		responses.Error(r.Context(), c.logg, w, err)
		return
	}

	product, err := c.svc.Create(r.Context(), models.Product{
		ID:          body.ID,
		Name:        body.Name,
		Description: body.Description,
		Image:       body.Image,
		Price:       body.Price,
		MinQuantity: body.MinQuantity,
	})
	if err != nil {
		responses.Error(r.Context(), c.logg, w, err)
		return
	}
	responses.Created(w, product)
}

func (c *ProductsController) Update(w http.ResponseWriter, r *http.Request) {
	var body productRequest
	if err := validators.DecodeJSONBody(w, r, &body); err != nil {
		responses.Error(r.Context(), c.logg, w, err)
		return
	}

	err := c.svc.Update(r.Context(), models.Product{
		ID:          pathID(r),
		Name:        body.Name,
		Description: body.Description,
		Image:       body.Image,
		Price:       body.Price,
		MinQuantity: body.MinQuantity,
	})
	if err != nil {
		responses.Error(r.Context(), c.logg, w, err)
		return
	}
	responses.Message(w, "product updated")
}

func (c *ProductsController) Delete(w http.ResponseWriter, r *http.Request) {
	if err := c.svc.Delete(r.Context(), pathID(r)); err != nil {
		responses.Error(r.Context(), c.logg, w, err)
		return
	}
	responses.Message(w, "product deleted")
}

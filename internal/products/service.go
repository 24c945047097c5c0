package products

import (
	"context"
	stdErrors "errors"
	"fmt"
	"strings"

	"github.com/gestora-app/gestora-backend/pkg/db/models"
	pkgErrors "github.com/gestora-app/gestora-backend/pkg/errors"
	"github.com/gestora-app/gestora-backend/pkg/ids"
	"github.com/gestora-app/gestora-backend/pkg/logger"
	"github.com/gestora-app/gestora-backend/pkg/pagination"
	"gorm.io/gorm"
)

const searchLimit = 10

// Service exposes catalog management and derived stock reads.
type Service interface {
	Create(ctx context.Context, product models.Product) (*models.Product, error)
	Update(ctx context.Context, product models.Product) error
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*StockedProduct, error)
	List(ctx context.Context, args pagination.ListArgs) ([]StockedProduct, error)
	Search(ctx context.Context, term string) ([]StockedProduct, error)
	Stock(ctx context.Context, id string) (float64, error)
}

type service struct {
	repo Repository
	logg *logger.Logger
}

// NewService wires the products service.
func NewService(repo Repository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("repository is required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &service{repo: repo, logg: logg}, nil
}

func (s *service) Create(ctx context.Context, product models.Product) (*models.Product, error) {
	if strings.TrimSpace(product.Name) == "" {
		return nil, pkgErrors.New(pkgErrors.CodeValidation, "product name is required")
	}
	if product.Price < 0 {
		return nil, pkgErrors.New(pkgErrors.CodeValidation, "product price cannot be negative")
	}
	if product.ID == "" {
		product.ID = ids.New()
	}

	if err := s.repo.Create(ctx, &product); err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeStorage, err, "creating product")
	}

	s.logg.Info(s.logg.WithField(ctx, "product_id", product.ID), "product created")
	return &product, nil
}

func (s *service) Update(ctx context.Context, product models.Product) error {
	if product.ID == "" {
		return pkgErrors.New(pkgErrors.CodeValidation, "product id is required")
	}
	if strings.TrimSpace(product.Name) == "" {
		return pkgErrors.New(pkgErrors.CodeValidation, "product name is required")
	}
	if product.Price < 0 {
		return pkgErrors.New(pkgErrors.CodeValidation, "product price cannot be negative")
	}

	rows, err := s.repo.Update(ctx, &product)
	if err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeStorage, err, "updating product")
	}
	if rows == 0 {
		return pkgErrors.New(pkgErrors.CodeNotFound, "product not found")
	}
	return nil
}

// Delete removes a product. Its movement ledger goes with it via the cascade,
// which in turn removes any document lines backed by those movements.
func (s *service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return pkgErrors.New(pkgErrors.CodeValidation, "product id is required")
	}

	rows, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeStorage, err, "deleting product")
	}
	if rows == 0 {
		return pkgErrors.New(pkgErrors.CodeNotFound, "product not found")
	}

	s.logg.Info(s.logg.WithField(ctx, "product_id", id), "product deleted")
	return nil
}

func (s *service) Get(ctx context.Context, id string) (*StockedProduct, error) {
	product, err := s.repo.Get(ctx, id)
	if stdErrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeStorage, err, "fetching product")
	}
	return product, nil
}

func (s *service) List(ctx context.Context, args pagination.ListArgs) ([]StockedProduct, error) {
	rows, err := s.repo.List(ctx, pagination.Normalize(args))
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeStorage, err, "listing products")
	}
	return rows, nil
}

func (s *service) Search(ctx context.Context, term string) ([]StockedProduct, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return []StockedProduct{}, nil
	}

	rows, err := s.repo.Search(ctx, "%"+term+"%", searchLimit)
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeStorage, err, "searching products")
	}
	return rows, nil
}

func (s *service) Stock(ctx context.Context, id string) (float64, error) {
	if id == "" {
		return 0, pkgErrors.New(pkgErrors.CodeValidation, "product id is required")
	}

	stock, err := s.repo.Stock(ctx, id)
	if err != nil {
		return 0, pkgErrors.Wrap(pkgErrors.CodeStorage, err, "computing stock")
	}
	return stock, nil
}

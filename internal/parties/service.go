package parties

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

// searchLimit caps the lightweight typeahead queries.
const searchLimit = 10

// Service exposes client and supplier management.
type Service interface {
	CreateClient(ctx context.Context, client models.Client) (*models.Client, error)
	UpdateClient(ctx context.Context, client models.Client) error
	DeleteClient(ctx context.Context, id string) error
	GetClient(ctx context.Context, id string) (*models.Client, error)
	ListClients(ctx context.Context, args pagination.ListArgs) ([]models.Client, error)
	SearchClients(ctx context.Context, term string) ([]models.Client, error)

	CreateSupplier(ctx context.Context, supplier models.Supplier) (*models.Supplier, error)
	UpdateSupplier(ctx context.Context, supplier models.Supplier) error
	DeleteSupplier(ctx context.Context, id string) error
	GetSupplier(ctx context.Context, id string) (*models.Supplier, error)
	ListSuppliers(ctx context.Context, args pagination.ListArgs) ([]models.Supplier, error)
	SearchSuppliers(ctx context.Context, term string) ([]models.Supplier, error)
}

type service struct {
	repo Repository
	logg *logger.Logger
}

// NewService wires the parties service.
func NewService(repo Repository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("repository is required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &service{repo: repo, logg: logg}, nil
}

func (s *service) CreateClient(ctx context.Context, client models.Client) (*models.Client, error) {
	if strings.TrimSpace(client.FullName) == "" {
		return nil, pkgErrors.New(pkgErrors.CodeValidation, "client full name is required")
	}
	if client.ID == "" {
		client.ID = ids.New()
	}

	if err := s.repo.CreateClient(ctx, &client); err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeStorage, err, "creating client")
	}

	s.logg.Info(s.logg.WithField(ctx, "client_id", client.ID), "client created")
	return &client, nil
}

func (s *service) UpdateClient(ctx context.Context, client models.Client) error {
	if client.ID == "" {
		return pkgErrors.New(pkgErrors.CodeValidation, "client id is required")
	}
	if strings.TrimSpace(client.FullName) == "" {
		return pkgErrors.New(pkgErrors.CodeValidation, "client full name is required")
	}

	rows, err := s.repo.UpdateClient(ctx, &client)
	if err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeStorage, err, "updating client")
	}
	if rows == 0 {
		return pkgErrors.New(pkgErrors.CodeNotFound, "client not found")
	}
	return nil
}

func (s *service) DeleteClient(ctx context.Context, id string) error {
	if id == "" {
		return pkgErrors.New(pkgErrors.CodeValidation, "client id is required")
	}

	rows, err := s.repo.DeleteClient(ctx, id)
	if err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeStorage, err, "deleting client")
	}
	if rows == 0 {
		return pkgErrors.New(pkgErrors.CodeNotFound, "client not found")
	}

	s.logg.Info(s.logg.WithField(ctx, "client_id", id), "client deleted")
	return nil
}

func (s *service) GetClient(ctx context.Context, id string) (*models.Client, error) {
	client, err := s.repo.GetClient(ctx, id)
	if stdErrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeStorage, err, "fetching client")
	}
	return client, nil
}

func (s *service) ListClients(ctx context.Context, args pagination.ListArgs) ([]models.Client, error) {
	clients, err := s.repo.ListClients(ctx, pagination.Normalize(args))
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeStorage, err, "listing clients")
	}
	return clients, nil
}

func (s *service) SearchClients(ctx context.Context, term string) ([]models.Client, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return []models.Client{}, nil
	}

	clients, err := s.repo.SearchClients(ctx, "%"+term+"%", searchLimit)
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeStorage, err, "searching clients")
	}
	return clients, nil
}

func (s *service) CreateSupplier(ctx context.Context, supplier models.Supplier) (*models.Supplier, error) {
	if strings.TrimSpace(supplier.FullName) == "" {
		return nil, pkgErrors.New(pkgErrors.CodeValidation, "supplier full name is required")
	}
	if supplier.ID == "" {
		supplier.ID = ids.New()
	}

	if err := s.repo.CreateSupplier(ctx, &supplier); err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeStorage, err, "creating supplier")
	}

	s.logg.Info(s.logg.WithField(ctx, "supplier_id", supplier.ID), "supplier created")
	return &supplier, nil
}

func (s *service) UpdateSupplier(ctx context.Context, supplier models.Supplier) error {
	if supplier.ID == "" {
		return pkgErrors.New(pkgErrors.CodeValidation, "supplier id is required")
	}
	if strings.TrimSpace(supplier.FullName) == "" {
		return pkgErrors.New(pkgErrors.CodeValidation, "supplier full name is required")
	}

	rows, err := s.repo.UpdateSupplier(ctx, &supplier)
	if err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeStorage, err, "updating supplier")
	}
	if rows == 0 {
		return pkgErrors.New(pkgErrors.CodeNotFound, "supplier not found")
	}
	return nil
}

func (s *service) DeleteSupplier(ctx context.Context, id string) error {
	if id == "" {
		return pkgErrors.New(pkgErrors.CodeValidation, "supplier id is required")
	}

	rows, err := s.repo.DeleteSupplier(ctx, id)
	if err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeStorage, err, "deleting supplier")
	}
	if rows == 0 {
		return pkgErrors.New(pkgErrors.CodeNotFound, "supplier not found")
	}

	s.logg.Info(s.logg.WithField(ctx, "supplier_id", id), "supplier deleted")
	return nil
}

func (s *service) GetSupplier(ctx context.Context, id string) (*models.Supplier, error) {
	supplier, err := s.repo.GetSupplier(ctx, id)
	if stdErrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeStorage, err, "fetching supplier")
	}
	return supplier, nil
}

func (s *service) ListSuppliers(ctx context.Context, args pagination.ListArgs) ([]models.Supplier, error) {
	suppliers, err := s.repo.ListSuppliers(ctx, pagination.Normalize(args))
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeStorage, err, "listing suppliers")
	}
	return suppliers, nil
}

func (s *service) SearchSuppliers(ctx context.Context, term string) ([]models.Supplier, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return []models.Supplier{}, nil
	}

	suppliers, err := s.repo.SearchSuppliers(ctx, "%"+term+"%", searchLimit)
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeStorage, err, "searching suppliers")
	}
	return suppliers, nil
}

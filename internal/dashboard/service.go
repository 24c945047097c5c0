package dashboard

import (
	"context"
	"fmt"

	pkgErrors "github.com/gestora-app/gestora-backend/pkg/errors"
	"github.com/gestora-app/gestora-backend/pkg/logger"
)

const (
	defaultMonths = 12
	topLimit      = 5
)

// StatusCounts groups document counts by lifecycle status for both document
// kinds that carry one.
type StatusCounts struct {
	Orders   []StatusCount `json:"orders"`
	Invoices []StatusCount `json:"invoices"`
}

// Service answers the dashboard aggregates.
type Service interface {
	MovementStats(ctx context.Context) ([]MovementStat, error)
	TopClients(ctx context.Context) ([]TopClient, error)
	TopSuppliers(ctx context.Context) ([]TopSupplier, error)
	TopProducts(ctx context.Context) ([]TopProduct, error)
	StatusCounts(ctx context.Context) (*StatusCounts, error)
	Revenue(ctx context.Context) ([]MonthlyAmount, error)
	Expenses(ctx context.Context) ([]MonthlyAmount, error)
}

type service struct {
	repo Repository
	logg *logger.Logger
}

// NewService wires the dashboard service.
func NewService(repo Repository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("repository is required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &service{repo: repo, logg: logg}, nil
}

func (s *service) MovementStats(ctx context.Context) ([]MovementStat, error) {
	rows, err := s.repo.MovementStats(ctx, defaultMonths)
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeStorage, err, "loading movement stats")
	}
	return rows, nil
}

func (s *service) TopClients(ctx context.Context) ([]TopClient, error) {
	rows, err := s.repo.TopClients(ctx, topLimit)
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeStorage, err, "loading top clients")
	}
	return rows, nil
}

func (s *service) TopSuppliers(ctx context.Context) ([]TopSupplier, error) {
	rows, err := s.repo.TopSuppliers(ctx, topLimit)
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeStorage, err, "loading top suppliers")
	}
	return rows, nil
}

func (s *service) TopProducts(ctx context.Context) ([]TopProduct, error) {
	rows, err := s.repo.TopProducts(ctx, topLimit)
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeStorage, err, "loading top products")
	}
	return rows, nil
}

func (s *service) StatusCounts(ctx context.Context) (*StatusCounts, error) {
	orders, err := s.repo.OrderStatusCounts(ctx)
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeStorage, err, "loading order status counts")
	}
	invoices, err := s.repo.InvoiceStatusCounts(ctx)
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeStorage, err, "loading invoice status counts")
	}
	return &StatusCounts{Orders: orders, Invoices: invoices}, nil
}

func (s *service) Revenue(ctx context.Context) ([]MonthlyAmount, error) {
	rows, err := s.repo.Revenue(ctx, defaultMonths)
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeStorage, err, "loading revenue")
	}
	return rows, nil
}

func (s *service) Expenses(ctx context.Context) ([]MonthlyAmount, error) {
	rows, err := s.repo.Expenses(ctx, defaultMonths)
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeStorage, err, "loading expenses")
	}
	return rows, nil
}

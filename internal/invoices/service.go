package invoices

import (
	"context"
	stdErrors "errors"
	"fmt"

	"github.com/gestora-app/gestora-backend/pkg/db"
	"github.com/gestora-app/gestora-backend/pkg/db/models"
	"github.com/gestora-app/gestora-backend/pkg/enums"
	pkgErrors "github.com/gestora-app/gestora-backend/pkg/errors"
	"github.com/gestora-app/gestora-backend/pkg/ids"
	"github.com/gestora-app/gestora-backend/pkg/logger"
	"github.com/gestora-app/gestora-backend/pkg/pagination"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TxRunner executes a function inside a database transaction.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service exposes invoice management. Like orders, each billed line records
// its own OUT movement; unlike orders, invoices carry a paid amount and an
// optional link to the order they bill for.
type Service interface {
	Create(ctx context.Context, input NewInvoice) (*models.Invoice, error)
	Update(ctx context.Context, input Update) error
	Delete(ctx context.Context, id string) (int64, error)
	List(ctx context.Context, args pagination.ListArgs) ([]InvoiceRow, error)
	Get(ctx context.Context, id string) (*InvoiceWithItems, error)
	Details(ctx context.Context, id string) (*InvoiceDetails, error)
	Products(ctx context.Context, invoiceID string) ([]InvoiceProduct, error)
}

type service struct {
	repo Repository
	tx   TxRunner
	logg *logger.Logger
}

// NewService wires the invoices service.
func NewService(repo Repository, tx TxRunner, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("repository is required")
	}
	if tx == nil {
		return nil, fmt.Errorf("tx runner is required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &service{repo: repo, tx: tx, logg: logg}, nil
}

func (s *service) Create(ctx context.Context, input NewInvoice) (*models.Invoice, error) {
	if input.ClientID == "" {
		return nil, pkgErrors.New(pkgErrors.CodeValidation, "client id is required")
	}
	if err := input.Status.Validate(); err != nil {
		return nil, pkgErrors.New(pkgErrors.CodeValidation, err.Error())
	}
	if input.PaidAmount < 0 {
		return nil, pkgErrors.New(pkgErrors.CodeValidation, "paid amount cannot be negative")
	}
	for _, item := range input.Items {
		if item.Quantity <= 0 {
			return nil, pkgErrors.New(pkgErrors.CodeValidation, "item quantity must be positive")
		}
		if item.Price < 0 {
			return nil, pkgErrors.New(pkgErrors.CodeValidation, "item price cannot be negative")
		}
	}

	exists, err := s.repo.ClientExists(ctx, input.ClientID)
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeStorage, err, "checking client")
	}
	if !exists {
		return nil, pkgErrors.New(pkgErrors.CodeValidation, "referenced client does not exist")
	}
	if input.OrderID != nil && *input.OrderID != "" {
		ok, err := s.repo.OrderExists(ctx, *input.OrderID)
		if err != nil {
			return nil, pkgErrors.Wrap(pkgErrors.CodeStorage, err, "checking order")
		}
		if !ok {
			return nil, pkgErrors.New(pkgErrors.CodeValidation, "referenced order does not exist")
		}
	}
	for _, item := range input.Items {
		ok, err := s.repo.ProductExists(ctx, item.ProductID)
		if err != nil {
			return nil, pkgErrors.Wrap(pkgErrors.CodeStorage, err, "checking product")
		}
		if !ok {
			return nil, pkgErrors.New(pkgErrors.CodeValidation, "referenced product does not exist")
		}
	}

	invoice := models.Invoice{
		ID:         input.ID,
		ClientID:   input.ClientID,
		OrderID:    input.OrderID,
		Status:     input.Status,
		PaidAmount: input.PaidAmount,
	}
	if invoice.ID == "" {
		invoice.ID = ids.New()
	}
	if invoice.OrderID != nil && *invoice.OrderID == "" {
		invoice.OrderID = nil
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.InsertInvoice(tx, &invoice); err != nil {
			return pkgErrors.Wrap(pkgErrors.CodeStorage, err, "inserting invoice")
		}
		for _, item := range input.Items {
			movement := models.InventoryMovement{
				ID:        ids.New(),
				MvmType:   enums.MovementOut,
				Quantity:  item.Quantity,
				ProductID: item.ProductID,
			}
			if err := s.repo.InsertMovement(tx, &movement); err != nil {
				return pkgErrors.Wrap(pkgErrors.CodeStorage, err, "inserting movement")
			}
			row := models.InvoiceItem{
				ID:          ids.New(),
				Price:       item.Price,
				InvoiceID:   invoice.ID,
				InventoryID: movement.ID,
			}
			if err := s.repo.InsertItem(tx, &row); err != nil {
				if db.IsUniqueViolation(err, "") {
					return pkgErrors.Wrap(pkgErrors.CodeConstraint, err, "movement already backs another document line")
				}
				return pkgErrors.Wrap(pkgErrors.CodeStorage, err, "inserting invoice item")
			}
		}
		return nil
	})
	if err != nil {
		if typed := pkgErrors.As(err); typed != nil {
			return nil, typed
		}
		return nil, pkgErrors.Wrap(pkgErrors.CodeStorage, err, "creating invoice")
	}

	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"invoice_id": invoice.ID,
		"items":      len(input.Items),
	}), "invoice created")
	return &invoice, nil
}

func (s *service) Update(ctx context.Context, input Update) error {
	if input.ID == "" {
		return pkgErrors.New(pkgErrors.CodeValidation, "invoice id is required")
	}
	if err := input.Status.Validate(); err != nil {
		return pkgErrors.New(pkgErrors.CodeValidation, err.Error())
	}
	if input.PaidAmount < 0 {
		return pkgErrors.New(pkgErrors.CodeValidation, "paid amount cannot be negative")
	}

	rows, err := s.repo.Update(ctx, input.ID, input.Status, input.PaidAmount)
	if err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeStorage, err, "updating invoice")
	}
	if rows == 0 {
		return pkgErrors.New(pkgErrors.CodeNotFound, "invoice not found")
	}
	return nil
}

// Delete removes the invoice, its items, and the OUT movements behind them.
// It returns how many rows were removed across the three tables.
func (s *service) Delete(ctx context.Context, id string) (int64, error) {
	if id == "" {
		return 0, pkgErrors.New(pkgErrors.CodeValidation, "invoice id is required")
	}

	exists, err := s.repo.Exists(ctx, id)
	if err != nil {
		return 0, pkgErrors.Wrap(pkgErrors.CodeStorage, err, "checking invoice")
	}
	if !exists {
		return 0, pkgErrors.New(pkgErrors.CodeNotFound, "invoice not found")
	}

	var removed int64
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		items, err := s.repo.CountItems(tx, id)
		if err != nil {
			return err
		}
		movements, err := s.repo.DeleteMovementsForInvoice(tx, id)
		if err != nil {
			return err
		}
		invoices, err := s.repo.DeleteInvoice(tx, id)
		if err != nil {
			return err
		}
		removed = invoices + items + movements
		return nil
	})
	if err != nil {
		return 0, pkgErrors.Wrap(pkgErrors.CodeStorage, err, "deleting invoice")
	}

	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"invoice_id":   id,
		"rows_removed": removed,
	}), "invoice deleted")
	return removed, nil
}

func (s *service) List(ctx context.Context, args pagination.ListArgs) ([]InvoiceRow, error) {
	args = pagination.Normalize(args)
	if args.Status != "" {
		// Unknown status values degrade to "no filter".
		if _, err := enums.ParseInvoiceStatus(args.Status); err != nil {
			args.Status = ""
		}
	}

	rows, err := s.repo.List(ctx, args)
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeStorage, err, "listing invoices")
	}
	return rows, nil
}

func (s *service) Get(ctx context.Context, id string) (*InvoiceWithItems, error) {
	invoice, err := s.repo.Get(ctx, id)
	if stdErrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeStorage, err, "fetching invoice")
	}

	items, err := s.repo.Products(ctx, id)
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeStorage, err, "listing invoice products")
	}
	return &InvoiceWithItems{
		ID:         invoice.ID,
		ClientID:   invoice.ClientID,
		OrderID:    invoice.OrderID,
		Status:     invoice.Status,
		PaidAmount: invoice.PaidAmount,
		CreatedAt:  invoice.CreatedAt,
		Items:      items,
	}, nil
}

func (s *service) Details(ctx context.Context, id string) (*InvoiceDetails, error) {
	details, err := s.repo.Details(ctx, id)
	if stdErrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeStorage, err, "fetching invoice details")
	}

	// Float subtraction drifts on money values; keep the remainder exact.
	details.Balance = decimal.NewFromFloat(details.Total).
		Sub(decimal.NewFromFloat(details.PaidAmount)).
		InexactFloat64()
	return details, nil
}

func (s *service) Products(ctx context.Context, invoiceID string) ([]InvoiceProduct, error) {
	rows, err := s.repo.Products(ctx, invoiceID)
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeStorage, err, "listing invoice products")
	}
	return rows, nil
}

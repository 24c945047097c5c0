package orders

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
	"gorm.io/gorm"
)

// TxRunner executes a function inside a database transaction.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service exposes order management. Creating an order records one OUT
// movement per line inside the same transaction; deleting it retracts those
// movements, which restores the derived stock.
type Service interface {
	Create(ctx context.Context, input NewOrder) (*models.Order, error)
	UpdateStatus(ctx context.Context, input StatusUpdate) error
	Delete(ctx context.Context, id string) (int64, error)
	List(ctx context.Context, args pagination.ListArgs) ([]OrderRow, error)
	Get(ctx context.Context, id string) (*OrderWithItems, error)
	Details(ctx context.Context, id string) (*OrderDetails, error)
	Products(ctx context.Context, orderID string) ([]OrderProduct, error)
}

type service struct {
	repo Repository
	tx   TxRunner
	logg *logger.Logger
}

// NewService wires the orders service.
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

func (s *service) Create(ctx context.Context, input NewOrder) (*models.Order, error) {
	if input.ClientID == "" {
		return nil, pkgErrors.New(pkgErrors.CodeValidation, "client id is required")
	}
	if err := input.Status.Validate(); err != nil {
		return nil, pkgErrors.New(pkgErrors.CodeValidation, err.Error())
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
	for _, item := range input.Items {
		ok, err := s.repo.ProductExists(ctx, item.ProductID)
		if err != nil {
			return nil, pkgErrors.Wrap(pkgErrors.CodeStorage, err, "checking product")
		}
		if !ok {
			return nil, pkgErrors.New(pkgErrors.CodeValidation, "referenced product does not exist")
		}
	}

	order := models.Order{
		ID:       input.ID,
		ClientID: input.ClientID,
		Status:   input.Status,
	}
	if order.ID == "" {
		order.ID = ids.New()
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.InsertOrder(tx, &order); err != nil {
			return pkgErrors.Wrap(pkgErrors.CodeStorage, err, "inserting order")
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
			row := models.OrderItem{
				ID:          ids.New(),
				Price:       item.Price,
				OrderID:     order.ID,
				InventoryID: movement.ID,
			}
			if err := s.repo.InsertItem(tx, &row); err != nil {
				if db.IsUniqueViolation(err, "") {
					return pkgErrors.Wrap(pkgErrors.CodeConstraint, err, "movement already backs another document line")
				}
				return pkgErrors.Wrap(pkgErrors.CodeStorage, err, "inserting order item")
			}
		}
		return nil
	})
	if err != nil {
		if typed := pkgErrors.As(err); typed != nil {
			return nil, typed
		}
		return nil, pkgErrors.Wrap(pkgErrors.CodeStorage, err, "creating order")
	}

	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"order_id": order.ID,
		"items":    len(input.Items),
	}), "order created")
	return &order, nil
}

func (s *service) UpdateStatus(ctx context.Context, input StatusUpdate) error {
	if input.ID == "" {
		return pkgErrors.New(pkgErrors.CodeValidation, "order id is required")
	}
	if err := input.Status.Validate(); err != nil {
		return pkgErrors.New(pkgErrors.CodeValidation, err.Error())
	}

	rows, err := s.repo.UpdateStatus(ctx, input.ID, input.Status)
	if err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeStorage, err, "updating order status")
	}
	if rows == 0 {
		return pkgErrors.New(pkgErrors.CodeNotFound, "order not found")
	}
	return nil
}

// Delete removes the order, its items, and the OUT movements behind them.
// It returns how many rows were removed across the three tables.
func (s *service) Delete(ctx context.Context, id string) (int64, error) {
	if id == "" {
		return 0, pkgErrors.New(pkgErrors.CodeValidation, "order id is required")
	}

	exists, err := s.repo.Exists(ctx, id)
	if err != nil {
		return 0, pkgErrors.Wrap(pkgErrors.CodeStorage, err, "checking order")
	}
	if !exists {
		return 0, pkgErrors.New(pkgErrors.CodeNotFound, "order not found")
	}

	var removed int64
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		items, err := s.repo.CountItems(tx, id)
		if err != nil {
			return err
		}
		movements, err := s.repo.DeleteMovementsForOrder(tx, id)
		if err != nil {
			return err
		}
		orders, err := s.repo.DeleteOrder(tx, id)
		if err != nil {
			return err
		}
		removed = orders + items + movements
		return nil
	})
	if err != nil {
		return 0, pkgErrors.Wrap(pkgErrors.CodeStorage, err, "deleting order")
	}

	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"order_id":     id,
		"rows_removed": removed,
	}), "order deleted")
	return removed, nil
}

func (s *service) List(ctx context.Context, args pagination.ListArgs) ([]OrderRow, error) {
	args = pagination.Normalize(args)
	if args.Status != "" {
		// Unknown status values degrade to "no filter".
		if _, err := enums.ParseOrderStatus(args.Status); err != nil {
			args.Status = ""
		}
	}

	rows, err := s.repo.List(ctx, args)
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeStorage, err, "listing orders")
	}
	return rows, nil
}

func (s *service) Get(ctx context.Context, id string) (*OrderWithItems, error) {
	order, err := s.repo.Get(ctx, id)
	if stdErrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeStorage, err, "fetching order")
	}

	items, err := s.repo.Products(ctx, id)
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeStorage, err, "listing order products")
	}
	return &OrderWithItems{
		ID:        order.ID,
		ClientID:  order.ClientID,
		Status:    order.Status,
		CreatedAt: order.CreatedAt,
		Items:     items,
	}, nil
}

func (s *service) Details(ctx context.Context, id string) (*OrderDetails, error) {
	details, err := s.repo.Details(ctx, id)
	if stdErrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeStorage, err, "fetching order details")
	}
	return details, nil
}

func (s *service) Products(ctx context.Context, orderID string) ([]OrderProduct, error) {
	rows, err := s.repo.Products(ctx, orderID)
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeStorage, err, "listing order products")
	}
	return rows, nil
}

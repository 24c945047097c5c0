package inventory

import (
	"context"
	stdErrors "errors"
	"fmt"

	"github.com/gestora-app/gestora-backend/pkg/db/models"
	"github.com/gestora-app/gestora-backend/pkg/enums"
	pkgErrors "github.com/gestora-app/gestora-backend/pkg/errors"
	"github.com/gestora-app/gestora-backend/pkg/ids"
	"github.com/gestora-app/gestora-backend/pkg/logger"
	"github.com/gestora-app/gestora-backend/pkg/pagination"
	"gorm.io/gorm"
)

// NewMovement is the input for a manual ledger entry: an IN restock or an OUT
// adjustment recorded outside of any order or invoice.
type NewMovement struct {
	ID        string             `json:"id,omitempty"`
	MvmType   enums.MovementType `json:"mvm_type"`
	Quantity  float64            `json:"quantity"`
	ProductID string             `json:"product_id"`
}

// Service exposes the stock ledger.
type Service interface {
	Create(ctx context.Context, input NewMovement) (*models.InventoryMovement, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*models.InventoryMovement, error)
	List(ctx context.Context, args pagination.ListArgs) ([]MovementRow, error)
}

type service struct {
	repo Repository
	logg *logger.Logger
}

// NewService wires the inventory service.
func NewService(repo Repository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("repository is required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &service{repo: repo, logg: logg}, nil
}

func (s *service) Create(ctx context.Context, input NewMovement) (*models.InventoryMovement, error) {
	if err := input.MvmType.Validate(); err != nil {
		return nil, pkgErrors.New(pkgErrors.CodeValidation, err.Error())
	}
	if input.Quantity <= 0 {
		return nil, pkgErrors.New(pkgErrors.CodeValidation, "movement quantity must be positive")
	}
	if input.ProductID == "" {
		return nil, pkgErrors.New(pkgErrors.CodeValidation, "product id is required")
	}

	exists, err := s.repo.ProductExists(ctx, input.ProductID)
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeStorage, err, "checking product")
	}
	if !exists {
		return nil, pkgErrors.New(pkgErrors.CodeValidation, "referenced product does not exist")
	}

	movement := models.InventoryMovement{
		ID:        input.ID,
		MvmType:   input.MvmType,
		Quantity:  input.Quantity,
		ProductID: input.ProductID,
	}
	if movement.ID == "" {
		movement.ID = ids.New()
	}

	if err := s.repo.Create(ctx, &movement); err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeStorage, err, "creating movement")
	}

	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"movement_id": movement.ID,
		"mvm_type":    movement.MvmType.String(),
	}), "inventory movement recorded")
	return &movement, nil
}

// Delete removes a ledger entry. Any order or invoice line backed by the
// movement is dropped by the cascade, so callers effectively retract the sale
// line along with the stock change.
func (s *service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return pkgErrors.New(pkgErrors.CodeValidation, "movement id is required")
	}

	rows, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeStorage, err, "deleting movement")
	}
	if rows == 0 {
		return pkgErrors.New(pkgErrors.CodeNotFound, "movement not found")
	}

	s.logg.Info(s.logg.WithField(ctx, "movement_id", id), "inventory movement deleted")
	return nil
}

func (s *service) Get(ctx context.Context, id string) (*models.InventoryMovement, error) {
	movement, err := s.repo.Get(ctx, id)
	if stdErrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeStorage, err, "fetching movement")
	}
	return movement, nil
}

func (s *service) List(ctx context.Context, args pagination.ListArgs) ([]MovementRow, error) {
	args = pagination.Normalize(args)
	if args.Status != "" {
		// Unknown movement types degrade to "no filter".
		if _, err := enums.ParseMovementType(args.Status); err != nil {
			args.Status = ""
		}
	}

	rows, err := s.repo.List(ctx, args)
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeStorage, err, "listing movements")
	}
	return rows, nil
}

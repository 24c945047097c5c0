package quotes

import (
	"context"
	stdErrors "errors"
	"fmt"

	"github.com/gestora-app/gestora-backend/pkg/db/models"
	pkgErrors "github.com/gestora-app/gestora-backend/pkg/errors"
	"github.com/gestora-app/gestora-backend/pkg/ids"
	"github.com/gestora-app/gestora-backend/pkg/logger"
	"github.com/gestora-app/gestora-backend/pkg/pagination"
	"gorm.io/gorm"
)

// NewItem is one estimated line of a quote.
type NewItem struct {
	ProductID string  `json:"product_id"`
	Quantity  float64 `json:"quantity"`
	Price     float64 `json:"price"`
}

// NewQuote is the input for creating a quote with its lines. Quotes touch no
// stock: their lines reference products directly.
type NewQuote struct {
	ID       string    `json:"id,omitempty"`
	ClientID string    `json:"client_id"`
	Items    []NewItem `json:"items"`
}

// TxRunner executes a function inside a database transaction.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service exposes quote management.
type Service interface {
	Create(ctx context.Context, input NewQuote) (*models.Quote, error)
	Delete(ctx context.Context, id string) (int64, error)
	List(ctx context.Context, args pagination.ListArgs) ([]QuoteRow, error)
	Get(ctx context.Context, id string) (*QuoteWithItems, error)
	Details(ctx context.Context, id string) (*QuoteDetails, error)
	Products(ctx context.Context, quoteID string) ([]QuoteProduct, error)
}

type service struct {
	repo Repository
	tx   TxRunner
	logg *logger.Logger
}

// NewService wires the quotes service.
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

func (s *service) Create(ctx context.Context, input NewQuote) (*models.Quote, error) {
	if input.ClientID == "" {
		return nil, pkgErrors.New(pkgErrors.CodeValidation, "client id is required")
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

	quote := models.Quote{
		ID:       input.ID,
		ClientID: input.ClientID,
	}
	if quote.ID == "" {
		quote.ID = ids.New()
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.InsertQuote(tx, &quote); err != nil {
			return err
		}
		for _, item := range input.Items {
			row := models.QuoteItem{
				ID:        ids.New(),
				Price:     item.Price,
				Quantity:  item.Quantity,
				ProductID: item.ProductID,
				QuoteID:   quote.ID,
			}
			if err := s.repo.InsertItem(tx, &row); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeStorage, err, "creating quote")
	}

	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"quote_id": quote.ID,
		"items":    len(input.Items),
	}), "quote created")
	return &quote, nil
}

// Delete removes the quote and its items, returning how many rows fell.
func (s *service) Delete(ctx context.Context, id string) (int64, error) {
	if id == "" {
		return 0, pkgErrors.New(pkgErrors.CodeValidation, "quote id is required")
	}

	exists, err := s.repo.Exists(ctx, id)
	if err != nil {
		return 0, pkgErrors.Wrap(pkgErrors.CodeStorage, err, "checking quote")
	}
	if !exists {
		return 0, pkgErrors.New(pkgErrors.CodeNotFound, "quote not found")
	}

	var removed int64
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		items, err := s.repo.CountItems(tx, id)
		if err != nil {
			return err
		}
		quotes, err := s.repo.DeleteQuote(tx, id)
		if err != nil {
			return err
		}
		removed = quotes + items
		return nil
	})
	if err != nil {
		return 0, pkgErrors.Wrap(pkgErrors.CodeStorage, err, "deleting quote")
	}

	s.logg.Info(s.logg.WithField(ctx, "quote_id", id), "quote deleted")
	return removed, nil
}

func (s *service) List(ctx context.Context, args pagination.ListArgs) ([]QuoteRow, error) {
	rows, err := s.repo.List(ctx, pagination.Normalize(args))
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeStorage, err, "listing quotes")
	}
	return rows, nil
}

func (s *service) Get(ctx context.Context, id string) (*QuoteWithItems, error) {
	quote, err := s.repo.Get(ctx, id)
	if stdErrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeStorage, err, "fetching quote")
	}

	items, err := s.repo.Products(ctx, id)
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeStorage, err, "listing quote products")
	}
	return &QuoteWithItems{
		ID:        quote.ID,
		ClientID:  quote.ClientID,
		CreatedAt: quote.CreatedAt,
		Items:     items,
	}, nil
}

func (s *service) Details(ctx context.Context, id string) (*QuoteDetails, error) {
	details, err := s.repo.Details(ctx, id)
	if stdErrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeStorage, err, "fetching quote details")
	}
	return details, nil
}

func (s *service) Products(ctx context.Context, quoteID string) ([]QuoteProduct, error) {
	rows, err := s.repo.Products(ctx, quoteID)
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeStorage, err, "listing quote products")
	}
	return rows, nil
}

package products

import (
	"context"
	"time"

	"github.com/gestora-app/gestora-backend/pkg/db/models"
	"github.com/gestora-app/gestora-backend/pkg/pagination"
	"gorm.io/gorm"
)

// StockedProduct is a catalog row joined with its derived stock level. Stock
// is computed per query from the movement ledger and never persisted.
type StockedProduct struct {
	ID          string    `gorm:"column:id" json:"id"`
	Name        string    `gorm:"column:name" json:"name"`
	Description *string   `gorm:"column:description" json:"description,omitempty"`
	Image       *string   `gorm:"column:image" json:"image,omitempty"`
	Price       float64   `gorm:"column:price" json:"price"`
	MinQuantity float64   `gorm:"column:min_quantity" json:"min_quantity"`
	Stock       float64   `gorm:"column:stock" json:"stock"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
}

const stockedSelect = `
SELECT
  p.id, p.name, p.description, p.image, p.price, p.min_quantity, p.created_at,
  COALESCE(SUM(CASE WHEN im.mvm_type = 'IN' THEN im.quantity ELSE -im.quantity END), 0) AS stock
FROM products p
LEFT JOIN inventory_movements im ON im.product_id = p.id
`

// Repository persists catalog entries and answers stock queries.
type Repository interface {
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
	Get(ctx context.Context, id string) (*StockedProduct, error)
	List(ctx context.Context, args pagination.ListArgs) ([]StockedProduct, error)
	Search(ctx context.Context, pattern string, limit int) ([]StockedProduct, error)
	Stock(ctx context.Context, id string) (float64, error)
}

type repository struct {
	conn *gorm.DB
}

// NewRepository returns the GORM-backed products repository.
func NewRepository(conn *gorm.DB) Repository {
	return &repository{conn: conn}
}

func (r *repository) Create(ctx context.Context, product *models.Product) error {
	return r.conn.WithContext(ctx).Create(product).Error
}

func (r *repository) Update(ctx context.Context, product *models.Product) (int64, error) {
	result := r.conn.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", product.ID).
		Updates(map[string]any{
			"name":         product.Name,
			"description":  product.Description,
			"image":        product.Image,
			"price":        product.Price,
			"min_quantity": product.MinQuantity,
		})
	return result.RowsAffected, result.Error
}

func (r *repository) Delete(ctx context.Context, id string) (int64, error) {
	result := r.conn.WithContext(ctx).Where("id = ?", id).Delete(&models.Product{})
	return result.RowsAffected, result.Error
}

func (r *repository) Get(ctx context.Context, id string) (*StockedProduct, error) {
	rows := []StockedProduct{}
	err := r.conn.WithContext(ctx).
		Raw(stockedSelect+`
WHERE p.id = ?
GROUP BY p.id, p.name, p.description, p.image, p.price, p.min_quantity, p.created_at`, id).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &rows[0], nil
}

func (r *repository) List(ctx context.Context, args pagination.ListArgs) ([]StockedProduct, error) {
	query := stockedSelect
	params := []any{}
	if pattern := args.SearchPattern(); pattern != "" {
		query += "WHERE p.name LIKE ?\n"
		params = append(params, pattern)
	}
	query += `
GROUP BY p.id, p.name, p.description, p.image, p.price, p.min_quantity, p.created_at
ORDER BY p.created_at DESC
LIMIT ? OFFSET ?`
	params = append(params, pagination.NormalizePerPage(args.PerPage), args.Offset())

	rows := []StockedProduct{}
	err := r.conn.WithContext(ctx).Raw(query, params...).Scan(&rows).Error
	return rows, err
}

func (r *repository) Search(ctx context.Context, pattern string, limit int) ([]StockedProduct, error) {
	rows := []StockedProduct{}
	err := r.conn.WithContext(ctx).
		Raw(stockedSelect+`
WHERE p.name LIKE ?
GROUP BY p.id, p.name, p.description, p.image, p.price, p.min_quantity, p.created_at
ORDER BY p.created_at DESC
LIMIT ?`, pattern, limit).
		Scan(&rows).Error
	return rows, err
}

func (r *repository) Stock(ctx context.Context, id string) (float64, error) {
	var stock float64
	err := r.conn.WithContext(ctx).
		Raw(`
SELECT COALESCE(SUM(CASE WHEN mvm_type = 'IN' THEN quantity ELSE -quantity END), 0)
FROM inventory_movements
WHERE product_id = ?`, id).
		Scan(&stock).Error
	return stock, err
}

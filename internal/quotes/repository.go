package quotes

import (
	"context"
	"time"

	"github.com/gestora-app/gestora-backend/pkg/db/models"
	"github.com/gestora-app/gestora-backend/pkg/pagination"
	"gorm.io/gorm"
)

// QuoteRow is one row of the paged quote listing.
type QuoteRow struct {
	ID        string    `gorm:"column:id" json:"id"`
	ClientID  string    `gorm:"column:client_id" json:"client_id"`
	FullName  string    `gorm:"column:full_name" json:"full_name"`
	Products  int64     `gorm:"column:products" json:"products"`
	Total     float64   `gorm:"column:total" json:"total"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

// QuoteDetails is the quote header joined with the client's contact fields.
type QuoteDetails struct {
	ID          string    `gorm:"column:id" json:"id"`
	ClientID    string    `gorm:"column:client_id" json:"client_id"`
	FullName    string    `gorm:"column:full_name" json:"full_name"`
	PhoneNumber *string   `gorm:"column:phone_number" json:"phone_number,omitempty"`
	Email       *string   `gorm:"column:email" json:"email,omitempty"`
	Address     *string   `gorm:"column:address" json:"address,omitempty"`
	Products    int64     `gorm:"column:products" json:"products"`
	Total       float64   `gorm:"column:total" json:"total"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
}

// QuoteWithItems is the full quote: the header plus its lines.
type QuoteWithItems struct {
	ID        string         `json:"id"`
	ClientID  string         `json:"client_id"`
	CreatedAt time.Time      `json:"created_at"`
	Items     []QuoteProduct `json:"items"`
}

// QuoteProduct is one estimated line joined with its catalog entry.
type QuoteProduct struct {
	ID        string  `gorm:"column:id" json:"id"`
	ProductID string  `gorm:"column:product_id" json:"product_id"`
	Name      string  `gorm:"column:name" json:"name"`
	Price     float64 `gorm:"column:price" json:"price"`
	Quantity  float64 `gorm:"column:quantity" json:"quantity"`
}

// Repository persists quotes.
type Repository interface {
	InsertQuote(tx *gorm.DB, quote *models.Quote) error
	InsertItem(tx *gorm.DB, item *models.QuoteItem) error
	DeleteQuote(tx *gorm.DB, quoteID string) (int64, error)
	CountItems(tx *gorm.DB, quoteID string) (int64, error)

	Exists(ctx context.Context, id string) (bool, error)
	ClientExists(ctx context.Context, clientID string) (bool, error)
	ProductExists(ctx context.Context, productID string) (bool, error)
	Get(ctx context.Context, id string) (*models.Quote, error)
	List(ctx context.Context, args pagination.ListArgs) ([]QuoteRow, error)
	Details(ctx context.Context, id string) (*QuoteDetails, error)
	Products(ctx context.Context, quoteID string) ([]QuoteProduct, error)
}

type repository struct {
	conn *gorm.DB
}

// NewRepository returns the GORM-backed quotes repository.
func NewRepository(conn *gorm.DB) Repository {
	return &repository{conn: conn}
}

func (r *repository) InsertQuote(tx *gorm.DB, quote *models.Quote) error {
	return tx.Omit("Items").Create(quote).Error
}

func (r *repository) InsertItem(tx *gorm.DB, item *models.QuoteItem) error {
	return tx.Create(item).Error
}

func (r *repository) DeleteQuote(tx *gorm.DB, quoteID string) (int64, error) {
	result := tx.Where("id = ?", quoteID).Delete(&models.Quote{})
	return result.RowsAffected, result.Error
}

func (r *repository) CountItems(tx *gorm.DB, quoteID string) (int64, error) {
	var count int64
	err := tx.Model(&models.QuoteItem{}).Where("quote_id = ?", quoteID).Count(&count).Error
	return count, err
}

func (r *repository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.conn.WithContext(ctx).
		Model(&models.Quote{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) ClientExists(ctx context.Context, clientID string) (bool, error) {
	var count int64
	err := r.conn.WithContext(ctx).
		Model(&models.Client{}).
		Where("id = ?", clientID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) ProductExists(ctx context.Context, productID string) (bool, error) {
	var count int64
	err := r.conn.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", productID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) Get(ctx context.Context, id string) (*models.Quote, error) {
	var quote models.Quote
	if err := r.conn.WithContext(ctx).Where("id = ?", id).First(&quote).Error; err != nil {
		return nil, err
	}
	return &quote, nil
}

func (r *repository) List(ctx context.Context, args pagination.ListArgs) ([]QuoteRow, error) {
	query := `
SELECT
  q.id, q.created_at, q.client_id, c.full_name,
  COUNT(qi.id) AS products,
  COALESCE(SUM(qi.price * qi.quantity), 0) AS total
FROM quotes q
JOIN clients c ON c.id = q.client_id
LEFT JOIN quote_items qi ON qi.quote_id = q.id
`
	params := []any{}
	if pattern := args.SearchPattern(); pattern != "" {
		query += "WHERE c.full_name LIKE ?\n"
		params = append(params, pattern)
	}
	query += `
GROUP BY q.id, q.created_at, q.client_id, c.full_name
ORDER BY q.created_at DESC
LIMIT ? OFFSET ?`
	params = append(params, pagination.NormalizePerPage(args.PerPage), args.Offset())

	rows := []QuoteRow{}
	err := r.conn.WithContext(ctx).Raw(query, params...).Scan(&rows).Error
	return rows, err
}

func (r *repository) Details(ctx context.Context, id string) (*QuoteDetails, error) {
	rows := []QuoteDetails{}
	err := r.conn.WithContext(ctx).Raw(`
SELECT
  q.id, q.created_at, q.client_id,
  c.full_name, c.phone_number, c.email, c.address,
  COUNT(qi.id) AS products,
  COALESCE(SUM(qi.price * qi.quantity), 0) AS total
FROM quotes q
JOIN clients c ON c.id = q.client_id
LEFT JOIN quote_items qi ON qi.quote_id = q.id
WHERE q.id = ?
GROUP BY q.id, q.created_at, q.client_id, c.full_name, c.phone_number, c.email, c.address`, id).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &rows[0], nil
}

func (r *repository) Products(ctx context.Context, quoteID string) ([]QuoteProduct, error) {
	rows := []QuoteProduct{}
	err := r.conn.WithContext(ctx).Raw(`
SELECT qi.id, qi.product_id, p.name, qi.price, qi.quantity
FROM quote_items qi
JOIN products p ON p.id = qi.product_id
WHERE qi.quote_id = ?
ORDER BY p.name ASC`, quoteID).
		Scan(&rows).Error
	return rows, err
}

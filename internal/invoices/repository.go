package invoices

import (
	"context"

	"github.com/gestora-app/gestora-backend/pkg/db/models"
	"github.com/gestora-app/gestora-backend/pkg/enums"
	"github.com/gestora-app/gestora-backend/pkg/pagination"
	"gorm.io/gorm"
)

// Repository persists invoices. Writes that span the invoice, its items, and
// the backing movements take an explicit transaction handle.
type Repository interface {
	InsertInvoice(tx *gorm.DB, invoice *models.Invoice) error
	InsertMovement(tx *gorm.DB, movement *models.InventoryMovement) error
	InsertItem(tx *gorm.DB, item *models.InvoiceItem) error
	DeleteMovementsForInvoice(tx *gorm.DB, invoiceID string) (int64, error)
	DeleteInvoice(tx *gorm.DB, invoiceID string) (int64, error)
	CountItems(tx *gorm.DB, invoiceID string) (int64, error)

	Update(ctx context.Context, id string, status enums.InvoiceStatus, paidAmount float64) (int64, error)
	Exists(ctx context.Context, id string) (bool, error)
	ClientExists(ctx context.Context, clientID string) (bool, error)
	OrderExists(ctx context.Context, orderID string) (bool, error)
	ProductExists(ctx context.Context, productID string) (bool, error)
	Get(ctx context.Context, id string) (*models.Invoice, error)
	List(ctx context.Context, args pagination.ListArgs) ([]InvoiceRow, error)
	Details(ctx context.Context, id string) (*InvoiceDetails, error)
	Products(ctx context.Context, invoiceID string) ([]InvoiceProduct, error)
}

type repository struct {
	conn *gorm.DB
}

// NewRepository returns the GORM-backed invoices repository.
func NewRepository(conn *gorm.DB) Repository {
	return &repository{conn: conn}
}

func (r *repository) InsertInvoice(tx *gorm.DB, invoice *models.Invoice) error {
	return tx.Omit("Items").Create(invoice).Error
}

func (r *repository) InsertMovement(tx *gorm.DB, movement *models.InventoryMovement) error {
	return tx.Create(movement).Error
}

func (r *repository) InsertItem(tx *gorm.DB, item *models.InvoiceItem) error {
	return tx.Create(item).Error
}

// DeleteMovementsForInvoice retracts the OUT movements behind an invoice's
// lines. The item rows themselves fall via the movement cascade.
func (r *repository) DeleteMovementsForInvoice(tx *gorm.DB, invoiceID string) (int64, error) {
	result := tx.Exec(`
DELETE FROM inventory_movements
WHERE id IN (SELECT inventory_id FROM invoice_items WHERE invoice_id = ?)`, invoiceID)
	return result.RowsAffected, result.Error
}

func (r *repository) DeleteInvoice(tx *gorm.DB, invoiceID string) (int64, error) {
	result := tx.Where("id = ?", invoiceID).Delete(&models.Invoice{})
	return result.RowsAffected, result.Error
}

func (r *repository) CountItems(tx *gorm.DB, invoiceID string) (int64, error) {
	var count int64
	err := tx.Model(&models.InvoiceItem{}).Where("invoice_id = ?", invoiceID).Count(&count).Error
	return count, err
}

func (r *repository) Update(ctx context.Context, id string, status enums.InvoiceStatus, paidAmount float64) (int64, error) {
	result := r.conn.WithContext(ctx).
		Model(&models.Invoice{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":      status,
			"paid_amount": paidAmount,
		})
	return result.RowsAffected, result.Error
}

func (r *repository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.conn.WithContext(ctx).
		Model(&models.Invoice{}).
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

func (r *repository) OrderExists(ctx context.Context, orderID string) (bool, error) {
	var count int64
	err := r.conn.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", orderID).
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

func (r *repository) Get(ctx context.Context, id string) (*models.Invoice, error) {
	var invoice models.Invoice
	if err := r.conn.WithContext(ctx).Where("id = ?", id).First(&invoice).Error; err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *repository) List(ctx context.Context, args pagination.ListArgs) ([]InvoiceRow, error) {
	query := `
SELECT
  i.id, i.created_at, i.client_id, c.full_name, i.status, i.paid_amount,
  COUNT(ii.id) AS products,
  COALESCE(SUM(ii.price * im.quantity), 0) AS total
FROM invoices i
JOIN clients c ON c.id = i.client_id
LEFT JOIN invoice_items ii ON ii.invoice_id = i.id
LEFT JOIN inventory_movements im ON im.id = ii.inventory_id
`
	conditions := []string{}
	params := []any{}
	if pattern := args.SearchPattern(); pattern != "" {
		conditions = append(conditions, "c.full_name LIKE ?")
		params = append(params, pattern)
	}
	if args.Status != "" {
		conditions = append(conditions, "i.status = ?")
		params = append(params, args.Status)
	}
	for i, cond := range conditions {
		if i == 0 {
			query += "WHERE " + cond + "\n"
		} else {
			query += "AND " + cond + "\n"
		}
	}
	query += `
GROUP BY i.id, i.created_at, i.client_id, c.full_name, i.status, i.paid_amount
ORDER BY i.created_at DESC
LIMIT ? OFFSET ?`
	params = append(params, pagination.NormalizePerPage(args.PerPage), args.Offset())

	rows := []InvoiceRow{}
	err := r.conn.WithContext(ctx).Raw(query, params...).Scan(&rows).Error
	return rows, err
}

func (r *repository) Details(ctx context.Context, id string) (*InvoiceDetails, error) {
	rows := []InvoiceDetails{}
	err := r.conn.WithContext(ctx).Raw(`
SELECT
  i.id, i.created_at, i.client_id, i.order_id, i.status, i.paid_amount,
  c.full_name, c.phone_number, c.email, c.address,
  COUNT(ii.id) AS products,
  COALESCE(SUM(ii.price * im.quantity), 0) AS total
FROM invoices i
JOIN clients c ON c.id = i.client_id
LEFT JOIN invoice_items ii ON ii.invoice_id = i.id
LEFT JOIN inventory_movements im ON im.id = ii.inventory_id
WHERE i.id = ?
GROUP BY i.id, i.created_at, i.client_id, i.order_id, i.status, i.paid_amount,
  c.full_name, c.phone_number, c.email, c.address`, id).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &rows[0], nil
}

func (r *repository) Products(ctx context.Context, invoiceID string) ([]InvoiceProduct, error) {
	rows := []InvoiceProduct{}
	err := r.conn.WithContext(ctx).Raw(`
SELECT ii.id, im.product_id, p.name, ii.price, im.quantity
FROM invoice_items ii
JOIN inventory_movements im ON im.id = ii.inventory_id
JOIN products p ON p.id = im.product_id
WHERE ii.invoice_id = ?
ORDER BY p.name ASC`, invoiceID).
		Scan(&rows).Error
	return rows, err
}

package orders

import (
	"context"

	"github.com/gestora-app/gestora-backend/pkg/db/models"
	"github.com/gestora-app/gestora-backend/pkg/enums"
	"github.com/gestora-app/gestora-backend/pkg/pagination"
	"gorm.io/gorm"
)

const listSelect = `
SELECT
  o.id, o.created_at, o.client_id, c.full_name, o.status,
  COUNT(oi.id) AS products,
  COALESCE(SUM(oi.price * im.quantity), 0) AS total
FROM orders o
JOIN clients c ON c.id = o.client_id
LEFT JOIN order_items oi ON oi.order_id = o.id
LEFT JOIN inventory_movements im ON im.id = oi.inventory_id
`

// Repository persists orders. Writes that span the order, its items, and the
// backing movements take an explicit transaction handle.
type Repository interface {
	InsertOrder(tx *gorm.DB, order *models.Order) error
	InsertMovement(tx *gorm.DB, movement *models.InventoryMovement) error
	InsertItem(tx *gorm.DB, item *models.OrderItem) error
	DeleteMovementsForOrder(tx *gorm.DB, orderID string) (int64, error)
	DeleteOrder(tx *gorm.DB, orderID string) (int64, error)
	CountItems(tx *gorm.DB, orderID string) (int64, error)

	UpdateStatus(ctx context.Context, id string, status enums.OrderStatus) (int64, error)
	Exists(ctx context.Context, id string) (bool, error)
	ClientExists(ctx context.Context, clientID string) (bool, error)
	ProductExists(ctx context.Context, productID string) (bool, error)
	Get(ctx context.Context, id string) (*models.Order, error)
	List(ctx context.Context, args pagination.ListArgs) ([]OrderRow, error)
	Details(ctx context.Context, id string) (*OrderDetails, error)
	Products(ctx context.Context, orderID string) ([]OrderProduct, error)
}

type repository struct {
	conn *gorm.DB
}

// NewRepository returns the GORM-backed orders repository.
func NewRepository(conn *gorm.DB) Repository {
	return &repository{conn: conn}
}

func (r *repository) InsertOrder(tx *gorm.DB, order *models.Order) error {
	return tx.Omit("Items").Create(order).Error
}

func (r *repository) InsertMovement(tx *gorm.DB, movement *models.InventoryMovement) error {
	return tx.Create(movement).Error
}

func (r *repository) InsertItem(tx *gorm.DB, item *models.OrderItem) error {
	return tx.Create(item).Error
}

// DeleteMovementsForOrder retracts the OUT movements behind an order's lines.
// The item rows themselves fall via the movement cascade.
func (r *repository) DeleteMovementsForOrder(tx *gorm.DB, orderID string) (int64, error) {
	result := tx.Exec(`
DELETE FROM inventory_movements
WHERE id IN (SELECT inventory_id FROM order_items WHERE order_id = ?)`, orderID)
	return result.RowsAffected, result.Error
}

func (r *repository) DeleteOrder(tx *gorm.DB, orderID string) (int64, error) {
	result := tx.Where("id = ?", orderID).Delete(&models.Order{})
	return result.RowsAffected, result.Error
}

func (r *repository) CountItems(tx *gorm.DB, orderID string) (int64, error) {
	var count int64
	err := tx.Model(&models.OrderItem{}).Where("order_id = ?", orderID).Count(&count).Error
	return count, err
}

func (r *repository) UpdateStatus(ctx context.Context, id string, status enums.OrderStatus) (int64, error) {
	result := r.conn.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", id).
		Update("status", status)
	return result.RowsAffected, result.Error
}

func (r *repository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.conn.WithContext(ctx).
		Model(&models.Order{}).
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

func (r *repository) Get(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	if err := r.conn.WithContext(ctx).Where("id = ?", id).First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) List(ctx context.Context, args pagination.ListArgs) ([]OrderRow, error) {
	query := listSelect
	conditions := []string{}
	params := []any{}
	if pattern := args.SearchPattern(); pattern != "" {
		conditions = append(conditions, "c.full_name LIKE ?")
		params = append(params, pattern)
	}
	if args.Status != "" {
		conditions = append(conditions, "o.status = ?")
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
GROUP BY o.id, o.created_at, o.client_id, c.full_name, o.status
ORDER BY o.created_at DESC
LIMIT ? OFFSET ?`
	params = append(params, pagination.NormalizePerPage(args.PerPage), args.Offset())

	rows := []OrderRow{}
	err := r.conn.WithContext(ctx).Raw(query, params...).Scan(&rows).Error
	return rows, err
}

func (r *repository) Details(ctx context.Context, id string) (*OrderDetails, error) {
	rows := []OrderDetails{}
	err := r.conn.WithContext(ctx).Raw(`
SELECT
  o.id, o.created_at, o.client_id, o.status,
  c.full_name, c.phone_number, c.email, c.address,
  COUNT(oi.id) AS products,
  COALESCE(SUM(oi.price * im.quantity), 0) AS total
FROM orders o
JOIN clients c ON c.id = o.client_id
LEFT JOIN order_items oi ON oi.order_id = o.id
LEFT JOIN inventory_movements im ON im.id = oi.inventory_id
WHERE o.id = ?
GROUP BY o.id, o.created_at, o.client_id, o.status, c.full_name, c.phone_number, c.email, c.address`, id).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &rows[0], nil
}

func (r *repository) Products(ctx context.Context, orderID string) ([]OrderProduct, error) {
	rows := []OrderProduct{}
	err := r.conn.WithContext(ctx).Raw(`
SELECT oi.id, im.product_id, p.name, oi.price, im.quantity
FROM order_items oi
JOIN inventory_movements im ON im.id = oi.inventory_id
JOIN products p ON p.id = im.product_id
WHERE oi.order_id = ?
ORDER BY p.name ASC`, orderID).
		Scan(&rows).Error
	return rows, err
}

package dashboard

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// MovementStat is one month of ledger activity.
type MovementStat struct {
	Month       string  `gorm:"column:month" json:"month"`
	InQuantity  float64 `gorm:"column:in_quantity" json:"in_quantity"`
	OutQuantity float64 `gorm:"column:out_quantity" json:"out_quantity"`
}

// TopClient is a client ranked by billed order value.
type TopClient struct {
	ID       string  `gorm:"column:id" json:"id"`
	FullName string  `gorm:"column:full_name" json:"full_name"`
	Orders   int64   `gorm:"column:orders" json:"orders"`
	Total    float64 `gorm:"column:total" json:"total"`
}

// TopSupplier is a recently added supplier. The schema keeps restocks
// unattributed, so recency is the only ranking the data supports.
type TopSupplier struct {
	ID        string    `gorm:"column:id" json:"id"`
	FullName  string    `gorm:"column:full_name" json:"full_name"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

// TopProduct is a product ranked by quantity sold.
type TopProduct struct {
	ID       string  `gorm:"column:id" json:"id"`
	Name     string  `gorm:"column:name" json:"name"`
	Quantity float64 `gorm:"column:quantity" json:"quantity"`
}

// StatusCount is the number of documents in one lifecycle status.
type StatusCount struct {
	Status string `gorm:"column:status" json:"status"`
	Count  int64  `gorm:"column:count" json:"count"`
}

// MonthlyAmount is one month of revenue or expense value.
type MonthlyAmount struct {
	Month  string  `gorm:"column:month" json:"month"`
	Amount float64 `gorm:"column:amount" json:"amount"`
}

// Repository answers the aggregate queries behind the dashboard.
type Repository interface {
	MovementStats(ctx context.Context, months int) ([]MovementStat, error)
	TopClients(ctx context.Context, limit int) ([]TopClient, error)
	TopSuppliers(ctx context.Context, limit int) ([]TopSupplier, error)
	TopProducts(ctx context.Context, limit int) ([]TopProduct, error)
	OrderStatusCounts(ctx context.Context) ([]StatusCount, error)
	InvoiceStatusCounts(ctx context.Context) ([]StatusCount, error)
	Revenue(ctx context.Context, months int) ([]MonthlyAmount, error)
	Expenses(ctx context.Context, months int) ([]MonthlyAmount, error)
}

type repository struct {
	conn   *gorm.DB
	sqlite bool
}

// NewRepository returns the GORM-backed dashboard repository. The dialect
// flag picks the month-bucket expression, which is the only SQL that differs
// between SQLite and Postgres.
func NewRepository(conn *gorm.DB, sqlite bool) Repository {
	return &repository{conn: conn, sqlite: sqlite}
}

func (r *repository) monthExpr(column string) string {
	if r.sqlite {
		return "strftime('%Y-%m', " + column + ")"
	}
	return "to_char(" + column + ", 'YYYY-MM')"
}

func (r *repository) MovementStats(ctx context.Context, months int) ([]MovementStat, error) {
	rows := []MovementStat{}
	err := r.conn.WithContext(ctx).Raw(`
SELECT
  `+r.monthExpr("created_at")+` AS month,
  COALESCE(SUM(CASE WHEN mvm_type = 'IN' THEN quantity ELSE 0 END), 0) AS in_quantity,
  COALESCE(SUM(CASE WHEN mvm_type = 'OUT' THEN quantity ELSE 0 END), 0) AS out_quantity
FROM inventory_movements
GROUP BY month
ORDER BY month DESC
LIMIT ?`, months).
		Scan(&rows).Error
	return rows, err
}

func (r *repository) TopClients(ctx context.Context, limit int) ([]TopClient, error) {
	rows := []TopClient{}
	err := r.conn.WithContext(ctx).Raw(`
SELECT
  c.id, c.full_name,
  COUNT(DISTINCT o.id) AS orders,
  COALESCE(SUM(oi.price * im.quantity), 0) AS total
FROM clients c
JOIN orders o ON o.client_id = c.id
LEFT JOIN order_items oi ON oi.order_id = o.id
LEFT JOIN inventory_movements im ON im.id = oi.inventory_id
GROUP BY c.id, c.full_name
ORDER BY total DESC
LIMIT ?`, limit).
		Scan(&rows).Error
	return rows, err
}

func (r *repository) TopSuppliers(ctx context.Context, limit int) ([]TopSupplier, error) {
	rows := []TopSupplier{}
	err := r.conn.WithContext(ctx).Raw(`
SELECT id, full_name, created_at
FROM suppliers
ORDER BY created_at DESC
LIMIT ?`, limit).
		Scan(&rows).Error
	return rows, err
}

func (r *repository) TopProducts(ctx context.Context, limit int) ([]TopProduct, error) {
	rows := []TopProduct{}
	err := r.conn.WithContext(ctx).Raw(`
SELECT p.id, p.name, COALESCE(SUM(im.quantity), 0) AS quantity
FROM products p
JOIN inventory_movements im ON im.product_id = p.id AND im.mvm_type = 'OUT'
GROUP BY p.id, p.name
ORDER BY quantity DESC
LIMIT ?`, limit).
		Scan(&rows).Error
	return rows, err
}

func (r *repository) OrderStatusCounts(ctx context.Context) ([]StatusCount, error) {
	rows := []StatusCount{}
	err := r.conn.WithContext(ctx).Raw(`
SELECT status, COUNT(*) AS count
FROM orders
GROUP BY status`).
		Scan(&rows).Error
	return rows, err
}

func (r *repository) InvoiceStatusCounts(ctx context.Context) ([]StatusCount, error) {
	rows := []StatusCount{}
	err := r.conn.WithContext(ctx).Raw(`
SELECT status, COUNT(*) AS count
FROM invoices
GROUP BY status`).
		Scan(&rows).Error
	return rows, err
}

// Revenue sums billed invoice lines per month: line price times the quantity
// drawn by the backing movement.
func (r *repository) Revenue(ctx context.Context, months int) ([]MonthlyAmount, error) {
	rows := []MonthlyAmount{}
	err := r.conn.WithContext(ctx).Raw(`
SELECT
  `+r.monthExpr("i.created_at")+` AS month,
  COALESCE(SUM(ii.price * im.quantity), 0) AS amount
FROM invoices i
JOIN invoice_items ii ON ii.invoice_id = i.id
JOIN inventory_movements im ON im.id = ii.inventory_id
GROUP BY month
ORDER BY month DESC
LIMIT ?`, months).
		Scan(&rows).Error
	return rows, err
}

// Expenses values IN movements at the product's current catalog price. The
// ledger stores no purchase price, so the catalog price is the best proxy.
func (r *repository) Expenses(ctx context.Context, months int) ([]MonthlyAmount, error) {
	rows := []MonthlyAmount{}
	err := r.conn.WithContext(ctx).Raw(`
SELECT
  `+r.monthExpr("im.created_at")+` AS month,
  COALESCE(SUM(im.quantity * p.price), 0) AS amount
FROM inventory_movements im
JOIN products p ON p.id = im.product_id
WHERE im.mvm_type = 'IN'
GROUP BY month
ORDER BY month DESC
LIMIT ?`, months).
		Scan(&rows).Error
	return rows, err
}

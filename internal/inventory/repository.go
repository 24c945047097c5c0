package inventory

import (
	"context"
	"time"

	"github.com/gestora-app/gestora-backend/pkg/db/models"
	"github.com/gestora-app/gestora-backend/pkg/enums"
	"github.com/gestora-app/gestora-backend/pkg/pagination"
	"gorm.io/gorm"
)

// MovementRow is a ledger entry joined with its product for display.
type MovementRow struct {
	ID        string             `gorm:"column:id" json:"id"`
	MvmType   enums.MovementType `gorm:"column:mvm_type" json:"mvm_type"`
	Quantity  float64            `gorm:"column:quantity" json:"quantity"`
	ProductID string             `gorm:"column:product_id" json:"product_id"`
	Name      string             `gorm:"column:name" json:"name"`
	Price     float64            `gorm:"column:price" json:"price"`
	CreatedAt time.Time          `gorm:"column:created_at" json:"created_at"`
}

// Repository persists stock ledger entries.
type Repository interface {
	Create(ctx context.Context, movement *models.InventoryMovement) error
	Delete(ctx context.Context, id string) (int64, error)
	Get(ctx context.Context, id string) (*models.InventoryMovement, error)
	List(ctx context.Context, args pagination.ListArgs) ([]MovementRow, error)
	ProductExists(ctx context.Context, productID string) (bool, error)
}

type repository struct {
	conn *gorm.DB
}

// NewRepository returns the GORM-backed inventory repository.
func NewRepository(conn *gorm.DB) Repository {
	return &repository{conn: conn}
}

func (r *repository) Create(ctx context.Context, movement *models.InventoryMovement) error {
	return r.conn.WithContext(ctx).Create(movement).Error
}

func (r *repository) Delete(ctx context.Context, id string) (int64, error) {
	result := r.conn.WithContext(ctx).Where("id = ?", id).Delete(&models.InventoryMovement{})
	return result.RowsAffected, result.Error
}

func (r *repository) Get(ctx context.Context, id string) (*models.InventoryMovement, error) {
	var movement models.InventoryMovement
	err := r.conn.WithContext(ctx).Where("id = ?", id).First(&movement).Error
	if err != nil {
		return nil, err
	}
	return &movement, nil
}

func (r *repository) List(ctx context.Context, args pagination.ListArgs) ([]MovementRow, error) {
	query := `
SELECT im.id, im.created_at, im.mvm_type, im.quantity, im.product_id, p.name, p.price
FROM inventory_movements im
JOIN products p ON p.id = im.product_id
`
	conditions := []string{}
	params := []any{}
	if pattern := args.SearchPattern(); pattern != "" {
		conditions = append(conditions, "p.name LIKE ?")
		params = append(params, pattern)
	}
	if args.Status != "" {
		conditions = append(conditions, "im.mvm_type = ?")
		params = append(params, args.Status)
	}
	for i, cond := range conditions {
		if i == 0 {
			query += "WHERE " + cond + "\n"
		} else {
			query += "AND " + cond + "\n"
		}
	}
	query += "ORDER BY im.created_at DESC\nLIMIT ? OFFSET ?"
	params = append(params, pagination.NormalizePerPage(args.PerPage), args.Offset())

	rows := []MovementRow{}
	err := r.conn.WithContext(ctx).Raw(query, params...).Scan(&rows).Error
	return rows, err
}

func (r *repository) ProductExists(ctx context.Context, productID string) (bool, error) {
	var count int64
	err := r.conn.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", productID).
		Count(&count).Error
	return count > 0, err
}

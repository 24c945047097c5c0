package models

import (
	"time"

	"github.com/gestora-app/gestora-backend/pkg/enums"
)

// InventoryMovement is one entry of the stock ledger: an IN (restock) or OUT
// (sale) event for a product.
type InventoryMovement struct {
	ID        string             `gorm:"column:id;type:text;primaryKey" json:"id"`
	MvmType   enums.MovementType `gorm:"column:mvm_type;not null" json:"mvm_type"`
	Quantity  float64            `gorm:"column:quantity;not null;default:0" json:"quantity"`
	ProductID string             `gorm:"column:product_id;type:text;not null" json:"product_id"`
	CreatedAt time.Time          `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

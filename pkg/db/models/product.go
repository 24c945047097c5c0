package models

import "time"

// Product is a catalog entry. Its stock level is never stored: it is derived
// from the signed sum of the product's inventory movements.
type Product struct {
	ID          string              `gorm:"column:id;type:text;primaryKey" json:"id"`
	Name        string              `gorm:"column:name;not null" json:"name"`
	Description *string             `gorm:"column:description" json:"description,omitempty"`
	Image       *string             `gorm:"column:image" json:"image,omitempty"`
	Price       float64             `gorm:"column:price;not null;default:0" json:"price"`
	MinQuantity float64             `gorm:"column:min_quantity;not null;default:0" json:"min_quantity"`
	Movements   []InventoryMovement `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt   time.Time           `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

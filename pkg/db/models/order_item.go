package models

// OrderItem is one sold line of an order. InventoryID is unique: the OUT
// movement that fulfills this line can back no other document line, which is
// what prevents double-counting a single stock depletion.
type OrderItem struct {
	ID          string  `gorm:"column:id;type:text;primaryKey" json:"id"`
	Price       float64 `gorm:"column:price;not null;default:0" json:"price"`
	OrderID     string  `gorm:"column:order_id;type:text;not null" json:"order_id"`
	InventoryID string  `gorm:"column:inventory_id;type:text;not null;unique" json:"inventory_id"`
}

package models

// QuoteItem is one estimated line of a quote, referencing its product
// directly rather than through an inventory movement.
type QuoteItem struct {
	ID        string  `gorm:"column:id;type:text;primaryKey" json:"id"`
	Price     float64 `gorm:"column:price;not null;default:0" json:"price"`
	Quantity  float64 `gorm:"column:quantity;not null;default:0" json:"quantity"`
	ProductID string  `gorm:"column:product_id;type:text;not null" json:"product_id"`
	QuoteID   string  `gorm:"column:quote_id;type:text;not null" json:"quote_id"`
}

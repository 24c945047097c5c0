package models

// InvoiceItem is one billed line of an invoice, exclusively bound to the OUT
// movement that depleted the stock it bills for.
type InvoiceItem struct {
	ID          string  `gorm:"column:id;type:text;primaryKey" json:"id"`
	Price       float64 `gorm:"column:price;not null;default:0" json:"price"`
	InvoiceID   string  `gorm:"column:invoice_id;type:text;not null" json:"invoice_id"`
	InventoryID string  `gorm:"column:inventory_id;type:text;not null;unique" json:"inventory_id"`
}

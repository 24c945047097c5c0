package invoices

import (
	"time"

	"github.com/gestora-app/gestora-backend/pkg/enums"
)

// NewItem is one billed line: the product, the amount drawn from stock, and
// the unit price captured at billing time.
type NewItem struct {
	ProductID string  `json:"product_id"`
	Quantity  float64 `json:"quantity"`
	Price     float64 `json:"price"`
}

// NewInvoice is the input for creating an invoice with its lines. OrderID is
// optional: standalone invoices are valid, and invoices created from an order
// keep the link until the order is deleted.
type NewInvoice struct {
	ID         string              `json:"id,omitempty"`
	ClientID   string              `json:"client_id"`
	OrderID    *string             `json:"order_id,omitempty"`
	Status     enums.InvoiceStatus `json:"status"`
	PaidAmount float64             `json:"paid_amount"`
	Items      []NewItem           `json:"items"`
}

// Update changes the invoice's billing status and the amount paid so far.
type Update struct {
	ID         string              `json:"id"`
	Status     enums.InvoiceStatus `json:"status"`
	PaidAmount float64             `json:"paid_amount"`
}

// InvoiceRow is one row of the paged invoice listing.
type InvoiceRow struct {
	ID         string              `gorm:"column:id" json:"id"`
	ClientID   string              `gorm:"column:client_id" json:"client_id"`
	FullName   string              `gorm:"column:full_name" json:"full_name"`
	Status     enums.InvoiceStatus `gorm:"column:status" json:"status"`
	PaidAmount float64             `gorm:"column:paid_amount" json:"paid_amount"`
	Products   int64               `gorm:"column:products" json:"products"`
	Total      float64             `gorm:"column:total" json:"total"`
	CreatedAt  time.Time           `gorm:"column:created_at" json:"created_at"`
}

// InvoiceDetails is the invoice header joined with the client's contact
// fields. Balance is the exact remainder of total minus paid.
type InvoiceDetails struct {
	ID          string              `gorm:"column:id" json:"id"`
	ClientID    string              `gorm:"column:client_id" json:"client_id"`
	OrderID     *string             `gorm:"column:order_id" json:"order_id,omitempty"`
	FullName    string              `gorm:"column:full_name" json:"full_name"`
	PhoneNumber *string             `gorm:"column:phone_number" json:"phone_number,omitempty"`
	Email       *string             `gorm:"column:email" json:"email,omitempty"`
	Address     *string             `gorm:"column:address" json:"address,omitempty"`
	Status      enums.InvoiceStatus `gorm:"column:status" json:"status"`
	PaidAmount  float64             `gorm:"column:paid_amount" json:"paid_amount"`
	Products    int64               `gorm:"column:products" json:"products"`
	Total       float64             `gorm:"column:total" json:"total"`
	Balance     float64             `gorm:"-" json:"balance"`
	CreatedAt   time.Time           `gorm:"column:created_at" json:"created_at"`
}

// InvoiceWithItems is the full invoice: the header plus its resolved lines.
type InvoiceWithItems struct {
	ID         string              `json:"id"`
	ClientID   string              `json:"client_id"`
	OrderID    *string             `json:"order_id,omitempty"`
	Status     enums.InvoiceStatus `json:"status"`
	PaidAmount float64             `json:"paid_amount"`
	CreatedAt  time.Time           `json:"created_at"`
	Items      []InvoiceProduct    `json:"items"`
}

// InvoiceProduct is one billed line resolved through its OUT movement back to
// the catalog entry.
type InvoiceProduct struct {
	ID        string  `gorm:"column:id" json:"id"`
	ProductID string  `gorm:"column:product_id" json:"product_id"`
	Name      string  `gorm:"column:name" json:"name"`
	Price     float64 `gorm:"column:price" json:"price"`
	Quantity  float64 `gorm:"column:quantity" json:"quantity"`
}

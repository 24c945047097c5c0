package orders

import (
	"time"

	"github.com/gestora-app/gestora-backend/pkg/enums"
)

// NewItem is one requested line: the product, how much of it, and the unit
// price captured at sale time.
type NewItem struct {
	ProductID string  `json:"product_id"`
	Quantity  float64 `json:"quantity"`
	Price     float64 `json:"price"`
}

// NewOrder is the input for creating an order with its lines. Each line
// produces its own OUT movement in the same transaction.
type NewOrder struct {
	ID       string            `json:"id,omitempty"`
	ClientID string            `json:"client_id"`
	Status   enums.OrderStatus `json:"status"`
	Items    []NewItem         `json:"items"`
}

// StatusUpdate changes an order's lifecycle status and nothing else.
type StatusUpdate struct {
	ID     string            `json:"id"`
	Status enums.OrderStatus `json:"status"`
}

// OrderRow is one row of the paged order listing.
type OrderRow struct {
	ID        string            `gorm:"column:id" json:"id"`
	ClientID  string            `gorm:"column:client_id" json:"client_id"`
	FullName  string            `gorm:"column:full_name" json:"full_name"`
	Status    enums.OrderStatus `gorm:"column:status" json:"status"`
	Products  int64             `gorm:"column:products" json:"products"`
	Total     float64           `gorm:"column:total" json:"total"`
	CreatedAt time.Time         `gorm:"column:created_at" json:"created_at"`
}

// OrderDetails is the order header joined with the client's contact fields.
type OrderDetails struct {
	ID          string            `gorm:"column:id" json:"id"`
	ClientID    string            `gorm:"column:client_id" json:"client_id"`
	FullName    string            `gorm:"column:full_name" json:"full_name"`
	PhoneNumber *string           `gorm:"column:phone_number" json:"phone_number,omitempty"`
	Email       *string           `gorm:"column:email" json:"email,omitempty"`
	Address     *string           `gorm:"column:address" json:"address,omitempty"`
	Status      enums.OrderStatus `gorm:"column:status" json:"status"`
	Products    int64             `gorm:"column:products" json:"products"`
	Total       float64           `gorm:"column:total" json:"total"`
	CreatedAt   time.Time         `gorm:"column:created_at" json:"created_at"`
}

// OrderWithItems is the full order: the header plus its resolved lines.
type OrderWithItems struct {
	ID        string            `json:"id"`
	ClientID  string            `json:"client_id"`
	Status    enums.OrderStatus `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
	Items     []OrderProduct    `json:"items"`
}

// OrderProduct is one sold line resolved through its OUT movement back to the
// catalog entry.
type OrderProduct struct {
	ID        string  `gorm:"column:id" json:"id"`
	ProductID string  `gorm:"column:product_id" json:"product_id"`
	Name      string  `gorm:"column:name" json:"name"`
	Price     float64 `gorm:"column:price" json:"price"`
	Quantity  float64 `gorm:"column:quantity" json:"quantity"`
}

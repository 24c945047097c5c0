package models

import (
	"time"

	"github.com/gestora-app/gestora-backend/pkg/enums"
)

// Order is a client purchase composed of line items.
type Order struct {
	ID        string            `gorm:"column:id;type:text;primaryKey" json:"id"`
	ClientID  string            `gorm:"column:client_id;type:text;not null" json:"client_id"`
	Status    enums.OrderStatus `gorm:"column:status;not null" json:"status"`
	Items     []OrderItem       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	CreatedAt time.Time         `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

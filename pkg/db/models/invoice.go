package models

import (
	"time"

	"github.com/gestora-app/gestora-backend/pkg/enums"
)

// Invoice is a billing document. OrderID is the only nullable link in the
// model: when the originating order is deleted the invoice survives with the
// reference set to null.
type Invoice struct {
	ID         string              `gorm:"column:id;type:text;primaryKey" json:"id"`
	ClientID   string              `gorm:"column:client_id;type:text;not null" json:"client_id"`
	OrderID    *string             `gorm:"column:order_id;type:text" json:"order_id,omitempty"`
	Status     enums.InvoiceStatus `gorm:"column:status;not null" json:"status"`
	PaidAmount float64             `gorm:"column:paid_amount;not null;default:0" json:"paid_amount"`
	Items      []InvoiceItem       `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	CreatedAt  time.Time           `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

package models

import "time"

// Quote is a non-binding price estimate. It has no inventory linkage: quoting
// reserves and consumes nothing.
type Quote struct {
	ID        string      `gorm:"column:id;type:text;primaryKey" json:"id"`
	ClientID  string      `gorm:"column:client_id;type:text;not null" json:"client_id"`
	Items     []QuoteItem `gorm:"foreignKey:QuoteID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	CreatedAt time.Time   `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

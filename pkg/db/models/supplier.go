package models

import "time"

// Supplier is a party goods are purchased from. The schema keeps suppliers
// standalone: restocks are plain IN movements without a supplier link.
type Supplier struct {
	ID          string    `gorm:"column:id;type:text;primaryKey" json:"id"`
	FullName    string    `gorm:"column:full_name;not null" json:"full_name"`
	PhoneNumber *string   `gorm:"column:phone_number" json:"phone_number,omitempty"`
	Email       *string   `gorm:"column:email" json:"email,omitempty"`
	Address     *string   `gorm:"column:address" json:"address,omitempty"`
	Image       *string   `gorm:"column:image" json:"image,omitempty"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

package models

import "time"

// Client is a party that places orders and receives invoices and quotes.
type Client struct {
	ID          string    `gorm:"column:id;type:text;primaryKey" json:"id"`
	FullName    string    `gorm:"column:full_name;not null" json:"full_name"`
	PhoneNumber *string   `gorm:"column:phone_number" json:"phone_number,omitempty"`
	Email       *string   `gorm:"column:email" json:"email,omitempty"`
	Address     *string   `gorm:"column:address" json:"address,omitempty"`
	Image       *string   `gorm:"column:image" json:"image,omitempty"`
	Orders      []Order   `gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE" json:"-"`
	Invoices    []Invoice `gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE" json:"-"`
	Quotes      []Quote   `gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

package models

import "time"

// OrderLog is append-only.
type OrderLog struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	ContactID uint64    `gorm:"index;not null" json:"contact_id"`
	OrderDate time.Time `gorm:"type:date;not null" json:"order_date"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	Contact Contact `gorm:"foreignKey:ContactID" json:"contact,omitempty"`
}

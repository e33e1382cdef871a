package models

import "time"

// POPLog records proof-of-purchase material sent to a contact. Append-only.
type POPLog struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	ContactID uint64    `gorm:"index;not null" json:"contact_id"`
	Material  string    `gorm:"type:varchar(100);not null" json:"material"`
	SentDate  time.Time `gorm:"type:date;not null" json:"sent_date"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	Contact Contact `gorm:"foreignKey:ContactID" json:"contact,omitempty"`
}

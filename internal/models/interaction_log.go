package models

import "time"

// InteractionLog is append-only; rows are never edited after creation.
type InteractionLog struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	ContactID uint64    `gorm:"index;not null" json:"contact_id"`
	Note      string    `gorm:"type:text;not null" json:"note"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	Contact Contact `gorm:"foreignKey:ContactID" json:"contact,omitempty"`
}

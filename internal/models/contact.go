package models

import "time"

// Contact is partitioned by Rep, a username reference rather than a foreign
// key. Archived hides a contact from default views; child rows stay in place.
type Contact struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"type:varchar(120);not null" json:"name"`
	Email     string    `gorm:"type:varchar(120)" json:"email"`
	Phone     string    `gorm:"type:varchar(50)" json:"phone"`
	Tags      string    `gorm:"type:varchar(250)" json:"tags"`
	Notes     string    `gorm:"type:text" json:"notes"`
	Rep       string    `gorm:"type:varchar(100);index;not null" json:"rep"`
	Archived  bool      `gorm:"not null;default:false" json:"archived"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	Tasks        []FollowUpTask   `gorm:"foreignKey:ContactID;constraint:OnDelete:CASCADE" json:"tasks,omitempty"`
	Interactions []InteractionLog `gorm:"foreignKey:ContactID;constraint:OnDelete:CASCADE" json:"interactions,omitempty"`
	Orders       []OrderLog       `gorm:"foreignKey:ContactID;constraint:OnDelete:CASCADE" json:"orders,omitempty"`
	POPs         []POPLog         `gorm:"foreignKey:ContactID;constraint:OnDelete:CASCADE" json:"pops,omitempty"`
}

package models

import "time"

// FollowUpTask has no stored status column; classification is derived from
// (Completed, DueDate, today) by the taskstatus package.
type FollowUpTask struct {
	ID        uint64     `gorm:"primarykey" json:"id"`
	ContactID uint64     `gorm:"index;not null" json:"contact_id"`
	Task      string     `gorm:"type:varchar(250);not null" json:"task"`
	DueDate   *time.Time `gorm:"type:date;index" json:"due_date"`
	Completed bool       `gorm:"not null;default:false" json:"completed"`
	CreatedAt time.Time  `json:"created_at"`

	// Relations
	Contact Contact `gorm:"foreignKey:ContactID" json:"contact,omitempty"`
}

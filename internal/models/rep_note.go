package models

import "time"

// RepNote holds one free-text note per rep username. The unique index on
// RepName is what makes lazy creation under concurrent first reads safe.
type RepNote struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	RepName   string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"rep_name"`
	Note      string    `gorm:"type:text" json:"note"`
	UpdatedAt time.Time `json:"updated_at"`
}

package repository

import (
	"github.com/studiocrm/crm-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormRepNoteRepository is a GORM implementation of RepNoteRepository
type GormRepNoteRepository struct {
	db *gorm.DB
}

// NewRepNoteRepository creates a new RepNoteRepository
func NewRepNoteRepository(db *gorm.DB) RepNoteRepository {
	return &GormRepNoteRepository{db: db}
}

// GetOrCreate returns the rep's note, creating an empty one if absent.
// The insert ignores the unique-constraint conflict, so two requests racing
// on the first read both land on the same row via the follow-up select.
func (r *GormRepNoteRepository) GetOrCreate(repName string) (*models.RepNote, error) {
	note := models.RepNote{RepName: repName}
	err := r.db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "rep_name"}},
			DoNothing: true,
		}).
		Create(&note).Error
	if err != nil {
		return nil, err
	}

	var stored models.RepNote
	if err := r.db.Where("rep_name = ?", repName).First(&stored).Error; err != nil {
		return nil, err
	}
	return &stored, nil
}

// UpdateNote overwrites the note text and refreshes the timestamp
func (r *GormRepNoteRepository) UpdateNote(repName, note string) error {
	result := r.db.Model(&models.RepNote{}).
		Where("rep_name = ?", repName).
		Update("note", note)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

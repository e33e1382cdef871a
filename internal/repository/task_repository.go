package repository

import (
	"github.com/studiocrm/crm-api/internal/models"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new follow-up task
func (r *GormTaskRepository) Create(task *models.FollowUpTask) error {
	return r.db.Create(task).Error
}

// Complete marks a task completed. Completion is one-way; there is no reopen.
func (r *GormTaskRepository) Complete(id uint64) error {
	result := r.db.Model(&models.FollowUpTask{}).
		Where("id = ?", id).
		Update("completed", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete deletes a task
func (r *GormTaskRepository) Delete(id uint64) error {
	result := r.db.Delete(&models.FollowUpTask{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListByContactIDs returns all tasks belonging to the given contacts
func (r *GormTaskRepository) ListByContactIDs(contactIDs []uint64) ([]models.FollowUpTask, error) {
	if len(contactIDs) == 0 {
		return []models.FollowUpTask{}, nil
	}

	var tasks []models.FollowUpTask
	if err := r.db.Where("contact_id IN ?", contactIDs).Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// All returns every task, for export
func (r *GormTaskRepository) All() ([]models.FollowUpTask, error) {
	var tasks []models.FollowUpTask
	if err := r.db.Order("id ASC").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

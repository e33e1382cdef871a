package repository

import (
	"github.com/studiocrm/crm-api/internal/database"
	"github.com/studiocrm/crm-api/internal/models"
	"gorm.io/gorm"
)

// GormContactRepository is a GORM implementation of ContactRepository
type GormContactRepository struct {
	db *gorm.DB
}

// NewContactRepository creates a new ContactRepository
func NewContactRepository(db *gorm.DB) ContactRepository {
	return &GormContactRepository{db: db}
}

// Create creates a new contact
func (r *GormContactRepository) Create(contact *models.Contact) error {
	return r.db.Create(contact).Error
}

// FindByID finds a contact by ID with optional preloading
func (r *GormContactRepository) FindByID(id uint64, preload ...string) (*models.Contact, error) {
	var contact models.Contact
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&contact, id).Error; err != nil {
		return nil, err
	}

	return &contact, nil
}

// List retrieves contacts matching the filter, newest first
func (r *GormContactRepository) List(filter ContactFilter) ([]models.Contact, int64, error) {
	var contacts []models.Contact

	query := r.db.Model(&models.Contact{})

	if filter.Rep != nil {
		query = query.Where("rep = ?", *filter.Rep)
	}
	if !filter.ShowArchived {
		query = query.Where("archived = ?", false)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("created_at DESC")

	if filter.Pagination != nil {
		listQuery = listQuery.Scopes(database.Paginate(*filter.Pagination))
	}

	if err := listQuery.Find(&contacts).Error; err != nil {
		return nil, 0, err
	}

	return contacts, total, nil
}

// Update updates a contact
func (r *GormContactRepository) Update(contact *models.Contact) error {
	return r.db.Save(contact).Error
}

// SetArchived flips the archived flag in place
func (r *GormContactRepository) SetArchived(id uint64, archived bool) error {
	result := r.db.Model(&models.Contact{}).
		Where("id = ?", id).
		Update("archived", archived)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete hard-deletes a contact and all of its child rows in one transaction.
// SQLite does not always enforce the declared cascade, so the children are
// removed explicitly.
func (r *GormContactRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("contact_id = ?", id).Delete(&models.FollowUpTask{}).Error; err != nil {
			return err
		}
		if err := tx.Where("contact_id = ?", id).Delete(&models.InteractionLog{}).Error; err != nil {
			return err
		}
		if err := tx.Where("contact_id = ?", id).Delete(&models.OrderLog{}).Error; err != nil {
			return err
		}
		if err := tx.Where("contact_id = ?", id).Delete(&models.POPLog{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.Contact{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// All returns every contact, for export
func (r *GormContactRepository) All() ([]models.Contact, error) {
	var contacts []models.Contact
	if err := r.db.Order("id ASC").Find(&contacts).Error; err != nil {
		return nil, err
	}
	return contacts, nil
}

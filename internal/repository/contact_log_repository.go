package repository

import (
	"github.com/studiocrm/crm-api/internal/models"
	"gorm.io/gorm"
)

// GormContactLogRepository is a GORM implementation of ContactLogRepository
type GormContactLogRepository struct {
	db *gorm.DB
}

// NewContactLogRepository creates a new ContactLogRepository
func NewContactLogRepository(db *gorm.DB) ContactLogRepository {
	return &GormContactLogRepository{db: db}
}

// CreateInteraction appends an interaction note
func (r *GormContactLogRepository) CreateInteraction(entry *models.InteractionLog) error {
	return r.db.Create(entry).Error
}

// CreateOrder appends an order record
func (r *GormContactLogRepository) CreateOrder(entry *models.OrderLog) error {
	return r.db.Create(entry).Error
}

// CreatePOP appends a proof-of-purchase record
func (r *GormContactLogRepository) CreatePOP(entry *models.POPLog) error {
	return r.db.Create(entry).Error
}

// AllInteractions returns every interaction log, for export
func (r *GormContactLogRepository) AllInteractions() ([]models.InteractionLog, error) {
	var entries []models.InteractionLog
	if err := r.db.Order("id ASC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// AllOrders returns every order log, for export
func (r *GormContactLogRepository) AllOrders() ([]models.OrderLog, error) {
	var entries []models.OrderLog
	if err := r.db.Order("id ASC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// AllPOPs returns every proof-of-purchase log, for export
func (r *GormContactLogRepository) AllPOPs() ([]models.POPLog, error) {
	var entries []models.POPLog
	if err := r.db.Order("id ASC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

package repository

import (
	"github.com/studiocrm/crm-api/internal/models"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsername finds a user by username
func (r *GormUserRepository) FindByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdatePassword replaces a user's password hash
func (r *GormUserRepository) UpdatePassword(id uint64, passwordHash string) error {
	return r.db.Model(&models.User{}).
		Where("id = ?", id).
		Update("password_hash", passwordHash).Error
}

// ListUsernamesByRole lists usernames holding the given role
func (r *GormUserRepository) ListUsernamesByRole(role models.Role) ([]string, error) {
	var usernames []string
	err := r.db.Model(&models.User{}).
		Where("role = ?", role).
		Order("username ASC").
		Pluck("username", &usernames).Error
	return usernames, err
}

// ExistsWithRole reports whether a user with the username and role exists
func (r *GormUserRepository) ExistsWithRole(username string, role models.Role) (bool, error) {
	var count int64
	err := r.db.Model(&models.User{}).
		Where("username = ? AND role = ?", username, role).
		Count(&count).Error
	return count > 0, err
}

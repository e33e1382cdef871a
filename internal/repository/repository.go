package repository

import (
	"github.com/studiocrm/crm-api/internal/models"
	"github.com/studiocrm/crm-api/internal/utils"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// UpdatePassword replaces a user's password hash
	UpdatePassword(id uint64, passwordHash string) error

	// ListUsernamesByRole lists usernames holding the given role
	ListUsernamesByRole(role models.Role) ([]string, error)

	// ExistsWithRole reports whether a user with the username and role exists
	ExistsWithRole(username string, role models.Role) (bool, error)
}

// ContactFilter holds visibility options for listing contacts
type ContactFilter struct {
	// Rep restricts results to a single rep's contacts when set
	Rep *string

	// ShowArchived includes archived contacts when true
	ShowArchived bool

	// Pagination limits the page returned when set; nil returns everything
	Pagination *utils.PaginationParams
}

// ContactRepository defines the interface for contact data access
type ContactRepository interface {
	// Create creates a new contact
	Create(contact *models.Contact) error

	// FindByID finds a contact by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Contact, error)

	// List retrieves contacts matching the filter, newest first
	List(filter ContactFilter) ([]models.Contact, int64, error)

	// Update updates a contact
	Update(contact *models.Contact) error

	// SetArchived flips the archived flag in place
	SetArchived(id uint64, archived bool) error

	// Delete hard-deletes a contact and all of its child rows
	Delete(id uint64) error

	// All returns every contact, for export
	All() ([]models.Contact, error)
}

// TaskRepository defines the interface for follow-up task data access
type TaskRepository interface {
	// Create creates a new follow-up task
	Create(task *models.FollowUpTask) error

	// Complete marks a task completed
	Complete(id uint64) error

	// Delete deletes a task
	Delete(id uint64) error

	// ListByContactIDs returns all tasks belonging to the given contacts
	ListByContactIDs(contactIDs []uint64) ([]models.FollowUpTask, error)

	// All returns every task, for export
	All() ([]models.FollowUpTask, error)
}

// ContactLogRepository defines the interface for the append-only child logs
type ContactLogRepository interface {
	// CreateInteraction appends an interaction note
	CreateInteraction(entry *models.InteractionLog) error

	// CreateOrder appends an order record
	CreateOrder(entry *models.OrderLog) error

	// CreatePOP appends a proof-of-purchase record
	CreatePOP(entry *models.POPLog) error

	// AllInteractions returns every interaction log, for export
	AllInteractions() ([]models.InteractionLog, error)

	// AllOrders returns every order log, for export
	AllOrders() ([]models.OrderLog, error)

	// AllPOPs returns every proof-of-purchase log, for export
	AllPOPs() ([]models.POPLog, error)
}

// RepNoteRepository defines the interface for rep note data access
type RepNoteRepository interface {
	// GetOrCreate returns the rep's note, creating an empty one if absent.
	// Concurrent first reads must both succeed with a single stored row.
	GetOrCreate(repName string) (*models.RepNote, error)

	// UpdateNote overwrites the note text and refreshes the timestamp
	UpdateNote(repName, note string) error
}

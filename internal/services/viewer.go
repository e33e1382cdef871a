package services

import "github.com/studiocrm/crm-api/internal/models"

// Viewer identifies the requesting user for visibility and authorization
// decisions. It is built from the session by the auth middleware and passed
// explicitly into every service call that scopes data.
type Viewer struct {
	UserID   uint64
	Username string
	Role     models.Role
}

// IsAdmin reports whether the viewer holds the admin role.
func (v Viewer) IsAdmin() bool {
	return v.Role == models.RoleAdmin
}

// CanSeeContact reports whether the viewer may access the given contact.
// Admins see everything; everyone else only their own rep partition.
func (v Viewer) CanSeeContact(contact *models.Contact) bool {
	return v.IsAdmin() || contact.Rep == v.Username
}

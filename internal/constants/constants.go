package constants

// Session and context keys
const (
	SessionCookieName  = "crm_session"
	ContextKeyUserID   = "user_id"
	ContextKeyUsername = "username"
	ContextKeyRole     = "role"
)

// Validation limits
const (
	MinPasswordLength = 8
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// DateFormat is the wire format for due dates, order dates and sent dates.
const DateFormat = "2006-01-02"

package constants

// Session / context keys
const (
	SessionCookieName = "crew_session"
	ContextKeyUserID  = "user_id"
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Passwords
const MinPasswordLength = 8

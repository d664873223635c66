package constants

// ContextKeyUserID is the key under which the authenticated user ID is stored
// in both the session and the Gin request context.
const ContextKeyUserID = "user_id"

// SessionCookieName is the name of the session cookie.
const SessionCookieName = "sprintboard_session"

// MinPasswordLength is the minimum accepted password length at signup.
const MinPasswordLength = 8

// SprintDateLayout is the accepted format for sprint start/end dates.
const SprintDateLayout = "2006-01-02"

// Pagination bounds
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

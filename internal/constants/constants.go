package constants

// Context keys
const (
	ContextKeyUserID    = "user_id"
	ContextKeyLanguage  = "lang"
	ContextKeyRequestID = "request_id"
	ContextKeyTask      = "task"
	ContextKeyCategory  = "category"
)

// Session
const (
	SessionCookieName = "supertask_session"
	SessionMaxAge     = 86400 * 7 // 7 days
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Accounts
const (
	MinPasswordLength = 8
	MaxBioLength      = 500
)

// Categories
const (
	DefaultCategoryColor = "#007bff"
)

// Tasks
const (
	DateLayout = "2006-01-02"
)

// Headers
const (
	HeaderRequestID = "X-Request-ID"
)

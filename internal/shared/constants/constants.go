package constants

// Roles stored on user records.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Gin context keys set by the auth middleware.
const (
	CtxUserID    = "user_id"
	CtxUserEmail = "user_email"
	CtxUserRole  = "user_role"
	CtxRequestID = "request_id"
)

// Redis key prefixes.
const (
	RateLimitPrefix = "ratelimit"
)

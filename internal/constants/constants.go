package constants

// Context keys set by the auth middleware.
const (
	ContextKeyUserID    = "user_id"
	ContextKeyUserEmail = "user_email"
)

// MinPasswordLength is the minimum accepted password length on signup and
// password update.
const MinPasswordLength = 6

package constants

import "time"

// Database pool settings.
const (
	DatabaseMaxOpenConns    = 25
	DatabaseMaxIdleConns    = 5
	DatabaseConnMaxLifetime = 30 // minutes
	DatabaseSSLMode         = "disable"
)

// RSVP validation limits. The guest ceiling is the server-side schema limit and
// the single authoritative value; the public form advertises the same number.
const (
	MaxNameLength    = 100
	MaxEmailLength   = 254
	MaxGuests        = 10
	MaxDietaryLength = 500
	MaxNotesLength   = 1000
)

// Redis keys.
const (
	RedisKeyPageGuests    = "page:guests"
	RedisKeyPageDashboard = "page:dashboard"
	RedisKeyPageDietary   = "page:dietary"
	RedisKeyPageSongs     = "page:songs"
	RedisKeyLoginAttempt  = "login:attempt:"
)

// Auth / throttling.
const (
	MaxLoginAttempts  = 5
	BlockDuration     = 15 * time.Minute
	AccessTokenTTL    = 12 * time.Hour
	ScopeTokenAccess  = "access"
	ScopeTokenRefresh = "refresh"
)

// Timeouts.
const (
	DefaultTimeout   = 10 * time.Second
	EmailSendTimeout = 30 * time.Second
	PageCacheTTL     = 5 * time.Minute
)

// Asynq task types.
const (
	TaskEmailConfirmation = "email:confirmation"
)

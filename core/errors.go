package core

import "errors"

// Credential errors
var (
	ErrUserExists         = errors.New("user already exists")      // 409 Conflict
	ErrUserNotFound       = errors.New("user not found")           // 404 Not Found
	ErrInvalidCredentials = errors.New("invalid name or password") // 401 Unauthorized
)

// Session errors
var (
	ErrMissingAuthHeader = errors.New("missing authorization header") // 401
	ErrInvalidAuthHeader = errors.New("invalid authorization format, expected 'Bearer <token>'") // 401
	ErrInvalidToken      = errors.New("invalid session token")        // 401
	ErrSessionNotFound   = errors.New("session not found")            // 401
	ErrCacheNotFound     = errors.New("session not found in cache")
)

// Validation errors (client input)
var (
	ErrNameRequired      = errors.New("name is required")                        // 400
	ErrPasswordRequired  = errors.New("password is required")                    // 400
	ErrColorRequired     = errors.New("color is required")                       // 400
	ErrInvalidID         = errors.New("malformed id")                            // 400
	ErrInvalidTimestamp  = errors.New("malformed timestamp, expected RFC3339")   // 400
	ErrInvalidTimeWindow = errors.New("start_time and end_time are required")    // 400
)

// Resource errors
var (
	ErrScheduleNotFound = errors.New("schedule not found")       // 404
	ErrColorNotFound    = errors.New("schedule color not found") // 404
)

// Store errors (persistence collaborator)
var (
	ErrStoreUnavailable = errors.New("store unavailable") // 502
)

// Config errors (server-side configuration)
var (
	ErrStorageRequired = errors.New("storage adapter is required") // 500
)

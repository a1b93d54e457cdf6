package core

import "time"

// User is an account in the system.
//
// This is the "identity" - who someone is. The password hash is a
// PHC-encoded argon2id string and is never serialized.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Session represents an issued login session. The raw token is handed to
// the client exactly once at issuance; only its hash is stored.
type Session struct {
	ID        string    `json:"session_id"`
	UserID    string    `json:"user_id"`
	TokenHash string    `json:"-"` // Never expose in JSON (security!)
	CreatedAt time.Time `json:"-"`
}

// Schedule is a time-boxed entry owned by exactly one user. ColorID is an
// opaque reference to a ScheduleColor; existence is not verified.
type Schedule struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	ColorID     string    `json:"color_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
}

// ScheduleColor is a shared tag visible to every authenticated user.
// Colors have no owner.
type ScheduleColor struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// SignUpInput contains the data needed to register a new user
type SignUpInput struct {
	Name     string `json:"user_name"`
	Password string `json:"password"`
}

// SignInInput contains the credentials for authentication
type SignInInput struct {
	Name     string `json:"user_name"`
	Password string `json:"password"`
}

// AuthResult is the wire payload returned by signup and signin.
type AuthResult struct {
	SessionID string `json:"session_id"`
	UserID    string `json:"user_id"`
	Token     string `json:"token"`
}

// IssuedSession pairs a persisted session with its raw token. The token
// exists only in this result; storage keeps the hash.
type IssuedSession struct {
	Session *Session `json:"session"`
	Token   string   `json:"token"`
}

// CreateScheduleInput contains the caller-supplied fields for a new
// schedule entry. The owner comes from the resolved session, never from
// the request body.
type CreateScheduleInput struct {
	ColorID     string    `json:"color_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
}

// ScheduleChanges holds the mutable fields of a schedule. Owner and color
// are fixed at creation and cannot be changed here.
type ScheduleChanges struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
}

// CreateColorInput contains the fields for a new shared color tag.
type CreateColorInput struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

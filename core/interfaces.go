package core

import (
	"context"
	"time"
)

// Ports define interfaces for external dependencies

// ============================================
// STORAGE PORTS (Database operations)
// ============================================

// UserStorage defines user-related database operations
type UserStorage interface {
	CreateUser(ctx context.Context, u *User) error
	GetUserByID(ctx context.Context, id string) (*User, error)
	GetUserByName(ctx context.Context, name string) (*User, error)
}

// SessionStorage defines session-related database operations
type SessionStorage interface {
	CreateSession(ctx context.Context, s *Session) error
	GetSessionByHash(ctx context.Context, tokenHash string) (*Session, error)
}

// ScheduleStorage defines schedule-related database operations. Every
// operation except CreateSchedule takes the owning user id as part of the
// lookup key; there is no way to reach another user's entries.
type ScheduleStorage interface {
	CreateSchedule(ctx context.Context, s *Schedule) error

	// ListSchedules returns the schedules owned by userID whose start_time
	// lies in [windowStart, windowEnd] inclusive, ordered by start_time.
	ListSchedules(ctx context.Context, userID string, windowStart, windowEnd time.Time) ([]*Schedule, error)

	GetSchedule(ctx context.Context, userID, scheduleID string) (*Schedule, error)

	// UpdateSchedule applies changes to the schedule matching both
	// scheduleID and userID in a single conditional write, returning the
	// post-update row. A miss on either key is ErrScheduleNotFound.
	UpdateSchedule(ctx context.Context, userID, scheduleID string, changes ScheduleChanges) (*Schedule, error)
}

// ColorStorage defines operations on the shared color registry
type ColorStorage interface {
	CreateColor(ctx context.Context, c *ScheduleColor) error
	ListColors(ctx context.Context) ([]*ScheduleColor, error)
}

type StorageAdapter interface {
	UserStorage
	SessionStorage
	ScheduleStorage
	ColorStorage
}

// ============================================
// CACHE PORT
// ============================================

// Cache defines session caching operations
type Cache interface {
	Get(tokenHash string) (*Session, error)
	Set(tokenHash string, session *Session) error
	Delete(tokenHash string) error
	Clear() error
}

// CacheWithStats extends Cache with statistics tracking
type CacheWithStats interface {
	Cache
	Stats() CacheStats
}

// CacheConfig configures cache behavior
type CacheConfig struct {
	TTL     time.Duration
	MaxSize int
}

// CacheStats tracks cache performance metrics
type CacheStats struct {
	Hits      int64         `json:"hits"`
	Misses    int64         `json:"misses"`
	Sets      int64         `json:"sets"`
	Deletes   int64         `json:"deletes"`
	Evictions int64         `json:"evictions"`
	Size      int           `json:"size"`
	TTL       time.Duration `json:"ttl"`
}

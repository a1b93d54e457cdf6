// Package looplan wires the scheduling backend's core services: credential
// handling, session issuance and validation, user-scoped schedules, and the
// shared color registry. Transport and persistence are provided by adapters.
package looplan

import (
	"github.com/looplan/looplan/core"
	"github.com/looplan/looplan/pkg/crypto"
	"github.com/looplan/looplan/services"
)

// interfaces
type (
	StorageAdapter  = core.StorageAdapter
	UserStorage     = core.UserStorage
	SessionStorage  = core.SessionStorage
	ScheduleStorage = core.ScheduleStorage
	ColorStorage    = core.ColorStorage
	Cache           = core.Cache

	PasswordHandler = crypto.PasswordHandler
)

// structs
type (
	User          = core.User
	Session       = core.Session
	Schedule      = core.Schedule
	ScheduleColor = core.ScheduleColor

	SignUpInput         = core.SignUpInput
	SignInInput         = core.SignInInput
	AuthResult          = core.AuthResult
	CreateScheduleInput = core.CreateScheduleInput
	ScheduleChanges     = core.ScheduleChanges
	CreateColorInput    = core.CreateColorInput

	CacheConfig = core.CacheConfig
	CacheStats  = core.CacheStats
)

// Constructors & helpers (convenience re-exports)
var (
	NewInMemoryCache = core.NewInMemoryCache
	NewArgon2        = crypto.NewArgon2
)

var (
	ErrUserExists         = core.ErrUserExists
	ErrUserNotFound       = core.ErrUserNotFound
	ErrInvalidCredentials = core.ErrInvalidCredentials
)

var (
	ErrMissingAuthHeader = core.ErrMissingAuthHeader
	ErrInvalidAuthHeader = core.ErrInvalidAuthHeader
	ErrInvalidToken      = core.ErrInvalidToken
	ErrSessionNotFound   = core.ErrSessionNotFound
	ErrCacheNotFound     = core.ErrCacheNotFound
)

var (
	ErrNameRequired      = core.ErrNameRequired
	ErrPasswordRequired  = core.ErrPasswordRequired
	ErrColorRequired     = core.ErrColorRequired
	ErrInvalidID         = core.ErrInvalidID
	ErrInvalidTimestamp  = core.ErrInvalidTimestamp
	ErrInvalidTimeWindow = core.ErrInvalidTimeWindow
)

var (
	ErrScheduleNotFound = core.ErrScheduleNotFound
	ErrColorNotFound    = core.ErrColorNotFound
	ErrStoreUnavailable = core.ErrStoreUnavailable
	ErrStorageRequired  = core.ErrStorageRequired
)

// Config carries the collaborators the core consumes. Storage is the only
// required field; everything else has a sensible default.
type Config struct {
	Storage core.StorageAdapter

	// Optional config
	CacheAdapter   core.Cache
	DisableCache   bool
	CacheConfig    *core.CacheConfig
	PasswordHasher crypto.PasswordHandler
}

// Looplan bundles the wired services.
type Looplan struct {
	Auth      *services.AuthService
	Sessions  *services.SessionManager
	Schedules *services.ScheduleService
	Colors    *services.ColorService
}

func New(config Config) (*Looplan, error) {
	if config.Storage == nil {
		return nil, ErrStorageRequired
	}

	// Set Defaults

	cacheAdapter := config.CacheAdapter
	if cacheAdapter == nil && !config.DisableCache {
		cacheConfig := core.CacheConfig{}
		if config.CacheConfig != nil {
			cacheConfig = *config.CacheConfig
		}
		cacheAdapter = core.NewInMemoryCache(cacheConfig)
	}

	passwordHasher := config.PasswordHasher
	if passwordHasher == nil {
		passwordHasher = crypto.NewArgon2()
	}

	sessionManager := services.NewSessionManager(config.Storage, cacheAdapter)

	return &Looplan{
		Auth:      services.NewAuthService(config.Storage, passwordHasher, sessionManager),
		Sessions:  sessionManager,
		Schedules: services.NewScheduleService(config.Storage),
		Colors:    services.NewColorService(config.Storage),
	}, nil
}

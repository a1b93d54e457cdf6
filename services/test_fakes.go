package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/looplan/looplan/core"
)

// FakeStorage is a test-only fake implementing core.StorageAdapter.
// It stores everything in maps and exposes error fields for behavior
// injection. Ids are assigned the way the real store does: at insert.
type FakeStorage struct {
	mu        sync.RWMutex
	users     map[string]*core.User    // key: user id
	sessions  map[string]*core.Session // key: token hash
	schedules map[string]*core.Schedule
	colors    []*core.ScheduleColor

	createErr error
	getErr    error
	listErr   error
	updateErr error
}

func NewFakeStorage() *FakeStorage {
	return &FakeStorage{
		users:     make(map[string]*core.User),
		sessions:  make(map[string]*core.Session),
		schedules: make(map[string]*core.Schedule),
	}
}

// Error injection helpers

func (f *FakeStorage) SetCreateError(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createErr = err
}

func (f *FakeStorage) SetGetError(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getErr = err
}

// UserStorage implementation

func (f *FakeStorage) CreateUser(ctx context.Context, u *core.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	for _, existing := range f.users {
		if existing.Name == u.Name {
			return core.ErrUserExists
		}
	}
	u.ID = uuid.NewString()
	u.CreatedAt = time.Now()
	f.users[u.ID] = u
	return nil
}

func (f *FakeStorage) GetUserByID(ctx context.Context, id string) (*core.User, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, core.ErrUserNotFound
}

func (f *FakeStorage) GetUserByName(ctx context.Context, name string) (*core.User, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, u := range f.users {
		if u.Name == name {
			return u, nil
		}
	}
	return nil, core.ErrUserNotFound
}

// SessionStorage implementation

func (f *FakeStorage) CreateSession(ctx context.Context, s *core.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	s.ID = uuid.NewString()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now()
	}
	f.sessions[s.TokenHash] = s
	return nil
}

func (f *FakeStorage) GetSessionByHash(ctx context.Context, tokenHash string) (*core.Session, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	s, ok := f.sessions[tokenHash]
	if !ok {
		return nil, core.ErrSessionNotFound
	}
	return s, nil
}

// ScheduleStorage implementation

func (f *FakeStorage) CreateSchedule(ctx context.Context, s *core.Schedule) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	s.ID = uuid.NewString()
	f.schedules[s.ID] = s
	return nil
}

func (f *FakeStorage) ListSchedules(ctx context.Context, userID string, windowStart, windowEnd time.Time) ([]*core.Schedule, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []*core.Schedule
	for _, s := range f.schedules {
		if s.UserID != userID {
			continue
		}
		if s.StartTime.Before(windowStart) || s.StartTime.After(windowEnd) {
			continue
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (f *FakeStorage) GetSchedule(ctx context.Context, userID, scheduleID string) (*core.Schedule, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	s, ok := f.schedules[scheduleID]
	if !ok || s.UserID != userID {
		return nil, core.ErrScheduleNotFound
	}
	return s, nil
}

func (f *FakeStorage) UpdateSchedule(ctx context.Context, userID, scheduleID string, changes core.ScheduleChanges) (*core.Schedule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	s, ok := f.schedules[scheduleID]
	if !ok || s.UserID != userID {
		return nil, core.ErrScheduleNotFound
	}
	s.Name = changes.Name
	s.Description = changes.Description
	s.StartTime = changes.StartTime
	s.EndTime = changes.EndTime
	return s, nil
}

// ColorStorage implementation

func (f *FakeStorage) CreateColor(ctx context.Context, c *core.ScheduleColor) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	c.ID = uuid.NewString()
	f.colors = append(f.colors, c)
	return nil
}

func (f *FakeStorage) ListColors(ctx context.Context) ([]*core.ScheduleColor, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]*core.ScheduleColor, len(f.colors))
	copy(out, f.colors)
	return out, nil
}

// FakeCache is a test-only fake implementing core.Cache.
type FakeCache struct {
	mu     sync.RWMutex
	cache  map[string]*core.Session
	getErr error
	setErr error
	hits   int
	misses int
}

func NewFakeCache() *FakeCache {
	return &FakeCache{cache: make(map[string]*core.Session)}
}

func (f *FakeCache) Get(tokenHash string) (*core.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	s, ok := f.cache[tokenHash]
	if !ok {
		f.misses++
		return nil, core.ErrCacheNotFound
	}
	f.hits++
	return s, nil
}

// Counters returns how many Get calls hit and missed the cache.
func (f *FakeCache) Counters() (hits, misses int) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.hits, f.misses
}

func (f *FakeCache) Set(tokenHash string, session *core.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.setErr != nil {
		return f.setErr
	}
	f.cache[tokenHash] = session
	return nil
}

func (f *FakeCache) Delete(tokenHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.cache, tokenHash)
	return nil
}

func (f *FakeCache) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cache = make(map[string]*core.Session)
	return nil
}

func (f *FakeCache) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.cache)
}

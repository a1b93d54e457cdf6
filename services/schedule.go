package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/looplan/looplan/core"
)

// ScheduleService owns the user-scoped schedule operations. Every lookup
// and mutation carries the owning user id; there is no path to another
// user's entries.
type ScheduleService struct {
	storage core.ScheduleStorage
}

func NewScheduleService(storage core.ScheduleStorage) *ScheduleService {
	return &ScheduleService{storage: storage}
}

// Create inserts a new schedule owned by userID. The color id must be
// well-formed but is otherwise an opaque reference; its existence in the
// registry is not verified.
func (s *ScheduleService) Create(ctx context.Context, userID string, input core.CreateScheduleInput) (*core.Schedule, error) {
	if input.Name == "" {
		return nil, core.ErrNameRequired
	}
	if _, err := uuid.Parse(input.ColorID); err != nil {
		return nil, fmt.Errorf("%w: color_id", core.ErrInvalidID)
	}

	schedule := &core.Schedule{
		UserID:      userID,
		ColorID:     input.ColorID,
		Name:        input.Name,
		Description: input.Description,
		StartTime:   input.StartTime,
		EndTime:     input.EndTime,
	}

	if err := s.storage.CreateSchedule(ctx, schedule); err != nil {
		return nil, fmt.Errorf("failed to create schedule: %w", err)
	}

	return schedule, nil
}

// List returns the schedules owned by userID whose start_time lies in
// [windowStart, windowEnd] inclusive, ordered by start_time.
//
// Both window bounds compare against start_time only: an entry that runs
// into the window but starts before it is not returned. Callers depend on
// this single-field semantic.
func (s *ScheduleService) List(ctx context.Context, userID string, windowStart, windowEnd time.Time) ([]*core.Schedule, error) {
	schedules, err := s.storage.ListSchedules(ctx, userID, windowStart, windowEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}
	if schedules == nil {
		// serialize as [] rather than null
		schedules = []*core.Schedule{}
	}
	return schedules, nil
}

// Get fetches a single schedule by the pair (owner, id). A schedule owned
// by someone else is indistinguishable from a missing one.
func (s *ScheduleService) Get(ctx context.Context, userID, scheduleID string) (*core.Schedule, error) {
	if _, err := uuid.Parse(scheduleID); err != nil {
		return nil, fmt.Errorf("%w: schedule id", core.ErrInvalidID)
	}

	schedule, err := s.storage.GetSchedule(ctx, userID, scheduleID)
	if err != nil {
		return nil, err
	}
	return schedule, nil
}

// Update applies changes to a schedule the caller owns. The storage match
// on (owner, id) and the field write happen as one conditional update, so
// concurrent updates to the same schedule cannot interleave a stale read.
// Owner and color are immutable after creation.
func (s *ScheduleService) Update(ctx context.Context, userID, scheduleID string, changes core.ScheduleChanges) (*core.Schedule, error) {
	if _, err := uuid.Parse(scheduleID); err != nil {
		return nil, fmt.Errorf("%w: schedule id", core.ErrInvalidID)
	}
	if changes.Name == "" {
		return nil, core.ErrNameRequired
	}

	schedule, err := s.storage.UpdateSchedule(ctx, userID, scheduleID, changes)
	if err != nil {
		return nil, err
	}
	return schedule, nil
}

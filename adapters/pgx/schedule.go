package pgx

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/looplan/looplan/core"
)

const scheduleColumns = `id::text, user_id::text, color_id::text, name, description, start_time, end_time`

func (a *Adapter) CreateSchedule(ctx context.Context, schedule *core.Schedule) error {
	query := `INSERT INTO schedules (user_id, color_id, name, description, start_time, end_time)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING id::text`

	return a.withRetry(ctx, func(ctx context.Context) error {
		return a.pool.QueryRow(ctx, query,
			schedule.UserID, schedule.ColorID, schedule.Name,
			schedule.Description, schedule.StartTime, schedule.EndTime,
		).Scan(&schedule.ID)
	})
}

// ListSchedules filters on the owner and on start_time alone: both window
// bounds compare against start_time, inclusive.
func (a *Adapter) ListSchedules(ctx context.Context, userID string, windowStart, windowEnd time.Time) ([]*core.Schedule, error) {
	query := `SELECT ` + scheduleColumns + `
	          FROM schedules
	          WHERE user_id = $1 AND start_time >= $2 AND start_time <= $3
	          ORDER BY start_time`

	var schedules []*core.Schedule
	err := a.withRetry(ctx, func(ctx context.Context) error {
		rows, err := a.pool.Query(ctx, query, userID, windowStart, windowEnd)
		if err != nil {
			return err
		}
		defer rows.Close()

		schedules = schedules[:0]
		for rows.Next() {
			s := &core.Schedule{}
			if err := scanSchedule(rows, s); err != nil {
				return err
			}
			schedules = append(schedules, s)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return schedules, nil
}

func (a *Adapter) GetSchedule(ctx context.Context, userID, scheduleID string) (*core.Schedule, error) {
	query := `SELECT ` + scheduleColumns + `
	          FROM schedules
	          WHERE id = $1 AND user_id = $2`

	schedule := &core.Schedule{}
	err := a.withRetry(ctx, func(ctx context.Context) error {
		err := scanSchedule(a.pool.QueryRow(ctx, query, scheduleID, userID), schedule)
		if errors.Is(err, pgx.ErrNoRows) {
			return core.ErrScheduleNotFound
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return schedule, nil
}

// UpdateSchedule is the one place that needs read-decide-mutate to be
// indivisible: the (id, user_id) match and the field write are a single
// conditional UPDATE, so concurrent updates cannot lose each other's
// writes and a non-owner can never match.
func (a *Adapter) UpdateSchedule(ctx context.Context, userID, scheduleID string, changes core.ScheduleChanges) (*core.Schedule, error) {
	query := `UPDATE schedules
	          SET name = $3, description = $4, start_time = $5, end_time = $6
	          WHERE id = $1 AND user_id = $2
	          RETURNING ` + scheduleColumns

	schedule := &core.Schedule{}
	err := a.withRetry(ctx, func(ctx context.Context) error {
		row := a.pool.QueryRow(ctx, query,
			scheduleID, userID,
			changes.Name, changes.Description, changes.StartTime, changes.EndTime,
		)
		err := scanSchedule(row, schedule)
		if errors.Is(err, pgx.ErrNoRows) {
			return core.ErrScheduleNotFound
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return schedule, nil
}

func scanSchedule(row pgx.Row, s *core.Schedule) error {
	return row.Scan(
		&s.ID, &s.UserID, &s.ColorID,
		&s.Name, &s.Description,
		&s.StartTime, &s.EndTime,
	)
}

package pgx

import (
	"context"

	"github.com/looplan/looplan/core"
)

func (a *Adapter) CreateColor(ctx context.Context, color *core.ScheduleColor) error {
	query := `INSERT INTO schedule_colors (name, color)
	          VALUES ($1, $2)
	          RETURNING id::text`

	return a.withRetry(ctx, func(ctx context.Context) error {
		return a.pool.QueryRow(ctx, query, color.Name, color.Color).Scan(&color.ID)
	})
}

func (a *Adapter) ListColors(ctx context.Context) ([]*core.ScheduleColor, error) {
	query := `SELECT id::text, name, color
	          FROM schedule_colors
	          ORDER BY name`

	var colors []*core.ScheduleColor
	err := a.withRetry(ctx, func(ctx context.Context) error {
		rows, err := a.pool.Query(ctx, query)
		if err != nil {
			return err
		}
		defer rows.Close()

		colors = colors[:0]
		for rows.Next() {
			c := &core.ScheduleColor{}
			if err := rows.Scan(&c.ID, &c.Name, &c.Color); err != nil {
				return err
			}
			colors = append(colors, c)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return colors, nil
}

package pgx

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/looplan/looplan/core"
)

func (a *Adapter) CreateUser(ctx context.Context, user *core.User) error {
	query := `INSERT INTO users (name, password_hash)
	          VALUES ($1, $2)
	          RETURNING id::text, created_at`

	return a.withRetry(ctx, func(ctx context.Context) error {
		err := a.pool.QueryRow(ctx, query, user.Name, user.PasswordHash).
			Scan(&user.ID, &user.CreatedAt)
		if err != nil {
			if isUniqueViolation(err) {
				return core.ErrUserExists
			}
			return err
		}
		return nil
	})
}

func (a *Adapter) GetUserByID(ctx context.Context, id string) (*core.User, error) {
	query := `SELECT id::text, name, password_hash, created_at
	          FROM users WHERE id = $1`

	user := &core.User{}
	err := a.withRetry(ctx, func(ctx context.Context) error {
		err := a.pool.QueryRow(ctx, query, id).
			Scan(&user.ID, &user.Name, &user.PasswordHash, &user.CreatedAt)
		if errors.Is(err, pgx.ErrNoRows) {
			return core.ErrUserNotFound
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (a *Adapter) GetUserByName(ctx context.Context, name string) (*core.User, error) {
	query := `SELECT id::text, name, password_hash, created_at
	          FROM users WHERE name = $1`

	user := &core.User{}
	err := a.withRetry(ctx, func(ctx context.Context) error {
		err := a.pool.QueryRow(ctx, query, name).
			Scan(&user.ID, &user.Name, &user.PasswordHash, &user.CreatedAt)
		if errors.Is(err, pgx.ErrNoRows) {
			return core.ErrUserNotFound
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

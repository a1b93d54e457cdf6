package pgx

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/looplan/looplan/core"
)

func (a *Adapter) CreateSession(ctx context.Context, session *core.Session) error {
	query := `INSERT INTO sessions (user_id, token_hash)
	          VALUES ($1, $2)
	          RETURNING id::text, created_at`

	return a.withRetry(ctx, func(ctx context.Context) error {
		return a.pool.QueryRow(ctx, query, session.UserID, session.TokenHash).
			Scan(&session.ID, &session.CreatedAt)
	})
}

func (a *Adapter) GetSessionByHash(ctx context.Context, tokenHash string) (*core.Session, error) {
	query := `SELECT id::text, user_id::text, token_hash, created_at
	          FROM sessions WHERE token_hash = $1`

	session := &core.Session{}
	err := a.withRetry(ctx, func(ctx context.Context) error {
		err := a.pool.QueryRow(ctx, query, tokenHash).
			Scan(&session.ID, &session.UserID, &session.TokenHash, &session.CreatedAt)
		if errors.Is(err, pgx.ErrNoRows) {
			return core.ErrSessionNotFound
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return session, nil
}

package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/looplan/looplan/core"
	"github.com/looplan/looplan/pkg/crypto"
)

// The authorization header carries a fixed 7-character scheme prefix; the
// token starts at the 8th character.
const bearerPrefix = "Bearer "

// SessionManager issues opaque session tokens and resolves them back to a
// session on every protected request. Sessions never expire: once issued, a
// token stays valid until its row is removed out-of-band.
type SessionManager struct {
	storage core.SessionStorage
	cache   core.Cache // optional, can be nil if caching is disabled
}

func NewSessionManager(storage core.SessionStorage, cache core.Cache) *SessionManager {
	return &SessionManager{storage: storage, cache: cache}
}

// Issue generates a fresh token for userID, persists the session, and
// returns it together with the raw token. Storage assigns the session id.
func (sm *SessionManager) Issue(ctx context.Context, userID string) (*core.IssuedSession, error) {
	pair, err := crypto.GenerateToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	session := &core.Session{
		UserID:    userID,
		TokenHash: pair.Hash,
		CreatedAt: time.Now(),
	}

	if err := sm.storage.CreateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	// Cache session if caching is enabled (cache is non-nil)
	if sm.cache != nil {
		// We don't fail the request if caching fails
		_ = sm.cache.Set(pair.Hash, session)
	}

	return &core.IssuedSession{Session: session, Token: pair.Token}, nil
}

// Verify resolves a raw token to its session. The token must be
// well-formed before any storage lookup happens; an unknown token is
// ErrSessionNotFound.
func (sm *SessionManager) Verify(ctx context.Context, token string) (*core.Session, error) {
	if token == "" {
		return nil, core.ErrInvalidToken
	}
	if err := crypto.ParseToken(token); err != nil {
		return nil, core.ErrInvalidToken
	}

	tokenHash := crypto.HashToken(token)

	// Try cache first if caching is enabled
	if sm.cache != nil {
		if session, err := sm.cache.Get(tokenHash); err == nil {
			return session, nil
		}
		// Cache miss - fall through to storage
	}

	session, err := sm.storage.GetSessionByHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, core.ErrSessionNotFound) {
			return nil, core.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	// Cache the session for future requests if caching is enabled
	if sm.cache != nil {
		_ = sm.cache.Set(tokenHash, session)
	}

	return session, nil
}

// VerifyHeader parses an Authorization header of the form
// "Bearer <token>" and resolves the token. The resolved session's UserID
// is the caller identity for all subsequent scoping.
func (sm *SessionManager) VerifyHeader(ctx context.Context, header string) (*core.Session, error) {
	if header == "" {
		return nil, core.ErrMissingAuthHeader
	}
	if len(header) <= len(bearerPrefix) || header[:len(bearerPrefix)] != bearerPrefix {
		return nil, core.ErrInvalidAuthHeader
	}
	return sm.Verify(ctx, header[len(bearerPrefix):])
}

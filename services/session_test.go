package services

import (
	"context"
	"errors"
	"testing"

	"github.com/looplan/looplan/core"
	"github.com/looplan/looplan/pkg/crypto"
)

// Requirement: Issue persists a session and returns the raw token exactly once.
func TestSessionManager_Issue(t *testing.T) {
	storage := NewFakeStorage()
	sm := NewSessionManager(storage, nil)
	ctx := context.Background()

	issued, err := sm.Issue(ctx, "user-1")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	if issued.Session.ID == "" {
		t.Error("Issue() should return the persisted session id")
	}
	if issued.Session.UserID != "user-1" {
		t.Errorf("Issue() user id = %q, want %q", issued.Session.UserID, "user-1")
	}
	if err := crypto.ParseToken(issued.Token); err != nil {
		t.Errorf("Issue() token %q is not well-formed: %v", issued.Token, err)
	}
	if issued.Session.TokenHash == issued.Token {
		t.Error("raw token must not be stored")
	}

	stored, err := storage.GetSessionByHash(ctx, crypto.HashToken(issued.Token))
	if err != nil {
		t.Fatalf("session not persisted: %v", err)
	}
	if stored.ID != issued.Session.ID {
		t.Errorf("stored session id = %q, want %q", stored.ID, issued.Session.ID)
	}
}

// Requirement: a just-issued token verifies to the same user; tokens the
// manager never issued do not verify.
func TestSessionManager_Verify(t *testing.T) {
	storage := NewFakeStorage()
	sm := NewSessionManager(storage, nil)
	ctx := context.Background()

	issued, err := sm.Issue(ctx, "user-1")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	session, err := sm.Verify(ctx, issued.Token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if session.UserID != "user-1" {
		t.Errorf("Verify() user id = %q, want %q", session.UserID, "user-1")
	}

	// A well-formed token that was never issued
	if _, err := sm.Verify(ctx, "a2b31c09-6f0f-4b1a-9c3e-111111111111"); !errors.Is(err, core.ErrSessionNotFound) {
		t.Errorf("Verify(unknown) error = %v, want %v", err, core.ErrSessionNotFound)
	}

	// Malformed tokens fail before any storage lookup
	if _, err := sm.Verify(ctx, "not-a-token"); !errors.Is(err, core.ErrInvalidToken) {
		t.Errorf("Verify(malformed) error = %v, want %v", err, core.ErrInvalidToken)
	}
	if _, err := sm.Verify(ctx, ""); !errors.Is(err, core.ErrInvalidToken) {
		t.Errorf("Verify(empty) error = %v, want %v", err, core.ErrInvalidToken)
	}
}

// Requirement: VerifyHeader enforces the "Bearer <token>" shape; the token
// starts at the 8th character.
func TestSessionManager_VerifyHeader(t *testing.T) {
	storage := NewFakeStorage()
	sm := NewSessionManager(storage, nil)
	ctx := context.Background()

	issued, err := sm.Issue(ctx, "user-1")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	tests := []struct {
		name    string
		header  string
		wantErr error
	}{
		{
			name:   "valid bearer header",
			header: "Bearer " + issued.Token,
		},
		{
			name:    "missing header",
			header:  "",
			wantErr: core.ErrMissingAuthHeader,
		},
		{
			name:    "wrong scheme",
			header:  "Basic " + issued.Token,
			wantErr: core.ErrInvalidAuthHeader,
		},
		{
			name:    "prefix only",
			header:  "Bearer ",
			wantErr: core.ErrInvalidAuthHeader,
		},
		{
			name:    "header shorter than prefix",
			header:  "Bear",
			wantErr: core.ErrInvalidAuthHeader,
		},
		{
			name:    "missing space after scheme",
			header:  "Bearer" + issued.Token,
			wantErr: core.ErrInvalidAuthHeader,
		},
		{
			name:    "token is not well-formed",
			header:  "Bearer not-a-token",
			wantErr: core.ErrInvalidToken,
		},
		{
			name:    "unknown token",
			header:  "Bearer a2b31c09-6f0f-4b1a-9c3e-111111111111",
			wantErr: core.ErrSessionNotFound,
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			session, err := sm.VerifyHeader(ctx, test.header)

			if test.wantErr != nil {
				if !errors.Is(err, test.wantErr) {
					t.Fatalf("VerifyHeader() error = %v, want %v", err, test.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("VerifyHeader() error = %v", err)
			}
			if session.UserID != "user-1" {
				t.Errorf("VerifyHeader() user id = %q, want %q", session.UserID, "user-1")
			}
		})
	}
}

// Requirement: with a cache, verification is served from it after the first
// resolution; without one, every Verify hits storage.
func TestSessionManager_VerifyCaching(t *testing.T) {
	t.Run("cache hit skips storage", func(t *testing.T) {
		storage := NewFakeStorage()
		cache := NewFakeCache()
		sm := NewSessionManager(storage, cache)
		ctx := context.Background()

		issued, err := sm.Issue(ctx, "user-1")
		if err != nil {
			t.Fatalf("Issue() error = %v", err)
		}

		// Issue warms the cache; break storage to prove Verify stays local
		storage.SetGetError(errors.New("storage down"))

		session, err := sm.Verify(ctx, issued.Token)
		if err != nil {
			t.Fatalf("Verify() error = %v", err)
		}
		if session.UserID != "user-1" {
			t.Errorf("Verify() user id = %q, want %q", session.UserID, "user-1")
		}
		if hits, misses := cache.Counters(); hits != 1 || misses != 0 {
			t.Errorf("cache counters = (%d hits, %d misses), want (1, 0)", hits, misses)
		}
	})

	t.Run("cache miss falls through and refills", func(t *testing.T) {
		storage := NewFakeStorage()
		cache := NewFakeCache()
		sm := NewSessionManager(storage, cache)
		ctx := context.Background()

		issued, err := sm.Issue(ctx, "user-1")
		if err != nil {
			t.Fatalf("Issue() error = %v", err)
		}

		if err := cache.Clear(); err != nil {
			t.Fatalf("Clear() error = %v", err)
		}

		if _, err := sm.Verify(ctx, issued.Token); err != nil {
			t.Fatalf("Verify() error = %v", err)
		}
		if cache.Len() != 1 {
			t.Errorf("cache size = %d, want 1 after refill", cache.Len())
		}
		if hits, misses := cache.Counters(); hits != 0 || misses != 1 {
			t.Errorf("cache counters = (%d hits, %d misses), want (0, 1)", hits, misses)
		}
	})

	t.Run("disabled cache always hits storage", func(t *testing.T) {
		storage := NewFakeStorage()
		sm := NewSessionManager(storage, nil)
		ctx := context.Background()

		issued, err := sm.Issue(ctx, "user-1")
		if err != nil {
			t.Fatalf("Issue() error = %v", err)
		}

		storage.SetGetError(errors.New("storage down"))
		if _, err := sm.Verify(ctx, issued.Token); err == nil {
			t.Fatal("Verify() should fail when storage is down and no cache exists")
		}
	})
}

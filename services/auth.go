package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/looplan/looplan/core"
	"github.com/looplan/looplan/pkg/crypto"
)

// AuthService owns the credential store flows: it turns a name and
// password into a persisted user and a minted session.
type AuthService struct {
	users     core.UserStorage
	passwords crypto.PasswordHandler
	sessions  *SessionManager
}

func NewAuthService(users core.UserStorage, passwords crypto.PasswordHandler, sessions *SessionManager) *AuthService {
	return &AuthService{
		users:     users,
		passwords: passwords,
		sessions:  sessions,
	}
}

// SignUp registers a new user with name and password and issues their
// first session. Duplicate names are rejected with ErrUserExists.
func (s *AuthService) SignUp(ctx context.Context, input core.SignUpInput) (*core.AuthResult, error) {
	if input.Name == "" {
		return nil, core.ErrNameRequired
	}
	if input.Password == "" {
		return nil, core.ErrPasswordRequired
	}

	// Step 1: Check if the name is taken
	existing, err := s.users.GetUserByName(ctx, input.Name)
	if err != nil && !errors.Is(err, core.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, core.ErrUserExists
	}

	// Step 2: Hash the password
	hashedPassword, err := s.passwords.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	// Step 3: Create the user. Storage enforces name uniqueness too, which
	// covers two signups racing past the check above.
	user := &core.User{
		Name:         input.Name,
		PasswordHash: hashedPassword,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, core.ErrUserExists) {
			return nil, core.ErrUserExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	// Step 4: Create a session for the new user
	issued, err := s.sessions.Issue(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &core.AuthResult{
		SessionID: issued.Session.ID,
		UserID:    user.ID,
		Token:     issued.Token,
	}, nil
}

// Profile returns the account behind an authenticated session. The
// password hash rides along internally but is never serialized.
func (s *AuthService) Profile(ctx context.Context, userID string) (*core.User, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, core.ErrUserNotFound) {
			return nil, core.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return user, nil
}

// SignIn authenticates a user with name and password. An unknown name and
// a wrong password are indistinguishable to the caller: both are
// ErrInvalidCredentials, and no session is ever constructed on failure.
func (s *AuthService) SignIn(ctx context.Context, input core.SignInInput) (*core.AuthResult, error) {
	if input.Name == "" {
		return nil, core.ErrNameRequired
	}
	if input.Password == "" {
		return nil, core.ErrPasswordRequired
	}

	// Step 1: Find the user by name
	user, err := s.users.GetUserByName(ctx, input.Name)
	if err != nil {
		if errors.Is(err, core.ErrUserNotFound) {
			return nil, core.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	// Step 2: Verify the password
	valid, err := s.passwords.Verify(input.Password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if !valid {
		return nil, core.ErrInvalidCredentials
	}

	// Step 3: Create a new session
	issued, err := s.sessions.Issue(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &core.AuthResult{
		SessionID: issued.Session.ID,
		UserID:    user.ID,
		Token:     issued.Token,
	}, nil
}

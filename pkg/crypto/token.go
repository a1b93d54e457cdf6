package crypto

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"

	"github.com/google/uuid"
)

type TokenPair struct {
	Token string // value returned to client
	Hash  string // value in storage
}

// GenerateToken mints a fresh session token: a 128-bit random value in its
// canonical UUID text form. The returned pair carries the raw token for
// the client and the hash that goes to storage.
func GenerateToken() (*TokenPair, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return nil, err
	}

	token := id.String()

	return &TokenPair{
		Token: token,
		Hash:  HashToken(token),
	}, nil
}

// ParseToken reports whether s is a well-formed session token.
func ParseToken(s string) error {
	_, err := uuid.Parse(s)
	return err
}

func VerifyToken(token, storedHash string) (bool, error) {
	if token == "" || storedHash == "" {
		return false, errors.New("token and hash cannot be empty")
	}

	tokenHash := HashToken(token)

	// Constant-time comparison to prevent timing attacks
	return subtle.ConstantTimeCompare([]byte(tokenHash), []byte(storedHash)) == 1, nil
}

func HashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}

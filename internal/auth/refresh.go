package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// RefreshToken is an opaque long-lived token handed to the client after
// login.  Only its SHA-256 hash is persisted, so a leaked database row
// cannot be replayed as a session.
type RefreshToken struct {
	Raw       string
	ExpiresAt time.Time
}

// NewRefreshToken mints a random refresh token valid for ttl.
func NewRefreshToken(ttl time.Duration) (RefreshToken, error) {
	buf := make([]byte, 48)
	if _, err := rand.Read(buf); err != nil {
		return RefreshToken{}, err
	}
	return RefreshToken{
		Raw:       hex.EncodeToString(buf),
		ExpiresAt: time.Now().UTC().Add(ttl),
	}, nil
}

// HashRefreshToken returns the hex SHA-256 digest of a raw refresh token,
// the form under which it is stored and looked up.
func HashRefreshToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

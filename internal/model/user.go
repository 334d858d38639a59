package model

import "time"

// User mirrors the `users` table.  The password hash is bcrypt output and
// never leaves the service; handlers expose dedicated response types.
type User struct {
	ID           uint64    // users.id
	Username     string    // users.username (unique)
	Email        string    // users.email (unique)
	FullName     string    // users.full_name
	PasswordHash string    // users.password_hash
	Role         string    // users.role (MANAGER or DEVELOPER)
	IsActive     bool      // users.is_active
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}

// RefreshToken models a row in `refresh_tokens`.  Only the SHA-256 hash
// of the token is stored; RevokedAt is null while the token is live.
type RefreshToken struct {
	ID        uint64
	UserID    uint64
	TokenHash string
	ExpiresAt time.Time
	RevokedAt *time.Time
	CreatedAt time.Time
}

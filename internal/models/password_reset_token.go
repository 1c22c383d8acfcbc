package models

import "time"

// PasswordResetToken stores only the sha256 hash of the token handed to
// the user. A token is spent once used_at is set.
type PasswordResetToken struct {
	ID        string
	UserID    string
	TokenHash string
	ExpiresAt time.Time
	UsedAt    *time.Time
	CreatedAt time.Time
}

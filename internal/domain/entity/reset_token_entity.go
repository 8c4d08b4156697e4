package entity

import "time"

// ResetToken is a single-use password recovery credential.
type ResetToken struct {
	UserID    string
	Token     string
	ExpiresAt time.Time
	Used      bool
	CreatedAt time.Time
}

// Usable reports whether the token may still be redeemed at the given instant.
func (t *ResetToken) Usable(now time.Time) bool {
	return t != nil && !t.Used && now.Before(t.ExpiresAt)
}

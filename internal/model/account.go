package model

import "time"

// AccountID uniquely identifies an account across the system.
// The zero value means "not signed in" (a guest round).
type AccountID string

// IsGuest reports whether the ID denotes an unauthenticated player.
func (id AccountID) IsGuest() bool {
	return id == ""
}

// Account represents a registered player account
type Account struct {
	ID         AccountID
	Username   string // login username, unique, case-sensitive (immutable)
	SecretHash string // bcrypt hash
	CreatedAt  time.Time
}

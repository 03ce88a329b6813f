package domain

import "time"

// Identity is the caller view extracted from a validated bearer token.
// UserID carries the persisted identifier (the token subject), which is what
// ownership checks compare against.
type Identity struct {
	UserID    string
	Username  string
	TokenID   string
	ExpiresAt time.Time
}

// Authenticated reports whether the identity carries a subject.
func (i Identity) Authenticated() bool {
	return i.UserID != ""
}

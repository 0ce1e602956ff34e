package models

import "time"

// RefreshToken is a server-stored opaque token bound to an identity.
type RefreshToken struct {
	ID        string
	Identity  string
	Token     string
	Expires   time.Time
	CreatedAt time.Time
}

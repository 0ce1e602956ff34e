// Package models defines the records kept in the CLI keystore.
package models

import (
	"time"

	"github.com/dmitrijs2005/linkify/internal/address"
	"github.com/dmitrijs2005/linkify/internal/cryptox"
)

// Key is a named wallet key. The private key is only held sealed.
type Key struct {
	Name      string
	Pubkey    address.Pubkey
	Sealed    cryptox.Sealed
	CreatedAt time.Time
}

// Session is the token pair returned by the last login with a key.
type Session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

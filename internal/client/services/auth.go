// Package services holds the CLI's application services. They combine the
// local keystore with the server client: unlocking keys, keeping login
// sessions and signing transactions.
package services

import (
	"context"
	"crypto/ed25519"

	"github.com/dmitrijs2005/linkify/internal/address"
	"github.com/dmitrijs2005/linkify/internal/client/client"
	"github.com/dmitrijs2005/linkify/internal/client/keystore"
	"github.com/dmitrijs2005/linkify/internal/client/models"
	"github.com/dmitrijs2005/linkify/internal/common"
)

// Keys is the part of the keystore the services use.
type Keys interface {
	Get(ctx context.Context, name string) (*models.Key, error)
	Unlock(ctx context.Context, name string, passphrase []byte) (ed25519.PrivateKey, error)
	SaveSession(ctx context.Context, name string, s models.Session) error
	Session(ctx context.Context, name string) (*models.Session, error)
	DeleteSession(ctx context.Context, name string) error
}

var _ Keys = (*keystore.Keystore)(nil)

// AuthService manages server sessions per key.
type AuthService struct {
	keys   Keys
	client client.Client
}

func NewAuthService(keys Keys, c client.Client) *AuthService {
	return &AuthService{keys: keys, client: c}
}

// Login unlocks the key, proves possession to the server and stores the
// session.
func (s *AuthService) Login(ctx context.Context, name string, passphrase []byte) (address.Pubkey, error) {
	priv, err := s.keys.Unlock(ctx, name, passphrase)
	if err != nil {
		return address.Zero, err
	}
	defer common.WipeByteArray(priv)

	session, err := s.client.Login(ctx, priv)
	if err != nil {
		return address.Zero, err
	}
	if err := s.keys.SaveSession(ctx, name, session); err != nil {
		return address.Zero, err
	}
	return address.FromBytes(priv.Public().(ed25519.PublicKey))
}

// Resume loads the stored session of name into the client. Rotated tokens
// are written back to the keystore.
func (s *AuthService) Resume(ctx context.Context, name string) error {
	session, err := s.keys.Session(ctx, name)
	if err != nil {
		return err
	}
	s.client.SetSession(*session)
	s.client.OnRefresh(func(rotated models.Session) {
		_ = s.keys.SaveSession(context.WithoutCancel(ctx), name, rotated)
	})
	return nil
}

func (s *AuthService) Logout(ctx context.Context, name string) error {
	return s.keys.DeleteSession(ctx, name)
}

func (s *AuthService) Ping(ctx context.Context) error {
	return s.client.Ping(ctx)
}

// Package keystore keeps the CLI's wallet keys and login sessions in a local
// SQLite database.
//
// Private keys never touch disk in clear. Each is sealed with cryptox under a
// passphrase, with its public key as associated data, so a row cannot be
// swapped onto another public key without failing to open.
package keystore

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/linkify/internal/address"
	"github.com/dmitrijs2005/linkify/internal/client/models"
	"github.com/dmitrijs2005/linkify/internal/client/repositories/keys"
	"github.com/dmitrijs2005/linkify/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/linkify/internal/common"
	"github.com/dmitrijs2005/linkify/internal/cryptox"
)

const sessionPrefix = "session:"

var (
	ErrWrongPassphrase = errors.New("wrong passphrase")
	ErrNoSession       = errors.New("not logged in")
	ErrInvalidName     = errors.New("invalid key name")
)

type Keystore struct {
	db       *sql.DB
	keys     keys.Repository
	metadata metadata.Repository
	now      func() time.Time
}

// Open opens or creates the keystore at dsn, a file path or ":memory:".
func Open(ctx context.Context, dsn string) (*Keystore, error) {
	db, err := openDatabase(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("open keystore: %w", err)
	}
	return &Keystore{
		db:       db,
		keys:     keys.NewSQLiteRepository(db),
		metadata: metadata.NewSQLiteRepository(db),
		now:      time.Now,
	}, nil
}

func (k *Keystore) Close() error {
	return k.db.Close()
}

// Create generates a fresh ed25519 key and stores it under name.
func (k *Keystore) Create(ctx context.Context, name string, passphrase []byte) (*models.Key, error) {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, err
	}
	defer common.WipeByteArray(priv)
	return k.Add(ctx, name, priv, passphrase)
}

// Add stores an existing private key under name.
func (k *Keystore) Add(ctx context.Context, name string, priv ed25519.PrivateKey, passphrase []byte) (*models.Key, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	pub, err := address.FromBytes(priv.Public().(ed25519.PublicKey))
	if err != nil {
		return nil, err
	}

	sealed, err := cryptox.Seal(passphrase, priv.Seed(), pub[:])
	if err != nil {
		return nil, err
	}
	key := &models.Key{
		Name:      name,
		Pubkey:    pub,
		Sealed:    *sealed,
		CreatedAt: k.now().UTC().Truncate(time.Millisecond),
	}
	if err := k.keys.Insert(ctx, key); err != nil {
		return nil, err
	}
	return key, nil
}

func (k *Keystore) Get(ctx context.Context, name string) (*models.Key, error) {
	return k.keys.Get(ctx, name)
}

func (k *Keystore) List(ctx context.Context) ([]*models.Key, error) {
	return k.keys.List(ctx)
}

// Unlock opens the named key with passphrase.
func (k *Keystore) Unlock(ctx context.Context, name string, passphrase []byte) (ed25519.PrivateKey, error) {
	key, err := k.keys.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	seed, err := cryptox.Open(passphrase, &key.Sealed, key.Pubkey[:])
	if errors.Is(err, cryptox.ErrDecrypt) {
		return nil, fmt.Errorf("%w for key %s", ErrWrongPassphrase, name)
	}
	if err != nil {
		return nil, err
	}
	defer common.WipeByteArray(seed)

	if len(seed) != ed25519.SeedSize {
		return nil, fmt.Errorf("key %s: sealed seed has %d bytes", name, len(seed))
	}
	return ed25519.NewKeyFromSeed(seed), nil
}

// Delete removes the key and any session it has.
func (k *Keystore) Delete(ctx context.Context, name string) error {
	if err := k.keys.Delete(ctx, name); err != nil {
		return err
	}
	return k.metadata.Delete(ctx, sessionPrefix+name)
}

func (k *Keystore) SaveSession(ctx context.Context, name string, s models.Session) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return k.metadata.Set(ctx, sessionPrefix+name, raw)
}

// Session returns the stored tokens for name, or ErrNoSession.
func (k *Keystore) Session(ctx context.Context, name string) (*models.Session, error) {
	raw, err := k.metadata.Get(ctx, sessionPrefix+name)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, fmt.Errorf("%w with key %s", ErrNoSession, name)
	}
	var s models.Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("session for %s: %w", name, err)
	}
	return &s, nil
}

func (k *Keystore) DeleteSession(ctx context.Context, name string) error {
	return k.metadata.Delete(ctx, sessionPrefix+name)
}

// LoggedIn reports which key names have a stored session.
func (k *Keystore) LoggedIn(ctx context.Context) (map[string]bool, error) {
	sessions, err := k.metadata.List(ctx, sessionPrefix)
	if err != nil {
		return nil, err
	}
	result := make(map[string]bool, len(sessions))
	for key := range sessions {
		result[strings.TrimPrefix(key, sessionPrefix)] = true
	}
	return result, nil
}

// Logout drops every stored session.
func (k *Keystore) Logout(ctx context.Context) error {
	sessions, err := k.metadata.List(ctx, sessionPrefix)
	if err != nil {
		return err
	}
	for key := range sessions {
		if err := k.metadata.Delete(ctx, key); err != nil {
			return err
		}
	}
	return nil
}

func validateName(name string) error {
	if name == "" || len(name) > 64 || strings.ContainsAny(name, " \t\n:/") {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

package keys

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/linkify/internal/client/models"
)

var (
	ErrKeyExists   = errors.New("key already exists")
	ErrKeyNotFound = errors.New("key not found")
)

// Repository stores named keys.
type Repository interface {
	// Insert fails with ErrKeyExists when the name or public key is taken.
	Insert(ctx context.Context, key *models.Key) error
	// Get fails with ErrKeyNotFound.
	Get(ctx context.Context, name string) (*models.Key, error)
	// List returns every key ordered by name.
	List(ctx context.Context) ([]*models.Key, error)
	Delete(ctx context.Context, name string) error
}

package refreshtokens

import (
	"context"
	"time"

	"github.com/dmitrijs2005/linkify/internal/server/models"
)

type Repository interface {
	// Create stores token for identity, expiring at now+validity.
	Create(ctx context.Context, identity string, token string, validity time.Duration) error

	// Find returns the token row or common.ErrorNotFound.
	Find(ctx context.Context, token string) (*models.RefreshToken, error)

	// Delete removes token, or returns common.ErrorNotFound when it is
	// already gone.
	Delete(ctx context.Context, token string) error

	// DeleteExpired removes every token that expired before now.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

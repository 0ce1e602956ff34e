// Package transactions stores receipts of submitted transactions.
package transactions

import (
	"context"

	"github.com/dmitrijs2005/linkify/internal/server/models"
)

type Repository interface {
	// Create stores r. A receipt with the same signature already stored
	// yields common.ErrDuplicateTransaction.
	Create(ctx context.Context, r *models.Receipt) error
	// Get returns the receipt for signature or common.ErrorNotFound.
	Get(ctx context.Context, signature string) (*models.Receipt, error)
	// ListBySigner returns the newest receipts of signer first.
	ListBySigner(ctx context.Context, signer string, limit int) ([]*models.Receipt, error)
}

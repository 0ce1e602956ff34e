// Package repomanager hands out repositories bound to one unit of work, over
// PostgreSQL or over process memory.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/linkify/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/linkify/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/linkify/internal/server/repositories/transactions"
)

// Repositories are bound to the same transaction.
type Repositories interface {
	Accounts() accounts.Repository
	// AccountReader reads accounts without locking them. Writes through it
	// fail inside a read-only transaction.
	AccountReader() accounts.Repository
	Transactions() transactions.Repository
	RefreshTokens() refreshtokens.Repository
}

type RepositoryManager interface {
	RunMigrations(ctx context.Context) error
	// WithTx runs fn in one transaction: everything fn writes through repos
	// commits when it returns nil and is discarded otherwise.
	WithTx(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context, repos Repositories) error) error
	Close() error
}

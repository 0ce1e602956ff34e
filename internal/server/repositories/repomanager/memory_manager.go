package repomanager

import (
	"context"
	"database/sql"
	"sync"

	"github.com/dmitrijs2005/linkify/internal/ledger"
	"github.com/dmitrijs2005/linkify/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/linkify/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/linkify/internal/server/repositories/transactions"
)

// MemoryRepositoryManager keeps everything in process memory. Units of work
// run one at a time, which trivially makes them serializable.
type MemoryRepositoryManager struct {
	mu       sync.Mutex
	ledger   *ledger.Memory
	receipts *transactions.MemoryStore
	tokens   *refreshtokens.MemoryStore
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{
		ledger:   ledger.NewMemory(),
		receipts: transactions.NewMemoryStore(),
		tokens:   refreshtokens.NewMemoryStore(),
	}
}

type memoryRepositories struct {
	accounts ledger.Store
	receipts *transactions.MemoryRepository
	tokens   *refreshtokens.MemoryRepository
}

func (r *memoryRepositories) Accounts() accounts.Repository           { return r.accounts }
func (r *memoryRepositories) AccountReader() accounts.Repository      { return r.accounts }
func (r *memoryRepositories) Transactions() transactions.Repository   { return r.receipts }
func (r *memoryRepositories) RefreshTokens() refreshtokens.Repository { return r.tokens }

// WithTx ignores opts.
func (m *MemoryRepositoryManager) WithTx(ctx context.Context, _ *sql.TxOptions, fn func(ctx context.Context, repos Repositories) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	repos := &memoryRepositories{receipts: m.receipts.Begin(), tokens: m.tokens.Begin()}
	err := m.ledger.Run(ctx, func(ctx context.Context, store ledger.Store) error {
		repos.accounts = store
		return fn(ctx, repos)
	})
	if err != nil {
		return err
	}
	repos.receipts.Commit()
	repos.tokens.Commit()
	return nil
}

func (m *MemoryRepositoryManager) RunMigrations(context.Context) error { return nil }

func (m *MemoryRepositoryManager) Close() error { return nil }

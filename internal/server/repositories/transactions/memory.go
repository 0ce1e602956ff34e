package transactions

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/dmitrijs2005/linkify/internal/common"
	"github.com/dmitrijs2005/linkify/internal/server/models"
	"github.com/google/uuid"
)

// MemoryStore holds committed receipts. It is not synchronized; the owning
// repository manager serializes access.
type MemoryStore struct {
	receipts map[string]*models.Receipt
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{receipts: make(map[string]*models.Receipt)}
}

// Begin returns a repository whose writes stay staged until Commit.
func (s *MemoryStore) Begin() *MemoryRepository {
	return &MemoryRepository{store: s, staged: make(map[string]*models.Receipt)}
}

type MemoryRepository struct {
	store  *MemoryStore
	staged map[string]*models.Receipt
}

func (r *MemoryRepository) lookup(signature string) (*models.Receipt, bool) {
	if rec, ok := r.staged[signature]; ok {
		return rec, true
	}
	rec, ok := r.store.receipts[signature]
	return rec, ok
}

func (r *MemoryRepository) Create(_ context.Context, rec *models.Receipt) error {
	if _, ok := r.lookup(rec.Signature); ok {
		return fmt.Errorf("%w: %s", common.ErrDuplicateTransaction, rec.Signature)
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	rec.CreatedAt = time.Now().UTC()
	c := *rec
	r.staged[rec.Signature] = &c
	return nil
}

func (r *MemoryRepository) Get(_ context.Context, signature string) (*models.Receipt, error) {
	rec, ok := r.lookup(signature)
	if !ok {
		return nil, common.ErrorNotFound
	}
	c := *rec
	return &c, nil
}

func (r *MemoryRepository) ListBySigner(_ context.Context, signer string, limit int) ([]*models.Receipt, error) {
	var out []*models.Receipt
	seen := make(map[string]bool)
	for _, m := range []map[string]*models.Receipt{r.staged, r.store.receipts} {
		for sig, rec := range m {
			if rec.Signer != signer || seen[sig] {
				continue
			}
			seen[sig] = true
			c := *rec
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Commit publishes the staged receipts.
func (r *MemoryRepository) Commit() {
	for sig, rec := range r.staged {
		r.store.receipts[sig] = rec
	}
	r.staged = make(map[string]*models.Receipt)
}

package refreshtokens

import (
	"context"
	"time"

	"github.com/dmitrijs2005/linkify/internal/common"
	"github.com/dmitrijs2005/linkify/internal/server/models"
	"github.com/google/uuid"
)

// MemoryStore holds committed tokens. Access is serialized by the owner.
type MemoryStore struct {
	tokens map[string]*models.RefreshToken
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tokens: make(map[string]*models.RefreshToken)}
}

// Begin returns a repository whose changes apply on Commit.
func (s *MemoryStore) Begin() *MemoryRepository {
	return &MemoryRepository{
		store:   s,
		created: make(map[string]*models.RefreshToken),
		deleted: make(map[string]bool),
	}
}

type MemoryRepository struct {
	store   *MemoryStore
	created map[string]*models.RefreshToken
	deleted map[string]bool
}

func (r *MemoryRepository) Create(_ context.Context, identity string, token string, validity time.Duration) error {
	now := time.Now()
	r.created[token] = &models.RefreshToken{
		ID:        uuid.NewString(),
		Identity:  identity,
		Token:     token,
		Expires:   now.Add(validity),
		CreatedAt: now,
	}
	delete(r.deleted, token)
	return nil
}

func (r *MemoryRepository) Find(_ context.Context, token string) (*models.RefreshToken, error) {
	if r.deleted[token] {
		return nil, common.ErrorNotFound
	}
	rt, ok := r.created[token]
	if !ok {
		rt, ok = r.store.tokens[token]
	}
	if !ok {
		return nil, common.ErrorNotFound
	}
	c := *rt
	return &c, nil
}

func (r *MemoryRepository) Delete(_ context.Context, token string) error {
	_, created := r.created[token]
	_, stored := r.store.tokens[token]
	if !created && (!stored || r.deleted[token]) {
		return common.ErrorNotFound
	}
	delete(r.created, token)
	r.deleted[token] = true
	return nil
}

func (r *MemoryRepository) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	var n int64
	for token, rt := range r.store.tokens {
		if rt.Expires.Before(now) && !r.deleted[token] {
			r.deleted[token] = true
			n++
		}
	}
	return n, nil
}

func (r *MemoryRepository) Commit() {
	for token := range r.deleted {
		delete(r.store.tokens, token)
	}
	for token, rt := range r.created {
		r.store.tokens[token] = rt
	}
	r.created = make(map[string]*models.RefreshToken)
	r.deleted = make(map[string]bool)
}

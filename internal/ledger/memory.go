package ledger

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/dmitrijs2005/linkify/internal/address"
	"github.com/dmitrijs2005/linkify/internal/common"
)

// Memory is an Executor holding accounts in a map. Operations are serialized
// by a mutex and staged in an overlay that is merged only on success.
type Memory struct {
	mu       sync.Mutex
	accounts map[address.Pubkey]*Account
}

func NewMemory() *Memory {
	return &Memory{accounts: make(map[address.Pubkey]*Account)}
}

// Execute runs fn against a staging view and commits it if fn returns nil.
func (m *Memory) Execute(ctx context.Context, fn func(ctx context.Context, bank Bank) error) error {
	return m.Run(ctx, func(ctx context.Context, store Store) error {
		return fn(ctx, store)
	})
}

// Run is Execute with a view that can also list accounts.
func (m *Memory) Run(ctx context.Context, fn func(ctx context.Context, store Store) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	view := newMemoryView(m.accounts)
	if err := fn(ctx, view); err != nil {
		return err
	}
	view.commit(m.accounts)
	return nil
}

// List returns a copy of every account ordered by address.
func (m *Memory) List(ctx context.Context) ([]*Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return sortedClones(m.accounts, nil, nil), nil
}

func sortedClones(base, writes map[address.Pubkey]*Account, deleted map[address.Pubkey]bool) []*Account {
	out := make([]*Account, 0, len(base)+len(writes))
	for addr, acc := range base {
		if deleted[addr] {
			continue
		}
		if _, ok := writes[addr]; ok {
			continue
		}
		out = append(out, acc.Clone())
	}
	for _, acc := range writes {
		out = append(out, acc.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		return bytes.Compare(out[i].Address[:], out[j].Address[:]) < 0
	})
	return out
}

type memoryView struct {
	base    map[address.Pubkey]*Account
	writes  map[address.Pubkey]*Account
	deleted map[address.Pubkey]bool
}

func newMemoryView(base map[address.Pubkey]*Account) *memoryView {
	return &memoryView{
		base:    base,
		writes:  make(map[address.Pubkey]*Account),
		deleted: make(map[address.Pubkey]bool),
	}
}

func (v *memoryView) lookup(addr address.Pubkey) (*Account, bool) {
	if v.deleted[addr] {
		return nil, false
	}
	if acc, ok := v.writes[addr]; ok {
		return acc, true
	}
	acc, ok := v.base[addr]
	return acc, ok
}

func (v *memoryView) Get(_ context.Context, addr address.Pubkey) (*Account, error) {
	acc, ok := v.lookup(addr)
	if !ok {
		return nil, fmt.Errorf("%w: %s", common.ErrAccountNotFound, addr)
	}
	return acc.Clone(), nil
}

func (v *memoryView) Create(_ context.Context, acc *Account) error {
	if _, ok := v.lookup(acc.Address); ok {
		return fmt.Errorf("%w: %s", common.ErrAccountAlreadyExists, acc.Address)
	}
	delete(v.deleted, acc.Address)
	v.writes[acc.Address] = acc.Clone()
	return nil
}

func (v *memoryView) Update(_ context.Context, acc *Account) error {
	if _, ok := v.lookup(acc.Address); !ok {
		return fmt.Errorf("%w: %s", common.ErrAccountNotFound, acc.Address)
	}
	v.writes[acc.Address] = acc.Clone()
	return nil
}

func (v *memoryView) Delete(_ context.Context, addr address.Pubkey) error {
	if _, ok := v.lookup(addr); !ok {
		return fmt.Errorf("%w: %s", common.ErrAccountNotFound, addr)
	}
	delete(v.writes, addr)
	v.deleted[addr] = true
	return nil
}

func (v *memoryView) List(_ context.Context) ([]*Account, error) {
	return sortedClones(v.base, v.writes, v.deleted), nil
}

func (v *memoryView) commit(dst map[address.Pubkey]*Account) {
	for addr := range v.deleted {
		delete(dst, addr)
	}
	for addr, acc := range v.writes {
		dst[addr] = acc
	}
}

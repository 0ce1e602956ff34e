package keys

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/dmitrijs2005/linkify/internal/address"
	"github.com/dmitrijs2005/linkify/internal/client/models"
	"github.com/dmitrijs2005/linkify/internal/cryptox"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE keys (
    name       TEXT PRIMARY KEY,
    pubkey     TEXT NOT NULL UNIQUE,
    salt       BLOB NOT NULL,
    nonce      BLOB NOT NULL,
    ciphertext BLOB NOT NULL,
    created_at INTEGER NOT NULL
);`)
	require.NoError(t, err)
	return db
}

func newKey(name string, b byte) *models.Key {
	var pk address.Pubkey
	pk[0] = b
	return &models.Key{
		Name:      name,
		Pubkey:    pk,
		Sealed:    cryptox.Sealed{Salt: []byte{1}, Nonce: []byte{2}, Ciphertext: []byte{3, b}},
		CreatedAt: time.UnixMilli(1_700_000_000_000).UTC(),
	}
}

func TestInsertAndGet(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	want := newKey("alice", 1)
	require.NoError(t, r.Insert(ctx, want))

	got, err := r.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(want, got))
}

func TestInsert_Duplicate(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Insert(ctx, newKey("alice", 1)))
	assert.ErrorIs(t, r.Insert(ctx, newKey("alice", 2)), ErrKeyExists)
	assert.ErrorIs(t, r.Insert(ctx, newKey("bob", 1)), ErrKeyExists)
}

func TestGet_NotFound(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	_, err := r.Get(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestList_OrderedByName(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Insert(ctx, newKey("carol", 3)))
	require.NoError(t, r.Insert(ctx, newKey("alice", 1)))
	require.NoError(t, r.Insert(ctx, newKey("bob", 2)))

	list, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"alice", "bob", "carol"}, []string{list[0].Name, list[1].Name, list[2].Name})
}

func TestDelete(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Insert(ctx, newKey("alice", 1)))
	require.NoError(t, r.Delete(ctx, "alice"))

	_, err := r.Get(ctx, "alice")
	assert.ErrorIs(t, err, ErrKeyNotFound)
	assert.ErrorIs(t, r.Delete(ctx, "alice"), ErrKeyNotFound)
}

func TestDBErrorsWrapped(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()
	require.NoError(t, db.Close())

	_, err := r.Get(ctx, "k")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get key[k]")

	_, err = r.List(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list keys")

	err = r.Insert(ctx, newKey("k", 1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to insert key")
}

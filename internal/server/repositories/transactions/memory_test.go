package transactions

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/linkify/internal/common"
	"github.com/dmitrijs2005/linkify/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepository_StagesUntilCommit(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	tx := store.Begin()
	require.NoError(t, tx.Create(ctx, &models.Receipt{Signature: "a", Signer: "s"}))
	_, err := tx.Get(ctx, "a")
	require.NoError(t, err)

	_, err = store.Begin().Get(ctx, "a")
	assert.ErrorIs(t, err, common.ErrorNotFound, "uncommitted receipts are invisible")

	tx.Commit()
	rec, err := store.Begin().Get(ctx, "a")
	require.NoError(t, err)
	assert.NotEmpty(t, rec.ID)
}

func TestMemoryRepository_Duplicate(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	tx := store.Begin()
	require.NoError(t, tx.Create(ctx, &models.Receipt{Signature: "a"}))
	assert.ErrorIs(t, tx.Create(ctx, &models.Receipt{Signature: "a"}), common.ErrDuplicateTransaction)
	tx.Commit()

	assert.ErrorIs(t, store.Begin().Create(ctx, &models.Receipt{Signature: "a"}), common.ErrDuplicateTransaction)
}

func TestMemoryRepository_ListBySigner(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	tx := store.Begin()
	require.NoError(t, tx.Create(ctx, &models.Receipt{Signature: "a", Signer: "s"}))
	require.NoError(t, tx.Create(ctx, &models.Receipt{Signature: "b", Signer: "other"}))
	tx.Commit()

	tx = store.Begin()
	require.NoError(t, tx.Create(ctx, &models.Receipt{Signature: "c", Signer: "s"}))

	out, err := tx.ListBySigner(ctx, "s", 0)
	require.NoError(t, err)
	assert.Len(t, out, 2)

	out, err = tx.ListBySigner(ctx, "s", 1)
	require.NoError(t, err)
	assert.Len(t, out, 1)
}

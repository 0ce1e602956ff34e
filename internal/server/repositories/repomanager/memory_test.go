package repomanager

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/linkify/internal/common"
	"github.com/dmitrijs2005/linkify/internal/ledger"
	"github.com/dmitrijs2005/linkify/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_CommitsEveryRepository(t *testing.T) {
	m := NewMemoryRepositoryManager()
	ctx := context.Background()
	var who [32]byte
	who[0] = 1

	err := m.WithTx(ctx, nil, func(ctx context.Context, repos Repositories) error {
		if err := ledger.Credit(ctx, repos.Accounts(), who, 10); err != nil {
			return err
		}
		if err := repos.Transactions().Create(ctx, &models.Receipt{Signature: "s1"}); err != nil {
			return err
		}
		return repos.RefreshTokens().Create(ctx, "id", "tok", time.Hour)
	})
	require.NoError(t, err)

	require.NoError(t, m.WithTx(ctx, nil, func(ctx context.Context, repos Repositories) error {
		bal, err := ledger.Balance(ctx, repos.Accounts(), who)
		require.NoError(t, err)
		assert.Equal(t, uint64(10), bal)
		_, err = repos.Transactions().Get(ctx, "s1")
		require.NoError(t, err)
		_, err = repos.RefreshTokens().Find(ctx, "tok")
		return err
	}))
}

func TestMemory_DiscardsEveryRepositoryOnError(t *testing.T) {
	m := NewMemoryRepositoryManager()
	ctx := context.Background()
	var who [32]byte
	boom := errors.New("boom")

	err := m.WithTx(ctx, nil, func(ctx context.Context, repos Repositories) error {
		require.NoError(t, ledger.Credit(ctx, repos.Accounts(), who, 10))
		require.NoError(t, repos.Transactions().Create(ctx, &models.Receipt{Signature: "s1"}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	require.NoError(t, m.WithTx(ctx, nil, func(ctx context.Context, repos Repositories) error {
		accounts, err := repos.Accounts().List(ctx)
		require.NoError(t, err)
		assert.Empty(t, accounts)
		_, err = repos.Transactions().Get(ctx, "s1")
		assert.ErrorIs(t, err, common.ErrorNotFound)
		return nil
	}))
}

package ledger

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/linkify/internal/address"
	"github.com/dmitrijs2005/linkify/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func key(b byte) address.Pubkey {
	var p address.Pubkey
	p[0] = b
	return p
}

func TestMemory_CommitsOnSuccess(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	err := m.Execute(ctx, func(ctx context.Context, bank Bank) error {
		return Credit(ctx, bank, key(1), 500)
	})
	require.NoError(t, err)

	accounts, err := m.List(ctx)
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, uint64(500), accounts[0].Lamports)
}

func TestMemory_RollsBackOnError(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	require.NoError(t, m.Execute(ctx, func(ctx context.Context, bank Bank) error {
		return Credit(ctx, bank, key(1), 100)
	}))

	boom := errors.New("boom")
	err := m.Execute(ctx, func(ctx context.Context, bank Bank) error {
		require.NoError(t, Debit(ctx, bank, key(1), 60))
		require.NoError(t, Credit(ctx, bank, key(2), 60))
		require.NoError(t, bank.Create(ctx, &Account{Address: key(3), Data: []byte{1}}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	accounts, err := m.List(ctx)
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, key(1), accounts[0].Address)
	assert.Equal(t, uint64(100), accounts[0].Lamports)
}

func TestMemory_ViewSeesOwnWrites(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	err := m.Execute(ctx, func(ctx context.Context, bank Bank) error {
		require.NoError(t, bank.Create(ctx, &Account{Address: key(7), Lamports: 1}))
		err := bank.Create(ctx, &Account{Address: key(7)})
		assert.ErrorIs(t, err, common.ErrAccountAlreadyExists)

		require.NoError(t, bank.Delete(ctx, key(7)))
		_, err = bank.Get(ctx, key(7))
		assert.ErrorIs(t, err, common.ErrAccountNotFound)

		assert.ErrorIs(t, bank.Delete(ctx, key(7)), common.ErrAccountNotFound)
		assert.ErrorIs(t, bank.Update(ctx, &Account{Address: key(7)}), common.ErrAccountNotFound)
		return nil
	})
	require.NoError(t, err)

	accounts, _ := m.List(ctx)
	assert.Empty(t, accounts)
}

func TestMemory_GetReturnsCopies(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	require.NoError(t, m.Execute(ctx, func(ctx context.Context, bank Bank) error {
		return bank.Create(ctx, &Account{Address: key(1), Data: []byte{1, 2}})
	}))

	require.NoError(t, m.Execute(ctx, func(ctx context.Context, bank Bank) error {
		acc, err := bank.Get(ctx, key(1))
		require.NoError(t, err)
		acc.Data[0] = 9
		acc.Lamports = 42
		return nil
	}))

	accounts, _ := m.List(ctx)
	assert.Equal(t, []byte{1, 2}, accounts[0].Data)
	assert.Zero(t, accounts[0].Lamports)
}

func TestDebit_InsufficientFunds(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	err := m.Execute(ctx, func(ctx context.Context, bank Bank) error {
		return Debit(ctx, bank, key(1), 1)
	})
	assert.ErrorIs(t, err, common.ErrInsufficientFunds)

	err = m.Execute(ctx, func(ctx context.Context, bank Bank) error {
		if err := Credit(ctx, bank, key(1), 5); err != nil {
			return err
		}
		return Debit(ctx, bank, key(1), 6)
	})
	assert.ErrorIs(t, err, common.ErrInsufficientFunds)

	accounts, _ := m.List(ctx)
	assert.Empty(t, accounts)
}

func TestMemory_CanceledContext(t *testing.T) {
	m := NewMemory()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := m.Execute(ctx, func(ctx context.Context, bank Bank) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestMemory_RunListsStagedView(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	require.NoError(t, m.Execute(ctx, func(ctx context.Context, bank Bank) error {
		if err := Credit(ctx, bank, key(3), 3); err != nil {
			return err
		}
		return Credit(ctx, bank, key(1), 1)
	}))

	require.NoError(t, m.Run(ctx, func(ctx context.Context, store Store) error {
		require.NoError(t, store.Delete(ctx, key(3)))
		require.NoError(t, Credit(ctx, store, key(2), 2))
		require.NoError(t, Credit(ctx, store, key(1), 10))

		accounts, err := store.List(ctx)
		require.NoError(t, err)
		require.Len(t, accounts, 2)
		assert.Equal(t, key(1), accounts[0].Address)
		assert.Equal(t, uint64(11), accounts[0].Lamports)
		assert.Equal(t, key(2), accounts[1].Address)
		return nil
	}))
}

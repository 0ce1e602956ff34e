package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"testing"
	"time"

	"github.com/dmitrijs2005/linkify/internal/address"
	"github.com/dmitrijs2005/linkify/internal/common"
	"github.com/dmitrijs2005/linkify/internal/ledger"
	"github.com/dmitrijs2005/linkify/internal/logging"
	"github.com/dmitrijs2005/linkify/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/linkify/internal/transaction"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeObjectStore struct {
	key      string
	body     []byte
	metadata map[string]string
	putErr   error
}

func (f *fakeObjectStore) Put(_ context.Context, key string, body []byte, metadata map[string]string) error {
	if f.putErr != nil {
		return f.putErr
	}
	f.key, f.body, f.metadata = key, body, metadata
	return nil
}

func (f *fakeObjectStore) PresignGet(_ context.Context, key string, ttl time.Duration) (string, error) {
	return "https://storage.local/" + key + "?ttl=" + ttl.String(), nil
}

func newSnapshotEnv(t *testing.T) (*env, *SnapshotService, *fakeObjectStore, key) {
	t.Helper()
	e := newEnv(t)
	admin := newKey(t)
	cfg := testConfig()
	cfg.Admins = []string{admin.id.String()}
	store := &fakeObjectStore{}
	s, err := NewSnapshotService(e.m, store, cfg, logging.Discard())
	require.NoError(t, err)
	s.now = func() time.Time { return time.Date(2026, 5, 7, 10, 0, 0, 0, time.UTC) }
	return e, s, store, admin
}

func TestExport(t *testing.T) {
	e, s, store, admin := newSnapshotEnv(t)
	alice := newKey(t)
	e.fund(alice.id, 2*unit)
	e.fund(admin.id, unit)
	_, err := e.txs.Submit(e.ctx, transaction.NewCreateUser(alice.priv, "alice"))
	require.NoError(t, err)

	snap, err := s.Export(e.ctx, admin.id)
	require.NoError(t, err)
	assert.Equal(t, 3, snap.Accounts)
	assert.Equal(t, 3*unit, snap.TotalLamports)
	assert.Regexp(t, `^snapshots/2026/05/07/[0-9a-f-]{36}\.bin$`, snap.Key)
	assert.Equal(t, store.key, snap.Key)
	assert.Contains(t, snap.URL, snap.Key)
	assert.Equal(t, snap.CreatedAt.Add(15*time.Minute), snap.URLExpires)

	sum := sha256.Sum256(store.body)
	assert.Equal(t, hex.EncodeToString(sum[:]), snap.Checksum)
	assert.Equal(t, snap.Checksum, store.metadata["sha256"])
	assert.Equal(t, "3", store.metadata["accounts"])

	got, err := DecodeSnapshot(store.body)
	require.NoError(t, err)
	var want []*ledger.Account
	require.NoError(t, e.m.WithTx(e.ctx, nil, func(ctx context.Context, repos repomanager.Repositories) error {
		var err error
		want, err = repos.Accounts().List(ctx)
		return err
	}))
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("snapshot mismatch (-want +got):\n%s", diff)
	}
}

func TestExport_Unauthorized(t *testing.T) {
	e, s, store, _ := newSnapshotEnv(t)
	_, err := s.Export(e.ctx, newKey(t).id)
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
	assert.Empty(t, store.key)
}

func TestExport_UploadFailure(t *testing.T) {
	e, s, store, admin := newSnapshotEnv(t)
	store.putErr = errBoom
	_, err := s.Export(e.ctx, admin.id)
	assert.ErrorIs(t, err, common.ErrorInternal)
}

func TestNewSnapshotService_BadAdmin(t *testing.T) {
	cfg := testConfig()
	cfg.Admins = []string{"not base58 0OIl"}
	_, err := NewSnapshotService(nil, &fakeObjectStore{}, cfg, logging.Discard())
	assert.Error(t, err)
}

func TestDecodeSnapshot_Malformed(t *testing.T) {
	body := EncodeSnapshot([]*ledger.Account{
		{Address: address.Pubkey{1}, Lamports: 5},
		{Address: address.Pubkey{2}, Lamports: 7, Data: []byte{9, 9}},
	})

	_, err := DecodeSnapshot(body[:len(body)-1])
	assert.ErrorIs(t, err, common.ErrInvalidInput)
	_, err = DecodeSnapshot(append(body, 0))
	assert.ErrorIs(t, err, common.ErrInvalidInput)
	_, err = DecodeSnapshot(nil)
	assert.ErrorIs(t, err, common.ErrInvalidInput)

	accounts, err := DecodeSnapshot(EncodeSnapshot(nil))
	require.NoError(t, err)
	assert.Empty(t, accounts)
}

package client

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"net"
	"testing"
	"time"

	"github.com/dmitrijs2005/linkify/internal/address"
	"github.com/dmitrijs2005/linkify/internal/common"
	"github.com/dmitrijs2005/linkify/internal/linkify"
	"github.com/dmitrijs2005/linkify/internal/logging"
	"github.com/dmitrijs2005/linkify/internal/server/config"
	servergrpc "github.com/dmitrijs2005/linkify/internal/server/grpc"
	"github.com/dmitrijs2005/linkify/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/linkify/internal/server/services"
	"github.com/dmitrijs2005/linkify/internal/transaction"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/test/bufconn"
)

const unit uint64 = common.LamportsPerUnit

type nopStore struct{}

func (nopStore) Put(context.Context, string, []byte, map[string]string) error { return nil }
func (nopStore) PresignGet(_ context.Context, key string, _ time.Duration) (string, error) {
	return "https://storage.local/" + key, nil
}

func newWallet(t *testing.T) (address.Pubkey, ed25519.PrivateKey) {
	t.Helper()
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	id, err := address.FromBytes(pub)
	require.NoError(t, err)
	return id, priv
}

// startServer runs a full in-memory server over bufconn and returns a
// client factory.
func startServer(t *testing.T, admin address.Pubkey) func() *GRPCClient {
	t.Helper()
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.Admins = []string{admin.String()}

	m := repomanager.NewMemoryRepositoryManager()
	program := linkify.NewProgram(linkify.DefaultProgramID)
	log := logging.Discard()
	faucet, err := services.NewFaucetService(m, cfg, log)
	require.NoError(t, err)
	snapshots, err := services.NewSnapshotService(m, nopStore{}, cfg, log)
	require.NoError(t, err)

	srv := servergrpc.NewGRPCServer("bufnet", log, services.Services{
		Transactions: services.NewTransactionService(m, program, cfg, log),
		Queries:      services.NewQueryService(m, program),
		Auth:         services.NewAuthService(m, cfg, log),
		Faucet:       faucet,
		Snapshots:    snapshots,
	})
	lis := bufconn.Listen(1 << 20)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, lis) }()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	return func() *GRPCClient {
		c, err := NewGRPCClient("passthrough:///bufnet", 5*time.Second,
			grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }))
		require.NoError(t, err)
		t.Cleanup(func() { _ = c.Close() })
		return c
	}
}

func TestEndToEnd_ConnectionLifecycle(t *testing.T) {
	aliceID, alicePriv := newWallet(t)
	bobID, bobPriv := newWallet(t)
	dial := startServer(t, aliceID)
	ctx := context.Background()

	alice, bob := dial(), dial()
	require.NoError(t, alice.Ping(ctx))

	_, err := alice.Airdrop(ctx, unit)
	require.ErrorIs(t, err, ErrUnauthorized)

	for _, w := range []struct {
		c    *GRPCClient
		priv ed25519.PrivateKey
	}{{alice, alicePriv}, {bob, bobPriv}} {
		_, err := w.c.Login(ctx, w.priv)
		require.NoError(t, err)
		_, err = w.c.Airdrop(ctx, 2*unit)
		require.NoError(t, err)
	}

	_, err = alice.Submit(ctx, transaction.NewCreateUser(alicePriv, "alice"))
	require.NoError(t, err)
	_, err = bob.Submit(ctx, transaction.NewCreateUser(bobPriv, "bob"))
	require.NoError(t, err)

	stake := unit / 5
	request := transaction.NewRequest(alicePriv, bobID, stake)
	r, err := alice.Submit(ctx, request)
	require.NoError(t, err)
	assert.Equal(t, "ok", r.Status)

	_, err = alice.Submit(ctx, request)
	assert.ErrorIs(t, err, common.ErrDuplicateTransaction)

	conn, err := bob.ConnectionByTracker(ctx, bobID, 0)
	require.NoError(t, err)
	assert.Equal(t, string(linkify.StatePending), conn.State)
	assert.Equal(t, stake, conn.Lamports)

	connAddr, err := address.Parse(conn.Address)
	require.NoError(t, err)
	_, err = bob.Submit(ctx, transaction.NewAccept(bobPriv, aliceID, connAddr))
	require.NoError(t, err)

	page, err := bob.Connections(ctx, bobID, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), page.Total)
	list := page.Connections
	require.Len(t, list, 1)
	assert.True(t, list[0].Connected)
	assert.Equal(t, 2*stake, list[0].Lamports)

	u, err := bob.User(ctx, bobID)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), u.RequestsReceived)

	receipt, err := alice.Receipt(ctx, request.ID())
	require.NoError(t, err)
	assert.Equal(t, "request_connection", receipt.Kind)

	receipts, err := alice.Receipts(ctx, aliceID, 10)
	require.NoError(t, err)
	assert.NotEmpty(t, receipts)

	snap, err := alice.ExportSnapshot(ctx)
	require.NoError(t, err)
	assert.Contains(t, snap.Url, "https://storage.local/snapshots/")

	_, err = bob.ExportSnapshot(ctx)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestEndToEnd_ProgramErrorsMapToSentinels(t *testing.T) {
	aliceID, alicePriv := newWallet(t)
	bobID, bobPriv := newWallet(t)
	dial := startServer(t, aliceID)
	ctx := context.Background()
	c := dial()

	_, err := c.Submit(ctx, transaction.NewCreateUser(alicePriv, "alice"))
	require.NoError(t, err)

	_, err = c.Submit(ctx, transaction.NewCreateUser(alicePriv, "alice2"))
	assert.ErrorIs(t, err, common.ErrAccountAlreadyExists)

	_, err = c.Submit(ctx, transaction.NewRequest(alicePriv, bobID, unit))
	assert.ErrorIs(t, err, common.ErrAccountNotFound)

	_, err = c.Submit(ctx, transaction.NewRequest(alicePriv, aliceID, unit))
	assert.ErrorIs(t, err, common.ErrInvalidInput)

	_, err = c.Submit(ctx, transaction.NewCreateUser(bobPriv, "bob"))
	require.NoError(t, err)
	_, err = c.Submit(ctx, transaction.NewRequest(alicePriv, bobID, unit))
	assert.ErrorIs(t, err, common.ErrInsufficientFunds)

	_, err = c.User(ctx, address.Zero)
	assert.ErrorIs(t, err, common.ErrAccountNotFound)
}

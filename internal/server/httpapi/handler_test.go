package httpapi

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dmitrijs2005/linkify/internal/address"
	"github.com/dmitrijs2005/linkify/internal/common"
	"github.com/dmitrijs2005/linkify/internal/ledger"
	"github.com/dmitrijs2005/linkify/internal/linkify"
	"github.com/dmitrijs2005/linkify/internal/logging"
	pb "github.com/dmitrijs2005/linkify/internal/proto"
	"github.com/dmitrijs2005/linkify/internal/server/config"
	"github.com/dmitrijs2005/linkify/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/linkify/internal/server/services"
	"github.com/dmitrijs2005/linkify/internal/transaction"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const unit uint64 = common.LamportsPerUnit

type fixture struct {
	t       *testing.T
	srv     *httptest.Server
	program *linkify.Program
	txs     *services.TransactionService
	m       *repomanager.MemoryRepositoryManager
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	cfg := &config.Config{}
	cfg.LoadDefaults()

	m := repomanager.NewMemoryRepositoryManager()
	program := linkify.NewProgram(linkify.DefaultProgramID)
	queries := services.NewQueryService(m, program)
	s := NewServer(":0", []string{"https://explorer.example"}, queries, logging.Discard())

	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)
	return &fixture{
		t:       t,
		srv:     srv,
		program: program,
		txs:     services.NewTransactionService(m, program, cfg, logging.Discard()),
		m:       m,
	}
}

func (f *fixture) newKey() (address.Pubkey, ed25519.PrivateKey) {
	f.t.Helper()
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(f.t, err)
	id, err := address.FromBytes(pub)
	require.NoError(f.t, err)
	require.NoError(f.t, f.m.WithTx(context.Background(), nil, func(ctx context.Context, repos repomanager.Repositories) error {
		return ledger.Credit(ctx, repos.Accounts(), id, unit)
	}))
	return id, priv
}

func (f *fixture) submit(tx *transaction.Transaction) {
	f.t.Helper()
	_, err := f.txs.Submit(context.Background(), tx)
	require.NoError(f.t, err)
}

func (f *fixture) get(path string, out any) int {
	f.t.Helper()
	resp, err := http.Get(f.srv.URL + path)
	require.NoError(f.t, err)
	defer resp.Body.Close()
	assert.Equal(f.t, "application/json", resp.Header.Get("Content-Type"))
	if out != nil {
		require.NoError(f.t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestHealthz(t *testing.T) {
	f := newFixture(t)
	var body map[string]string
	assert.Equal(t, http.StatusOK, f.get("/healthz", &body))
	assert.Equal(t, "ok", body["status"])
}

func TestExplorer(t *testing.T) {
	f := newFixture(t)
	alice, alicePriv := f.newKey()
	bob, bobPriv := f.newKey()

	f.submit(transaction.NewCreateUser(alicePriv, "alice"))
	f.submit(transaction.NewCreateUser(bobPriv, "bob"))
	req := transaction.NewRequest(alicePriv, bob, unit/4)
	f.submit(req)

	var bal pb.BalanceResponse
	assert.Equal(t, http.StatusOK, f.get("/v1/balances/"+alice.String(), &bal))
	assert.Equal(t, unit-unit/4, bal.Lamports)

	var user pb.User
	assert.Equal(t, http.StatusOK, f.get("/v1/users/"+bob.String(), &user))
	assert.Equal(t, "bob", user.Name)
	assert.Equal(t, uint32(1), user.RequestsReceived)
	assert.Equal(t, f.program.UserAddress(bob).String(), user.Address)

	connAddr := f.program.ConnectionAddress(bob, 0)
	var conn pb.Connection
	assert.Equal(t, http.StatusOK, f.get("/v1/connections/"+connAddr.String(), &conn))
	assert.Equal(t, alice.String(), conn.Requester)
	assert.Equal(t, "pending", conn.State)

	var list pb.ListConnectionsResponse
	assert.Equal(t, http.StatusOK, f.get("/v1/acceptors/"+bob.String()+"/connections", &list))
	assert.Len(t, list.Connections, 1)
	assert.Equal(t, uint32(1), list.Next)
	assert.Equal(t, uint32(1), list.Total)

	var tail pb.ListConnectionsResponse
	assert.Equal(t, http.StatusOK, f.get("/v1/acceptors/"+bob.String()+"/connections?from=1&limit=10", &tail))
	assert.Empty(t, tail.Connections)
	assert.Equal(t, uint32(1), tail.Next)

	var receipt pb.Receipt
	assert.Equal(t, http.StatusOK, f.get("/v1/transactions/"+req.ID(), &receipt))
	assert.Equal(t, connAddr.String(), receipt.Account)

	var receipts pb.ListReceiptsResponse
	assert.Equal(t, http.StatusOK, f.get("/v1/signers/"+alice.String()+"/transactions?limit=1", &receipts))
	assert.Len(t, receipts.Receipts, 1)
}

func TestExplorer_Errors(t *testing.T) {
	f := newFixture(t)
	nobody, _ := f.newKey()

	var e errorResponse
	assert.Equal(t, http.StatusBadRequest, f.get("/v1/balances/not-base58-0OIl", &e))
	assert.Contains(t, e.Error, common.ErrInvalidInput.Error())

	assert.Equal(t, http.StatusNotFound, f.get("/v1/users/"+nobody.String(), &e))
	assert.Contains(t, e.Error, common.ErrAccountNotFound.Error())

	assert.Equal(t, http.StatusNotFound, f.get("/v1/transactions/unknown", &e))
	assert.Equal(t, http.StatusBadRequest, f.get("/v1/signers/"+nobody.String()+"/transactions?limit=x", &e))
	assert.Equal(t, http.StatusBadRequest, f.get("/v1/acceptors/"+nobody.String()+"/connections?from=-1", &e))
	assert.Equal(t, http.StatusBadRequest, f.get("/v1/acceptors/"+nobody.String()+"/connections?limit=abc", &e))

	// A wallet is not a connection account.
	assert.Equal(t, http.StatusUnprocessableEntity, f.get("/v1/connections/"+nobody.String(), &e))
}

func TestCORS(t *testing.T) {
	f := newFixture(t)
	req, err := http.NewRequest(http.MethodGet, f.srv.URL+"/healthz", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://explorer.example")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "https://explorer.example", resp.Header.Get("Access-Control-Allow-Origin"))
}

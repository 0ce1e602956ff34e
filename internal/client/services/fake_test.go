package services

import (
	"context"
	"crypto/ed25519"
	"testing"

	"github.com/dmitrijs2005/linkify/internal/address"
	"github.com/dmitrijs2005/linkify/internal/client/keystore"
	"github.com/dmitrijs2005/linkify/internal/client/models"
	pb "github.com/dmitrijs2005/linkify/internal/proto"
	"github.com/dmitrijs2005/linkify/internal/transaction"
	"github.com/stretchr/testify/require"
)

// fakeClient implements client.Client, recording submitted transactions.
type fakeClient struct {
	session   models.Session
	onRefresh func(models.Session)

	loginResp  models.Session
	loginErr   error
	submitted  []*transaction.Transaction
	submitErr  error
	connection *pb.Connection
	snapshot   *pb.Snapshot
	balances   map[address.Pubkey]uint64
}

func (f *fakeClient) Close() error                      { return nil }
func (f *fakeClient) SetSession(s models.Session)       { f.session = s }
func (f *fakeClient) OnRefresh(fn func(models.Session)) { f.onRefresh = fn }
func (f *fakeClient) Ping(context.Context) error        { return nil }

func (f *fakeClient) Login(_ context.Context, priv ed25519.PrivateKey) (models.Session, error) {
	if f.loginErr != nil {
		return models.Session{}, f.loginErr
	}
	f.session = f.loginResp
	return f.loginResp, nil
}

func (f *fakeClient) Submit(_ context.Context, tx *transaction.Transaction) (*pb.Receipt, error) {
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	f.submitted = append(f.submitted, tx)
	return &pb.Receipt{Signature: tx.ID(), Signer: tx.Signer.String(), Kind: tx.Instruction.Kind.String(), Status: "ok"}, nil
}

func (f *fakeClient) Receipt(_ context.Context, sig string) (*pb.Receipt, error) {
	return &pb.Receipt{Signature: sig, Status: "ok"}, nil
}

func (f *fakeClient) Receipts(_ context.Context, signer address.Pubkey, _ int32) ([]*pb.Receipt, error) {
	return []*pb.Receipt{{Signer: signer.String()}}, nil
}

func (f *fakeClient) Balance(_ context.Context, id address.Pubkey) (uint64, error) {
	return f.balances[id], nil
}

func (f *fakeClient) User(_ context.Context, id address.Pubkey) (*pb.User, error) {
	return &pb.User{Owner: id.String()}, nil
}

func (f *fakeClient) Connection(context.Context, address.Pubkey) (*pb.Connection, error) {
	return f.connection, nil
}

func (f *fakeClient) ConnectionByTracker(context.Context, address.Pubkey, uint32) (*pb.Connection, error) {
	return f.connection, nil
}

func (f *fakeClient) Connections(_ context.Context, _ address.Pubkey, from, _ uint32) (*pb.ListConnectionsResponse, error) {
	return &pb.ListConnectionsResponse{Connections: []*pb.Connection{f.connection}, Next: from + 1, Total: from + 1}, nil
}

func (f *fakeClient) Airdrop(_ context.Context, lamports uint64) (*pb.Receipt, error) {
	return &pb.Receipt{Kind: "airdrop", Status: "ok"}, nil
}

func (f *fakeClient) ExportSnapshot(context.Context) (*pb.Snapshot, error) {
	return f.snapshot, nil
}

func openKeystore(t *testing.T) *keystore.Keystore {
	t.Helper()
	ks, err := keystore.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ks.Close() })
	return ks
}

func createKey(t *testing.T, ks *keystore.Keystore, name string) address.Pubkey {
	t.Helper()
	key, err := ks.Create(context.Background(), name, []byte("pw-"+name))
	require.NoError(t, err)
	return key.Pubkey
}

func signer(name string) Signer {
	return Signer{Name: name, Passphrase: []byte("pw-" + name)}
}

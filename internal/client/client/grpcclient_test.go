package client

import (
	"context"
	"crypto/ed25519"
	"errors"
	"testing"

	"github.com/dmitrijs2005/linkify/internal/address"
	"github.com/dmitrijs2005/linkify/internal/client/models"
	"github.com/dmitrijs2005/linkify/internal/common"
	pb "github.com/dmitrijs2005/linkify/internal/proto"
	"github.com/dmitrijs2005/linkify/internal/transaction"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
)

// fakePB records the last request of each kind and answers with presets.
type fakePB struct {
	pb.LinkifyServiceClient

	lastRefreshTokenReq *pb.RefreshTokenRequest
	lastLoginReq        *pb.LoginRequest
	lastSubmitReq       *pb.SubmitTransactionRequest
	lastConnectionReq   *pb.GetConnectionRequest

	refreshTokenResp *pb.TokenResponse
	refreshTokenErr  error
	loginResp        *pb.TokenResponse
	loginErr         error
	pingErr          error
	receipt          *pb.Receipt
	receiptErr       error
	balance          *pb.BalanceResponse
	connection       *pb.Connection
}

func (f *fakePB) RefreshToken(_ context.Context, in *pb.RefreshTokenRequest, _ ...grpc.CallOption) (*pb.TokenResponse, error) {
	f.lastRefreshTokenReq = in
	return f.refreshTokenResp, f.refreshTokenErr
}

func (f *fakePB) Ping(context.Context, *emptypb.Empty, ...grpc.CallOption) (*emptypb.Empty, error) {
	return &emptypb.Empty{}, f.pingErr
}

func (f *fakePB) Login(_ context.Context, in *pb.LoginRequest, _ ...grpc.CallOption) (*pb.TokenResponse, error) {
	f.lastLoginReq = in
	return f.loginResp, f.loginErr
}

func (f *fakePB) SubmitTransaction(_ context.Context, in *pb.SubmitTransactionRequest, _ ...grpc.CallOption) (*pb.Receipt, error) {
	f.lastSubmitReq = in
	return f.receipt, f.receiptErr
}

func (f *fakePB) GetBalance(context.Context, *pb.GetBalanceRequest, ...grpc.CallOption) (*pb.BalanceResponse, error) {
	return f.balance, nil
}

func (f *fakePB) GetConnection(_ context.Context, in *pb.GetConnectionRequest, _ ...grpc.CallOption) (*pb.Connection, error) {
	f.lastConnectionReq = in
	return f.connection, nil
}

func expiredInvoker(t *testing.T, calls *int, tokens *[]string) grpc.UnaryInvoker {
	return func(ctx context.Context, method string, req, reply interface{}, cc *grpc.ClientConn, opts ...grpc.CallOption) error {
		*calls++
		md, _ := metadata.FromOutgoingContext(ctx)
		toks := md.Get(common.AccessTokenHeaderName)
		require.Len(t, toks, 1)
		*tokens = append(*tokens, toks[0])
		if *calls == 1 {
			return status.Error(codes.Unauthenticated, common.ErrTokenExpired.Error())
		}
		return nil
	}
}

func TestInterceptor_RefreshesTokenOnExpiredAndRetries(t *testing.T) {
	f := &fakePB{refreshTokenResp: &pb.TokenResponse{AccessToken: "A2", RefreshToken: "R2"}}
	c := &GRPCClient{client: f, accessToken: "A1", refreshToken: "R1"}

	var persisted models.Session
	c.OnRefresh(func(s models.Session) { persisted = s })

	var calls int
	var tokens []string
	err := c.accessTokenInterceptor(context.Background(), pb.LinkifyService_Airdrop_FullMethodName, nil, nil, nil, expiredInvoker(t, &calls, &tokens))
	require.NoError(t, err)

	assert.Equal(t, 2, calls)
	assert.Equal(t, []string{"A1", "A2"}, tokens)
	assert.Equal(t, models.Session{AccessToken: "A2", RefreshToken: "R2"}, c.Session())
	assert.Equal(t, c.Session(), persisted)
	assert.Equal(t, "R1", f.lastRefreshTokenReq.RefreshToken)
}

func TestInterceptor_NoRefreshIfNoRefreshToken(t *testing.T) {
	f := &fakePB{}
	c := &GRPCClient{client: f, accessToken: "A1"}

	var calls int
	var tokens []string
	err := c.accessTokenInterceptor(context.Background(), "/svc/Method", nil, nil, nil, expiredInvoker(t, &calls, &tokens))
	require.Error(t, err)
	assert.Nil(t, f.lastRefreshTokenReq)
}

func TestInterceptor_RefreshFailureIsReturned(t *testing.T) {
	f := &fakePB{refreshTokenErr: status.Error(codes.Unauthenticated, common.ErrRefreshTokenExpired.Error())}
	c := &GRPCClient{client: f, accessToken: "A1", refreshToken: "R1"}

	var calls int
	var tokens []string
	err := c.accessTokenInterceptor(context.Background(), "/svc/Method", nil, nil, nil, expiredInvoker(t, &calls, &tokens))
	require.Error(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, "R1", c.Session().RefreshToken)
}

func TestInterceptor_NoTokenNoHeader(t *testing.T) {
	c := &GRPCClient{}
	invoker := func(ctx context.Context, method string, req, reply interface{}, cc *grpc.ClientConn, opts ...grpc.CallOption) error {
		md, _ := metadata.FromOutgoingContext(ctx)
		assert.Empty(t, md.Get(common.AccessTokenHeaderName))
		return nil
	}
	require.NoError(t, c.accessTokenInterceptor(context.Background(), "/svc/Method", nil, nil, nil, invoker))
}

func TestInterceptor_OtherErrorsPassThrough(t *testing.T) {
	c := &GRPCClient{accessToken: "X", refreshToken: "R"}
	for _, e := range []error{
		status.Error(codes.Internal, "boom"),
		status.Error(codes.Unauthenticated, "some other reason"),
	} {
		invoker := func(context.Context, string, interface{}, interface{}, *grpc.ClientConn, ...grpc.CallOption) error {
			return e
		}
		assert.Equal(t, e, c.accessTokenInterceptor(context.Background(), "/svc/Method", nil, nil, nil, invoker))
	}
}

func TestMapError(t *testing.T) {
	c := &GRPCClient{}

	err := c.mapError(status.Error(codes.FailedPrecondition, common.ErrInsufficientFunds.Error()+": need 5, have 1"))
	assert.ErrorIs(t, err, common.ErrInsufficientFunds)
	assert.Equal(t, "insufficient funds: need 5, have 1", err.Error())

	assert.ErrorIs(t, c.mapError(status.Error(codes.AlreadyExists, common.ErrDuplicateTransaction.Error())), common.ErrDuplicateTransaction)
	assert.ErrorIs(t, c.mapError(status.Error(codes.Unauthenticated, "unauthorized")), ErrUnauthorized)
	assert.ErrorIs(t, c.mapError(status.Error(codes.PermissionDenied, "x")), ErrUnauthorized)
	assert.ErrorIs(t, c.mapError(status.Error(codes.Unavailable, "x")), ErrUnavailable)
	assert.ErrorIs(t, c.mapError(status.Error(codes.DeadlineExceeded, "x")), ErrUnavailable)
	assert.ErrorContains(t, c.mapError(status.Error(codes.Internal, "internal error")), "rpc error:")
	assert.ErrorContains(t, c.mapError(errors.New("plain")), "rpc error:")
	assert.NoError(t, c.mapError(nil))
}

func TestPing_MapsRPCError(t *testing.T) {
	c := &GRPCClient{client: &fakePB{pingErr: status.Error(codes.Unavailable, "down")}}
	assert.ErrorIs(t, c.Ping(context.Background()), ErrUnavailable)

	c = &GRPCClient{client: &fakePB{}}
	assert.NoError(t, c.Ping(context.Background()))
}

func TestLogin_SignsAndStoresTokens(t *testing.T) {
	seed := make([]byte, ed25519.SeedSize)
	priv := ed25519.NewKeyFromSeed(seed)
	id, err := address.FromBytes(priv.Public().(ed25519.PublicKey))
	require.NoError(t, err)

	f := &fakePB{loginResp: &pb.TokenResponse{AccessToken: "A", RefreshToken: "R"}}
	c := &GRPCClient{client: f}

	session, err := c.Login(context.Background(), priv)
	require.NoError(t, err)
	assert.Equal(t, models.Session{AccessToken: "A", RefreshToken: "R"}, session)
	assert.Equal(t, session, c.Session())

	req := f.lastLoginReq
	assert.Equal(t, id.String(), req.Identity)
	assert.NoError(t, transaction.VerifyLogin(id, req.Timestamp, req.Signature))
}

func TestLogin_MapsError(t *testing.T) {
	f := &fakePB{loginErr: status.Error(codes.Unauthenticated, common.ErrInvalidSignature.Error())}
	c := &GRPCClient{client: f}

	_, err := c.Login(context.Background(), ed25519.NewKeyFromSeed(make([]byte, ed25519.SeedSize)))
	assert.ErrorIs(t, err, common.ErrInvalidSignature)
	assert.Empty(t, c.Session().AccessToken)
}

func TestSubmit_SendsEncodedTransaction(t *testing.T) {
	priv := ed25519.NewKeyFromSeed(make([]byte, ed25519.SeedSize))
	tx := transaction.NewCreateUser(priv, "alice")

	f := &fakePB{receipt: &pb.Receipt{Signature: tx.ID(), Status: "ok"}}
	c := &GRPCClient{client: f}

	r, err := c.Submit(context.Background(), tx)
	require.NoError(t, err)
	assert.Equal(t, tx.ID(), r.Signature)
	assert.Equal(t, tx.Encode(), f.lastSubmitReq.Transaction)

	f.receiptErr = status.Error(codes.AlreadyExists, common.ErrAccountAlreadyExists.Error())
	_, err = c.Submit(context.Background(), tx)
	assert.ErrorIs(t, err, common.ErrAccountAlreadyExists)
}

func TestQueries(t *testing.T) {
	var acceptor address.Pubkey
	acceptor[0] = 9
	f := &fakePB{
		balance:    &pb.BalanceResponse{Lamports: 42},
		connection: &pb.Connection{Tracker: 3},
	}
	c := &GRPCClient{client: f}

	bal, err := c.Balance(context.Background(), acceptor)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), bal)

	conn, err := c.ConnectionByTracker(context.Background(), acceptor, 3)
	require.NoError(t, err)
	assert.Equal(t, uint32(3), conn.Tracker)
	assert.Equal(t, &pb.GetConnectionRequest{Acceptor: acceptor.String(), Tracker: 3}, f.lastConnectionReq)

	_, err = c.Connection(context.Background(), acceptor)
	require.NoError(t, err)
	assert.Equal(t, &pb.GetConnectionRequest{Address: acceptor.String()}, f.lastConnectionReq)
}

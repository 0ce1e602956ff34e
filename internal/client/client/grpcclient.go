package client

import (
	"context"
	"crypto/ed25519"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/linkify/internal/address"
	"github.com/dmitrijs2005/linkify/internal/client/models"
	"github.com/dmitrijs2005/linkify/internal/common"
	pb "github.com/dmitrijs2005/linkify/internal/proto"
	"github.com/dmitrijs2005/linkify/internal/transaction"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
)

type GRPCClient struct {
	endpointURL string
	timeout     time.Duration
	conn        *grpc.ClientConn
	client      pb.LinkifyServiceClient

	mu           sync.Mutex
	accessToken  string
	refreshToken string
	onRefresh    func(models.Session)
}

// NewGRPCClient dials endpointURL lazily. opts are appended to the default
// insecure transport and token interceptor.
func NewGRPCClient(endpointURL string, timeout time.Duration, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL, timeout: timeout}

	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(c.accessTokenInterceptor),
	}, opts...)
	conn, err := grpc.NewClient(endpointURL, opts...)
	if err != nil {
		return nil, err
	}
	c.conn = conn
	c.client = pb.NewLinkifyServiceClient(conn)
	return c, nil
}

func (s *GRPCClient) Close() error {
	return s.conn.Close()
}

// SetSession installs tokens from an earlier login.
func (s *GRPCClient) SetSession(session models.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = session.AccessToken
	s.refreshToken = session.RefreshToken
}

func (s *GRPCClient) Session() models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.Session{AccessToken: s.accessToken, RefreshToken: s.refreshToken}
}

// OnRefresh registers fn to receive tokens after every rotation, so they can
// be persisted.
func (s *GRPCClient) OnRefresh(fn func(models.Session)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onRefresh = fn
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Set(common.AccessTokenHeaderName, token)
	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	session := s.Session()
	if session.AccessToken != "" {
		ctx = withAccessToken(ctx, session.AccessToken)
	}

	err := invoker(ctx, method, req, reply, cc, opts...)
	if err == nil || method == pb.LinkifyService_RefreshToken_FullMethodName {
		return err
	}

	st, ok := status.FromError(err)
	if !ok || st.Code() != codes.Unauthenticated || st.Message() != common.ErrTokenExpired.Error() {
		return err
	}
	if session.RefreshToken == "" {
		return err
	}

	resp, err := s.client.RefreshToken(ctx, &pb.RefreshTokenRequest{RefreshToken: session.RefreshToken})
	if err != nil {
		return err
	}
	session = models.Session{AccessToken: resp.AccessToken, RefreshToken: resp.RefreshToken}
	s.SetSession(session)

	s.mu.Lock()
	onRefresh := s.onRefresh
	s.mu.Unlock()
	if onRefresh != nil {
		onRefresh(session)
	}

	return invoker(withAccessToken(ctx, session.AccessToken), method, req, reply, cc, opts...)
}

func (s *GRPCClient) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

// mapError turns a gRPC status into the sentinel its message names, keeping
// the full text. Unknown failures fall back to coarse client errors.
func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return fmt.Errorf("rpc error: %w", err)
	}
	if sentinel := common.ErrorFromMessage(st.Message()); sentinel != nil {
		return fmt.Errorf("%w%s", sentinel, st.Message()[len(sentinel.Error()):])
	}
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return ErrUnauthorized
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	_, err := s.client.Ping(ctx, &emptypb.Empty{})
	return s.mapError(err)
}

// Login proves possession of priv and stores the issued tokens.
func (s *GRPCClient) Login(ctx context.Context, priv ed25519.PrivateKey) (models.Session, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	identity, err := address.FromBytes(priv.Public().(ed25519.PublicKey))
	if err != nil {
		return models.Session{}, err
	}
	ts := time.Now().UnixMilli()
	req := &pb.LoginRequest{
		Identity:  identity.String(),
		Timestamp: ts,
		Signature: ed25519.Sign(priv, transaction.LoginMessage(identity, ts)),
	}

	resp, err := s.client.Login(ctx, req)
	if err != nil {
		return models.Session{}, s.mapError(err)
	}
	session := models.Session{AccessToken: resp.AccessToken, RefreshToken: resp.RefreshToken}
	s.SetSession(session)
	return session, nil
}

func (s *GRPCClient) Submit(ctx context.Context, tx *transaction.Transaction) (*pb.Receipt, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.SubmitTransaction(ctx, &pb.SubmitTransactionRequest{Transaction: tx.Encode()})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) Receipt(ctx context.Context, signature string) (*pb.Receipt, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.GetReceipt(ctx, &pb.GetReceiptRequest{Signature: signature})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) Receipts(ctx context.Context, signer address.Pubkey, limit int32) ([]*pb.Receipt, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.ListReceipts(ctx, &pb.ListReceiptsRequest{Signer: signer.String(), Limit: limit})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Receipts, nil
}

func (s *GRPCClient) Balance(ctx context.Context, identity address.Pubkey) (uint64, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.GetBalance(ctx, &pb.GetBalanceRequest{Identity: identity.String()})
	if err != nil {
		return 0, s.mapError(err)
	}
	return resp.Lamports, nil
}

func (s *GRPCClient) User(ctx context.Context, identity address.Pubkey) (*pb.User, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.GetUser(ctx, &pb.GetUserRequest{Identity: identity.String()})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) Connection(ctx context.Context, addr address.Pubkey) (*pb.Connection, error) {
	return s.getConnection(ctx, &pb.GetConnectionRequest{Address: addr.String()})
}

// ConnectionByTracker looks a connection up by its acceptor and the
// acceptor's received-request counter at creation.
func (s *GRPCClient) ConnectionByTracker(ctx context.Context, acceptor address.Pubkey, tracker uint32) (*pb.Connection, error) {
	return s.getConnection(ctx, &pb.GetConnectionRequest{Acceptor: acceptor.String(), Tracker: tracker})
}

func (s *GRPCClient) getConnection(ctx context.Context, req *pb.GetConnectionRequest) (*pb.Connection, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.GetConnection(ctx, req)
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

// Connections fetches one page of the trackers of acceptor.
func (s *GRPCClient) Connections(ctx context.Context, acceptor address.Pubkey, from, limit uint32) (*pb.ListConnectionsResponse, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.ListConnections(ctx, &pb.ListConnectionsRequest{Acceptor: acceptor.String(), From: from, Limit: limit})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

// Airdrop needs a session.
func (s *GRPCClient) Airdrop(ctx context.Context, lamports uint64) (*pb.Receipt, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.Airdrop(ctx, &pb.AirdropRequest{Lamports: lamports})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

// ExportSnapshot needs a session of an admin identity.
func (s *GRPCClient) ExportSnapshot(ctx context.Context) (*pb.Snapshot, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.ExportSnapshot(ctx, &pb.ExportSnapshotRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

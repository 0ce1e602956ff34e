package proto

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
)

const (
	LinkifyService_Ping_FullMethodName              = "/linkify.v1.LinkifyService/Ping"
	LinkifyService_Login_FullMethodName             = "/linkify.v1.LinkifyService/Login"
	LinkifyService_RefreshToken_FullMethodName      = "/linkify.v1.LinkifyService/RefreshToken"
	LinkifyService_SubmitTransaction_FullMethodName = "/linkify.v1.LinkifyService/SubmitTransaction"
	LinkifyService_GetReceipt_FullMethodName        = "/linkify.v1.LinkifyService/GetReceipt"
	LinkifyService_ListReceipts_FullMethodName      = "/linkify.v1.LinkifyService/ListReceipts"
	LinkifyService_GetBalance_FullMethodName        = "/linkify.v1.LinkifyService/GetBalance"
	LinkifyService_GetUser_FullMethodName           = "/linkify.v1.LinkifyService/GetUser"
	LinkifyService_GetConnection_FullMethodName     = "/linkify.v1.LinkifyService/GetConnection"
	LinkifyService_ListConnections_FullMethodName   = "/linkify.v1.LinkifyService/ListConnections"
	LinkifyService_Airdrop_FullMethodName           = "/linkify.v1.LinkifyService/Airdrop"
	LinkifyService_ExportSnapshot_FullMethodName    = "/linkify.v1.LinkifyService/ExportSnapshot"
)

type LinkifyServiceClient interface {
	Ping(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*emptypb.Empty, error)
	Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*TokenResponse, error)
	RefreshToken(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*TokenResponse, error)
	SubmitTransaction(ctx context.Context, in *SubmitTransactionRequest, opts ...grpc.CallOption) (*Receipt, error)
	GetReceipt(ctx context.Context, in *GetReceiptRequest, opts ...grpc.CallOption) (*Receipt, error)
	ListReceipts(ctx context.Context, in *ListReceiptsRequest, opts ...grpc.CallOption) (*ListReceiptsResponse, error)
	GetBalance(ctx context.Context, in *GetBalanceRequest, opts ...grpc.CallOption) (*BalanceResponse, error)
	GetUser(ctx context.Context, in *GetUserRequest, opts ...grpc.CallOption) (*User, error)
	GetConnection(ctx context.Context, in *GetConnectionRequest, opts ...grpc.CallOption) (*Connection, error)
	ListConnections(ctx context.Context, in *ListConnectionsRequest, opts ...grpc.CallOption) (*ListConnectionsResponse, error)
	Airdrop(ctx context.Context, in *AirdropRequest, opts ...grpc.CallOption) (*Receipt, error)
	ExportSnapshot(ctx context.Context, in *ExportSnapshotRequest, opts ...grpc.CallOption) (*Snapshot, error)
}

type linkifyServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewLinkifyServiceClient returns a client whose calls use the json codec.
func NewLinkifyServiceClient(cc grpc.ClientConnInterface) LinkifyServiceClient {
	return &linkifyServiceClient{cc}
}

func (c *linkifyServiceClient) invoke(ctx context.Context, method string, in, out any, opts []grpc.CallOption) error {
	return c.cc.Invoke(ctx, method, in, out, append([]grpc.CallOption{CallOption()}, opts...)...)
}

func (c *linkifyServiceClient) Ping(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	out := new(emptypb.Empty)
	if err := c.invoke(ctx, LinkifyService_Ping_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *linkifyServiceClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*TokenResponse, error) {
	out := new(TokenResponse)
	if err := c.invoke(ctx, LinkifyService_Login_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *linkifyServiceClient) RefreshToken(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*TokenResponse, error) {
	out := new(TokenResponse)
	if err := c.invoke(ctx, LinkifyService_RefreshToken_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *linkifyServiceClient) SubmitTransaction(ctx context.Context, in *SubmitTransactionRequest, opts ...grpc.CallOption) (*Receipt, error) {
	out := new(Receipt)
	if err := c.invoke(ctx, LinkifyService_SubmitTransaction_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *linkifyServiceClient) GetReceipt(ctx context.Context, in *GetReceiptRequest, opts ...grpc.CallOption) (*Receipt, error) {
	out := new(Receipt)
	if err := c.invoke(ctx, LinkifyService_GetReceipt_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *linkifyServiceClient) ListReceipts(ctx context.Context, in *ListReceiptsRequest, opts ...grpc.CallOption) (*ListReceiptsResponse, error) {
	out := new(ListReceiptsResponse)
	if err := c.invoke(ctx, LinkifyService_ListReceipts_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *linkifyServiceClient) GetBalance(ctx context.Context, in *GetBalanceRequest, opts ...grpc.CallOption) (*BalanceResponse, error) {
	out := new(BalanceResponse)
	if err := c.invoke(ctx, LinkifyService_GetBalance_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *linkifyServiceClient) GetUser(ctx context.Context, in *GetUserRequest, opts ...grpc.CallOption) (*User, error) {
	out := new(User)
	if err := c.invoke(ctx, LinkifyService_GetUser_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *linkifyServiceClient) GetConnection(ctx context.Context, in *GetConnectionRequest, opts ...grpc.CallOption) (*Connection, error) {
	out := new(Connection)
	if err := c.invoke(ctx, LinkifyService_GetConnection_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *linkifyServiceClient) ListConnections(ctx context.Context, in *ListConnectionsRequest, opts ...grpc.CallOption) (*ListConnectionsResponse, error) {
	out := new(ListConnectionsResponse)
	if err := c.invoke(ctx, LinkifyService_ListConnections_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *linkifyServiceClient) Airdrop(ctx context.Context, in *AirdropRequest, opts ...grpc.CallOption) (*Receipt, error) {
	out := new(Receipt)
	if err := c.invoke(ctx, LinkifyService_Airdrop_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *linkifyServiceClient) ExportSnapshot(ctx context.Context, in *ExportSnapshotRequest, opts ...grpc.CallOption) (*Snapshot, error) {
	out := new(Snapshot)
	if err := c.invoke(ctx, LinkifyService_ExportSnapshot_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

// LinkifyServiceServer is implemented by the server. Embed
// UnimplementedLinkifyServiceServer for forward compatibility.
type LinkifyServiceServer interface {
	Ping(context.Context, *emptypb.Empty) (*emptypb.Empty, error)
	Login(context.Context, *LoginRequest) (*TokenResponse, error)
	RefreshToken(context.Context, *RefreshTokenRequest) (*TokenResponse, error)
	SubmitTransaction(context.Context, *SubmitTransactionRequest) (*Receipt, error)
	GetReceipt(context.Context, *GetReceiptRequest) (*Receipt, error)
	ListReceipts(context.Context, *ListReceiptsRequest) (*ListReceiptsResponse, error)
	GetBalance(context.Context, *GetBalanceRequest) (*BalanceResponse, error)
	GetUser(context.Context, *GetUserRequest) (*User, error)
	GetConnection(context.Context, *GetConnectionRequest) (*Connection, error)
	ListConnections(context.Context, *ListConnectionsRequest) (*ListConnectionsResponse, error)
	Airdrop(context.Context, *AirdropRequest) (*Receipt, error)
	ExportSnapshot(context.Context, *ExportSnapshotRequest) (*Snapshot, error)
	mustEmbedUnimplementedLinkifyServiceServer()
}

type UnimplementedLinkifyServiceServer struct{}

func (UnimplementedLinkifyServiceServer) Ping(context.Context, *emptypb.Empty) (*emptypb.Empty, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Ping not implemented")
}
func (UnimplementedLinkifyServiceServer) Login(context.Context, *LoginRequest) (*TokenResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Login not implemented")
}
func (UnimplementedLinkifyServiceServer) RefreshToken(context.Context, *RefreshTokenRequest) (*TokenResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method RefreshToken not implemented")
}
func (UnimplementedLinkifyServiceServer) SubmitTransaction(context.Context, *SubmitTransactionRequest) (*Receipt, error) {
	return nil, status.Errorf(codes.Unimplemented, "method SubmitTransaction not implemented")
}
func (UnimplementedLinkifyServiceServer) GetReceipt(context.Context, *GetReceiptRequest) (*Receipt, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetReceipt not implemented")
}
func (UnimplementedLinkifyServiceServer) ListReceipts(context.Context, *ListReceiptsRequest) (*ListReceiptsResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListReceipts not implemented")
}
func (UnimplementedLinkifyServiceServer) GetBalance(context.Context, *GetBalanceRequest) (*BalanceResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetBalance not implemented")
}
func (UnimplementedLinkifyServiceServer) GetUser(context.Context, *GetUserRequest) (*User, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetUser not implemented")
}
func (UnimplementedLinkifyServiceServer) GetConnection(context.Context, *GetConnectionRequest) (*Connection, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetConnection not implemented")
}
func (UnimplementedLinkifyServiceServer) ListConnections(context.Context, *ListConnectionsRequest) (*ListConnectionsResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListConnections not implemented")
}
func (UnimplementedLinkifyServiceServer) Airdrop(context.Context, *AirdropRequest) (*Receipt, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Airdrop not implemented")
}
func (UnimplementedLinkifyServiceServer) ExportSnapshot(context.Context, *ExportSnapshotRequest) (*Snapshot, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ExportSnapshot not implemented")
}
func (UnimplementedLinkifyServiceServer) mustEmbedUnimplementedLinkifyServiceServer() {}

func RegisterLinkifyServiceServer(s grpc.ServiceRegistrar, srv LinkifyServiceServer) {
	s.RegisterService(&LinkifyService_ServiceDesc, srv)
}

// unary builds the method handler for one RPC.
func unary[Req any, Resp any](fullMethod string, call func(LinkifyServiceServer, context.Context, *Req) (Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(LinkifyServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(LinkifyServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var LinkifyService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "linkify.v1.LinkifyService",
	HandlerType: (*LinkifyServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Ping", Handler: unary(LinkifyService_Ping_FullMethodName, LinkifyServiceServer.Ping)},
		{MethodName: "Login", Handler: unary(LinkifyService_Login_FullMethodName, LinkifyServiceServer.Login)},
		{MethodName: "RefreshToken", Handler: unary(LinkifyService_RefreshToken_FullMethodName, LinkifyServiceServer.RefreshToken)},
		{MethodName: "SubmitTransaction", Handler: unary(LinkifyService_SubmitTransaction_FullMethodName, LinkifyServiceServer.SubmitTransaction)},
		{MethodName: "GetReceipt", Handler: unary(LinkifyService_GetReceipt_FullMethodName, LinkifyServiceServer.GetReceipt)},
		{MethodName: "ListReceipts", Handler: unary(LinkifyService_ListReceipts_FullMethodName, LinkifyServiceServer.ListReceipts)},
		{MethodName: "GetBalance", Handler: unary(LinkifyService_GetBalance_FullMethodName, LinkifyServiceServer.GetBalance)},
		{MethodName: "GetUser", Handler: unary(LinkifyService_GetUser_FullMethodName, LinkifyServiceServer.GetUser)},
		{MethodName: "GetConnection", Handler: unary(LinkifyService_GetConnection_FullMethodName, LinkifyServiceServer.GetConnection)},
		{MethodName: "ListConnections", Handler: unary(LinkifyService_ListConnections_FullMethodName, LinkifyServiceServer.ListConnections)},
		{MethodName: "Airdrop", Handler: unary(LinkifyService_Airdrop_FullMethodName, LinkifyServiceServer.Airdrop)},
		{MethodName: "ExportSnapshot", Handler: unary(LinkifyService_ExportSnapshot_FullMethodName, LinkifyServiceServer.ExportSnapshot)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "linkify.proto",
}

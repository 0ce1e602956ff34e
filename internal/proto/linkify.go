// Package proto defines the messages and the gRPC service linkify.v1.LinkifyService.
//
// Messages are plain structs carried by the json codec registered in this
// package; Ping uses the well-known emptypb.Empty. linkify.proto in this
// directory is the reviewable wire contract these types follow.
package proto

type LoginRequest struct {
	Identity string `json:"identity"`
	// Timestamp is unix milliseconds, covered by Signature.
	Timestamp int64  `json:"timestamp"`
	Signature []byte `json:"signature"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type SubmitTransactionRequest struct {
	// Transaction is the encoded signed transaction.
	Transaction []byte `json:"transaction"`
}

type GetReceiptRequest struct {
	Signature string `json:"signature"`
}

type ListReceiptsRequest struct {
	Signer string `json:"signer"`
	Limit  int32  `json:"limit,omitempty"`
}

type ListReceiptsResponse struct {
	Receipts []*Receipt `json:"receipts"`
}

type Receipt struct {
	Id        string `json:"id"`
	Signature string `json:"signature"`
	Signer    string `json:"signer"`
	Kind      string `json:"kind"`
	Account   string `json:"account,omitempty"`
	Status    string `json:"status"`
	Error     string `json:"error,omitempty"`
	// CreatedAt is unix milliseconds.
	CreatedAt int64 `json:"created_at"`
}

type GetBalanceRequest struct {
	Identity string `json:"identity"`
}

type BalanceResponse struct {
	Identity string `json:"identity"`
	Lamports uint64 `json:"lamports"`
}

type GetUserRequest struct {
	Identity string `json:"identity"`
}

type User struct {
	Address          string `json:"address"`
	Owner            string `json:"owner"`
	Name             string `json:"name"`
	RequestsSent     uint32 `json:"requests_sent"`
	RequestsReceived uint32 `json:"requests_received"`
}

// GetConnectionRequest names a connection either by Address or by
// Acceptor and Tracker.
type GetConnectionRequest struct {
	Address  string `json:"address,omitempty"`
	Acceptor string `json:"acceptor,omitempty"`
	Tracker  uint32 `json:"tracker,omitempty"`
}

type Connection struct {
	Address        string `json:"address"`
	Requester      string `json:"requester"`
	Acceptor       string `json:"acceptor"`
	Tracker        uint32 `json:"tracker"`
	Connected      bool   `json:"connected"`
	State          string `json:"state"`
	StakeRequester uint64 `json:"stake_requester"`
	StakeAcceptor  uint64 `json:"stake_acceptor"`
	Lamports       uint64 `json:"lamports"`
}

// ListConnectionsRequest pages over the trackers of Acceptor, scanning at
// most Limit of them starting at From. A zero Limit means the server default.
type ListConnectionsRequest struct {
	Acceptor string `json:"acceptor"`
	From     uint32 `json:"from,omitempty"`
	Limit    uint32 `json:"limit,omitempty"`
}

// ListConnectionsResponse carries the open connections of one page. Next is
// the tracker to pass as From for the following page; Total counts every
// request the acceptor ever received.
type ListConnectionsResponse struct {
	Connections []*Connection `json:"connections"`
	Next        uint32        `json:"next"`
	Total       uint32        `json:"total"`
}

// AirdropRequest credits the caller's own wallet.
type AirdropRequest struct {
	Lamports uint64 `json:"lamports"`
}

type ExportSnapshotRequest struct{}

type Snapshot struct {
	Key           string `json:"key"`
	Checksum      string `json:"checksum"`
	Accounts      int64  `json:"accounts"`
	TotalLamports uint64 `json:"total_lamports"`
	Url           string `json:"url"`
	// UrlExpires is unix milliseconds.
	UrlExpires int64 `json:"url_expires"`
}

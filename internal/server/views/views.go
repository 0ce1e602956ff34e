// Package views renders service results as the wire messages shared by the
// gRPC API and the HTTP explorer.
package views

import (
	"github.com/dmitrijs2005/linkify/internal/address"
	"github.com/dmitrijs2005/linkify/internal/linkify"
	pb "github.com/dmitrijs2005/linkify/internal/proto"
	"github.com/dmitrijs2005/linkify/internal/server/models"
	"github.com/dmitrijs2005/linkify/internal/server/services"
)

func Receipt(r *models.Receipt) *pb.Receipt {
	return &pb.Receipt{
		Id:        r.ID,
		Signature: r.Signature,
		Signer:    r.Signer,
		Kind:      r.Kind,
		Account:   r.Account,
		Status:    r.Status,
		Error:     r.Error,
		CreatedAt: r.CreatedAt.UnixMilli(),
	}
}

func Receipts(rs []*models.Receipt) []*pb.Receipt {
	out := make([]*pb.Receipt, 0, len(rs))
	for _, r := range rs {
		out = append(out, Receipt(r))
	}
	return out
}

func User(addr address.Pubkey, u *linkify.UserAccount) *pb.User {
	return &pb.User{
		Address:          addr.String(),
		Owner:            u.Owner.String(),
		Name:             u.Name,
		RequestsSent:     u.RequestsSent,
		RequestsReceived: u.RequestsReceived,
	}
}

// Connection reports the escrowed amount as the account's lamports; the
// program refuses to load a connection whose balance differs from it.
func Connection(c *services.ConnectionView) *pb.Connection {
	return &pb.Connection{
		Address:        c.Address.String(),
		Requester:      c.Requester.String(),
		Acceptor:       c.Acceptor.String(),
		Tracker:        c.Tracker,
		Connected:      c.Connected,
		State:          string(c.State()),
		StakeRequester: c.StakeRequester,
		StakeAcceptor:  c.StakeAcceptor,
		Lamports:       c.Escrowed(),
	}
}

func Connections(page *services.ConnectionPage) *pb.ListConnectionsResponse {
	out := make([]*pb.Connection, 0, len(page.Connections))
	for _, c := range page.Connections {
		out = append(out, Connection(c))
	}
	return &pb.ListConnectionsResponse{Connections: out, Next: page.Next, Total: page.Total}
}

func Snapshot(s *models.Snapshot) *pb.Snapshot {
	return &pb.Snapshot{
		Key:           s.Key,
		Checksum:      s.Checksum,
		Accounts:      int64(s.Accounts),
		TotalLamports: s.TotalLamports,
		Url:           s.URL,
		UrlExpires:    s.URLExpires.UnixMilli(),
	}
}

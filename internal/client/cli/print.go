package cli

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/linkify/internal/amount"
	pb "github.com/dmitrijs2005/linkify/internal/proto"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

func formatMillis(ms int64) string {
	if ms == 0 {
		return "-"
	}
	return time.UnixMilli(ms).UTC().Format(time.RFC3339)
}

func formatLamports(lamports uint64) string {
	return fmt.Sprintf("%s (%d lamports)", amount.Format(lamports), lamports)
}

func printReceipt(w io.Writer, r *pb.Receipt) error {
	tw := newTable(w)
	fmt.Fprintf(tw, "signature\t%s\n", r.Signature)
	fmt.Fprintf(tw, "signer\t%s\n", r.Signer)
	fmt.Fprintf(tw, "kind\t%s\n", r.Kind)
	if r.Account != "" {
		fmt.Fprintf(tw, "account\t%s\n", r.Account)
	}
	fmt.Fprintf(tw, "status\t%s\n", r.Status)
	if r.Error != "" {
		fmt.Fprintf(tw, "error\t%s\n", r.Error)
	}
	fmt.Fprintf(tw, "time\t%s\n", formatMillis(r.CreatedAt))
	return tw.Flush()
}

func printReceipts(w io.Writer, rs []*pb.Receipt) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "TIME\tKIND\tSTATUS\tSIGNATURE")
	for _, r := range rs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", formatMillis(r.CreatedAt), r.Kind, r.Status, r.Signature)
	}
	return tw.Flush()
}

func printUser(w io.Writer, u *pb.User) error {
	tw := newTable(w)
	fmt.Fprintf(tw, "address\t%s\n", u.Address)
	fmt.Fprintf(tw, "owner\t%s\n", u.Owner)
	fmt.Fprintf(tw, "name\t%s\n", u.Name)
	fmt.Fprintf(tw, "requests sent\t%d\n", u.RequestsSent)
	fmt.Fprintf(tw, "requests received\t%d\n", u.RequestsReceived)
	return tw.Flush()
}

func printConnection(w io.Writer, c *pb.Connection) error {
	tw := newTable(w)
	fmt.Fprintf(tw, "address\t%s\n", c.Address)
	fmt.Fprintf(tw, "requester\t%s\n", c.Requester)
	fmt.Fprintf(tw, "acceptor\t%s\n", c.Acceptor)
	fmt.Fprintf(tw, "tracker\t%d\n", c.Tracker)
	fmt.Fprintf(tw, "state\t%s\n", c.State)
	fmt.Fprintf(tw, "stake requester\t%s\n", formatLamports(c.StakeRequester))
	fmt.Fprintf(tw, "stake acceptor\t%s\n", formatLamports(c.StakeAcceptor))
	fmt.Fprintf(tw, "escrow\t%s\n", formatLamports(c.Lamports))
	return tw.Flush()
}

func printConnections(w io.Writer, page *pb.ListConnectionsResponse) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "TRACKER\tSTATE\tSTAKE\tREQUESTER\tADDRESS")
	for _, c := range page.Connections {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", c.Tracker, c.State, amount.Format(c.StakeRequester), c.Requester, c.Address)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if page.Next < page.Total {
		_, err := fmt.Fprintf(w, "%d of %d trackers scanned, continue with --from %d\n", page.Next, page.Total, page.Next)
		return err
	}
	return nil
}

package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/linkify/internal/address"
	"github.com/dmitrijs2005/linkify/internal/amount"
	"github.com/dmitrijs2005/linkify/internal/client/services"
	"github.com/dmitrijs2005/linkify/internal/common"
	pb "github.com/dmitrijs2005/linkify/internal/proto"
	"github.com/spf13/cobra"
)

func connectCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "connect",
		Short: "Request, answer and inspect connections",
	}
	cmd.AddCommand(
		connectRequestCmd(a),
		connectActionCmd(a, "accept", "Accept a pending request and match its stake", (*services.LedgerService).Accept),
		connectActionCmd(a, "reject", "Reject a pending request", (*services.LedgerService).Reject),
		connectActionCmd(a, "withdraw", "Withdraw your stake from a connection", (*services.LedgerService).Withdraw),
		connectShowCmd(a),
		connectListCmd(a),
	)
	return cmd
}

func connectRequestCmd(a *App) *cobra.Command {
	var stake string
	cmd := &cobra.Command{
		Use:   "request <acceptor>",
		Short: "Ask another user to connect, staking funds into escrow",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lamports, err := amount.Parse(stake)
			if err != nil {
				return err
			}
			acceptor, err := a.resolveIdentity(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := a.connect(); err != nil {
				return err
			}
			s, err := a.signer(cmd.Context())
			if err != nil {
				return err
			}
			defer common.WipeByteArray(s.Passphrase)

			r, err := a.ledger.Request(cmd.Context(), s, acceptor, lamports)
			if err != nil {
				return err
			}
			return printReceipt(a.out, r)
		},
	}
	cmd.Flags().StringVar(&stake, "stake", "0", "amount to stake, in units")
	return cmd
}

type connectionAction func(*services.LedgerService, context.Context, services.Signer, address.Pubkey) (*pb.Receipt, error)

func connectActionCmd(a *App, use, short string, action connectionAction) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <connection>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := parseAddress(args[0])
			if err != nil {
				return err
			}
			if err := a.connect(); err != nil {
				return err
			}
			s, err := a.signer(cmd.Context())
			if err != nil {
				return err
			}
			defer common.WipeByteArray(s.Passphrase)

			r, err := action(a.ledger, cmd.Context(), s, conn)
			if err != nil {
				return err
			}
			return printReceipt(a.out, r)
		},
	}
}

func connectShowCmd(a *App) *cobra.Command {
	var acceptor string
	var tracker int64
	cmd := &cobra.Command{
		Use:   "show [connection]",
		Short: "Show a connection by address, or by --acceptor and --tracker",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var lookup func() (*pb.Connection, error)
			switch {
			case len(args) == 1:
				addr, err := parseAddress(args[0])
				if err != nil {
					return err
				}
				lookup = func() (*pb.Connection, error) { return a.ledger.Connection(ctx, addr) }
			case tracker >= 0:
				if tracker > int64(^uint32(0)) {
					return fmt.Errorf("%w: tracker %d out of range", common.ErrInvalidInput, tracker)
				}
				id, err := a.resolveIdentity(ctx, acceptor)
				if err != nil {
					return err
				}
				lookup = func() (*pb.Connection, error) { return a.ledger.ConnectionByTracker(ctx, id, uint32(tracker)) }
			default:
				return fmt.Errorf("%w: give a connection address or --tracker", common.ErrInvalidInput)
			}

			if err := a.connect(); err != nil {
				return err
			}
			c, err := lookup()
			if err != nil {
				return err
			}
			return printConnection(a.out, c)
		},
	}
	cmd.Flags().StringVar(&acceptor, "acceptor", "", "acceptor address or key (default: the selected key)")
	cmd.Flags().Int64Var(&tracker, "tracker", -1, "request tracker of the acceptor")
	return cmd
}

func connectListCmd(a *App) *cobra.Command {
	var from, limit uint32
	cmd := &cobra.Command{
		Use:   "list [acceptor]",
		Short: "List connection requests received by an acceptor",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.resolveIdentity(cmd.Context(), firstArg(args))
			if err != nil {
				return err
			}
			if err := a.connect(); err != nil {
				return err
			}
			page, err := a.ledger.Connections(cmd.Context(), id, from, limit)
			if err != nil {
				return err
			}
			return printConnections(a.out, page)
		},
	}
	cmd.Flags().Uint32Var(&from, "from", 0, "first request tracker to scan")
	cmd.Flags().Uint32Var(&limit, "limit", 50, "number of trackers to scan")
	return cmd
}

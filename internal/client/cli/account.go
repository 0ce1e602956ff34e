package cli

import (
	"fmt"

	"github.com/dmitrijs2005/linkify/internal/amount"
	"github.com/dmitrijs2005/linkify/internal/common"
	"github.com/spf13/cobra"
)

func airdropCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "airdrop <amount>",
		Short: "Request test funds for the logged-in key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lamports, err := amount.Parse(args[0])
			if err != nil {
				return err
			}
			if err := a.connect(); err != nil {
				return err
			}
			if err := a.resume(cmd.Context()); err != nil {
				return err
			}
			r, err := a.ledger.Airdrop(cmd.Context(), lamports)
			if err != nil {
				return err
			}
			return printReceipt(a.out, r)
		},
	}
}

func balanceCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "balance [address|key]",
		Short: "Show the wallet balance of an identity",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.resolveIdentity(cmd.Context(), firstArg(args))
			if err != nil {
				return err
			}
			if err := a.connect(); err != nil {
				return err
			}
			lamports, err := a.ledger.Balance(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, formatLamports(lamports))
			return nil
		},
	}
}

func userCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Create and inspect user accounts",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "create <display-name>",
			Short: "Create the user account of the selected key",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := a.connect(); err != nil {
					return err
				}
				s, err := a.signer(cmd.Context())
				if err != nil {
					return err
				}
				defer common.WipeByteArray(s.Passphrase)

				r, err := a.ledger.CreateUser(cmd.Context(), s, args[0])
				if err != nil {
					return err
				}
				return printReceipt(a.out, r)
			},
		},
		&cobra.Command{
			Use:   "show [address|key]",
			Short: "Show a user account",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := a.resolveIdentity(cmd.Context(), firstArg(args))
				if err != nil {
					return err
				}
				if err := a.connect(); err != nil {
					return err
				}
				u, err := a.ledger.User(cmd.Context(), id)
				if err != nil {
					return err
				}
				return printUser(a.out, u)
			},
		},
	)
	return cmd
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

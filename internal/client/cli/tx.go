package cli

import (
	"github.com/spf13/cobra"
)

func txCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tx",
		Short: "Inspect transaction receipts",
	}

	var limit int32
	list := &cobra.Command{
		Use:   "list [address|key]",
		Short: "List the latest receipts of a signer",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.resolveIdentity(cmd.Context(), firstArg(args))
			if err != nil {
				return err
			}
			if err := a.connect(); err != nil {
				return err
			}
			rs, err := a.ledger.Receipts(cmd.Context(), id, limit)
			if err != nil {
				return err
			}
			return printReceipts(a.out, rs)
		},
	}
	list.Flags().Int32Var(&limit, "limit", 20, "maximum number of receipts")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show <signature>",
			Short: "Show the receipt of a transaction",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := a.connect(); err != nil {
					return err
				}
				r, err := a.ledger.Receipt(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return printReceipt(a.out, r)
			},
		},
		list,
	)
	return cmd
}

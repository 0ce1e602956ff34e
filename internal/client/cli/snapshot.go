package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func snapshotCmd(a *App) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Export a ledger snapshot (admin only)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.connect(); err != nil {
				return err
			}
			if err := a.resume(cmd.Context()); err != nil {
				return err
			}
			snap, data, err := a.ledger.ExportSnapshot(cmd.Context(), out != "")
			if err != nil {
				return err
			}

			tw := newTable(a.out)
			fmt.Fprintf(tw, "key\t%s\n", snap.Key)
			fmt.Fprintf(tw, "accounts\t%d\n", snap.Accounts)
			fmt.Fprintf(tw, "total\t%s\n", formatLamports(snap.TotalLamports))
			fmt.Fprintf(tw, "sha256\t%s\n", snap.Checksum)
			fmt.Fprintf(tw, "url\t%s\n", snap.Url)
			fmt.Fprintf(tw, "expires\t%s\n", formatMillis(snap.UrlExpires))
			if err := tw.Flush(); err != nil {
				return err
			}

			if out == "" {
				return nil
			}
			if err := os.WriteFile(out, data, 0o600); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "wrote %d bytes to %s\n", len(data), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "download the snapshot to this file")
	return cmd
}

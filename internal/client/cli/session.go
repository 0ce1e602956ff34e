package cli

import (
	"fmt"

	"github.com/dmitrijs2005/linkify/internal/common"
	"github.com/spf13/cobra"
)

func loginCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Prove key ownership to the server and store the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.connect(); err != nil {
				return err
			}
			s, err := a.signer(cmd.Context())
			if err != nil {
				return err
			}
			defer common.WipeByteArray(s.Passphrase)

			id, err := a.auth.Login(cmd.Context(), s.Name, s.Passphrase)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "logged in as %s (%s)\n", s.Name, id)
			return nil
		},
	}
}

func logoutCmd(a *App) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored server session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if all {
				return a.keys.Logout(cmd.Context())
			}
			name, err := a.selectKey(cmd.Context())
			if err != nil {
				return err
			}
			if err := a.keys.DeleteSession(cmd.Context(), name); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "logged out %s\n", name)
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "drop the sessions of every key")
	return cmd
}

func statusCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check that the server is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.connect(); err != nil {
				return err
			}
			if err := a.auth.Ping(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "server %s is up\n", a.cfg.ServerEndpointAddr)
			return nil
		},
	}
}

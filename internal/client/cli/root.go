package cli

import (
	"context"
	"errors"
	"os"

	"github.com/dmitrijs2005/linkify/internal/client/config"
	"github.com/spf13/cobra"
)

// NewRootCommand builds the command tree around a.
func NewRootCommand(a *App) *cobra.Command {
	root := &cobra.Command{
		Use:          "linkify",
		Short:        "Client for the linkify connection ledger",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	root.SetOut(a.out)
	root.SetErr(a.out)

	pf := root.PersistentFlags()
	pf.StringVarP(&a.configPath, "config", "c", os.Getenv("LINKIFY_CONFIG"), "JSON config file")
	pf.StringVarP(&a.addr, "addr", "a", "", "server gRPC address (host:port)")
	pf.StringVar(&a.home, "home", "", "keystore directory (default ~/.linkify)")
	pf.DurationVar(&a.timeout, "timeout", 0, "per-request timeout")
	pf.StringVarP(&a.keyName, "key", "k", "", "key to act as (default: the only key)")

	root.AddCommand(
		keysCmd(a),
		loginCmd(a),
		logoutCmd(a),
		statusCmd(a),
		airdropCmd(a),
		balanceCmd(a),
		userCmd(a),
		connectCmd(a),
		txCmd(a),
		snapshotCmd(a),
	)
	return root
}

// setup layers configuration as defaults, then file, then flags, and
// opens the keystore.
func (a *App) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("addr") {
		cfg.ServerEndpointAddr = a.addr
	}
	if flags.Changed("home") {
		cfg.Home = a.home
	}
	if flags.Changed("timeout") {
		if a.timeout <= 0 {
			return errors.New("timeout must be positive")
		}
		cfg.Timeout = a.timeout
	}
	a.cfg = cfg
	return a.openKeystore(cmd.Context())
}

// Execute runs the CLI with os.Args.
func Execute(ctx context.Context) error {
	a := NewApp(os.Stdin, os.Stdout)
	defer a.Close()
	return NewRootCommand(a).ExecuteContext(ctx)
}

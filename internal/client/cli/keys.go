package cli

import (
	"bytes"
	"crypto/ed25519"
	"errors"
	"fmt"
	"os"

	"github.com/dmitrijs2005/linkify/internal/common"
	"github.com/mr-tron/base58"
	"github.com/spf13/cobra"
)

func keysCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Manage local signing keys",
	}
	cmd.AddCommand(keysNewCmd(a), keysImportCmd(a), keysListCmd(a), keysShowCmd(a), keysDeleteCmd(a))
	return cmd
}

func keysNewCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "new <name>",
		Short: "Generate a key and store it encrypted",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pass, err := GetNewPassword(a.out)
			if err != nil {
				return err
			}
			defer common.WipeByteArray(pass)

			key, err := a.keys.Create(cmd.Context(), args[0], pass)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "created %s %s\n", key.Name, key.Pubkey)
			return nil
		},
	}
}

func keysImportCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <name>",
		Short: "Import a base58 ed25519 secret key or seed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(a.out, "Secret key (base58): ")
			secret, err := readPassword(int(os.Stdin.Fd()))
			fmt.Fprintln(a.out)
			if err != nil {
				return err
			}
			raw, err := base58.Decode(string(secret))
			common.WipeByteArray(secret)
			if err != nil {
				return fmt.Errorf("%w: secret is not base58", common.ErrInvalidInput)
			}
			defer common.WipeByteArray(raw)

			var priv ed25519.PrivateKey
			switch len(raw) {
			case ed25519.SeedSize:
				priv = ed25519.NewKeyFromSeed(raw)
			case ed25519.PrivateKeySize:
				priv = ed25519.NewKeyFromSeed(raw[:ed25519.SeedSize])
				if !bytes.Equal(priv[ed25519.SeedSize:], raw[ed25519.SeedSize:]) {
					return fmt.Errorf("%w: secret key does not match its public half", common.ErrInvalidInput)
				}
			default:
				return fmt.Errorf("%w: secret is %d bytes", common.ErrInvalidInput, len(raw))
			}
			defer common.WipeByteArray(priv)

			pass, err := GetNewPassword(a.out)
			if err != nil {
				return err
			}
			defer common.WipeByteArray(pass)

			key, err := a.keys.Add(cmd.Context(), args[0], priv, pass)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "imported %s %s\n", key.Name, key.Pubkey)
			return nil
		},
	}
}

func keysListCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			list, err := a.keys.List(ctx)
			if err != nil {
				return err
			}
			sessions, err := a.keys.LoggedIn(ctx)
			if err != nil {
				return err
			}

			tw := newTable(a.out)
			fmt.Fprintln(tw, "NAME\tADDRESS\tSESSION\tCREATED")
			for _, k := range list {
				session := "-"
				if sessions[k.Name] {
					session = "yes"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", k.Name, k.Pubkey, session, formatMillis(k.CreatedAt.UnixMilli()))
			}
			return tw.Flush()
		},
	}
}

func keysShowCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show [name]",
		Short: "Print the address of a key",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) == 1 {
				name = args[0]
			} else {
				var err error
				if name, err = a.selectKey(cmd.Context()); err != nil {
					return err
				}
			}
			key, err := a.keys.Get(cmd.Context(), name)
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, key.Pubkey)
			return nil
		},
	}
}

func keysDeleteCmd(a *App) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a key and its session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if _, err := a.keys.Get(cmd.Context(), name); err != nil {
				return err
			}
			if !yes {
				answer, err := GetSimpleText(a.in, fmt.Sprintf("Type %q to delete the key; it cannot be recovered", name), a.out)
				if err != nil {
					return err
				}
				if answer != name {
					return errors.New("aborted")
				}
			}
			if err := a.keys.Delete(cmd.Context(), name); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "deleted %s\n", name)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

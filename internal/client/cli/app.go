package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/linkify/internal/address"
	"github.com/dmitrijs2005/linkify/internal/client/client"
	"github.com/dmitrijs2005/linkify/internal/client/config"
	"github.com/dmitrijs2005/linkify/internal/client/keystore"
	keyrepo "github.com/dmitrijs2005/linkify/internal/client/repositories/keys"
	"github.com/dmitrijs2005/linkify/internal/client/services"
	"github.com/dmitrijs2005/linkify/internal/common"
	"github.com/dmitrijs2005/linkify/internal/filex"
)

// App is the state shared by all commands of one invocation.
type App struct {
	cfg *config.Config

	// flag values
	configPath string
	addr       string
	home       string
	timeout    time.Duration
	keyName    string

	keys   *keystore.Keystore
	client client.Client
	dial   func(cfg *config.Config) (client.Client, error)
	auth   *services.AuthService
	ledger *services.LedgerService

	in  *bufio.Reader
	out io.Writer
}

func NewApp(in io.Reader, out io.Writer) *App {
	return &App{in: bufio.NewReader(in), out: out, dial: dialGRPC}
}

func dialGRPC(cfg *config.Config) (client.Client, error) {
	return client.NewGRPCClient(cfg.ServerEndpointAddr, cfg.Timeout)
}

// openKeystore creates the home directory if needed and opens the
// keystore inside it. An already opened keystore is kept.
func (a *App) openKeystore(ctx context.Context) error {
	if a.keys != nil {
		return nil
	}
	home, err := filex.EnsureDir(a.cfg.Home)
	if err != nil {
		return err
	}
	a.cfg.Home = home

	ks, err := keystore.Open(ctx, a.cfg.DatabasePath())
	if err != nil {
		return err
	}
	a.keys = ks
	return nil
}

// connect dials the server on first use.
func (a *App) connect() error {
	if a.ledger != nil {
		return nil
	}
	c, err := a.dial(a.cfg)
	if err != nil {
		return err
	}
	a.client = c
	a.auth = services.NewAuthService(a.keys, c)
	a.ledger = services.NewLedgerService(a.keys, c)
	return nil
}

func (a *App) Close() error {
	var errs []error
	if a.client != nil {
		errs = append(errs, a.client.Close())
	}
	if a.keys != nil {
		errs = append(errs, a.keys.Close())
	}
	return errors.Join(errs...)
}

// selectKey returns the key chosen with --key, or the only key in the
// keystore.
func (a *App) selectKey(ctx context.Context) (string, error) {
	if a.keyName != "" {
		return a.keyName, nil
	}
	list, err := a.keys.List(ctx)
	if err != nil {
		return "", err
	}
	switch len(list) {
	case 0:
		return "", errors.New("no keys; create one with 'linkify keys new <name>'")
	case 1:
		return list[0].Name, nil
	default:
		return "", errors.New("several keys in the keystore; pick one with --key")
	}
}

// signer selects a key and asks for its passphrase.
func (a *App) signer(ctx context.Context) (services.Signer, error) {
	name, err := a.selectKey(ctx)
	if err != nil {
		return services.Signer{}, err
	}
	pass, err := GetPassword(a.out, fmt.Sprintf("Passphrase for %s", name))
	if err != nil {
		return services.Signer{}, err
	}
	return services.Signer{Name: name, Passphrase: pass}, nil
}

// resume restores the server session of the selected key.
func (a *App) resume(ctx context.Context) error {
	name, err := a.selectKey(ctx)
	if err != nil {
		return err
	}
	if err := a.auth.Resume(ctx, name); err != nil {
		if errors.Is(err, keystore.ErrNoSession) {
			return fmt.Errorf("%w: %s is not logged in, run 'linkify login'", err, name)
		}
		return err
	}
	return nil
}

// resolveIdentity accepts an address or the name of a local key. An empty
// argument means the selected key.
func (a *App) resolveIdentity(ctx context.Context, arg string) (address.Pubkey, error) {
	if arg == "" {
		name, err := a.selectKey(ctx)
		if err != nil {
			return address.Zero, err
		}
		arg = name
	}
	if pk, err := address.Parse(arg); err == nil {
		return pk, nil
	}
	key, err := a.keys.Get(ctx, arg)
	if err != nil {
		if errors.Is(err, keystore.ErrInvalidName) || errors.Is(err, keyrepo.ErrKeyNotFound) {
			return address.Zero, fmt.Errorf("%w: %q is neither an address nor a key name", common.ErrInvalidInput, arg)
		}
		return address.Zero, err
	}
	return key.Pubkey, nil
}

func parseAddress(arg string) (address.Pubkey, error) {
	pk, err := address.Parse(arg)
	if err != nil {
		return address.Zero, fmt.Errorf("%w: %v", common.ErrInvalidInput, err)
	}
	return pk, nil
}

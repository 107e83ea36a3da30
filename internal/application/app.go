package application

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"pwvault/internal/config"
	"pwvault/internal/domain"
	"pwvault/internal/integrations/keyringstore"
)

var errNotAuthenticated = errors.New("incorrect master password")

// App wires the vault engine to terminal input and output. Every command is
// a method taking its raw arguments.
type App struct {
	cfg      *config.Config
	log      zerolog.Logger
	keys     keyringstore.Store
	vault    *domain.VaultStore
	settings *domain.SettingsStore
	account  *domain.Account
	exporter *domain.Exporter

	in     *bufio.Reader
	inFile *os.File
	out    io.Writer
}

func New(cfg *config.Config, log zerolog.Logger, in io.Reader, out io.Writer) (*App, error) {
	if err := os.MkdirAll(cfg.Home, 0o700); err != nil {
		return nil, fmt.Errorf("create vault home: %w", err)
	}

	keys, err := keyringstore.New(cfg.KeyBackend, cfg.KeyPath, cfg.KeyringAccount, log)
	if err != nil {
		return nil, err
	}

	settings := domain.NewSettingsStore(cfg.SettingsPath, domain.WithLogger(log))
	vault := domain.NewVaultStore(cfg.CredentialsPath, keys, domain.WithLogger(log))

	app := &App{
		cfg:      cfg,
		log:      log,
		keys:     keys,
		vault:    vault,
		settings: settings,
		account:  domain.NewAccount(settings, domain.NewHasher(cfg.BcryptCost)),
		exporter: domain.NewExporter(vault, domain.WithExportLogger(log)),
		in:       bufio.NewReader(in),
		out:      out,
	}
	if f, ok := in.(*os.File); ok {
		app.inFile = f
	}
	return app, nil
}

// authenticate asks for the master password and checks it.
func (a *App) authenticate(cliName string) error {
	if !a.account.Exists() {
		return fmt.Errorf("no master password configured. run: %s init", cliName)
	}
	password, err := a.promptSecret("Master password")
	if err != nil {
		return err
	}
	if !a.account.Authenticate(password) {
		a.log.Warn().Msg("master password rejected")
		return errNotAuthenticated
	}
	return nil
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

package application

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"pwvault/internal/config"
	"pwvault/internal/domain"
	"pwvault/internal/integrations/keyringstore"
)

const testMaster = "Secret1!"

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	home := filepath.Join(t.TempDir(), "vault")
	return &config.Config{
		Home:            home,
		SettingsPath:    filepath.Join(home, domain.SettingsFileName),
		CredentialsPath: filepath.Join(home, domain.CredentialsFileName),
		KeyPath:         filepath.Join(home, domain.KeyFileName),
		KeyBackend:      keyringstore.BackendFile,
		ExportDir:       t.TempDir(),
		BcryptCost:      4,
		LogLevel:        "disabled",
	}
}

func newTestApp(t *testing.T, cfg *config.Config, input string) (*App, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	app, err := New(cfg, zerolog.Nop(), strings.NewReader(input), out)
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	return app, out
}

// initializedConfig returns a config whose vault already has testMaster set.
func initializedConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := testConfig(t)
	app, _ := newTestApp(t, cfg, "")
	if err := app.account.Create(testMaster); err != nil {
		t.Fatalf("create account: %v", err)
	}
	return cfg
}

func TestNewCreatesHome(t *testing.T) {
	cfg := testConfig(t)
	newTestApp(t, cfg, "")

	info, err := os.Stat(cfg.Home)
	if err != nil {
		t.Fatalf("stat home: %v", err)
	}
	if !info.IsDir() {
		t.Fatalf("expected %s to be a directory", cfg.Home)
	}
}

func TestNewRejectsUnknownBackend(t *testing.T) {
	cfg := testConfig(t)
	cfg.KeyBackend = "vault"
	if _, err := New(cfg, zerolog.Nop(), strings.NewReader(""), &bytes.Buffer{}); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
}

func TestAuthenticate(t *testing.T) {
	t.Run("no account", func(t *testing.T) {
		app, _ := newTestApp(t, testConfig(t), testMaster+"\n")
		err := app.authenticate("pwvault")
		if err == nil || !strings.Contains(err.Error(), "run: pwvault init") {
			t.Fatalf("expected init hint, got %v", err)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		app, _ := newTestApp(t, initializedConfig(t), "Wrong1!!\n")
		if err := app.authenticate("pwvault"); err != errNotAuthenticated {
			t.Fatalf("expected errNotAuthenticated, got %v", err)
		}
	})

	t.Run("correct password", func(t *testing.T) {
		app, _ := newTestApp(t, initializedConfig(t), testMaster+"\n")
		if err := app.authenticate("pwvault"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("input closed", func(t *testing.T) {
		app, _ := newTestApp(t, initializedConfig(t), "")
		err := app.authenticate("pwvault")
		if err == nil || !strings.Contains(err.Error(), "unexpected end of input") {
			t.Fatalf("expected end of input error, got %v", err)
		}
	})
}

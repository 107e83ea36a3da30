// Package config resolves where the vault lives and how it behaves, from an
// optional YAML file in the vault home overridden by environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"

	"pwvault/internal/domain"
	"pwvault/internal/integrations/keyringstore"
)

// Config holds the resolved vault configuration.
type Config struct {
	Home            string
	SettingsPath    string
	CredentialsPath string
	KeyPath         string
	KeyBackend      string
	KeyringAccount  string
	ExportDir       string
	BcryptCost      int
	LogLevel        string
}

// fileConfig mirrors config.yaml. Empty fields keep their defaults.
type fileConfig struct {
	KeyBackend     string `yaml:"key_backend"`
	KeyringAccount string `yaml:"keyring_account"`
	KeyPath        string `yaml:"key_path"`
	ExportDir      string `yaml:"export_dir"`
	BcryptCost     int    `yaml:"bcrypt_cost"`
	LogLevel       string `yaml:"log_level"`
}

// Load resolves the vault home (PWVAULT_HOME, default ~/.pwvault), reads
// <home>/config.yaml when present, then applies PWVAULT_KEY_BACKEND,
// PWVAULT_EXPORT_DIR, PWVAULT_BCRYPT_COST and PWVAULT_LOG_LEVEL.
func Load() (*Config, error) {
	home, err := domain.VaultHomeDir()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Home:            home,
		SettingsPath:    filepath.Join(home, domain.SettingsFileName),
		CredentialsPath: filepath.Join(home, domain.CredentialsFileName),
		KeyPath:         filepath.Join(home, domain.KeyFileName),
		KeyBackend:      keyringstore.BackendFile,
		BcryptCost:      bcrypt.DefaultCost,
		LogLevel:        "warn",
	}

	if err := cfg.applyFile(filepath.Join(home, domain.ConfigFileName)); err != nil {
		return nil, err
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if cfg.ExportDir == "" {
		dir, err := domain.DefaultExportDir()
		if err != nil {
			return nil, err
		}
		cfg.ExportDir = dir
	}
	return cfg, nil
}

func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	if fc.KeyBackend != "" {
		c.KeyBackend = fc.KeyBackend
	}
	if fc.KeyringAccount != "" {
		c.KeyringAccount = fc.KeyringAccount
	}
	if fc.KeyPath != "" {
		c.KeyPath = c.resolve(fc.KeyPath)
	}
	if fc.ExportDir != "" {
		c.ExportDir = c.resolve(fc.ExportDir)
	}
	if fc.BcryptCost != 0 {
		if err := validateCost(fc.BcryptCost); err != nil {
			return fmt.Errorf("%s: bcrypt_cost %w", path, err)
		}
		c.BcryptCost = fc.BcryptCost
	}
	if fc.LogLevel != "" {
		c.LogLevel = fc.LogLevel
	}
	if err := c.validateBackend(); err != nil {
		return fmt.Errorf("%s: key_backend %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v, ok := os.LookupEnv("PWVAULT_KEY_BACKEND"); ok && strings.TrimSpace(v) != "" {
		c.KeyBackend = strings.ToLower(strings.TrimSpace(v))
		if err := c.validateBackend(); err != nil {
			return fmt.Errorf("PWVAULT_KEY_BACKEND %w", err)
		}
	}
	if v, ok := os.LookupEnv("PWVAULT_EXPORT_DIR"); ok && strings.TrimSpace(v) != "" {
		c.ExportDir = c.resolve(strings.TrimSpace(v))
	}
	if v, ok := os.LookupEnv("PWVAULT_BCRYPT_COST"); ok && strings.TrimSpace(v) != "" {
		cost, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("PWVAULT_BCRYPT_COST has invalid value %q: %w", v, err)
		}
		if err := validateCost(cost); err != nil {
			return fmt.Errorf("PWVAULT_BCRYPT_COST %w", err)
		}
		c.BcryptCost = cost
	}
	if v, ok := os.LookupEnv("PWVAULT_LOG_LEVEL"); ok && strings.TrimSpace(v) != "" {
		c.LogLevel = strings.TrimSpace(v)
	}
	return nil
}

func (c *Config) validateBackend() error {
	switch c.KeyBackend {
	case keyringstore.BackendFile, keyringstore.BackendKeyring:
		return nil
	default:
		return fmt.Errorf("has unknown key backend %q (expected file or keyring)", c.KeyBackend)
	}
}

// resolve makes relative paths relative to the vault home.
func (c *Config) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.Home, path)
}

func validateCost(cost int) error {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return fmt.Errorf("must be between %d and %d, got %d", bcrypt.MinCost, bcrypt.MaxCost, cost)
	}
	return nil
}

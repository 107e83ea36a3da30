package domain

import (
	"os"
	"path/filepath"
	"strings"
)

func VaultHomeDir() (string, error) {
	envHome := strings.TrimSpace(os.Getenv("PWVAULT_HOME"))
	if envHome != "" {
		return filepath.Abs(envHome)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".pwvault"), nil
}

// DefaultExportDir returns the user's Downloads directory when it exists and
// the home directory otherwise.
func DefaultExportDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	downloads := filepath.Join(home, "Downloads")
	if info, err := os.Stat(downloads); err == nil && info.IsDir() {
		return downloads, nil
	}
	return home, nil
}

package domain

import (
	"os"
	"sort"
	"strings"
)

const (
	SettingsFileName    = "settings.json"
	CredentialsFileName = "credentials.json"
	KeyFileName         = "secret.key"
	ConfigFileName      = "config.yaml"

	ExportBaseName = "passwords"

	// KeySize is the AES-256 key length used for credential encryption.
	KeySize = 32
)

var MagicHeader = []byte("PWV1")

// Credential is a stored site login with its password in plaintext.
type Credential struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// StoredCredential is the on-disk form of a Credential; Password holds the
// ciphertext produced by EncryptCredential.
type StoredCredential struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// KeySource yields the symmetric key used for credential encryption,
// creating and persisting one on first use.
type KeySource interface {
	GetOrCreateKey() ([]byte, error)
}

func FileExists(path string) bool {
	if strings.TrimSpace(path) == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

func YesNo(ok bool) string {
	if ok {
		return "yes"
	}
	return "no"
}

func SortedKeys[V any](in map[string]V) []string {
	out := make([]string, 0, len(in))
	for k := range in {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

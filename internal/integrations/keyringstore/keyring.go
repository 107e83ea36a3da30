package keyringstore

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/zalando/go-keyring"

	"pwvault/internal/domain"
)

const (
	ServiceName    = "pwvault"
	DefaultAccount = "credential-key"

	BackendFile    = "file"
	BackendKeyring = "keyring"
)

var ErrKeyNotFound = errors.New("encryption key not found")

// Store is a KeySource that can also be inspected without creating a key.
type Store interface {
	domain.KeySource
	LoadKey() ([]byte, error)
	Describe() string
}

// New returns the key store for backend. keyPath is used by the file backend
// and account by the keyring backend.
func New(backend, keyPath, account string, log zerolog.Logger) (Store, error) {
	switch backend {
	case "", BackendFile:
		return &FileKeyStore{Path: keyPath, Log: log}, nil
	case BackendKeyring:
		if account == "" {
			account = DefaultAccount
		}
		return &KeyringKeyStore{Service: ServiceName, Account: account, Log: log}, nil
	default:
		return nil, fmt.Errorf("unknown key backend: %s", backend)
	}
}

// FileKeyStore keeps the raw key bytes in a single file.
type FileKeyStore struct {
	Path string
	Log  zerolog.Logger

	// write persists the key; nil means domain.WriteAtomic.
	write func(path string, data []byte, mode fs.FileMode) error
	// unsaved holds a generated key whose persist failed, so the session
	// keeps using the same key.
	unsaved []byte
}

func (s *FileKeyStore) Describe() string {
	return "file " + s.Path
}

func (s *FileKeyStore) LoadKey() ([]byte, error) {
	raw, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrKeyNotFound
		}
		return nil, &domain.Error{Kind: domain.ErrStorage, Op: "read key", Path: s.Path, Err: err}
	}
	return raw, nil
}

// GetOrCreateKey returns the stored key, creating it only when the key file
// does not exist. If persisting a new key fails the key is still returned
// alongside the error, and later calls reuse it and retry the persist.
func (s *FileKeyStore) GetOrCreateKey() ([]byte, error) {
	key, err := s.LoadKey()
	if err == nil {
		return key, nil
	}
	if !errors.Is(err, ErrKeyNotFound) {
		return nil, err
	}

	key = s.unsaved
	if key == nil {
		if key, err = generateKey(); err != nil {
			return nil, err
		}
	}
	if err := s.persist(key); err != nil {
		s.unsaved = key
		s.Log.Warn().Err(err).Str("path", s.Path).Msg("encryption key only held in memory")
		return key, &domain.Error{Kind: domain.ErrStorage, Op: "write key", Path: s.Path, Err: err}
	}
	s.unsaved = nil
	s.Log.Info().Str("path", s.Path).Str("fingerprint", Fingerprint(key)).Msg("created encryption key")
	return key, nil
}

func (s *FileKeyStore) persist(key []byte) error {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o700); err != nil {
		return err
	}
	write := s.write
	if write == nil {
		write = domain.WriteAtomic
	}
	return write(s.Path, key, 0o600)
}

// KeyringKeyStore keeps the key base64 encoded in the OS keyring.
type KeyringKeyStore struct {
	Service string
	Account string
	Log     zerolog.Logger

	unsaved []byte
}

func (s *KeyringKeyStore) Describe() string {
	return fmt.Sprintf("keyring %s/%s", s.Service, s.Account)
}

func (s *KeyringKeyStore) LoadKey() ([]byte, error) {
	raw, err := keyring.Get(s.Service, s.Account)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil, ErrKeyNotFound
		}
		return nil, &domain.Error{Kind: domain.ErrStorage, Op: "read key", Path: s.Describe(), Err: err}
	}
	b, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, &domain.Error{Kind: domain.ErrParse, Op: "read key", Path: s.Describe(), Err: errors.New("stored key has invalid format")}
	}
	return b, nil
}

func (s *KeyringKeyStore) GetOrCreateKey() ([]byte, error) {
	key, err := s.LoadKey()
	if err == nil {
		return key, nil
	}
	if !errors.Is(err, ErrKeyNotFound) {
		return nil, err
	}

	key = s.unsaved
	if key == nil {
		if key, err = generateKey(); err != nil {
			return nil, err
		}
	}
	if err := keyring.Set(s.Service, s.Account, base64.StdEncoding.EncodeToString(key)); err != nil {
		s.unsaved = key
		s.Log.Warn().Err(err).Str("keyring", s.Describe()).Msg("encryption key only held in memory")
		return key, &domain.Error{Kind: domain.ErrStorage, Op: "write key", Path: s.Describe(), Err: err}
	}
	s.unsaved = nil
	s.Log.Info().Str("keyring", s.Describe()).Str("fingerprint", Fingerprint(key)).Msg("created encryption key")
	return key, nil
}

func Fingerprint(key []byte) string {
	h := sha256.Sum256(key)
	return hex.EncodeToString(h[:6])
}

func generateKey() ([]byte, error) {
	k := make([]byte, domain.KeySize)
	if _, err := rand.Read(k); err != nil {
		return nil, fmt.Errorf("generate key: %w", err)
	}
	return k, nil
}

package domain

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

type credentialMap = map[string]StoredCredential

// LookupResult is the reason behind a Lookup outcome. Find collapses every
// result except LookupFound into "not found".
type LookupResult int

const (
	LookupFound LookupResult = iota
	LookupNoStore
	LookupUnreadableStore
	LookupCorruptStore
	LookupMissingSite
	LookupNoKey
	LookupUndecryptable
)

func (r LookupResult) String() string {
	switch r {
	case LookupFound:
		return "found"
	case LookupNoStore:
		return "no store"
	case LookupUnreadableStore:
		return "unreadable store"
	case LookupCorruptStore:
		return "corrupt store"
	case LookupMissingSite:
		return "missing site"
	case LookupNoKey:
		return "no key"
	case LookupUndecryptable:
		return "undecryptable"
	default:
		return fmt.Sprintf("LookupResult(%d)", int(r))
	}
}

// VaultStore is the credentials document: site -> username and encrypted
// password.
type VaultStore struct {
	doc  *jsonDocument[credentialMap]
	keys KeySource
	log  zerolog.Logger
}

func NewVaultStore(path string, keys KeySource, opts ...StoreOption) *VaultStore {
	o := buildStoreOptions(opts)
	return &VaultStore{
		doc:  newJSONDocument(path, func() credentialMap { return credentialMap{} }, o),
		keys: keys,
		log:  o.log,
	}
}

func (s *VaultStore) Path() string {
	return s.doc.path
}

// AddOrUpdate stores the credential for site, replacing any existing entry
// as a whole.
func (s *VaultStore) AddOrUpdate(site, username, password string) error {
	switch {
	case strings.TrimSpace(site) == "":
		return validationError("add credential", "site must not be empty")
	case strings.TrimSpace(username) == "":
		return validationError("add credential", "username must not be empty")
	case password == "":
		return validationError("add credential", "password must not be empty")
	}

	key, err := s.keys.GetOrCreateKey()
	if err != nil {
		return fmt.Errorf("add credential: %w", err)
	}
	ciphertext, err := EncryptCredential(password, key)
	if err != nil {
		return err
	}

	err = s.doc.update(func(m *credentialMap) (bool, error) {
		if *m == nil {
			*m = credentialMap{}
		}
		(*m)[site] = StoredCredential{Username: username, Password: ciphertext}
		return true, nil
	})
	if err != nil {
		return err
	}
	s.log.Debug().Str("site", site).Msg("credential stored")
	return nil
}

func (s *VaultStore) Find(site string) (Credential, bool) {
	cred, result := s.Lookup(site)
	return cred, result == LookupFound
}

// Lookup is Find with the reason for a miss kept.
func (s *VaultStore) Lookup(site string) (Credential, LookupResult) {
	entries, status := s.doc.read()
	switch status {
	case ReadMissing:
		return Credential{}, LookupNoStore
	case ReadUnreadable:
		return Credential{}, LookupUnreadableStore
	case ReadCorrupt:
		return Credential{}, LookupCorruptStore
	}

	stored, ok := entries[site]
	if !ok {
		return Credential{}, LookupMissingSite
	}

	key, err := s.keys.GetOrCreateKey()
	if err != nil {
		s.log.Warn().Err(err).Str("site", site).Msg("no usable key for lookup")
		return Credential{}, LookupNoKey
	}
	password, err := DecryptCredential(stored.Password, key)
	if err != nil {
		s.log.Warn().Err(err).Str("site", site).Msg("stored credential could not be decrypted")
		return Credential{}, LookupUndecryptable
	}
	return Credential{Username: stored.Username, Password: password}, LookupFound
}

// ListAll decrypts every entry. A missing or corrupt store lists as empty;
// any entry that fails to decrypt fails the whole call.
func (s *VaultStore) ListAll() (map[string]Credential, error) {
	entries, _ := s.doc.read()
	out := make(map[string]Credential, len(entries))
	if len(entries) == 0 {
		return out, nil
	}

	key, err := s.keys.GetOrCreateKey()
	if err != nil {
		return nil, fmt.Errorf("list credentials: %w", err)
	}
	for _, site := range SortedKeys(entries) {
		stored := entries[site]
		password, err := DecryptCredential(stored.Password, key)
		if err != nil {
			return nil, fmt.Errorf("list credentials: site %q: %w", site, err)
		}
		out[site] = Credential{Username: stored.Username, Password: password}
	}
	return out, nil
}

// Sites returns the stored site names in order without decrypting anything.
func (s *VaultStore) Sites() []string {
	entries, _ := s.doc.read()
	return SortedKeys(entries)
}

// Delete removes site and reports whether it was present.
func (s *VaultStore) Delete(site string) (bool, error) {
	if strings.TrimSpace(site) == "" {
		return false, validationError("delete credential", "site must not be empty")
	}

	removed := false
	err := s.doc.update(func(m *credentialMap) (bool, error) {
		if _, ok := (*m)[site]; !ok {
			return false, nil
		}
		delete(*m, site)
		removed = true
		return true, nil
	})
	if err != nil {
		return false, err
	}
	return removed, nil
}

package domain

import "strings"

// Account gates the vault behind the master password stored in the settings
// file.
type Account struct {
	settings *SettingsStore
	hasher   Hasher
}

func NewAccount(settings *SettingsStore, hasher Hasher) *Account {
	return &Account{settings: settings, hasher: hasher}
}

func (a *Account) Exists() bool {
	_, ok := a.settings.MasterHash()
	return ok
}

// Create stores the first master password. It refuses to replace an existing
// one; use Reset for that.
func (a *Account) Create(password string) error {
	if a.Exists() {
		return validationError("create master password", "a master password is already configured")
	}
	return a.store("create master password", password)
}

func (a *Account) Authenticate(password string) bool {
	record, ok := a.settings.MasterHash()
	if !ok {
		return false
	}
	return a.hasher.Verify(password, record)
}

// Reset replaces the master password in place after checking current.
func (a *Account) Reset(current, next string) error {
	if !a.Authenticate(current) {
		return validationError("reset master password", "current master password is incorrect")
	}
	return a.store("reset master password", next)
}

func (a *Account) store(op, password string) error {
	if violations := PolicyViolations(password); len(violations) > 0 {
		return validationError(op, "password "+strings.Join(violations, ", "))
	}
	record, err := a.hasher.Hash(password)
	if err != nil {
		return err
	}
	return a.settings.SetMasterHash(record)
}

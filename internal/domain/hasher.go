package domain

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// bcrypt ignores input past this many bytes, so longer passwords are refused.
const maxHashInput = 72

// Hasher produces salted bcrypt records for the master password.
type Hasher struct {
	Cost int
}

func NewHasher(cost int) Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return Hasher{Cost: cost}
}

func (h Hasher) Hash(password string) (string, error) {
	if len(password) > maxHashInput {
		return "", validationError("hash password", fmt.Sprintf("password longer than %d bytes", maxHashInput))
	}
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	out, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(out), nil
}

// Verify reports whether password matches record. A malformed record is a
// mismatch, and so is input Hash would have refused.
func (h Hasher) Verify(password, record string) bool {
	if record == "" || len(password) > maxHashInput {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(record), []byte(password)) == nil
}

package domain

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	DefaultGeneratedLength = 16
	MaxGeneratedLength     = 128
)

// GeneratePassword returns a random password drawn from the policy alphabet
// with at least one character of every required class, so the result always
// passes IsValidMasterPassword.
func GeneratePassword(length int) (string, error) {
	if length < MinPasswordLength || length > MaxGeneratedLength {
		return "", validationError("generate password", fmt.Sprintf("length must be between %d and %d", MinPasswordLength, MaxGeneratedLength))
	}

	classes := []string{lowerChars, upperChars, digitChars, SpecialChars}
	all := lowerChars + upperChars + digitChars + SpecialChars

	out := make([]byte, length)
	for i, class := range classes {
		c, err := randomChar(class)
		if err != nil {
			return "", err
		}
		out[i] = c
	}
	for i := len(classes); i < length; i++ {
		c, err := randomChar(all)
		if err != nil {
			return "", err
		}
		out[i] = c
	}

	// Fisher-Yates so the guaranteed characters are not always in front.
	for i := length - 1; i > 0; i-- {
		j, err := randomIndex(i + 1)
		if err != nil {
			return "", err
		}
		out[i], out[j] = out[j], out[i]
	}
	return string(out), nil
}

func randomChar(alphabet string) (byte, error) {
	idx, err := randomIndex(len(alphabet))
	if err != nil {
		return 0, err
	}
	return alphabet[idx], nil
}

func randomIndex(n int) (int, error) {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, fmt.Errorf("generate password: %w", err)
	}
	return int(v.Int64()), nil
}

package domain

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	MinPasswordLength = 8
	lowerChars        = "abcdefghijklmnopqrstuvwxyz"
	upperChars        = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digitChars        = "0123456789"
	SpecialChars      = "!@#$%^&*"
)

var allowedPasswordPattern = regexp.MustCompile(`^[A-Za-z0-9!@#$%^&*]+$`)

// IsValidMasterPassword reports whether password meets the master-password
// policy. Characters outside letters, digits and SpecialChars are rejected.
func IsValidMasterPassword(password string) bool {
	return len(PolicyViolations(password)) == 0
}

// PolicyViolations lists every rule password fails, in a stable order.
func PolicyViolations(password string) []string {
	var out []string
	if utf8.RuneCountInString(password) < MinPasswordLength {
		out = append(out, "must be at least 8 characters long")
	}
	if !strings.ContainsAny(password, lowerChars) {
		out = append(out, "must contain a lowercase letter")
	}
	if !strings.ContainsAny(password, upperChars) {
		out = append(out, "must contain an uppercase letter")
	}
	if !strings.ContainsAny(password, digitChars) {
		out = append(out, "must contain a digit")
	}
	if !strings.ContainsAny(password, SpecialChars) {
		out = append(out, "must contain one of "+SpecialChars)
	}
	if password != "" && !allowedPasswordPattern.MatchString(password) {
		out = append(out, "may only contain letters, digits and "+SpecialChars)
	}
	return out
}

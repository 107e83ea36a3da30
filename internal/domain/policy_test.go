package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidMasterPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{name: "valid", password: "validPassword123!", want: true},
		{name: "exactly eight", password: "validP1!", want: true},
		{name: "every special", password: "Aa1!@#$%^&*", want: true},
		{name: "too short", password: "vaP1!", want: false},
		{name: "no uppercase", password: "validpassword123!", want: false},
		{name: "no lowercase", password: "VALIDPASSWORD123!", want: false},
		{name: "only letters", password: "vAlIdPaSsWoRd", want: false},
		{name: "no number", password: "validPassword!", want: false},
		{name: "only numbers", password: "12345678", want: false},
		{name: "no special", password: "validPassword123", want: false},
		{name: "only special", password: "!@#$%^&*(", want: false},
		{name: "space", password: "ValidPassword  123!", want: false},
		{name: "tab", password: "ValidPassword\t123!", want: false},
		{name: "underscore outside set", password: "Valid_Password123!", want: false},
		{name: "non ascii", password: "Välid123!", want: false},
		{name: "empty", password: "", want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsValidMasterPassword(tc.password))
			assert.Equal(t, tc.want, len(PolicyViolations(tc.password)) == 0)
		})
	}
}

func TestPolicyViolationsNamesEachRule(t *testing.T) {
	got := PolicyViolations("abc def")
	assert.Contains(t, got, "must be at least 8 characters long")
	assert.Contains(t, got, "must contain an uppercase letter")
	assert.Contains(t, got, "must contain a digit")
	assert.Contains(t, got, "must contain one of !@#$%^&*")
	assert.Contains(t, got, "may only contain letters, digits and !@#$%^&*")
	assert.NotContains(t, got, "must contain a lowercase letter")
}

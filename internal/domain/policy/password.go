// Package policy holds pure business rules shared by validators and services.
package policy

import (
	"unicode/utf8"
)

// DefaultMinLength is the minimum password length when none is configured.
const DefaultMinLength = 8

// PasswordPolicy describes the strength rules a password must meet.
//
// With AllowSymbols unset a password may only contain ASCII letters and digits.
// This mirrors the rule the accounts were created under; enabling symbols is a
// stakeholder decision and is off by default.
type PasswordPolicy struct {
	MinLength    int
	AllowSymbols bool
}

// Default is the policy applied when nothing is configured.
var Default = PasswordPolicy{MinLength: DefaultMinLength}

// Valid reports whether password meets the policy.
func (p PasswordPolicy) Valid(password string) bool {
	return len(p.Violations(password)) == 0
}

// Violations lists the rules password breaks, in a stable order.
func (p PasswordPolicy) Violations(password string) []string {
	if password == "" {
		return []string{"required"}
	}

	minLength := p.MinLength
	if minLength <= 0 {
		minLength = DefaultMinLength
	}

	var (
		violations                   []string
		hasLower, hasUpper, hasDigit bool
		hasOther                     bool
	)

	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= '0' && r <= '9':
			hasDigit = true
		default:
			hasOther = true
		}
	}

	if utf8.RuneCountInString(password) < minLength {
		violations = append(violations, "min_length")
	}
	if !hasLower {
		violations = append(violations, "lowercase")
	}
	if !hasUpper {
		violations = append(violations, "uppercase")
	}
	if !hasDigit {
		violations = append(violations, "digit")
	}
	if hasOther && !p.AllowSymbols {
		violations = append(violations, "alphanumeric")
	}

	return violations
}

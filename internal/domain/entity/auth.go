package entity

import "github.com/google/uuid"

// AuthStatus is the outcome of a credential check.
type AuthStatus int

const (
	// AuthUnauthenticated means no user matched the email, or the password was wrong.
	AuthUnauthenticated AuthStatus = iota
	// AuthAuthenticated means the credentials matched an active user.
	AuthAuthenticated
	// AuthDisabled means the email belongs to a soft-deleted user.
	// It is reported without checking the password.
	AuthDisabled
)

// String returns the string representation of the AuthStatus.
func (s AuthStatus) String() string {
	switch s {
	case AuthAuthenticated:
		return "authenticated"
	case AuthDisabled:
		return "disabled"
	default:
		return "unauthenticated"
	}
}

// Identity is the public identity of an authenticated user.
type Identity struct {
	ID       uuid.UUID
	Email    string
	Name     string
	Username string
	Disabled bool
}

// AuthVerdict is the result of a login attempt. Bad credentials are a verdict, not an error.
type AuthVerdict struct {
	Status   AuthStatus
	Identity *Identity // Set only when Status is AuthAuthenticated.
	Roles    []string  // Role names, set only when Status is AuthAuthenticated.
}

// Authenticated reports whether the verdict grants access.
func (v *AuthVerdict) Authenticated() bool {
	return v != nil && v.Status == AuthAuthenticated
}

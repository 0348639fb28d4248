// Package identity abstracts the identity provider that owns accounts,
// credentials, and authorization claims. The console talks to it through the
// Provider interface so the backend can be swapped between the mongo-backed
// directory and an external Keycloak realm.
package identity

import (
	"context"
	"errors"
	"time"
)

var (
	ErrAccountNotFound    = errors.New("account not found")
	ErrEmailExists        = errors.New("an account with this email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// AdminClaim marks an account as a console administrator.
const AdminClaim = "admin"

// Account is an identity provider account. Claims are boolean authorization
// attributes; they are read into session tokens at authentication time, so a
// claim granted later is not visible to sessions already in flight.
type Account struct {
	UID           string
	Email         string
	DisplayName   string
	EmailVerified bool
	Claims        map[string]bool
	CreatedAt     time.Time
}

// IsAdmin reports whether the account carries the admin claim.
func (a *Account) IsAdmin() bool {
	return a.Claims[AdminClaim]
}

// NewAccount defines the parameters for creating an account.
type NewAccount struct {
	Email         string
	Password      string
	DisplayName   string
	EmailVerified bool
}

// Provider is the identity provider client used by the console. Every
// implementation must enforce email uniqueness and return ErrEmailExists for
// duplicates.
type Provider interface {
	// CreateAccount registers a new account and returns it with its
	// provider-generated UID.
	CreateAccount(ctx context.Context, params NewAccount) (*Account, error)

	// GetAccount looks an account up by UID.
	GetAccount(ctx context.Context, uid string) (*Account, error)

	// GetAccountByEmail looks an account up by its exact email.
	GetAccountByEmail(ctx context.Context, email string) (*Account, error)

	// Authenticate verifies the email/password pair and returns the account
	// with its current claims.
	Authenticate(ctx context.Context, email, password string) (*Account, error)

	// SetClaim sets one claim on the account, preserving all other claims
	// (read-merge-write, never a full overwrite).
	SetClaim(ctx context.Context, uid, claim string, value bool) (*Account, error)
}

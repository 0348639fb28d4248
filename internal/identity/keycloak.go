package identity

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Nerzal/gocloak/v13"
)

// Claims are stored as realm user attributes under this prefix so they never
// collide with attributes managed by other tooling.
const claimAttributePrefix = "claim."

// KeycloakConfig configures the Keycloak-backed identity provider.
type KeycloakConfig struct {
	BaseURL       string
	Realm         string
	AdminRealm    string
	AdminUser     string
	AdminPassword string
	ClientID      string
	ClientSecret  string
}

type keycloakProvider struct {
	client *gocloak.GoCloak
	cfg    KeycloakConfig
}

// NewKeycloakProvider creates an identity provider backed by a Keycloak
// realm, administered through the service account credentials in cfg.
func NewKeycloakProvider(cfg KeycloakConfig) Provider {
	return &keycloakProvider{
		client: gocloak.NewClient(cfg.BaseURL),
		cfg:    cfg,
	}
}

func (p *keycloakProvider) adminToken(ctx context.Context) (string, error) {
	token, err := p.client.LoginAdmin(ctx, p.cfg.AdminUser, p.cfg.AdminPassword, p.cfg.AdminRealm)
	if err != nil {
		return "", err
	}

	return token.AccessToken, nil
}

func (p *keycloakProvider) CreateAccount(ctx context.Context, params NewAccount) (*Account, error) {
	token, err := p.adminToken(ctx)
	if err != nil {
		return nil, err
	}

	uid, err := p.client.CreateUser(ctx, token, p.cfg.Realm, gocloak.User{
		Username:      gocloak.StringP(params.Email),
		Email:         gocloak.StringP(params.Email),
		FirstName:     gocloak.StringP(params.DisplayName),
		Enabled:       gocloak.BoolP(true),
		EmailVerified: gocloak.BoolP(params.EmailVerified),
	})
	if err != nil {
		var apiErr *gocloak.APIError
		if errors.As(err, &apiErr) && apiErr.Code == http.StatusConflict {
			return nil, ErrEmailExists
		}

		return nil, err
	}

	if err := p.client.SetPassword(ctx, token, uid, p.cfg.Realm, params.Password, false); err != nil {
		return nil, err
	}

	return &Account{
		UID:           uid,
		Email:         params.Email,
		DisplayName:   params.DisplayName,
		EmailVerified: params.EmailVerified,
		Claims:        map[string]bool{},
		CreatedAt:     time.Now(),
	}, nil
}

func (p *keycloakProvider) GetAccount(ctx context.Context, uid string) (*Account, error) {
	token, err := p.adminToken(ctx)
	if err != nil {
		return nil, err
	}

	user, err := p.client.GetUserByID(ctx, token, p.cfg.Realm, uid)
	if err != nil {
		var apiErr *gocloak.APIError
		if errors.As(err, &apiErr) && apiErr.Code == http.StatusNotFound {
			return nil, ErrAccountNotFound
		}

		return nil, err
	}

	return accountFromKeycloakUser(user), nil
}

func (p *keycloakProvider) GetAccountByEmail(ctx context.Context, email string) (*Account, error) {
	token, err := p.adminToken(ctx)
	if err != nil {
		return nil, err
	}

	users, err := p.client.GetUsers(ctx, token, p.cfg.Realm, gocloak.GetUsersParams{
		Email: gocloak.StringP(email),
		Exact: gocloak.BoolP(true),
	})
	if err != nil {
		return nil, err
	}

	if len(users) == 0 {
		return nil, ErrAccountNotFound
	}

	return accountFromKeycloakUser(users[0]), nil
}

func (p *keycloakProvider) Authenticate(ctx context.Context, email, password string) (*Account, error) {
	// Direct access grant against the realm client verifies the password.
	if _, err := p.client.Login(ctx, p.cfg.ClientID, p.cfg.ClientSecret, p.cfg.Realm, email, password); err != nil {
		var apiErr *gocloak.APIError
		if errors.As(err, &apiErr) && apiErr.Code == http.StatusUnauthorized {
			return nil, ErrInvalidCredentials
		}

		return nil, err
	}

	return p.GetAccountByEmail(ctx, email)
}

func (p *keycloakProvider) SetClaim(ctx context.Context, uid, claim string, value bool) (*Account, error) {
	token, err := p.adminToken(ctx)
	if err != nil {
		return nil, err
	}

	user, err := p.client.GetUserByID(ctx, token, p.cfg.Realm, uid)
	if err != nil {
		var apiErr *gocloak.APIError
		if errors.As(err, &apiErr) && apiErr.Code == http.StatusNotFound {
			return nil, ErrAccountNotFound
		}

		return nil, err
	}

	// Read-merge-write: only the requested claim attribute changes.
	attributes := map[string][]string{}
	if user.Attributes != nil {
		for key, values := range *user.Attributes {
			attributes[key] = values
		}
	}
	attributes[claimAttributePrefix+claim] = []string{strconv.FormatBool(value)}
	user.Attributes = &attributes

	if err := p.client.UpdateUser(ctx, token, p.cfg.Realm, *user); err != nil {
		return nil, err
	}

	return accountFromKeycloakUser(user), nil
}

func accountFromKeycloakUser(user *gocloak.User) *Account {
	account := &Account{
		Claims: map[string]bool{},
	}

	if user.ID != nil {
		account.UID = *user.ID
	}
	if user.Email != nil {
		account.Email = *user.Email
	}
	if user.FirstName != nil {
		account.DisplayName = *user.FirstName
	}
	if user.EmailVerified != nil {
		account.EmailVerified = *user.EmailVerified
	}
	if user.CreatedTimestamp != nil {
		account.CreatedAt = time.UnixMilli(*user.CreatedTimestamp)
	}

	if user.Attributes != nil {
		for key, values := range *user.Attributes {
			if !strings.HasPrefix(key, claimAttributePrefix) || len(values) == 0 {
				continue
			}

			value, err := strconv.ParseBool(values[0])
			if err != nil {
				continue
			}

			account.Claims[strings.TrimPrefix(key, claimAttributePrefix)] = value
		}
	}

	return account
}

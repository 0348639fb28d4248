package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
)

// Config holds the console API configuration, parsed from the environment at
// startup. Anything invalid is fatal before the server starts listening.
type Config struct {
	Env      string `env:"APP_ENV"   envDefault:"development"`
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8080"`

	Mongo    MongoConfig    `envPrefix:"MONGO_"`
	Token    TokenConfig    `envPrefix:"TOKEN_"`
	Identity IdentityConfig `envPrefix:"IDENTITY_"`
	Google   GoogleConfig   `envPrefix:"GOOGLE_"`
}

// MongoConfig configures the document store connection.
type MongoConfig struct {
	URI      string `env:"URI"      envDefault:"mongodb://localhost:27017"`
	Database string `env:"DATABASE" envDefault:"console"`
}

// TokenConfig configures session token signing.
type TokenConfig struct {
	Issuer                string        `env:"ISSUER"                   envDefault:"console-api"`
	AccessTokenSecret     string        `env:"ACCESS_SECRET"`
	RefreshTokenSecret    string        `env:"REFRESH_SECRET"`
	AccessTokenExpiresIn  time.Duration `env:"ACCESS_EXPIRES_IN"        envDefault:"15m"`
	RefreshTokenExpiresIn time.Duration `env:"REFRESH_EXPIRES_IN"       envDefault:"720h"`
}

// IdentityConfig selects and configures the identity provider backend.
type IdentityConfig struct {
	// Backend is "directory" (accounts collection in mongo) or "keycloak".
	Backend string `env:"BACKEND" envDefault:"directory"`

	KeycloakBaseURL       string `env:"KEYCLOAK_BASE_URL"`
	KeycloakRealm         string `env:"KEYCLOAK_REALM"          envDefault:"console"`
	KeycloakAdminRealm    string `env:"KEYCLOAK_ADMIN_REALM"    envDefault:"master"`
	KeycloakAdminUser     string `env:"KEYCLOAK_ADMIN_USER"`
	KeycloakAdminPassword string `env:"KEYCLOAK_ADMIN_PASSWORD"`
	KeycloakClientID      string `env:"KEYCLOAK_CLIENT_ID"`
	KeycloakClientSecret  string `env:"KEYCLOAK_CLIENT_SECRET"`
}

// GoogleConfig configures "sign in with Google" for the console.
type GoogleConfig struct {
	ClientID string `env:"CLIENT_ID"`
}

// New parses the configuration from environment variables.
func New(logger *zerolog.Logger) *Config {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to parse environment variables")
	}

	if err := cfg.validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	return &cfg
}

func (c *Config) validate() error {
	if c.Token.AccessTokenSecret == "" {
		return fmt.Errorf("missing TOKEN_ACCESS_SECRET environment variable")
	}
	if c.Token.RefreshTokenSecret == "" {
		return fmt.Errorf("missing TOKEN_REFRESH_SECRET environment variable")
	}

	switch c.Identity.Backend {
	case "directory":
	case "keycloak":
		if c.Identity.KeycloakBaseURL == "" {
			return fmt.Errorf("missing IDENTITY_KEYCLOAK_BASE_URL environment variable")
		}
		if c.Identity.KeycloakAdminUser == "" || c.Identity.KeycloakAdminPassword == "" {
			return fmt.Errorf("keycloak backend requires IDENTITY_KEYCLOAK_ADMIN_USER and IDENTITY_KEYCLOAK_ADMIN_PASSWORD")
		}
	default:
		return fmt.Errorf("unknown identity backend %q", c.Identity.Backend)
	}

	return nil
}

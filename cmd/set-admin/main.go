// Command set-admin grants the admin claim to an account out of band. The
// first admin has to be bootstrapped this way, because the callable endpoint
// that grants the claim is itself admin-only.
//
// It talks to the identity backend directly with infrastructure credentials,
// so it must be run from a trusted environment, never deployed.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/studentperks/console-api/internal/config"
	"github.com/studentperks/console-api/internal/identity"
)

// bootstrapConfig is the slice of the service configuration this tool needs:
// the identity backend and the document store, nothing else.
type bootstrapConfig struct {
	Mongo    config.MongoConfig    `envPrefix:"MONGO_"`
	Identity config.IdentityConfig `envPrefix:"IDENTITY_"`
}

func main() {
	uid := flag.String("uid", "", "account id to grant the admin claim to")
	email := flag.String("email", "", "account email to grant the admin claim to")
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()

	if *uid == "" && *email == "" {
		logger.Fatal().Msg("one of -uid or -email is required")
	}

	cfg, err := env.ParseAs[bootstrapConfig]()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to parse environment variables")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	provider := newIdentityProvider(ctx, &logger, &cfg)

	target := *uid
	if target == "" {
		account, err := provider.GetAccountByEmail(ctx, *email)
		if err != nil {
			logger.Fatal().Err(err).Str("email", *email).Msg("failed to look up account")
		}
		target = account.UID
	}

	account, err := provider.SetClaim(ctx, target, identity.AdminClaim, true)
	if err != nil {
		logger.Fatal().Err(err).Str("uid", target).Msg("failed to set admin claim")
	}

	logger.Info().Str("uid", account.UID).Str("email", account.Email).Msg("admin claim set")
	fmt.Println("Done. The user must sign in again before the new claim takes effect.")
}

func newIdentityProvider(ctx context.Context, logger *zerolog.Logger, cfg *bootstrapConfig) identity.Provider {
	if cfg.Identity.Backend == "keycloak" {
		return identity.NewKeycloakProvider(identity.KeycloakConfig{
			BaseURL:       cfg.Identity.KeycloakBaseURL,
			Realm:         cfg.Identity.KeycloakRealm,
			AdminRealm:    cfg.Identity.KeycloakAdminRealm,
			AdminUser:     cfg.Identity.KeycloakAdminUser,
			AdminPassword: cfg.Identity.KeycloakAdminPassword,
			ClientID:      cfg.Identity.KeycloakClientID,
			ClientSecret:  cfg.Identity.KeycloakClientSecret,
		})
	}

	client, err := mongo.Connect(options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to mongodb")
	}

	return identity.NewDirectoryProvider(ctx, logger, client.Database(cfg.Mongo.Database))
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/studentperks/console-api/internal/config"
	"github.com/studentperks/console-api/internal/handler"
	"github.com/studentperks/console-api/internal/identity"
	"github.com/studentperks/console-api/internal/repository"
	"github.com/studentperks/console-api/internal/usecase"
	"github.com/studentperks/console-api/shared/auth"
	"github.com/studentperks/console-api/shared/blob"
	"github.com/studentperks/console-api/shared/mailer"
	"github.com/studentperks/console-api/shared/provider"
	"github.com/studentperks/console-api/shared/registry"
	"github.com/studentperks/console-api/shared/validator"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg := config.New(&logger)

	if cfg.Env == "development" {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := mongo.Connect(options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.Error().Err(err).Msg("failed to disconnect from mongodb")
		}
	}()

	db := client.Database(cfg.Mongo.Database)

	identityProvider := newIdentityProvider(ctx, &logger, cfg, db)

	vendorRepo := repository.NewVendorMongoRepository(ctx, &logger, db)
	studentRepo := repository.NewStudentMongoRepository(ctx, &logger, db)
	offerRepo := repository.NewOfferMongoRepository(db)
	categoryRepo := repository.NewCategoryMongoRepository(db)
	bannerRepo := repository.NewBannerMongoRepository(db)
	redemptionRepo := repository.NewRedemptionMongoRepository(db)

	jwtAuth := auth.NewJWTAuthenticator(cfg.Token.Issuer, cfg.Token.Issuer)

	storage, err := blob.NewStorage(ctx)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to configure object storage")
	}
	if storage == nil {
		logger.Warn().Msg("S3_ENABLED not set, presigned uploads disabled")
	}

	smtpMailer := mailer.NewMailer(&logger)
	googleVerifier := provider.NewGoogleVerifier(cfg.Google.ClientID)

	provisionUsecase := usecase.NewProvisionUsecase(identityProvider, vendorRepo, smtpMailer, &logger)
	authUsecase := usecase.NewAuthUsecase(identityProvider, studentRepo, jwtAuth, cfg.Token, googleVerifier, &logger)
	vendorUsecase := usecase.NewVendorUsecase(vendorRepo)
	studentUsecase := usecase.NewStudentUsecase(studentRepo, redemptionRepo)
	offerUsecase := usecase.NewOfferUsecase(offerRepo)

	var uploader usecase.Uploader
	if storage != nil {
		uploader = storage
	}
	cmsUsecase := usecase.NewCMSUsecase(categoryRepo, bannerRepo, uploader)

	v, err := validator.New()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build payload validator")
	}

	h := handler.New(
		provisionUsecase,
		authUsecase,
		vendorUsecase,
		studentUsecase,
		offerUsecase,
		cmsUsecase,
		v,
		&logger,
	)

	router := h.Router(handler.Authenticator(jwtAuth, cfg.Token.AccessTokenSecret))

	registration, err := registry.Register(&logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to register with consul")
	}
	defer registration.Deregister()

	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cfg.HTTPAddr).Msg("console api listening")
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}

	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
}

func newIdentityProvider(
	ctx context.Context,
	logger *zerolog.Logger,
	cfg *config.Config,
	db *mongo.Database,
) identity.Provider {
	switch cfg.Identity.Backend {
	case "keycloak":
		return identity.NewKeycloakProvider(identity.KeycloakConfig{
			BaseURL:       cfg.Identity.KeycloakBaseURL,
			Realm:         cfg.Identity.KeycloakRealm,
			AdminRealm:    cfg.Identity.KeycloakAdminRealm,
			AdminUser:     cfg.Identity.KeycloakAdminUser,
			AdminPassword: cfg.Identity.KeycloakAdminPassword,
			ClientID:      cfg.Identity.KeycloakClientID,
			ClientSecret:  cfg.Identity.KeycloakClientSecret,
		})
	default:
		return identity.NewDirectoryProvider(ctx, logger, db)
	}
}

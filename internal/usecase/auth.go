package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"google.golang.org/api/oauth2/v2"

	"github.com/studentperks/console-api/internal/config"
	"github.com/studentperks/console-api/internal/identity"
	"github.com/studentperks/console-api/internal/model"
	"github.com/studentperks/console-api/internal/repository"
	"github.com/studentperks/console-api/shared/apperror"
	"github.com/studentperks/console-api/shared/auth"
)

// AuthUsecase handles console sign-in and student self-service signup.
type AuthUsecase interface {
	Login(ctx context.Context, params LoginParams) (*Tokens, error)
	LoginWithGoogle(ctx context.Context, idToken string) (*Tokens, error)
	Refresh(ctx context.Context, refreshToken string) (*Tokens, error)
	SignupStudent(ctx context.Context, params SignupStudentParams) (*Tokens, error)
}

// Tokens is the session token pair returned by every sign-in path.
type Tokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// LoginParams defines the parameters for email/password login.
type LoginParams struct {
	Email    string
	Password string
}

// SignupStudentParams defines the parameters for student signup.
type SignupStudentParams struct {
	Name     string
	Email    string
	Password string
}

// GoogleTokenVerifier validates a Google ID token and returns its payload.
type GoogleTokenVerifier interface {
	ValidateIDToken(ctx context.Context, idToken string) (*oauth2.Tokeninfo, error)
}

type authUsecase struct {
	provider       identity.Provider
	studentRepo    repository.StudentRepository
	jwtAuth        auth.JWTAuthenticator
	tokenCfg       config.TokenConfig
	googleVerifier GoogleTokenVerifier
	logger         *zerolog.Logger
}

func NewAuthUsecase(
	provider identity.Provider,
	studentRepo repository.StudentRepository,
	jwtAuth auth.JWTAuthenticator,
	tokenCfg config.TokenConfig,
	googleVerifier GoogleTokenVerifier,
	logger *zerolog.Logger,
) AuthUsecase {
	return &authUsecase{
		provider:       provider,
		studentRepo:    studentRepo,
		jwtAuth:        jwtAuth,
		tokenCfg:       tokenCfg,
		googleVerifier: googleVerifier,
		logger:         logger,
	}
}

func (u *authUsecase) Login(ctx context.Context, params LoginParams) (*Tokens, error) {
	if params.Email == "" || params.Password == "" {
		return nil, apperror.InvalidArgument("email and password are required")
	}

	account, err := u.provider.Authenticate(ctx, params.Email, params.Password)
	if err != nil {
		if errors.Is(err, identity.ErrInvalidCredentials) {
			return nil, apperror.Unauthenticated("invalid credentials")
		}

		return nil, apperror.Wrap(err, apperror.CodeInternal, "failed to authenticate")
	}

	return u.mintTokens(account)
}

func (u *authUsecase) LoginWithGoogle(ctx context.Context, idToken string) (*Tokens, error) {
	if idToken == "" {
		return nil, apperror.InvalidArgument("id_token is required")
	}

	tokenInfo, err := u.googleVerifier.ValidateIDToken(ctx, idToken)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodeUnauthenticated, "google token verification failed")
	}

	account, err := u.provider.GetAccountByEmail(ctx, tokenInfo.Email)
	if err != nil {
		if errors.Is(err, identity.ErrAccountNotFound) {
			return nil, apperror.NotFound("no account exists for this google identity")
		}

		return nil, apperror.Wrap(err, apperror.CodeInternal, "failed to look up account")
	}

	return u.mintTokens(account)
}

// Refresh re-reads the account's claims from the identity provider before
// minting the new pair, so refreshing behaves like re-authentication with
// respect to claim changes.
func (u *authUsecase) Refresh(ctx context.Context, refreshToken string) (*Tokens, error) {
	if refreshToken == "" {
		return nil, apperror.InvalidArgument("refresh_token is required")
	}

	claims := &auth.SessionClaims{}
	if _, err := u.jwtAuth.ValidateToken(refreshToken, u.tokenCfg.RefreshTokenSecret, claims); err != nil {
		return nil, apperror.Wrap(err, apperror.CodeUnauthenticated, "invalid refresh token")
	}

	account, err := u.provider.GetAccount(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, identity.ErrAccountNotFound) {
			return nil, apperror.Unauthenticated("account no longer exists")
		}

		return nil, apperror.Wrap(err, apperror.CodeInternal, "failed to look up account")
	}

	return u.mintTokens(account)
}

// SignupStudent follows the same two-step provisioning shape as vendor
// provisioning: account first, profile document second, no rollback on
// partial failure.
func (u *authUsecase) SignupStudent(ctx context.Context, params SignupStudentParams) (*Tokens, error) {
	if params.Name == "" || params.Email == "" || params.Password == "" {
		return nil, apperror.InvalidArgument("name, email, and password are required")
	}

	account, err := u.provider.CreateAccount(ctx, identity.NewAccount{
		Email:       params.Email,
		Password:    params.Password,
		DisplayName: params.Name,
	})
	if err != nil {
		if errors.Is(err, identity.ErrEmailExists) {
			return nil, apperror.Wrap(err, apperror.CodeAlreadyExists, err.Error())
		}

		return nil, apperror.Wrap(err, apperror.CodeInternal, "failed to create account")
	}

	if _, err := u.studentRepo.CreateStudent(ctx, &model.Student{
		ID:    account.UID,
		Name:  params.Name,
		Email: params.Email,
	}); err != nil {
		u.logger.Error().
			Err(err).
			Str("account_id", account.UID).
			Msg("student profile write failed, account left orphaned")

		return nil, apperror.Wrap(err, apperror.CodeInternal, "failed to create student profile")
	}

	u.logger.Info().Str("student_id", account.UID).Msg("student signed up")

	return u.mintTokens(account)
}

// mintTokens snapshots the account's current claims into a fresh token pair.
func (u *authUsecase) mintTokens(account *identity.Account) (*Tokens, error) {
	accessToken, err := u.generateToken(account, u.tokenCfg.AccessTokenSecret, u.tokenCfg.AccessTokenExpiresIn)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodeInternal, "failed to generate token")
	}

	refreshToken, err := u.generateToken(account, u.tokenCfg.RefreshTokenSecret, u.tokenCfg.RefreshTokenExpiresIn)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodeInternal, "failed to generate token")
	}

	return &Tokens{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (u *authUsecase) generateToken(account *identity.Account, secret string, expiresIn time.Duration) (string, error) {
	now := time.Now()
	claims := auth.SessionClaims{
		Name:  account.DisplayName,
		Admin: account.IsAdmin(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   account.UID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiresIn)),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    u.tokenCfg.Issuer,
			Audience:  jwt.ClaimStrings{u.tokenCfg.Issuer},
		},
	}

	return u.jwtAuth.GenerateToken(claims, secret)
}

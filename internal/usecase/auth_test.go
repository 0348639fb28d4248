package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"google.golang.org/api/oauth2/v2"

	"github.com/studentperks/console-api/internal/config"
	"github.com/studentperks/console-api/internal/identity"
	"github.com/studentperks/console-api/internal/model"
	"github.com/studentperks/console-api/internal/repository"
	"github.com/studentperks/console-api/shared/apperror"
	"github.com/studentperks/console-api/shared/auth"
)

type fakeStudentRepo struct {
	students  map[string]*model.Student
	createErr error
}

func newFakeStudentRepo() *fakeStudentRepo {
	return &fakeStudentRepo{students: map[string]*model.Student{}}
}

func (r *fakeStudentRepo) CreateStudent(_ context.Context, student *model.Student) (*model.Student, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}

	r.students[student.ID] = student

	return student, nil
}

func (r *fakeStudentRepo) GetStudent(_ context.Context, id string) (*model.Student, error) {
	student, ok := r.students[id]
	if !ok {
		return nil, errors.New("not found")
	}

	return student, nil
}

func (r *fakeStudentRepo) ListStudents(context.Context, repository.ListParams) ([]*model.Student, string, error) {
	return nil, "", nil
}

func (r *fakeStudentRepo) UpdateStudent(context.Context, string, repository.UpdateStudentParams) (*model.Student, error) {
	return nil, errors.New("not implemented")
}

type fakeGoogleVerifier struct {
	tokenInfo *oauth2.Tokeninfo
	err       error
}

func (v *fakeGoogleVerifier) ValidateIDToken(context.Context, string) (*oauth2.Tokeninfo, error) {
	if v.err != nil {
		return nil, v.err
	}

	return v.tokenInfo, nil
}

func testTokenConfig() config.TokenConfig {
	return config.TokenConfig{
		Issuer:                "console-api",
		AccessTokenSecret:     "access-secret",
		RefreshTokenSecret:    "refresh-secret",
		AccessTokenExpiresIn:  15 * time.Minute,
		RefreshTokenExpiresIn: time.Hour,
	}
}

func newAuthFixture(verifier GoogleTokenVerifier) (*fakeProvider, *fakeStudentRepo, AuthUsecase) {
	provider := newFakeProvider()
	studentRepo := newFakeStudentRepo()

	cfg := testTokenConfig()
	jwtAuth := auth.NewJWTAuthenticator(cfg.Issuer, cfg.Issuer)

	u := NewAuthUsecase(provider, studentRepo, jwtAuth, cfg, verifier, testLogger())

	return provider, studentRepo, u
}

func parseSessionClaims(t *testing.T, tokenString, secret string) *auth.SessionClaims {
	t.Helper()

	cfg := testTokenConfig()
	jwtAuth := auth.NewJWTAuthenticator(cfg.Issuer, cfg.Issuer)

	claims := &auth.SessionClaims{}
	_, err := jwtAuth.ValidateToken(tokenString, secret, claims)
	require.NoError(t, err)

	return claims
}

func TestLogin_Success(t *testing.T) {
	provider, _, u := newAuthFixture(nil)

	account, err := provider.CreateAccount(context.Background(), identity.NewAccount{
		Email:       "admin@example.com",
		Password:    "secret123",
		DisplayName: "Admin",
	})
	require.NoError(t, err)

	tokens, err := u.Login(context.Background(), LoginParams{
		Email:    "admin@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	require.NotEmpty(t, tokens.AccessToken)
	require.NotEmpty(t, tokens.RefreshToken)

	claims := parseSessionClaims(t, tokens.AccessToken, "access-secret")
	require.Equal(t, account.UID, claims.Subject)
	require.Equal(t, "Admin", claims.Name)
	require.False(t, claims.Admin)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	provider, _, u := newAuthFixture(nil)

	_, err := provider.CreateAccount(context.Background(), identity.NewAccount{
		Email:    "admin@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	_, err = u.Login(context.Background(), LoginParams{
		Email:    "admin@example.com",
		Password: "wrong",
	})

	require.Error(t, err)
	require.Equal(t, apperror.CodeUnauthenticated, apperror.CodeOf(err))
}

// Claims are snapshotted into the token at issuance. Granting the admin claim
// afterwards does not change tokens already in flight; refreshing picks the
// new claim up because refresh re-reads the account.
func TestTokenClaimsAreASnapshot(t *testing.T) {
	provider, _, u := newAuthFixture(nil)

	account, err := provider.CreateAccount(context.Background(), identity.NewAccount{
		Email:    "user@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	tokens, err := u.Login(context.Background(), LoginParams{
		Email:    "user@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	_, err = provider.SetClaim(context.Background(), account.UID, identity.AdminClaim, true)
	require.NoError(t, err)

	// The outstanding access token still carries the old claim set.
	claims := parseSessionClaims(t, tokens.AccessToken, "access-secret")
	require.False(t, claims.Admin)

	refreshed, err := u.Refresh(context.Background(), tokens.RefreshToken)
	require.NoError(t, err)

	claims = parseSessionClaims(t, refreshed.AccessToken, "access-secret")
	require.True(t, claims.Admin)
}

func TestRefresh_RejectsAccessToken(t *testing.T) {
	provider, _, u := newAuthFixture(nil)

	_, err := provider.CreateAccount(context.Background(), identity.NewAccount{
		Email:    "user@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	tokens, err := u.Login(context.Background(), LoginParams{
		Email:    "user@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	_, err = u.Refresh(context.Background(), tokens.AccessToken)

	require.Error(t, err)
	require.Equal(t, apperror.CodeUnauthenticated, apperror.CodeOf(err))
}

func TestLoginWithGoogle_NoAccount(t *testing.T) {
	_, _, u := newAuthFixture(&fakeGoogleVerifier{
		tokenInfo: &oauth2.Tokeninfo{Email: "nobody@example.com"},
	})

	_, err := u.LoginWithGoogle(context.Background(), "some-google-token")

	require.Error(t, err)
	require.Equal(t, apperror.CodeNotFound, apperror.CodeOf(err))
}

func TestLoginWithGoogle_Success(t *testing.T) {
	verifier := &fakeGoogleVerifier{
		tokenInfo: &oauth2.Tokeninfo{Email: "admin@example.com"},
	}
	provider, _, u := newAuthFixture(verifier)

	account, err := provider.CreateAccount(context.Background(), identity.NewAccount{
		Email:    "admin@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	_, err = provider.SetClaim(context.Background(), account.UID, identity.AdminClaim, true)
	require.NoError(t, err)

	tokens, err := u.LoginWithGoogle(context.Background(), "some-google-token")
	require.NoError(t, err)

	claims := parseSessionClaims(t, tokens.AccessToken, "access-secret")
	require.Equal(t, account.UID, claims.Subject)
	require.True(t, claims.Admin)
}

func TestSignupStudent_Success(t *testing.T) {
	provider, studentRepo, u := newAuthFixture(nil)

	tokens, err := u.SignupStudent(context.Background(), SignupStudentParams{
		Name:     "Sara",
		Email:    "sara@university.edu",
		Password: "secret123",
	})
	require.NoError(t, err)

	claims := parseSessionClaims(t, tokens.AccessToken, "access-secret")

	account := provider.accounts[claims.Subject]
	require.NotNil(t, account)
	require.False(t, account.EmailVerified)

	student := studentRepo.students[claims.Subject]
	require.NotNil(t, student)
	require.Equal(t, "Sara", student.Name)
}

func TestSignupStudent_ProfileWriteFailureLeavesAccount(t *testing.T) {
	provider, studentRepo, u := newAuthFixture(nil)
	studentRepo.createErr = errors.New("write conflict")

	_, err := u.SignupStudent(context.Background(), SignupStudentParams{
		Name:     "Sara",
		Email:    "sara@university.edu",
		Password: "secret123",
	})

	require.Error(t, err)
	require.Equal(t, apperror.CodeInternal, apperror.CodeOf(err))

	require.Len(t, provider.accounts, 1)
	require.Empty(t, studentRepo.students)
}

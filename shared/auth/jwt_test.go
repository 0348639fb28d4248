package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func sessionClaims(uid string, admin bool, expiresIn time.Duration) SessionClaims {
	now := time.Now()

	return SessionClaims{
		Admin: admin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uid,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiresIn)),
			Issuer:    "console-api",
			Audience:  jwt.ClaimStrings{"console-api"},
		},
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	jwtAuth := NewJWTAuthenticator("console-api", "console-api")

	tokenString, err := jwtAuth.GenerateToken(sessionClaims("uid-1", true, time.Hour), "secret")
	require.NoError(t, err)

	claims := &SessionClaims{}
	_, err = jwtAuth.ValidateToken(tokenString, "secret", claims)
	require.NoError(t, err)

	require.Equal(t, "uid-1", claims.Subject)
	require.True(t, claims.Admin)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	jwtAuth := NewJWTAuthenticator("console-api", "console-api")

	tokenString, err := jwtAuth.GenerateToken(sessionClaims("uid-1", false, time.Hour), "secret")
	require.NoError(t, err)

	_, err = jwtAuth.ValidateToken(tokenString, "other-secret", &SessionClaims{})
	require.Error(t, err)
}

func TestValidateToken_Expired(t *testing.T) {
	jwtAuth := NewJWTAuthenticator("console-api", "console-api")

	tokenString, err := jwtAuth.GenerateToken(sessionClaims("uid-1", false, -time.Minute), "secret")
	require.NoError(t, err)

	_, err = jwtAuth.ValidateToken(tokenString, "secret", &SessionClaims{})
	require.Error(t, err)
}

func TestValidateToken_WrongAudience(t *testing.T) {
	issued := NewJWTAuthenticator("other-service", "other-service")
	verifier := NewJWTAuthenticator("console-api", "console-api")

	now := time.Now()
	tokenString, err := issued.GenerateToken(SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "uid-1",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			Issuer:    "other-service",
			Audience:  jwt.ClaimStrings{"other-service"},
		},
	}, "secret")
	require.NoError(t, err)

	_, err = verifier.ValidateToken(tokenString, "secret", &SessionClaims{})
	require.Error(t, err)
}

func TestValidateToken_Malformed(t *testing.T) {
	jwtAuth := NewJWTAuthenticator("console-api", "console-api")

	_, err := jwtAuth.ValidateToken("not.a.jwt", "secret", &SessionClaims{})
	require.Error(t, err)
}

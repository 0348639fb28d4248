package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/studentperks/console-api/internal/identity"
	"github.com/studentperks/console-api/internal/model"
	"github.com/studentperks/console-api/internal/repository"
	"github.com/studentperks/console-api/internal/usecase"
	"github.com/studentperks/console-api/shared/auth"
	"github.com/studentperks/console-api/shared/validator"
)

const (
	testIssuer       = "console-api"
	testAccessSecret = "access-secret"
)

type memoryProvider struct {
	accounts map[string]*identity.Account
}

func (p *memoryProvider) CreateAccount(_ context.Context, params identity.NewAccount) (*identity.Account, error) {
	for _, account := range p.accounts {
		if account.Email == params.Email {
			return nil, identity.ErrEmailExists
		}
	}

	account := &identity.Account{
		UID:           fmt.Sprintf("uid-%d", len(p.accounts)+1),
		Email:         params.Email,
		DisplayName:   params.DisplayName,
		EmailVerified: params.EmailVerified,
		Claims:        map[string]bool{},
	}
	p.accounts[account.UID] = account

	return account, nil
}

func (p *memoryProvider) GetAccount(_ context.Context, uid string) (*identity.Account, error) {
	account, ok := p.accounts[uid]
	if !ok {
		return nil, identity.ErrAccountNotFound
	}

	return account, nil
}

func (p *memoryProvider) GetAccountByEmail(_ context.Context, email string) (*identity.Account, error) {
	for _, account := range p.accounts {
		if account.Email == email {
			return account, nil
		}
	}

	return nil, identity.ErrAccountNotFound
}

func (p *memoryProvider) Authenticate(context.Context, string, string) (*identity.Account, error) {
	return nil, identity.ErrInvalidCredentials
}

func (p *memoryProvider) SetClaim(_ context.Context, uid, claim string, value bool) (*identity.Account, error) {
	account, ok := p.accounts[uid]
	if !ok {
		return nil, identity.ErrAccountNotFound
	}

	account.Claims[claim] = value

	return account, nil
}

type memoryVendorRepo struct {
	vendors map[string]*model.Vendor
}

func (r *memoryVendorRepo) CreateVendor(_ context.Context, vendor *model.Vendor) (*model.Vendor, error) {
	r.vendors[vendor.ID] = vendor
	return vendor, nil
}

func (r *memoryVendorRepo) GetVendor(context.Context, string) (*model.Vendor, error) {
	return nil, fmt.Errorf("not implemented")
}

func (r *memoryVendorRepo) ListVendors(context.Context, repository.ListParams) ([]*model.Vendor, string, error) {
	return nil, "", nil
}

func (r *memoryVendorRepo) UpdateVendor(context.Context, string, repository.UpdateVendorParams) (*model.Vendor, error) {
	return nil, fmt.Errorf("not implemented")
}

func newTestRouter(t *testing.T) (http.Handler, *memoryProvider) {
	t.Helper()

	logger := zerolog.Nop()

	provider := &memoryProvider{accounts: map[string]*identity.Account{}}
	vendorRepo := &memoryVendorRepo{vendors: map[string]*model.Vendor{}}

	v, err := validator.New()
	require.NoError(t, err)

	h := New(
		usecase.NewProvisionUsecase(provider, vendorRepo, nil, &logger),
		nil,
		nil,
		nil,
		nil,
		nil,
		v,
		&logger,
	)

	jwtAuth := auth.NewJWTAuthenticator(testIssuer, testIssuer)

	return h.Router(Authenticator(jwtAuth, testAccessSecret)), provider
}

func mintToken(t *testing.T, uid string, admin bool) string {
	t.Helper()

	jwtAuth := auth.NewJWTAuthenticator(testIssuer, testIssuer)

	now := time.Now()
	tokenString, err := jwtAuth.GenerateToken(auth.SessionClaims{
		Admin: admin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uid,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			Issuer:    testIssuer,
			Audience:  jwt.ClaimStrings{testIssuer},
		},
	}, testAccessSecret)
	require.NoError(t, err)

	return tokenString
}

func doJSON(t *testing.T, router http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var payload struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))

	return payload.Error.Code
}

func TestCreateVendorUser_NoToken(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/v1/calls/createVendorUser", "",
		`{"name":"Cafe","email":"cafe@example.com","password":"secret123"}`)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "unauthenticated", errorCode(t, rec))
}

// A signed-in non-admin sending a bad payload gets the permission error, not
// the validation error.
func TestCreateVendorUser_NonAdminGetsPermissionDenied(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/v1/calls/createVendorUser",
		mintToken(t, "vendor-1", false), `{}`)

	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Equal(t, "permission-denied", errorCode(t, rec))
}

func TestCreateVendorUser_AdminMissingFields(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/v1/calls/createVendorUser",
		mintToken(t, "admin-1", true), `{"name":"Cafe"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "invalid-argument", errorCode(t, rec))
}

// Unknown fields are rejected instead of silently dropped, so a client
// sending a renamed field cannot end up provisioning a half-empty vendor.
func TestCreateVendorUser_UnknownFieldRejected(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/v1/calls/createVendorUser",
		mintToken(t, "admin-1", true),
		`{"vendorName":"Cafe","email":"cafe@example.com","password":"secret123"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "invalid-argument", errorCode(t, rec))
}

func TestCreateVendorUser_Success(t *testing.T) {
	router, provider := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/v1/calls/createVendorUser",
		mintToken(t, "admin-1", true),
		`{"name":"Campus Cafe","email":"cafe@example.com","password":"secret123"}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		UID     string `json:"uid"`
		Success bool   `json:"success"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.True(t, payload.Success)
	require.NotEmpty(t, payload.UID)

	account, ok := provider.accounts[payload.UID]
	require.True(t, ok)
	require.True(t, account.EmailVerified)
}

func TestCreateVendorUser_DuplicateEmail(t *testing.T) {
	router, _ := newTestRouter(t)

	body := `{"name":"Campus Cafe","email":"cafe@example.com","password":"secret123"}`
	token := mintToken(t, "admin-1", true)

	rec := doJSON(t, router, http.MethodPost, "/v1/calls/createVendorUser", token, body)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/v1/calls/createVendorUser", token, body)
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Equal(t, "already-exists", errorCode(t, rec))
}

func TestSetAdminClaim_EndToEnd(t *testing.T) {
	router, provider := newTestRouter(t)

	account, err := provider.CreateAccount(context.Background(), identity.NewAccount{
		Email: "target@example.com",
	})
	require.NoError(t, err)

	rec := doJSON(t, router, http.MethodPost, "/v1/calls/setAdminClaim",
		mintToken(t, "admin-1", true),
		fmt.Sprintf(`{"uid":%q}`, account.UID))

	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Success bool   `json:"success"`
		UID     string `json:"uid"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.True(t, payload.Success)
	require.Equal(t, account.UID, payload.UID)

	require.True(t, provider.accounts[account.UID].Claims[identity.AdminClaim])
}

func TestSetAdminClaim_NonAdmin(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/v1/calls/setAdminClaim",
		mintToken(t, "vendor-1", false), `{"uid":"anyone"}`)

	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Equal(t, "permission-denied", errorCode(t, rec))
}

func TestSetAdminClaim_UnknownAccount(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/v1/calls/setAdminClaim",
		mintToken(t, "admin-1", true), `{"uid":"no-such-uid"}`)

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "not-found", errorCode(t, rec))
}

// An expired bearer token is treated as no token at all.
func TestAuthenticator_ExpiredToken(t *testing.T) {
	router, _ := newTestRouter(t)

	jwtAuth := auth.NewJWTAuthenticator(testIssuer, testIssuer)

	now := time.Now()
	expired, err := jwtAuth.GenerateToken(auth.SessionClaims{
		Admin: true,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "admin-1",
			IssuedAt:  jwt.NewNumericDate(now.Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(now.Add(-time.Hour)),
			Issuer:    testIssuer,
			Audience:  jwt.ClaimStrings{testIssuer},
		},
	}, testAccessSecret)
	require.NoError(t, err)

	rec := doJSON(t, router, http.MethodPost, "/v1/calls/setAdminClaim", expired, `{"uid":"x"}`)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "unauthenticated", errorCode(t, rec))
}

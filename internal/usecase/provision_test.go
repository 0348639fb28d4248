package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/studentperks/console-api/internal/identity"
	"github.com/studentperks/console-api/internal/model"
	"github.com/studentperks/console-api/internal/repository"
	"github.com/studentperks/console-api/shared/apperror"
	"github.com/studentperks/console-api/shared/auth"
)

// --- fakes shared by the usecase tests ---

type fakeProvider struct {
	accounts  map[string]*identity.Account
	passwords map[string]string

	createErr   error
	setClaimErr error
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		accounts:  map[string]*identity.Account{},
		passwords: map[string]string{},
	}
}

func (p *fakeProvider) CreateAccount(_ context.Context, params identity.NewAccount) (*identity.Account, error) {
	if p.createErr != nil {
		return nil, p.createErr
	}

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
	p.passwords[account.UID] = params.Password

	return account, nil
}

func (p *fakeProvider) GetAccount(_ context.Context, uid string) (*identity.Account, error) {
	account, ok := p.accounts[uid]
	if !ok {
		return nil, identity.ErrAccountNotFound
	}

	return account, nil
}

func (p *fakeProvider) GetAccountByEmail(_ context.Context, email string) (*identity.Account, error) {
	for _, account := range p.accounts {
		if account.Email == email {
			return account, nil
		}
	}

	return nil, identity.ErrAccountNotFound
}

func (p *fakeProvider) Authenticate(_ context.Context, email, password string) (*identity.Account, error) {
	for uid, account := range p.accounts {
		if account.Email == email && p.passwords[uid] == password {
			return account, nil
		}
	}

	return nil, identity.ErrInvalidCredentials
}

func (p *fakeProvider) SetClaim(_ context.Context, uid, claim string, value bool) (*identity.Account, error) {
	if p.setClaimErr != nil {
		return nil, p.setClaimErr
	}

	account, ok := p.accounts[uid]
	if !ok {
		return nil, identity.ErrAccountNotFound
	}

	account.Claims[claim] = value

	return account, nil
}

type fakeVendorRepo struct {
	vendors   map[string]*model.Vendor
	createErr error
}

func newFakeVendorRepo() *fakeVendorRepo {
	return &fakeVendorRepo{vendors: map[string]*model.Vendor{}}
}

func (r *fakeVendorRepo) CreateVendor(_ context.Context, vendor *model.Vendor) (*model.Vendor, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}

	r.vendors[vendor.ID] = vendor

	return vendor, nil
}

func (r *fakeVendorRepo) GetVendor(_ context.Context, id string) (*model.Vendor, error) {
	vendor, ok := r.vendors[id]
	if !ok {
		return nil, errors.New("not found")
	}

	return vendor, nil
}

func (r *fakeVendorRepo) ListVendors(context.Context, repository.ListParams) ([]*model.Vendor, string, error) {
	return nil, "", nil
}

func (r *fakeVendorRepo) UpdateVendor(context.Context, string, repository.UpdateVendorParams) (*model.Vendor, error) {
	return nil, errors.New("not implemented")
}

type fakeMailer struct {
	sentTo []string
	err    error
}

func (m *fakeMailer) SendHTML(to []string, _, _ string) error {
	if m.err != nil {
		return m.err
	}

	m.sentTo = append(m.sentTo, to...)

	return nil
}

func testLogger() *zerolog.Logger {
	logger := zerolog.Nop()
	return &logger
}

var (
	adminCaller   = auth.Principal{UID: "admin-1", Admin: true}
	vendorCaller  = auth.Principal{UID: "vendor-1"}
	anonymousUser = auth.Principal{}
)

func newProvisionFixture() (*fakeProvider, *fakeVendorRepo, *fakeMailer, ProvisionUsecase) {
	provider := newFakeProvider()
	vendorRepo := newFakeVendorRepo()
	mailer := &fakeMailer{}
	u := NewProvisionUsecase(provider, vendorRepo, mailer, testLogger())

	return provider, vendorRepo, mailer, u
}

// --- CreateVendorAccount ---

func TestCreateVendorAccount_Unauthenticated(t *testing.T) {
	provider, vendorRepo, _, u := newProvisionFixture()

	_, err := u.CreateVendorAccount(context.Background(), anonymousUser, CreateVendorAccountParams{})

	require.Error(t, err)
	require.Equal(t, apperror.CodeUnauthenticated, apperror.CodeOf(err))

	// The call must be rejected before any side effect.
	require.Empty(t, provider.accounts)
	require.Empty(t, vendorRepo.vendors)
}

// A non-admin with an invalid payload must be told about the missing
// permission, not about the payload.
func TestCreateVendorAccount_NonAdminBeforeValidation(t *testing.T) {
	_, _, _, u := newProvisionFixture()

	_, err := u.CreateVendorAccount(context.Background(), vendorCaller, CreateVendorAccountParams{})

	require.Error(t, err)
	require.Equal(t, apperror.CodePermissionDenied, apperror.CodeOf(err))
}

func TestCreateVendorAccount_MissingFields(t *testing.T) {
	_, _, _, u := newProvisionFixture()

	for _, params := range []CreateVendorAccountParams{
		{},
		{Name: "Cafe"},
		{Name: "Cafe", Email: "cafe@example.com"},
		{Email: "cafe@example.com", Password: "secret123"},
	} {
		_, err := u.CreateVendorAccount(context.Background(), adminCaller, params)

		require.Error(t, err)
		require.Equal(t, apperror.CodeInvalidArgument, apperror.CodeOf(err))
	}
}

func TestCreateVendorAccount_Success(t *testing.T) {
	provider, vendorRepo, mailer, u := newProvisionFixture()

	uid, err := u.CreateVendorAccount(context.Background(), adminCaller, CreateVendorAccountParams{
		Name:     "Campus Cafe",
		Email:    "cafe@example.com",
		Password: "secret123",
	})

	require.NoError(t, err)
	require.NotEmpty(t, uid)

	account := provider.accounts[uid]
	require.NotNil(t, account)
	require.True(t, account.EmailVerified)
	require.False(t, account.IsAdmin())

	vendor := vendorRepo.vendors[uid]
	require.NotNil(t, vendor)
	require.Equal(t, "Campus Cafe", vendor.Name)
	require.Equal(t, "cafe@example.com", vendor.Email)

	require.Equal(t, []string{"cafe@example.com"}, mailer.sentTo)
}

func TestCreateVendorAccount_DuplicateEmail(t *testing.T) {
	_, _, _, u := newProvisionFixture()

	params := CreateVendorAccountParams{
		Name:     "Campus Cafe",
		Email:    "cafe@example.com",
		Password: "secret123",
	}

	_, err := u.CreateVendorAccount(context.Background(), adminCaller, params)
	require.NoError(t, err)

	_, err = u.CreateVendorAccount(context.Background(), adminCaller, params)
	require.Error(t, err)
	require.Equal(t, apperror.CodeAlreadyExists, apperror.CodeOf(err))
}

// When the profile write fails after the account was created, the call fails
// but the account stays behind. There is no rollback.
func TestCreateVendorAccount_ProfileWriteFailureLeavesAccount(t *testing.T) {
	provider, vendorRepo, _, u := newProvisionFixture()
	vendorRepo.createErr = errors.New("write conflict")

	_, err := u.CreateVendorAccount(context.Background(), adminCaller, CreateVendorAccountParams{
		Name:     "Campus Cafe",
		Email:    "cafe@example.com",
		Password: "secret123",
	})

	require.Error(t, err)
	require.Equal(t, apperror.CodeInternal, apperror.CodeOf(err))

	require.Len(t, provider.accounts, 1)
	require.Empty(t, vendorRepo.vendors)
}

func TestCreateVendorAccount_MailFailureDoesNotFailCall(t *testing.T) {
	provider := newFakeProvider()
	vendorRepo := newFakeVendorRepo()
	u := NewProvisionUsecase(provider, vendorRepo, &fakeMailer{err: errors.New("smtp down")}, testLogger())

	uid, err := u.CreateVendorAccount(context.Background(), adminCaller, CreateVendorAccountParams{
		Name:     "Campus Cafe",
		Email:    "cafe@example.com",
		Password: "secret123",
	})

	require.NoError(t, err)
	require.NotEmpty(t, uid)
}

// --- SetAdminClaim ---

func TestSetAdminClaim_NonAdmin(t *testing.T) {
	provider, _, _, u := newProvisionFixture()

	account, err := provider.CreateAccount(context.Background(), identity.NewAccount{
		Email:    "target@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	_, err = u.SetAdminClaim(context.Background(), vendorCaller, account.UID)

	require.Error(t, err)
	require.Equal(t, apperror.CodePermissionDenied, apperror.CodeOf(err))
	require.False(t, provider.accounts[account.UID].IsAdmin(), "claims must be unchanged")
}

func TestSetAdminClaim_MissingUID(t *testing.T) {
	_, _, _, u := newProvisionFixture()

	_, err := u.SetAdminClaim(context.Background(), adminCaller, "")

	require.Error(t, err)
	require.Equal(t, apperror.CodeInvalidArgument, apperror.CodeOf(err))
}

func TestSetAdminClaim_UnknownAccount(t *testing.T) {
	_, _, _, u := newProvisionFixture()

	_, err := u.SetAdminClaim(context.Background(), adminCaller, "no-such-uid")

	require.Error(t, err)
	require.Equal(t, apperror.CodeNotFound, apperror.CodeOf(err))
}

func TestSetAdminClaim_MergesWithExistingClaims(t *testing.T) {
	provider, _, _, u := newProvisionFixture()

	account, err := provider.CreateAccount(context.Background(), identity.NewAccount{
		Email:    "vendor@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	_, err = provider.SetClaim(context.Background(), account.UID, "vendor", true)
	require.NoError(t, err)

	uid, err := u.SetAdminClaim(context.Background(), adminCaller, account.UID)
	require.NoError(t, err)
	require.Equal(t, account.UID, uid)

	updated := provider.accounts[account.UID]
	require.True(t, updated.Claims[identity.AdminClaim])
	require.True(t, updated.Claims["vendor"], "existing claims must survive the grant")
}

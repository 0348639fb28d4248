package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/studentperks/console-api/internal/identity"
	"github.com/studentperks/console-api/internal/model"
	"github.com/studentperks/console-api/internal/repository"
	"github.com/studentperks/console-api/shared/apperror"
	"github.com/studentperks/console-api/shared/auth"
)

// ProvisionUsecase exposes the two privileged provisioning operations. Both
// are restricted to authenticated admin callers; the authorization checks run
// server-side before any input validation or side effect.
type ProvisionUsecase interface {
	CreateVendorAccount(ctx context.Context, caller auth.Principal, params CreateVendorAccountParams) (string, error)
	SetAdminClaim(ctx context.Context, caller auth.Principal, targetUID string) (string, error)
}

// CreateVendorAccountParams defines the input for vendor provisioning.
type CreateVendorAccountParams struct {
	Name     string
	Email    string
	Password string
}

// InviteMailer sends the onboarding email to a freshly provisioned vendor.
type InviteMailer interface {
	SendHTML(to []string, subject, htmlBody string) error
}

type provisionUsecase struct {
	provider   identity.Provider
	vendorRepo repository.VendorRepository
	mailer     InviteMailer
	logger     *zerolog.Logger
}

func NewProvisionUsecase(
	provider identity.Provider,
	vendorRepo repository.VendorRepository,
	mailer InviteMailer,
	logger *zerolog.Logger,
) ProvisionUsecase {
	return &provisionUsecase{
		provider:   provider,
		vendorRepo: vendorRepo,
		mailer:     mailer,
		logger:     logger,
	}
}

// CreateVendorAccount creates an identity provider account for a vendor and
// writes the vendor profile document keyed by the new account id. The account
// is created pre-verified: vendors are onboarded manually by an admin, so
// email verification is skipped.
//
// The two writes are not transactional. If the profile write fails after the
// account was created, the account is left orphaned; it is logged for manual
// sweep and no rollback is attempted.
func (u *provisionUsecase) CreateVendorAccount(
	ctx context.Context,
	caller auth.Principal,
	params CreateVendorAccountParams,
) (string, error) {
	if err := requireAdmin(caller); err != nil {
		return "", err
	}

	if params.Name == "" || params.Email == "" || params.Password == "" {
		return "", apperror.InvalidArgument("name, email, and password are required")
	}

	account, err := u.provider.CreateAccount(ctx, identity.NewAccount{
		Email:         params.Email,
		Password:      params.Password,
		DisplayName:   params.Name,
		EmailVerified: true,
	})
	if err != nil {
		if errors.Is(err, identity.ErrEmailExists) {
			return "", apperror.Wrap(err, apperror.CodeAlreadyExists, err.Error())
		}

		return "", apperror.Wrap(err, apperror.CodeInternal, "failed to create vendor account")
	}

	if _, err := u.vendorRepo.CreateVendor(ctx, &model.Vendor{
		ID:    account.UID,
		Name:  params.Name,
		Email: params.Email,
	}); err != nil {
		u.logger.Error().
			Err(err).
			Str("account_id", account.UID).
			Msg("vendor profile write failed, account left orphaned")

		return "", apperror.Wrap(err, apperror.CodeInternal, "failed to create vendor profile")
	}

	u.logger.Info().Str("vendor_id", account.UID).Msg("vendor created")

	u.sendInvite(params)

	return account.UID, nil
}

// SetAdminClaim grants the admin claim to the target account. The claim write
// merges into the existing claim set. The grant only becomes effective once
// the target account authenticates again: outstanding session tokens keep the
// claim snapshot taken when they were issued.
func (u *provisionUsecase) SetAdminClaim(
	ctx context.Context,
	caller auth.Principal,
	targetUID string,
) (string, error) {
	if err := requireAdmin(caller); err != nil {
		return "", err
	}

	if targetUID == "" {
		return "", apperror.InvalidArgument("uid is required")
	}

	if _, err := u.provider.SetClaim(ctx, targetUID, identity.AdminClaim, true); err != nil {
		if errors.Is(err, identity.ErrAccountNotFound) {
			return "", apperror.Wrap(err, apperror.CodeNotFound, err.Error())
		}

		return "", apperror.Wrap(err, apperror.CodeInternal, "failed to set admin claim")
	}

	u.logger.Info().Str("uid", targetUID).Msg("admin claim set for user")

	return targetUID, nil
}

// sendInvite is best-effort: a mail failure never fails the provisioning
// call.
func (u *provisionUsecase) sendInvite(params CreateVendorAccountParams) {
	if u.mailer == nil {
		return
	}

	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your vendor account is ready. Sign in to the console with this email address.</p>",
		params.Name,
	)

	if err := u.mailer.SendHTML([]string{params.Email}, "Your vendor account is ready", body); err != nil {
		u.logger.Warn().Err(err).Msg("failed to send vendor invitation email")
	}
}

package usecase

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/studentperks/console-api/internal/model"
	"github.com/studentperks/console-api/internal/repository"
	"github.com/studentperks/console-api/shared/apperror"
	"github.com/studentperks/console-api/shared/auth"
)

// VendorUsecase is the console's read/update surface over vendor profiles.
// Vendor accounts are only ever created through provisioning, and nothing
// here deletes one: there is no such transition in the account lifecycle.
type VendorUsecase interface {
	ListVendors(ctx context.Context, caller auth.Principal, params repository.ListParams) ([]*model.Vendor, string, error)
	GetVendor(ctx context.Context, caller auth.Principal, id string) (*model.Vendor, error)
	UpdateVendor(ctx context.Context, caller auth.Principal, id string, params repository.UpdateVendorParams) (*model.Vendor, error)
}

type vendorUsecase struct {
	vendorRepo repository.VendorRepository
}

func NewVendorUsecase(vendorRepo repository.VendorRepository) VendorUsecase {
	return &vendorUsecase{vendorRepo: vendorRepo}
}

func (u *vendorUsecase) ListVendors(
	ctx context.Context,
	caller auth.Principal,
	params repository.ListParams,
) ([]*model.Vendor, string, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, "", err
	}

	vendors, nextCursor, err := u.vendorRepo.ListVendors(ctx, params)
	if err != nil {
		return nil, "", apperror.Wrap(err, apperror.CodeInternal, "failed to list vendors")
	}

	return vendors, nextCursor, nil
}

// GetVendor lets admins read any vendor and a vendor read its own profile.
func (u *vendorUsecase) GetVendor(ctx context.Context, caller auth.Principal, id string) (*model.Vendor, error) {
	if err := requireAdminOrSelf(caller, id); err != nil {
		return nil, err
	}

	vendor, err := u.vendorRepo.GetVendor(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NotFound("vendor not found")
		}

		return nil, apperror.Wrap(err, apperror.CodeInternal, "failed to get vendor")
	}

	return vendor, nil
}

// UpdateVendor applies general and branding settings. Only admins may change
// the vendor status.
func (u *vendorUsecase) UpdateVendor(
	ctx context.Context,
	caller auth.Principal,
	id string,
	params repository.UpdateVendorParams,
) (*model.Vendor, error) {
	if err := requireAdminOrSelf(caller, id); err != nil {
		return nil, err
	}

	if params.Status != nil && !caller.Admin {
		return nil, apperror.PermissionDenied("only admins can change vendor status")
	}

	vendor, err := u.vendorRepo.UpdateVendor(ctx, id, params)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NotFound("vendor not found")
		}

		return nil, apperror.Wrap(err, apperror.CodeInternal, "failed to update vendor")
	}

	return vendor, nil
}

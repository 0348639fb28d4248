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

// OfferUsecase manages vendor offers. Admins can touch any offer; a vendor
// can only manage offers under its own vendor id.
type OfferUsecase interface {
	CreateOffer(ctx context.Context, caller auth.Principal, offer *model.Offer) (*model.Offer, error)
	GetOffer(ctx context.Context, caller auth.Principal, id string) (*model.Offer, error)
	ListOffersByVendor(ctx context.Context, caller auth.Principal, vendorID string) ([]*model.Offer, error)
	UpdateOffer(ctx context.Context, caller auth.Principal, id string, params repository.UpdateOfferParams) (*model.Offer, error)
	DeleteOffer(ctx context.Context, caller auth.Principal, id string) error
}

type offerUsecase struct {
	offerRepo repository.OfferRepository
}

func NewOfferUsecase(offerRepo repository.OfferRepository) OfferUsecase {
	return &offerUsecase{offerRepo: offerRepo}
}

func (u *offerUsecase) CreateOffer(ctx context.Context, caller auth.Principal, offer *model.Offer) (*model.Offer, error) {
	if err := requireAdminOrSelf(caller, offer.VendorID); err != nil {
		return nil, err
	}

	if offer.VendorID == "" || offer.TitleEn == "" {
		return nil, apperror.InvalidArgument("vendorId and titleEn are required")
	}

	if offer.DiscountType != model.DiscountTypePercentage && offer.DiscountType != model.DiscountTypeAmount {
		return nil, apperror.InvalidArgument("discountType must be percentage or amount")
	}

	created, err := u.offerRepo.CreateOffer(ctx, offer)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodeInternal, "failed to create offer")
	}

	return created, nil
}

func (u *offerUsecase) GetOffer(ctx context.Context, caller auth.Principal, id string) (*model.Offer, error) {
	if err := requireAuthenticated(caller); err != nil {
		return nil, err
	}

	offer, err := u.offerRepo.GetOffer(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NotFound("offer not found")
		}

		return nil, apperror.Wrap(err, apperror.CodeInternal, "failed to get offer")
	}

	return offer, nil
}

func (u *offerUsecase) ListOffersByVendor(
	ctx context.Context,
	caller auth.Principal,
	vendorID string,
) ([]*model.Offer, error) {
	if err := requireAdminOrSelf(caller, vendorID); err != nil {
		return nil, err
	}

	offers, err := u.offerRepo.ListOffersByVendor(ctx, vendorID)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodeInternal, "failed to list offers")
	}

	return offers, nil
}

func (u *offerUsecase) UpdateOffer(
	ctx context.Context,
	caller auth.Principal,
	id string,
	params repository.UpdateOfferParams,
) (*model.Offer, error) {
	offer, err := u.loadOwned(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	updated, err := u.offerRepo.UpdateOffer(ctx, offer.ID.Hex(), params)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NotFound("offer not found")
		}

		return nil, apperror.Wrap(err, apperror.CodeInternal, "failed to update offer")
	}

	return updated, nil
}

func (u *offerUsecase) DeleteOffer(ctx context.Context, caller auth.Principal, id string) error {
	offer, err := u.loadOwned(ctx, caller, id)
	if err != nil {
		return err
	}

	if _, err := u.offerRepo.DeleteOffer(ctx, offer.ID.Hex()); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperror.NotFound("offer not found")
		}

		return apperror.Wrap(err, apperror.CodeInternal, "failed to delete offer")
	}

	return nil
}

// loadOwned fetches the offer and checks the caller may mutate it. Ownership
// is resolved against the stored vendor id, not anything client-supplied.
func (u *offerUsecase) loadOwned(ctx context.Context, caller auth.Principal, id string) (*model.Offer, error) {
	if err := requireAuthenticated(caller); err != nil {
		return nil, err
	}

	offer, err := u.offerRepo.GetOffer(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NotFound("offer not found")
		}

		return nil, apperror.Wrap(err, apperror.CodeInternal, "failed to get offer")
	}

	if err := requireAdminOrSelf(caller, offer.VendorID); err != nil {
		return nil, err
	}

	return offer, nil
}

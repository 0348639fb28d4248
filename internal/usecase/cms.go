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

// Uploader mints presigned object-storage URLs for image uploads.
type Uploader interface {
	PresignUpload(ctx context.Context, prefix, contentType string) (string, string, error)
	PresignDownload(ctx context.Context, key string) (string, error)
}

// PresignedUpload is the result of an upload request: the storage key to
// persist and the URL to PUT the file to.
type PresignedUpload struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// CMSUsecase manages the content surface: categories, the banner carousel,
// and image uploads. Reads are open to any authenticated caller; mutations
// are admin-only.
type CMSUsecase interface {
	ListCategories(ctx context.Context, caller auth.Principal) ([]*model.Category, error)
	CreateCategory(ctx context.Context, caller auth.Principal, category *model.Category) (*model.Category, error)
	UpdateCategory(ctx context.Context, caller auth.Principal, id string, params repository.UpdateCategoryParams) (*model.Category, error)
	DeleteCategory(ctx context.Context, caller auth.Principal, id string) error
	ReorderCategories(ctx context.Context, caller auth.Principal, orderedIDs []string) ([]*model.Category, error)

	GetBanners(ctx context.Context, caller auth.Principal) (*model.BannersConfig, error)
	ReplaceBanners(ctx context.Context, caller auth.Principal, banners []model.BannerItem) (*model.BannersConfig, error)

	PresignUpload(ctx context.Context, caller auth.Principal, prefix, contentType string) (*PresignedUpload, error)
	PresignDownload(ctx context.Context, caller auth.Principal, key string) (string, error)
}

type cmsUsecase struct {
	categoryRepo repository.CategoryRepository
	bannerRepo   repository.BannerRepository
	uploader     Uploader
}

func NewCMSUsecase(
	categoryRepo repository.CategoryRepository,
	bannerRepo repository.BannerRepository,
	uploader Uploader,
) CMSUsecase {
	return &cmsUsecase{
		categoryRepo: categoryRepo,
		bannerRepo:   bannerRepo,
		uploader:     uploader,
	}
}

func (u *cmsUsecase) ListCategories(ctx context.Context, caller auth.Principal) ([]*model.Category, error) {
	if err := requireAuthenticated(caller); err != nil {
		return nil, err
	}

	categories, err := u.categoryRepo.ListCategories(ctx)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodeInternal, "failed to list categories")
	}

	return categories, nil
}

func (u *cmsUsecase) CreateCategory(
	ctx context.Context,
	caller auth.Principal,
	category *model.Category,
) (*model.Category, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}

	if category.NameEnglish == "" || category.NameArabic == "" {
		return nil, apperror.InvalidArgument("nameEnglish and nameArabic are required")
	}

	created, err := u.categoryRepo.CreateCategory(ctx, category)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodeInternal, "failed to create category")
	}

	return created, nil
}

func (u *cmsUsecase) UpdateCategory(
	ctx context.Context,
	caller auth.Principal,
	id string,
	params repository.UpdateCategoryParams,
) (*model.Category, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}

	category, err := u.categoryRepo.UpdateCategory(ctx, id, params)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NotFound("category not found")
		}

		return nil, apperror.Wrap(err, apperror.CodeInternal, "failed to update category")
	}

	return category, nil
}

func (u *cmsUsecase) DeleteCategory(ctx context.Context, caller auth.Principal, id string) error {
	if err := requireAdmin(caller); err != nil {
		return err
	}

	if _, err := u.categoryRepo.DeleteCategory(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperror.NotFound("category not found")
		}

		return apperror.Wrap(err, apperror.CodeInternal, "failed to delete category")
	}

	return nil
}

// ReorderCategories persists a drag-reorder from the console and returns the
// resulting sorted list.
func (u *cmsUsecase) ReorderCategories(
	ctx context.Context,
	caller auth.Principal,
	orderedIDs []string,
) ([]*model.Category, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}

	if len(orderedIDs) == 0 {
		return nil, apperror.InvalidArgument("orderedIds is required")
	}

	if err := u.categoryRepo.ReorderCategories(ctx, orderedIDs); err != nil {
		return nil, apperror.Wrap(err, apperror.CodeInternal, "failed to reorder categories")
	}

	categories, err := u.categoryRepo.ListCategories(ctx)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodeInternal, "failed to list categories")
	}

	return categories, nil
}

func (u *cmsUsecase) GetBanners(ctx context.Context, caller auth.Principal) (*model.BannersConfig, error) {
	if err := requireAuthenticated(caller); err != nil {
		return nil, err
	}

	config, err := u.bannerRepo.GetBannersConfig(ctx)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodeInternal, "failed to get banners")
	}

	return config, nil
}

// ReplaceBanners writes the full banner list; the console sends the complete
// carousel on every edit or reorder.
func (u *cmsUsecase) ReplaceBanners(
	ctx context.Context,
	caller auth.Principal,
	banners []model.BannerItem,
) (*model.BannersConfig, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}

	for _, banner := range banners {
		if banner.BannerID == "" {
			return nil, apperror.InvalidArgument("every banner needs a bannerId")
		}
	}

	config, err := u.bannerRepo.ReplaceBannersConfig(ctx, &model.BannersConfig{Banners: banners})
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodeInternal, "failed to replace banners")
	}

	return config, nil
}

func (u *cmsUsecase) PresignUpload(
	ctx context.Context,
	caller auth.Principal,
	prefix, contentType string,
) (*PresignedUpload, error) {
	if err := requireAuthenticated(caller); err != nil {
		return nil, err
	}

	if u.uploader == nil {
		return nil, apperror.Internal("object storage is not configured")
	}

	key, url, err := u.uploader.PresignUpload(ctx, prefix, contentType)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodeInternal, "failed to presign upload")
	}

	return &PresignedUpload{Key: key, URL: url}, nil
}

func (u *cmsUsecase) PresignDownload(ctx context.Context, caller auth.Principal, key string) (string, error) {
	if err := requireAuthenticated(caller); err != nil {
		return "", err
	}

	if u.uploader == nil {
		return "", apperror.Internal("object storage is not configured")
	}

	if key == "" {
		return "", apperror.InvalidArgument("key is required")
	}

	url, err := u.uploader.PresignDownload(ctx, key)
	if err != nil {
		return "", apperror.Wrap(err, apperror.CodeInternal, "failed to presign download")
	}

	return url, nil
}

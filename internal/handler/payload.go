package handler

import (
	"time"

	"github.com/studentperks/console-api/internal/model"
)

// Provisioning payloads intentionally carry no validate tags: field presence
// is checked inside the usecase, after the authorization preconditions.

type createVendorUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type createVendorUserResponse struct {
	UID     string `json:"uid"`
	Success bool   `json:"success"`
}

type setAdminClaimRequest struct {
	UID string `json:"uid"`
}

type setAdminClaimResponse struct {
	Success bool   `json:"success"`
	UID     string `json:"uid"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type googleLoginRequest struct {
	IDToken string `json:"id_token" validate:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type signupRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type listVendorsResponse struct {
	Vendors    []*model.Vendor `json:"vendors"`
	NextCursor string          `json:"nextCursor,omitempty"`
}

type updateVendorRequest struct {
	Name           *string `json:"name,omitempty"`
	Status         *string `json:"status,omitempty"        validate:"omitempty,oneof=Active Inactive"`
	Contact        *string `json:"contact,omitempty"`
	PIN            *string `json:"pin,omitempty"`
	ProfilePicture *string `json:"profilePicture,omitempty"`
	LogoKey        *string `json:"logoKey,omitempty"`
	CoverKey       *string `json:"coverKey,omitempty"`
}

type listStudentsResponse struct {
	Students   []*model.Student `json:"students"`
	NextCursor string           `json:"nextCursor,omitempty"`
}

type updateStudentRequest struct {
	Name       *string `json:"name,omitempty"`
	University *string `json:"university,omitempty"`
	Status     *string `json:"status,omitempty" validate:"omitempty,oneof=Active Inactive"`
}

type createOfferRequest struct {
	VendorID      string     `json:"vendorId"      validate:"required"`
	TitleEn       string     `json:"titleEn"       validate:"required"`
	TitleAr       string     `json:"titleAr,omitempty"`
	DescriptionEn string     `json:"descriptionEn,omitempty"`
	DescriptionAr string     `json:"descriptionAr,omitempty"`
	BannerImage   string     `json:"bannerImage,omitempty"`
	DiscountType  string     `json:"discountType"  validate:"required,oneof=percentage amount"`
	DiscountValue float64    `json:"discountValue" validate:"gte=0"`
	Categories    []string   `json:"categories,omitempty"`
	MainCategory  string     `json:"mainCategory,omitempty"`
	IsTrending    bool       `json:"isTrending,omitempty"`
	IsTopRated    bool       `json:"isTopRated,omitempty"`
	Status        string     `json:"status,omitempty" validate:"omitempty,oneof=active inactive"`
	StartAt       *time.Time `json:"startAt,omitempty"`
	EndAt         *time.Time `json:"endAt,omitempty"`
}

type updateOfferRequest struct {
	TitleEn       *string    `json:"titleEn,omitempty"`
	TitleAr       *string    `json:"titleAr,omitempty"`
	DescriptionEn *string    `json:"descriptionEn,omitempty"`
	DescriptionAr *string    `json:"descriptionAr,omitempty"`
	BannerImage   *string    `json:"bannerImage,omitempty"`
	DiscountType  *string    `json:"discountType,omitempty"  validate:"omitempty,oneof=percentage amount"`
	DiscountValue *float64   `json:"discountValue,omitempty" validate:"omitempty,gte=0"`
	Categories    *[]string  `json:"categories,omitempty"`
	MainCategory  *string    `json:"mainCategory,omitempty"`
	IsTrending    *bool      `json:"isTrending,omitempty"`
	IsTopRated    *bool      `json:"isTopRated,omitempty"`
	Status        *string    `json:"status,omitempty"        validate:"omitempty,oneof=active inactive"`
	StartAt       *time.Time `json:"startAt,omitempty"`
	EndAt         *time.Time `json:"endAt,omitempty"`
}

type listOffersResponse struct {
	Offers []*model.Offer `json:"offers"`
}

type createCategoryRequest struct {
	NameEnglish   string              `json:"nameEnglish" validate:"required"`
	NameArabic    string              `json:"nameArabic"  validate:"required"`
	ImageURL      string              `json:"imageUrl,omitempty"`
	Subcategories []model.SubCategory `json:"subcategories,omitempty"`
	IsActive      *bool               `json:"isActive,omitempty"`
}

type updateCategoryRequest struct {
	NameEnglish   *string              `json:"nameEnglish,omitempty"`
	NameArabic    *string              `json:"nameArabic,omitempty"`
	ImageURL      *string              `json:"imageUrl,omitempty"`
	Subcategories *[]model.SubCategory `json:"subcategories,omitempty"`
	IsActive      *bool                `json:"isActive,omitempty"`
}

type reorderCategoriesRequest struct {
	OrderedIDs []string `json:"orderedIds" validate:"required,min=1"`
}

type listCategoriesResponse struct {
	Categories []*model.Category `json:"categories"`
}

type replaceBannersRequest struct {
	Banners []model.BannerItem `json:"banners" validate:"required"`
}

type listRedemptionsResponse struct {
	Redemptions []*model.Redemption `json:"redemptions"`
	NextCursor  string              `json:"nextCursor,omitempty"`
}

type presignUploadRequest struct {
	Prefix      string `json:"prefix,omitempty"      validate:"omitempty,oneof=banners branding offers"`
	ContentType string `json:"contentType,omitempty"`
}

type presignDownloadResponse struct {
	URL string `json:"url"`
}

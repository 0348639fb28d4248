package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/studentperks/console-api/internal/model"
	"github.com/studentperks/console-api/internal/repository"
	"github.com/studentperks/console-api/shared/auth"
)

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	caller := auth.PrincipalFromContext(r.Context())

	categories, err := h.cmsUsecase.ListCategories(r.Context(), caller)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, listCategoriesResponse{Categories: categories})
}

func (h *Handler) createCategory(w http.ResponseWriter, r *http.Request) {
	var req createCategoryRequest
	if err := h.decodeValidJSON(r, &req); err != nil {
		h.respondError(w, err)
		return
	}

	caller := auth.PrincipalFromContext(r.Context())

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	category, err := h.cmsUsecase.CreateCategory(r.Context(), caller, &model.Category{
		NameEnglish:   req.NameEnglish,
		NameArabic:    req.NameArabic,
		ImageURL:      req.ImageURL,
		Subcategories: req.Subcategories,
		IsActive:      isActive,
	})
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, category)
}

func (h *Handler) updateCategory(w http.ResponseWriter, r *http.Request) {
	var req updateCategoryRequest
	if err := h.decodeValidJSON(r, &req); err != nil {
		h.respondError(w, err)
		return
	}

	caller := auth.PrincipalFromContext(r.Context())

	category, err := h.cmsUsecase.UpdateCategory(r.Context(), caller, chi.URLParam(r, "categoryID"), repository.UpdateCategoryParams{
		NameEnglish:   req.NameEnglish,
		NameArabic:    req.NameArabic,
		ImageURL:      req.ImageURL,
		Subcategories: req.Subcategories,
		IsActive:      req.IsActive,
	})
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, category)
}

func (h *Handler) deleteCategory(w http.ResponseWriter, r *http.Request) {
	caller := auth.PrincipalFromContext(r.Context())

	if err := h.cmsUsecase.DeleteCategory(r.Context(), caller, chi.URLParam(r, "categoryID")); err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) reorderCategories(w http.ResponseWriter, r *http.Request) {
	var req reorderCategoriesRequest
	if err := h.decodeValidJSON(r, &req); err != nil {
		h.respondError(w, err)
		return
	}

	caller := auth.PrincipalFromContext(r.Context())

	categories, err := h.cmsUsecase.ReorderCategories(r.Context(), caller, req.OrderedIDs)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, listCategoriesResponse{Categories: categories})
}

func (h *Handler) getBanners(w http.ResponseWriter, r *http.Request) {
	caller := auth.PrincipalFromContext(r.Context())

	config, err := h.cmsUsecase.GetBanners(r.Context(), caller)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, config)
}

func (h *Handler) replaceBanners(w http.ResponseWriter, r *http.Request) {
	var req replaceBannersRequest
	if err := h.decodeValidJSON(r, &req); err != nil {
		h.respondError(w, err)
		return
	}

	caller := auth.PrincipalFromContext(r.Context())

	config, err := h.cmsUsecase.ReplaceBanners(r.Context(), caller, req.Banners)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, config)
}

func (h *Handler) presignUpload(w http.ResponseWriter, r *http.Request) {
	var req presignUploadRequest
	if err := h.decodeValidJSON(r, &req); err != nil {
		h.respondError(w, err)
		return
	}

	caller := auth.PrincipalFromContext(r.Context())

	prefix := req.Prefix
	if prefix == "" {
		prefix = "banners"
	}

	upload, err := h.cmsUsecase.PresignUpload(r.Context(), caller, prefix, req.ContentType)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, upload)
}

func (h *Handler) presignDownload(w http.ResponseWriter, r *http.Request) {
	caller := auth.PrincipalFromContext(r.Context())

	url, err := h.cmsUsecase.PresignDownload(r.Context(), caller, chi.URLParam(r, "key"))
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, presignDownloadResponse{URL: url})
}

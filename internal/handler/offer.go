package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/studentperks/console-api/internal/model"
	"github.com/studentperks/console-api/internal/repository"
	"github.com/studentperks/console-api/shared/auth"
)

func (h *Handler) createOffer(w http.ResponseWriter, r *http.Request) {
	var req createOfferRequest
	if err := h.decodeValidJSON(r, &req); err != nil {
		h.respondError(w, err)
		return
	}

	caller := auth.PrincipalFromContext(r.Context())

	offer, err := h.offerUsecase.CreateOffer(r.Context(), caller, &model.Offer{
		VendorID:      req.VendorID,
		TitleEn:       req.TitleEn,
		TitleAr:       req.TitleAr,
		DescriptionEn: req.DescriptionEn,
		DescriptionAr: req.DescriptionAr,
		BannerImage:   req.BannerImage,
		DiscountType:  req.DiscountType,
		DiscountValue: req.DiscountValue,
		Categories:    req.Categories,
		MainCategory:  req.MainCategory,
		IsTrending:    req.IsTrending,
		IsTopRated:    req.IsTopRated,
		Status:        req.Status,
		StartAt:       req.StartAt,
		EndAt:         req.EndAt,
	})
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, offer)
}

func (h *Handler) getOffer(w http.ResponseWriter, r *http.Request) {
	caller := auth.PrincipalFromContext(r.Context())

	offer, err := h.offerUsecase.GetOffer(r.Context(), caller, chi.URLParam(r, "offerID"))
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, offer)
}

func (h *Handler) updateOffer(w http.ResponseWriter, r *http.Request) {
	var req updateOfferRequest
	if err := h.decodeValidJSON(r, &req); err != nil {
		h.respondError(w, err)
		return
	}

	caller := auth.PrincipalFromContext(r.Context())

	offer, err := h.offerUsecase.UpdateOffer(r.Context(), caller, chi.URLParam(r, "offerID"), repository.UpdateOfferParams{
		TitleEn:       req.TitleEn,
		TitleAr:       req.TitleAr,
		DescriptionEn: req.DescriptionEn,
		DescriptionAr: req.DescriptionAr,
		BannerImage:   req.BannerImage,
		DiscountType:  req.DiscountType,
		DiscountValue: req.DiscountValue,
		Categories:    req.Categories,
		MainCategory:  req.MainCategory,
		IsTrending:    req.IsTrending,
		IsTopRated:    req.IsTopRated,
		Status:        req.Status,
		StartAt:       req.StartAt,
		EndAt:         req.EndAt,
	})
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, offer)
}

func (h *Handler) deleteOffer(w http.ResponseWriter, r *http.Request) {
	caller := auth.PrincipalFromContext(r.Context())

	if err := h.offerUsecase.DeleteOffer(r.Context(), caller, chi.URLParam(r, "offerID")); err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusNoContent, nil)
}

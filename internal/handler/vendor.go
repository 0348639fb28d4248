package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/studentperks/console-api/internal/repository"
	"github.com/studentperks/console-api/shared/auth"
)

// listParamsFromQuery reads the shared cursor pagination query parameters.
func listParamsFromQuery(r *http.Request) repository.ListParams {
	params := repository.ListParams{
		Cursor: r.URL.Query().Get("cursor"),
	}

	if raw := r.URL.Query().Get("limit"); raw != "" {
		if limit, err := strconv.ParseInt(raw, 10, 64); err == nil {
			params.Limit = limit
		}
	}

	return params
}

func (h *Handler) listVendors(w http.ResponseWriter, r *http.Request) {
	caller := auth.PrincipalFromContext(r.Context())

	vendors, nextCursor, err := h.vendorUsecase.ListVendors(r.Context(), caller, listParamsFromQuery(r))
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, listVendorsResponse{
		Vendors:    vendors,
		NextCursor: nextCursor,
	})
}

func (h *Handler) getVendor(w http.ResponseWriter, r *http.Request) {
	caller := auth.PrincipalFromContext(r.Context())

	vendor, err := h.vendorUsecase.GetVendor(r.Context(), caller, chi.URLParam(r, "vendorID"))
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, vendor)
}

func (h *Handler) updateVendor(w http.ResponseWriter, r *http.Request) {
	var req updateVendorRequest
	if err := h.decodeValidJSON(r, &req); err != nil {
		h.respondError(w, err)
		return
	}

	caller := auth.PrincipalFromContext(r.Context())

	vendor, err := h.vendorUsecase.UpdateVendor(r.Context(), caller, chi.URLParam(r, "vendorID"), repository.UpdateVendorParams{
		Name:           req.Name,
		Status:         req.Status,
		Contact:        req.Contact,
		PIN:            req.PIN,
		ProfilePicture: req.ProfilePicture,
		LogoKey:        req.LogoKey,
		CoverKey:       req.CoverKey,
	})
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, vendor)
}

func (h *Handler) listVendorOffers(w http.ResponseWriter, r *http.Request) {
	caller := auth.PrincipalFromContext(r.Context())

	offers, err := h.offerUsecase.ListOffersByVendor(r.Context(), caller, chi.URLParam(r, "vendorID"))
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, listOffersResponse{Offers: offers})
}

package handler

import (
	"net/http"

	"github.com/studentperks/console-api/internal/usecase"
	"github.com/studentperks/console-api/shared/auth"
)

// createVendorUser is the callable endpoint behind the console's "add vendor"
// form. Authorization and field presence are checked by the usecase in the
// documented order.
func (h *Handler) createVendorUser(w http.ResponseWriter, r *http.Request) {
	var req createVendorUserRequest
	if err := h.decodeJSON(r, &req); err != nil {
		h.respondError(w, err)
		return
	}

	caller := auth.PrincipalFromContext(r.Context())

	uid, err := h.provisionUsecase.CreateVendorAccount(r.Context(), caller, usecase.CreateVendorAccountParams{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, createVendorUserResponse{
		UID:     uid,
		Success: true,
	})
}

// setAdminClaim grants the admin claim to an existing account. The target
// must re-authenticate before the new claim shows up in its session tokens.
func (h *Handler) setAdminClaim(w http.ResponseWriter, r *http.Request) {
	var req setAdminClaimRequest
	if err := h.decodeJSON(r, &req); err != nil {
		h.respondError(w, err)
		return
	}

	caller := auth.PrincipalFromContext(r.Context())

	uid, err := h.provisionUsecase.SetAdminClaim(r.Context(), caller, req.UID)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, setAdminClaimResponse{
		Success: true,
		UID:     uid,
	})
}

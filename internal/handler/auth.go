package handler

import (
	"net/http"

	"github.com/studentperks/console-api/internal/usecase"
)

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := h.decodeValidJSON(r, &req); err != nil {
		h.respondError(w, err)
		return
	}

	tokens, err := h.authUsecase.Login(r.Context(), usecase.LoginParams{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, tokens)
}

func (h *Handler) loginWithGoogle(w http.ResponseWriter, r *http.Request) {
	var req googleLoginRequest
	if err := h.decodeValidJSON(r, &req); err != nil {
		h.respondError(w, err)
		return
	}

	tokens, err := h.authUsecase.LoginWithGoogle(r.Context(), req.IDToken)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, tokens)
}

func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := h.decodeValidJSON(r, &req); err != nil {
		h.respondError(w, err)
		return
	}

	tokens, err := h.authUsecase.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, tokens)
}

func (h *Handler) signupStudent(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := h.decodeValidJSON(r, &req); err != nil {
		h.respondError(w, err)
		return
	}

	tokens, err := h.authUsecase.SignupStudent(r.Context(), usecase.SignupStudentParams{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, tokens)
}

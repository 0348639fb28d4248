package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/studentperks/console-api/internal/repository"
	"github.com/studentperks/console-api/shared/auth"
)

func (h *Handler) listStudents(w http.ResponseWriter, r *http.Request) {
	caller := auth.PrincipalFromContext(r.Context())

	students, nextCursor, err := h.studentUsecase.ListStudents(r.Context(), caller, listParamsFromQuery(r))
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, listStudentsResponse{
		Students:   students,
		NextCursor: nextCursor,
	})
}

func (h *Handler) getStudent(w http.ResponseWriter, r *http.Request) {
	caller := auth.PrincipalFromContext(r.Context())

	student, err := h.studentUsecase.GetStudent(r.Context(), caller, chi.URLParam(r, "studentID"))
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, student)
}

func (h *Handler) updateStudent(w http.ResponseWriter, r *http.Request) {
	var req updateStudentRequest
	if err := h.decodeValidJSON(r, &req); err != nil {
		h.respondError(w, err)
		return
	}

	caller := auth.PrincipalFromContext(r.Context())

	student, err := h.studentUsecase.UpdateStudent(r.Context(), caller, chi.URLParam(r, "studentID"), repository.UpdateStudentParams{
		Name:       req.Name,
		University: req.University,
		Status:     req.Status,
	})
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, student)
}

func (h *Handler) listRedemptions(w http.ResponseWriter, r *http.Request) {
	caller := auth.PrincipalFromContext(r.Context())

	redemptions, nextCursor, err := h.studentUsecase.ListRedemptions(r.Context(), caller, listParamsFromQuery(r))
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, listRedemptionsResponse{
		Redemptions: redemptions,
		NextCursor:  nextCursor,
	})
}

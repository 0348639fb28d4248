package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/studentperks/console-api/internal/usecase"
	"github.com/studentperks/console-api/shared/apperror"
	"github.com/studentperks/console-api/shared/validator"
)

// Handler carries the HTTP surface of the console API.
type Handler struct {
	provisionUsecase usecase.ProvisionUsecase
	authUsecase      usecase.AuthUsecase
	vendorUsecase    usecase.VendorUsecase
	studentUsecase   usecase.StudentUsecase
	offerUsecase     usecase.OfferUsecase
	cmsUsecase       usecase.CMSUsecase
	validator        *validator.Validator
	logger           *zerolog.Logger
}

func New(
	provisionUsecase usecase.ProvisionUsecase,
	authUsecase usecase.AuthUsecase,
	vendorUsecase usecase.VendorUsecase,
	studentUsecase usecase.StudentUsecase,
	offerUsecase usecase.OfferUsecase,
	cmsUsecase usecase.CMSUsecase,
	v *validator.Validator,
	logger *zerolog.Logger,
) *Handler {
	return &Handler{
		provisionUsecase: provisionUsecase,
		authUsecase:      authUsecase,
		vendorUsecase:    vendorUsecase,
		studentUsecase:   studentUsecase,
		offerUsecase:     offerUsecase,
		cmsUsecase:       cmsUsecase,
		validator:        v,
		logger:           logger,
	}
}

// Router builds the chi router. authenticate resolves the bearer token into a
// caller principal; it never rejects by itself, authorization happens in the
// usecases.
func (h *Handler) Router(authenticate func(http.Handler) http.Handler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", h.health)

	r.Route("/v1", func(r chi.Router) {
		r.Use(authenticate)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.login)
			r.Post("/google", h.loginWithGoogle)
			r.Post("/refresh", h.refresh)
			r.Post("/signup", h.signupStudent)
		})

		// The two callable provisioning endpoints.
		r.Route("/calls", func(r chi.Router) {
			r.Post("/createVendorUser", h.createVendorUser)
			r.Post("/setAdminClaim", h.setAdminClaim)
		})

		r.Route("/vendors", func(r chi.Router) {
			r.Get("/", h.listVendors)
			r.Get("/{vendorID}", h.getVendor)
			r.Patch("/{vendorID}", h.updateVendor)
			r.Get("/{vendorID}/offers", h.listVendorOffers)
		})

		r.Route("/students", func(r chi.Router) {
			r.Get("/", h.listStudents)
			r.Get("/{studentID}", h.getStudent)
			r.Patch("/{studentID}", h.updateStudent)
		})

		r.Route("/offers", func(r chi.Router) {
			r.Post("/", h.createOffer)
			r.Get("/{offerID}", h.getOffer)
			r.Patch("/{offerID}", h.updateOffer)
			r.Delete("/{offerID}", h.deleteOffer)
		})

		r.Route("/cms", func(r chi.Router) {
			r.Get("/categories", h.listCategories)
			r.Post("/categories", h.createCategory)
			r.Patch("/categories/{categoryID}", h.updateCategory)
			r.Delete("/categories/{categoryID}", h.deleteCategory)
			r.Post("/categories/reorder", h.reorderCategories)

			r.Get("/banners", h.getBanners)
			r.Put("/banners", h.replaceBanners)
		})

		r.Get("/transactions", h.listRedemptions)

		r.Post("/uploads", h.presignUpload)
		r.Get("/uploads/{key:.+}", h.presignDownload)
	})

	return r
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// decodeJSON decodes the request body strictly: unknown fields are rejected
// so inconsistent client field names fail loudly instead of being dropped.
func (h *Handler) decodeJSON(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return apperror.InvalidArgument("invalid request body: " + err.Error())
	}

	return nil
}

// decodeValidJSON decodes strictly and then runs payload validation.
func (h *Handler) decodeValidJSON(r *http.Request, dst any) error {
	if err := h.decodeJSON(r, dst); err != nil {
		return err
	}

	if err := h.validator.Struct(dst); err != nil {
		return apperror.InvalidArgument(err.Error())
	}

	return nil
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data == nil {
		return
	}

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error().Err(err).Msg("failed to encode response")
	}
}

func (h *Handler) respondError(w http.ResponseWriter, err error) {
	code := apperror.CodeOf(err)
	status := apperror.HTTPStatus(code)

	if status >= http.StatusInternalServerError {
		h.logger.Error().Err(err).Msg("request failed")
	}

	h.respondJSON(w, status, errorResponse{
		Error: errorBody{
			Code:    string(code),
			Message: apperror.MessageOf(err),
		},
	})
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

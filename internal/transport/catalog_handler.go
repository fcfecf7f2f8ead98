package transport

import (
	"errors"
	"net/http"

	"tireshop/internal/middleware"
	"tireshop/internal/repository"
	"tireshop/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// NameRequest is the create payload shared by the flat reference collections
type NameRequest struct {
	Name string `json:"name" validate:"required"`
}

// TireModelRequest is the create payload for a tire model
type TireModelRequest struct {
	BrandID uuid.UUID `json:"brandId" validate:"required"`
	Name    string    `json:"name" validate:"required"`
}

// CatalogHandler handles HTTP requests for the reference collections
type CatalogHandler struct {
	catalogService service.CatalogService
	logger         *zap.Logger
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalogService service.CatalogService, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		logger:         logger,
	}
}

// RegisterRoutes registers all catalog routes
func (h *CatalogHandler) RegisterRoutes(r chi.Router) {
	r.Get("/api/categories", h.ListCategories)
	r.Post("/api/categories", h.CreateCategory)
	r.Get("/api/units", h.ListUnits)
	r.Post("/api/units", h.CreateUnit)
	r.Get("/api/tire-brands", h.ListTireBrands)
	r.Post("/api/tire-brands", h.CreateTireBrand)
	r.Post("/api/tire-models", h.CreateTireModel)
	r.Get("/api/tire-indices/speed", h.ListSpeedIndices)
	r.Get("/api/tire-indices/load", h.ListLoadIndices)
	r.Get("/api/auto-subcategories", h.ListAutoSubcategories)
	r.Post("/api/auto-subcategories", h.CreateAutoSubcategory)
}

// respondCatalogError maps catalog service errors to HTTP statuses
func (h *CatalogHandler) respondCatalogError(w http.ResponseWriter, err error, action string) {
	switch {
	case errors.Is(err, service.ErrEmptyName):
		middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, repository.ErrDuplicateName):
		middleware.RespondWithError(w, http.StatusConflict, err.Error())
	case errors.Is(err, repository.ErrBrandNotFound):
		middleware.RespondWithError(w, http.StatusNotFound, err.Error())
	default:
		h.logger.Error("Catalog operation failed", zap.String("action", action), zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to "+action)
	}
}

// ListCategories returns all categories
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalogService.ListCategories(r.Context())
	if err != nil {
		h.respondCatalogError(w, err, "list categories")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, categories)
}

// CreateCategory creates a category
func (h *CatalogHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req NameRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	category, err := h.catalogService.CreateCategory(r.Context(), req.Name)
	if err != nil {
		h.respondCatalogError(w, err, "create category")
		return
	}
	middleware.RespondWithJSON(w, http.StatusCreated, category)
}

// ListUnits returns all measurement units
func (h *CatalogHandler) ListUnits(w http.ResponseWriter, r *http.Request) {
	units, err := h.catalogService.ListUnits(r.Context())
	if err != nil {
		h.respondCatalogError(w, err, "list units")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, units)
}

// CreateUnit creates a measurement unit
func (h *CatalogHandler) CreateUnit(w http.ResponseWriter, r *http.Request) {
	var req NameRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	unit, err := h.catalogService.CreateUnit(r.Context(), req.Name)
	if err != nil {
		h.respondCatalogError(w, err, "create unit")
		return
	}
	middleware.RespondWithJSON(w, http.StatusCreated, unit)
}

// ListTireBrands returns all tire brands with their models
func (h *CatalogHandler) ListTireBrands(w http.ResponseWriter, r *http.Request) {
	brands, err := h.catalogService.ListTireBrands(r.Context())
	if err != nil {
		h.respondCatalogError(w, err, "list tire brands")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, brands)
}

// CreateTireBrand creates a tire brand
func (h *CatalogHandler) CreateTireBrand(w http.ResponseWriter, r *http.Request) {
	var req NameRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	brand, err := h.catalogService.CreateTireBrand(r.Context(), req.Name)
	if err != nil {
		h.respondCatalogError(w, err, "create tire brand")
		return
	}
	middleware.RespondWithJSON(w, http.StatusCreated, brand)
}

// CreateTireModel creates a model under an existing brand
func (h *CatalogHandler) CreateTireModel(w http.ResponseWriter, r *http.Request) {
	var req TireModelRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	model, err := h.catalogService.CreateTireModel(r.Context(), req.BrandID, req.Name)
	if err != nil {
		h.respondCatalogError(w, err, "create tire model")
		return
	}
	middleware.RespondWithJSON(w, http.StatusCreated, model)
}

// ListSpeedIndices returns the speed index reference data
func (h *CatalogHandler) ListSpeedIndices(w http.ResponseWriter, r *http.Request) {
	indices, err := h.catalogService.ListSpeedIndices(r.Context())
	if err != nil {
		h.respondCatalogError(w, err, "list speed indices")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, indices)
}

// ListLoadIndices returns the load index reference data
func (h *CatalogHandler) ListLoadIndices(w http.ResponseWriter, r *http.Request) {
	indices, err := h.catalogService.ListLoadIndices(r.Context())
	if err != nil {
		h.respondCatalogError(w, err, "list load indices")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, indices)
}

// ListAutoSubcategories returns all auto-part subcategories
func (h *CatalogHandler) ListAutoSubcategories(w http.ResponseWriter, r *http.Request) {
	subs, err := h.catalogService.ListAutoSubcategories(r.Context())
	if err != nil {
		h.respondCatalogError(w, err, "list auto subcategories")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, subs)
}

// CreateAutoSubcategory creates an auto-part subcategory
func (h *CatalogHandler) CreateAutoSubcategory(w http.ResponseWriter, r *http.Request) {
	var req NameRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	sub, err := h.catalogService.CreateAutoSubcategory(r.Context(), req.Name)
	if err != nil {
		h.respondCatalogError(w, err, "create auto subcategory")
		return
	}
	middleware.RespondWithJSON(w, http.StatusCreated, sub)
}

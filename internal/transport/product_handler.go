package transport

import (
	"errors"
	"net/http"

	"tireshop/internal/domain"
	"tireshop/internal/middleware"
	"tireshop/internal/repository"
	"tireshop/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProductHandler handles HTTP requests for products
type ProductHandler struct {
	productService service.ProductService
	logger         *zap.Logger
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService service.ProductService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		logger:         logger,
	}
}

// RegisterRoutes registers all product routes
func (h *ProductHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

func (h *ProductHandler) respondProductError(w http.ResponseWriter, err error, action string) {
	switch {
	case errors.Is(err, service.ErrEmptyProductName),
		errors.Is(err, service.ErrMissingDetails),
		errors.Is(err, service.ErrIncompleteTire),
		errors.Is(err, service.ErrIncompleteAuto):
		middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, repository.ErrProductNotFound):
		middleware.RespondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, repository.ErrVariantExists),
		errors.Is(err, repository.ErrProductReferenced):
		middleware.RespondWithError(w, http.StatusConflict, err.Error())
	default:
		h.logger.Error("Product operation failed", zap.String("action", action), zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to "+action)
	}
}

// List returns all products with their detail variants
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.productService.List(r.Context())
	if err != nil {
		h.respondProductError(w, err, "list products")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, products)
}

// Create creates a product together with its tire or auto details
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input domain.ProductInput
	if err := middleware.DecodeAndValidate(r, &input); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	product, err := h.productService.Create(r.Context(), &input)
	if err != nil {
		h.respondProductError(w, err, "create product")
		return
	}
	middleware.RespondWithJSON(w, http.StatusCreated, product)
}

// Update replaces a product and its details
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}
	var input domain.ProductInput
	if err := middleware.DecodeAndValidate(r, &input); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	product, err := h.productService.Update(r.Context(), id, &input)
	if err != nil {
		h.respondProductError(w, err, "update product")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// Delete removes a product unless order lines reference it
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}
	if err := h.productService.Delete(r.Context(), id); err != nil {
		h.respondProductError(w, err, "delete product")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

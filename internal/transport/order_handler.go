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

// OrderHandler handles HTTP requests for purchase and sale documents
type OrderHandler struct {
	orderService service.OrderService
	logger       *zap.Logger
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService service.OrderService, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		logger:       logger,
	}
}

// RegisterRoutes registers all order routes
func (h *OrderHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/orders", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
	})
}

func (h *OrderHandler) respondOrderError(w http.ResponseWriter, err error, action string) {
	switch {
	case errors.Is(err, service.ErrInvalidOrderType),
		errors.Is(err, service.ErrNoItems),
		errors.Is(err, service.ErrInvalidQuantity),
		errors.Is(err, service.ErrNegativePrice),
		errors.Is(err, service.ErrUnknownProduct),
		errors.Is(err, service.ErrOrderTypeImmutable):
		middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, repository.ErrOrderNotFound),
		errors.Is(err, repository.ErrCounterpartyNotFound):
		middleware.RespondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, repository.ErrInsufficientStock):
		middleware.RespondWithError(w, http.StatusConflict, err.Error())
	default:
		h.logger.Error("Order operation failed", zap.String("action", action), zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to "+action)
	}
}

// List returns orders, optionally filtered by document type
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	orderType := domain.OrderType(r.URL.Query().Get("type"))
	orders, err := h.orderService.List(r.Context(), orderType)
	if err != nil {
		h.respondOrderError(w, err, "list orders")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, orders)
}

// Get returns one order with fully hydrated line items
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid order id")
		return
	}
	order, err := h.orderService.Get(r.Context(), id)
	if err != nil {
		h.respondOrderError(w, err, "get order")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, order)
}

// Create commits a new order; it lands as CONFIRMED or not at all
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input domain.OrderInput
	if err := middleware.DecodeAndValidate(r, &input); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	order, err := h.orderService.Create(r.Context(), &input)
	if err != nil {
		h.respondOrderError(w, err, "create order")
		return
	}
	middleware.RespondWithJSON(w, http.StatusCreated, order)
}

// Update replaces an order's header and full item list
func (h *OrderHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid order id")
		return
	}
	var input domain.OrderInput
	if err := middleware.DecodeAndValidate(r, &input); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	order, err := h.orderService.Update(r.Context(), id, &input)
	if err != nil {
		h.respondOrderError(w, err, "update order")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, order)
}

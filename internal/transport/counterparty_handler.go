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

// StatusRequest toggles a counterparty's active flag
type StatusRequest struct {
	IsActive bool `json:"isActive"`
}

// CounterpartyHandler handles HTTP requests for customers and suppliers
type CounterpartyHandler struct {
	counterpartyService service.CounterpartyService
	logger              *zap.Logger
}

// NewCounterpartyHandler creates a new CounterpartyHandler
func NewCounterpartyHandler(counterpartyService service.CounterpartyService, logger *zap.Logger) *CounterpartyHandler {
	return &CounterpartyHandler{
		counterpartyService: counterpartyService,
		logger:              logger,
	}
}

// RegisterRoutes registers all counterparty routes
func (h *CounterpartyHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/counterparties", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Put("/{id}", h.Update)
		r.Patch("/{id}/status", h.SetStatus)
	})
}

func (h *CounterpartyHandler) respondCounterpartyError(w http.ResponseWriter, err error, action string) {
	switch {
	case errors.Is(err, service.ErrInvalidCounterpartyType),
		errors.Is(err, service.ErrMissingContact):
		middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, repository.ErrCounterpartyNotFound):
		middleware.RespondWithError(w, http.StatusNotFound, err.Error())
	default:
		h.logger.Error("Counterparty operation failed", zap.String("action", action), zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to "+action)
	}
}

// List returns counterparties filtered by type, search text and activity
func (h *CounterpartyHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := domain.CounterpartyFilter{
		Type:            domain.CounterpartyType(r.URL.Query().Get("type")),
		Query:           r.URL.Query().Get("q"),
		IncludeInactive: r.URL.Query().Get("inactive") == "1",
	}
	counterparties, err := h.counterpartyService.List(r.Context(), filter)
	if err != nil {
		h.respondCounterpartyError(w, err, "list counterparties")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, counterparties)
}

// Create creates a counterparty
func (h *CounterpartyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input service.CounterpartyInput
	if err := middleware.DecodeAndValidate(r, &input); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	cp, err := h.counterpartyService.Create(r.Context(), &input)
	if err != nil {
		h.respondCounterpartyError(w, err, "create counterparty")
		return
	}
	middleware.RespondWithJSON(w, http.StatusCreated, cp)
}

// Update replaces a counterparty's contact attributes
func (h *CounterpartyHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid counterparty id")
		return
	}
	var input service.CounterpartyInput
	if err := middleware.DecodeAndValidate(r, &input); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	cp, err := h.counterpartyService.Update(r.Context(), id, &input)
	if err != nil {
		h.respondCounterpartyError(w, err, "update counterparty")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, cp)
}

// SetStatus soft-deletes or restores a counterparty
func (h *CounterpartyHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid counterparty id")
		return
	}
	var req StatusRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	cp, err := h.counterpartyService.SetStatus(r.Context(), id, req.IsActive)
	if err != nil {
		h.respondCounterpartyError(w, err, "set counterparty status")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, cp)
}

package transport

import (
	"net/http"

	"tireshop/internal/middleware"
	"tireshop/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// StockHandler handles HTTP requests for the derived stock view
type StockHandler struct {
	stockService service.StockService
	logger       *zap.Logger
}

// NewStockHandler creates a new StockHandler
func NewStockHandler(stockService service.StockService, logger *zap.Logger) *StockHandler {
	return &StockHandler{
		stockService: stockService,
		logger:       logger,
	}
}

// RegisterRoutes registers the stock routes
func (h *StockHandler) RegisterRoutes(r chi.Router) {
	r.Get("/api/stock", h.List)
}

// List returns every product with its confirmed availability
func (h *StockHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.stockService.List(r.Context())
	if err != nil {
		h.logger.Error("Stock listing failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list stock")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, items)
}

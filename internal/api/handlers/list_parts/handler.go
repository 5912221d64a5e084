package list_parts

import (
	"net/http"

	"github.com/m04kA/SMC-ServiceDesk/internal/api/handlers"
)

type Handler struct {
	service InventoryService
	logger  Logger
}

func NewHandler(service InventoryService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/parts
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, false, "GET /parts")
}

// HandleLowStock GET /api/v1/parts/low-stock
func (h *Handler) HandleLowStock(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, true, "GET /parts/low-stock")
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request, lowStockOnly bool, route string) {
	result, err := h.service.List(r.Context(), lowStockOnly)
	if err != nil {
		h.logger.Error("%s - Failed to list parts: error=%v", route, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("%s - Parts retrieved: count=%d", route, len(result.Parts))
	handlers.RespondJSON(w, http.StatusOK, result.Parts)
}

package get_part_movements

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ServiceDesk/internal/api/handlers"
	"github.com/m04kA/SMC-ServiceDesk/internal/service/inventory"
)

const (
	msgInvalidPartID = "некорректный ID запчасти"
	msgInvalidLimit  = "некорректный параметр limit"
	msgNotFound      = "запчасть не найдена"
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

// Handle GET /api/v1/parts/{partId}/movements
// Query params: limit (опционально, по умолчанию 50, максимум 500)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	partID, err := handlers.PathInt64(r, "partId")
	if err != nil {
		h.logger.Warn("GET /parts/{id}/movements - Invalid part ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPartID)
		return
	}

	limit, err := handlers.QueryInt64(r, "limit")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidLimit)
		return
	}

	var n int
	if limit != nil {
		n = int(*limit)
	}

	result, err := h.service.Movements(r.Context(), partID, n)
	if err != nil {
		switch {
		case errors.Is(err, inventory.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidLimit)

		case errors.Is(err, inventory.ErrPartNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /parts/{id}/movements - Failed to get movements: part_id=%d, error=%v", partID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result.Movements)
}

package adjust_part

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ServiceDesk/internal/api/handlers"
	"github.com/m04kA/SMC-ServiceDesk/internal/service/inventory"
	"github.com/m04kA/SMC-ServiceDesk/internal/service/inventory/models"
)

const (
	msgInvalidPartID      = "некорректный ID запчасти"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "укажите ненулевую корректировку и причину"
	msgNotFound           = "запчасть не найдена"
	msgInsufficientStock  = "корректировка увела бы остаток в минус"
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

// Handle POST /api/v1/parts/{partId}/adjust
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	partID, err := handlers.PathInt64(r, "partId")
	if err != nil {
		h.logger.Warn("POST /parts/{id}/adjust - Invalid part ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPartID)
		return
	}

	var req models.AdjustRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /parts/{id}/adjust - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Adjust(r.Context(), partID, &req)
	if err != nil {
		switch {
		case errors.Is(err, inventory.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, inventory.ErrPartNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, inventory.ErrInsufficientStock):
			h.logger.Warn("POST /parts/{id}/adjust - Insufficient stock: part_id=%d, delta=%d", partID, req.Delta)
			handlers.RespondConflict(w, msgInsufficientStock)

		default:
			h.logger.Error("POST /parts/{id}/adjust - Failed to adjust: part_id=%d, error=%v", partID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /parts/{id}/adjust - Stock adjusted: part_id=%d, delta=%d, stock=%d",
		partID, req.Delta, result.Part.Stock)
	handlers.RespondJSON(w, http.StatusOK, result)
}

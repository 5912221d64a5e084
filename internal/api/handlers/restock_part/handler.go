package restock_part

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
	msgInvalidQuantity    = "количество должно быть положительным"
	msgNotFound           = "запчасть не найдена"
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

// Handle POST /api/v1/parts/{partId}/restock
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	partID, err := handlers.PathInt64(r, "partId")
	if err != nil {
		h.logger.Warn("POST /parts/{id}/restock - Invalid part ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPartID)
		return
	}

	var req models.RestockRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /parts/{id}/restock - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Restock(r.Context(), partID, &req)
	if err != nil {
		switch {
		case errors.Is(err, inventory.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidQuantity)

		case errors.Is(err, inventory.ErrPartNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("POST /parts/{id}/restock - Failed to restock: part_id=%d, error=%v", partID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /parts/{id}/restock - Part restocked: part_id=%d, quantity=%d, stock=%d",
		partID, req.Quantity, result.Part.Stock)
	handlers.RespondJSON(w, http.StatusOK, result)
}

package cancel_request

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ServiceDesk/internal/api/handlers"
	"github.com/m04kA/SMC-ServiceDesk/internal/api/middleware"
	"github.com/m04kA/SMC-ServiceDesk/internal/service/requests"
)

const (
	msgInvalidRequestID = "некорректный ID заявки"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgNotFound         = "заявка не найдена"
	msgForbidden        = "доступ запрещен"
	msgCannotCancel     = "заявка уже обработана и не может быть отменена"
)

type Handler struct {
	service RequestService
	logger  Logger
}

func NewHandler(service RequestService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/requests/{requestId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	requestID, err := handlers.PathInt64(r, "requestId")
	if err != nil {
		h.logger.Warn("PATCH /requests/{id}/cancel - Invalid request ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestID)
		return
	}

	clientID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /requests/{id}/cancel - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.Cancel(r.Context(), requestID, clientID)
	if err != nil {
		switch {
		case errors.Is(err, requests.ErrRequestNotFound):
			h.logger.Warn("PATCH /requests/{id}/cancel - Request not found: request_id=%d", requestID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, requests.ErrAccessDenied):
			h.logger.Warn("PATCH /requests/{id}/cancel - Access denied: request_id=%d, client_id=%d",
				requestID, clientID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, requests.ErrInvalidState):
			h.logger.Warn("PATCH /requests/{id}/cancel - Cannot cancel: request_id=%d", requestID)
			handlers.RespondConflict(w, msgCannotCancel)

		default:
			h.logger.Error("PATCH /requests/{id}/cancel - Failed to cancel request: request_id=%d, error=%v",
				requestID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /requests/{id}/cancel - Request cancelled: request_id=%d, client_id=%d", requestID, clientID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

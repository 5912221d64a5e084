package get_client_requests

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ServiceDesk/internal/api/handlers"
	"github.com/m04kA/SMC-ServiceDesk/internal/api/middleware"
	"github.com/m04kA/SMC-ServiceDesk/internal/service/requests"
	"github.com/m04kA/SMC-ServiceDesk/internal/service/requests/models"
)

const (
	msgInvalidClientID = "некорректный ID клиента"
	msgMissingUserID   = "отсутствует ID пользователя"
	msgInvalidStatus   = "некорректный статус заявки"
	msgForbidden       = "доступ запрещен"
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

// Handle GET /api/v1/clients/{clientId}/requests
// Query params: status (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	clientID, err := handlers.PathInt64(r, "clientId")
	if err != nil {
		h.logger.Warn("GET /clients/{clientId}/requests - Invalid client ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidClientID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("GET /clients/{clientId}/requests - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var statusPtr *string
	if status := r.URL.Query().Get("status"); status != "" {
		statusPtr = &status
	}

	serviceReq := &models.ListClientRequestsRequest{
		ClientID: clientID,
		Status:   statusPtr,
	}

	result, err := h.service.ListByClient(r.Context(), serviceReq, actor)
	if err != nil {
		switch {
		case errors.Is(err, requests.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, requests.ErrAccessDenied):
			h.logger.Warn("GET /clients/{clientId}/requests - Access denied: client_id=%d, user_id=%d",
				clientID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /clients/{clientId}/requests - Failed to get requests: client_id=%d, error=%v",
				clientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /clients/{clientId}/requests - Requests retrieved: client_id=%d, count=%d",
		clientID, len(result.Requests))
	handlers.RespondJSON(w, http.StatusOK, result.Requests)
}

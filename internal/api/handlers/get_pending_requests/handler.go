package get_pending_requests

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ServiceDesk/internal/api/handlers"
	"github.com/m04kA/SMC-ServiceDesk/internal/api/middleware"
	"github.com/m04kA/SMC-ServiceDesk/internal/service/requests"
	"github.com/m04kA/SMC-ServiceDesk/internal/service/requests/models"
)

const (
	msgMissingUserID   = "отсутствует ID пользователя"
	msgInvalidAssigned = "некорректный параметр assignedToMe"
	msgForbidden       = "доступно только ответственным"
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

// Handle GET /api/v1/requests/pending
// Query params: assignedToMe (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("GET /requests/pending - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	assignedToMe, err := handlers.QueryBool(r, "assignedToMe")
	if err != nil {
		h.logger.Warn("GET /requests/pending - Invalid assignedToMe: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAssigned)
		return
	}

	result, err := h.service.ListPending(r.Context(), &models.ListPendingRequest{AssignedToMe: assignedToMe}, actor)
	if err != nil {
		switch {
		case errors.Is(err, requests.ErrAccessDenied):
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /requests/pending - Failed to list pending requests: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /requests/pending - Pending requests retrieved: responsable_id=%d, count=%d",
		actor.UserID, len(result.Requests))
	handlers.RespondJSON(w, http.StatusOK, result.Requests)
}

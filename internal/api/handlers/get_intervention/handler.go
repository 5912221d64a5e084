package get_intervention

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ServiceDesk/internal/api/handlers"
	"github.com/m04kA/SMC-ServiceDesk/internal/api/middleware"
	"github.com/m04kA/SMC-ServiceDesk/internal/service/interventions"
)

const (
	msgInvalidInterventionID = "некорректный ID вмешательства"
	msgMissingUserID         = "отсутствует ID пользователя"
	msgNotFound              = "вмешательство не найдено"
	msgForbidden             = "доступ запрещен"
)

type Handler struct {
	service InterventionService
	logger  Logger
}

func NewHandler(service InterventionService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/interventions/{interventionId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	interventionID, err := handlers.PathInt64(r, "interventionId")
	if err != nil {
		h.logger.Warn("GET /interventions/{id} - Invalid intervention ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInterventionID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("GET /interventions/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.GetByID(r.Context(), interventionID, actor)
	if err != nil {
		switch {
		case errors.Is(err, interventions.ErrInterventionNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, interventions.ErrAccessDenied):
			h.logger.Warn("GET /interventions/{id} - Access denied: intervention_id=%d, user_id=%d",
				interventionID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /interventions/{id} - Failed to get intervention: intervention_id=%d, error=%v",
				interventionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

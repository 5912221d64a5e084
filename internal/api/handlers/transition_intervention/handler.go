package transition_intervention

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ServiceDesk/internal/api/handlers"
	"github.com/m04kA/SMC-ServiceDesk/internal/api/middleware"
	"github.com/m04kA/SMC-ServiceDesk/internal/service/interventions"
)

const (
	msgInvalidInterventionID = "некорректный ID вмешательства"
	msgInvalidAction         = "неизвестное действие, ожидается start, complete или cancel"
	msgMissingUserID         = "отсутствует ID пользователя"
	msgNotFound              = "вмешательство не найдено"
	msgForbidden             = "доступ запрещен"
	msgInvalidTransition     = "переход недоступен в текущем статусе"
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

// Handle POST /api/v1/interventions/{interventionId}/{action}
// action: start | complete | cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	interventionID, err := handlers.PathInt64(r, "interventionId")
	if err != nil {
		h.logger.Warn("POST /interventions/{id}/{action} - Invalid intervention ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInterventionID)
		return
	}

	action := interventions.Action(mux.Vars(r)["action"])
	switch action {
	case interventions.ActionStart, interventions.ActionComplete, interventions.ActionCancel:
	default:
		h.logger.Warn("POST /interventions/{id}/{action} - Unknown action: %q", action)
		handlers.RespondBadRequest(w, msgInvalidAction)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /interventions/{id}/%s - Missing user ID", action)
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.Transition(r.Context(), interventionID, action, actor)
	if err != nil {
		switch {
		case errors.Is(err, interventions.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidAction)

		case errors.Is(err, interventions.ErrInterventionNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, interventions.ErrAccessDenied):
			h.logger.Warn("POST /interventions/{id}/%s - Access denied: intervention_id=%d, user_id=%d",
				action, interventionID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, interventions.ErrInvalidTransition), errors.Is(err, interventions.ErrInterventionClosed):
			h.logger.Warn("POST /interventions/{id}/%s - Invalid transition: intervention_id=%d, %v",
				action, interventionID, err)
			handlers.RespondConflict(w, msgInvalidTransition)

		default:
			h.logger.Error("POST /interventions/{id}/%s - Failed to apply transition: intervention_id=%d, error=%v",
				action, interventionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /interventions/{id}/%s - Intervention is now %s: intervention_id=%d",
		action, result.Status, interventionID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

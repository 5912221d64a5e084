package mark_intervention_paid

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
	msgForbidden             = "доступно только ответственным"
	msgNotCompleted          = "оплатить можно только завершенное вмешательство"
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

// Handle POST /api/v1/interventions/{interventionId}/paid
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	interventionID, err := handlers.PathInt64(r, "interventionId")
	if err != nil {
		h.logger.Warn("POST /interventions/{id}/paid - Invalid intervention ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInterventionID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /interventions/{id}/paid - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.MarkPaid(r.Context(), interventionID, actor)
	if err != nil {
		switch {
		case errors.Is(err, interventions.ErrInterventionNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, interventions.ErrAccessDenied):
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, interventions.ErrInvalidState):
			handlers.RespondConflict(w, msgNotCompleted)

		default:
			h.logger.Error("POST /interventions/{id}/paid - Failed to mark paid: intervention_id=%d, error=%v",
				interventionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /interventions/{id}/paid - Intervention paid: intervention_id=%d, free=%t",
		interventionID, result.IsFree)
	handlers.RespondJSON(w, http.StatusOK, result)
}

package reassign_intervention

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ServiceDesk/internal/api/handlers"
	"github.com/m04kA/SMC-ServiceDesk/internal/api/middleware"
	"github.com/m04kA/SMC-ServiceDesk/internal/service/interventions"
	"github.com/m04kA/SMC-ServiceDesk/internal/service/interventions/models"
)

const (
	msgInvalidInterventionID = "некорректный ID вмешательства"
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgMissingUserID         = "отсутствует ID пользователя"
	msgInvalidTechnician     = "некорректный ID техника"
	msgNotFound              = "вмешательство не найдено"
	msgForbidden             = "доступно только ответственным"
	msgClosed                = "вмешательство уже закрыто"
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

// Handle PUT /api/v1/interventions/{interventionId}/technician
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	interventionID, err := handlers.PathInt64(r, "interventionId")
	if err != nil {
		h.logger.Warn("PUT /interventions/{id}/technician - Invalid intervention ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInterventionID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("PUT /interventions/{id}/technician - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.ReassignRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /interventions/{id}/technician - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Reassign(r.Context(), interventionID, &req, actor)
	if err != nil {
		switch {
		case errors.Is(err, interventions.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidTechnician)

		case errors.Is(err, interventions.ErrInterventionNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, interventions.ErrAccessDenied):
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, interventions.ErrInterventionClosed):
			handlers.RespondConflict(w, msgClosed)

		default:
			h.logger.Error("PUT /interventions/{id}/technician - Failed to reassign: intervention_id=%d, error=%v",
				interventionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /interventions/{id}/technician - Intervention reassigned: intervention_id=%d, technician_id=%d",
		interventionID, result.TechnicianID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

package set_intervention_labor

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
	msgNegativeAmount        = "стоимость работ не может быть отрицательной"
	msgNotFound              = "вмешательство не найдено"
	msgForbidden             = "доступ запрещен"
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

// Handle PUT /api/v1/interventions/{interventionId}/labor
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	interventionID, err := handlers.PathInt64(r, "interventionId")
	if err != nil {
		h.logger.Warn("PUT /interventions/{id}/labor - Invalid intervention ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInterventionID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("PUT /interventions/{id}/labor - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.SetLaborRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /interventions/{id}/labor - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.SetLabor(r.Context(), interventionID, &req, actor)
	if err != nil {
		switch {
		case errors.Is(err, interventions.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgNegativeAmount)

		case errors.Is(err, interventions.ErrInterventionNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, interventions.ErrAccessDenied):
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, interventions.ErrInterventionClosed):
			handlers.RespondConflict(w, msgClosed)

		default:
			h.logger.Error("PUT /interventions/{id}/labor - Failed to set labor: intervention_id=%d, error=%v",
				interventionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

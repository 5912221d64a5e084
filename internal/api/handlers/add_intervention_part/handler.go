package add_intervention_part

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
	msgInvalidInput          = "запчасть и положительное количество обязательны"
	msgNotFound              = "вмешательство не найдено"
	msgPartNotFound          = "запчасть не найдена"
	msgForbidden             = "доступ запрещен"
	msgClosed                = "вмешательство уже закрыто"
	msgInsufficientStock     = "недостаточно запчастей на складе"
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

// Handle POST /api/v1/interventions/{interventionId}/parts
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	interventionID, err := handlers.PathInt64(r, "interventionId")
	if err != nil {
		h.logger.Warn("POST /interventions/{id}/parts - Invalid intervention ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInterventionID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /interventions/{id}/parts - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.AddPartRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /interventions/{id}/parts - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.AddPart(r.Context(), interventionID, &req, actor)
	if err != nil {
		switch {
		case errors.Is(err, interventions.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, interventions.ErrInterventionNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, interventions.ErrPartNotFound):
			handlers.RespondNotFound(w, msgPartNotFound)

		case errors.Is(err, interventions.ErrAccessDenied):
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, interventions.ErrInterventionClosed):
			handlers.RespondConflict(w, msgClosed)

		case errors.Is(err, interventions.ErrInsufficientStock):
			h.logger.Warn("POST /interventions/{id}/parts - Insufficient stock: intervention_id=%d, part_id=%d, quantity=%d",
				interventionID, req.PartID, req.Quantity)
			handlers.RespondConflict(w, msgInsufficientStock)

		default:
			h.logger.Error("POST /interventions/{id}/parts - Failed to add part: intervention_id=%d, error=%v",
				interventionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /interventions/{id}/parts - Part added: intervention_id=%d, part_id=%d, quantity=%d",
		interventionID, req.PartID, req.Quantity)
	handlers.RespondJSON(w, http.StatusOK, result)
}

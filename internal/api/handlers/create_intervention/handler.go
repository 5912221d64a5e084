package create_intervention

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ServiceDesk/internal/api/handlers"
	"github.com/m04kA/SMC-ServiceDesk/internal/api/middleware"
	"github.com/m04kA/SMC-ServiceDesk/internal/service/interventions"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidInput       = "укажите слот либо техника и время"
	msgSlotNotFound       = "слот не найден"
	msgSlotReserved       = "слот уже занят"
	msgForbidden          = "доступно только ответственным"
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

// Handle POST /api/v1/interventions
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /interventions - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateInterventionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /interventions - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), req.ToServiceRequest(), actor)
	if err != nil {
		switch {
		case errors.Is(err, interventions.ErrInvalidInput):
			h.logger.Warn("POST /interventions - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, interventions.ErrSlotNotFound):
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, interventions.ErrSlotAlreadyReserved):
			h.logger.Warn("POST /interventions - Slot reserved: slot_id=%v", req.SlotID)
			handlers.RespondConflict(w, msgSlotReserved)

		case errors.Is(err, interventions.ErrAccessDenied):
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("POST /interventions - Failed to create intervention: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /interventions - Intervention created: intervention_id=%d, technician_id=%d",
		result.ID, result.TechnicianID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

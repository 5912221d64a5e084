package get_technician_interventions

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ServiceDesk/internal/api/handlers"
	"github.com/m04kA/SMC-ServiceDesk/internal/api/middleware"
	"github.com/m04kA/SMC-ServiceDesk/internal/service/interventions"
	"github.com/m04kA/SMC-ServiceDesk/internal/service/interventions/models"
)

const (
	msgInvalidTechnicianID = "некорректный ID техника"
	msgMissingUserID       = "отсутствует ID пользователя"
	msgInvalidPeriod       = "некорректный период, ожидается RFC 3339 или YYYY-MM-DD"
	msgInvalidFilter       = "некорректный статус или период"
	msgForbidden           = "доступ запрещен"
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

// Handle GET /api/v1/technicians/{technicianId}/interventions
// Query params: status, from, to (все необязательные)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	technicianID, err := handlers.PathInt64(r, "technicianId")
	if err != nil {
		h.logger.Warn("GET /technicians/{id}/interventions - Invalid technician ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTechnicianID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("GET /technicians/{id}/interventions - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	from, err := handlers.QueryTime(r, "from")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidPeriod)
		return
	}
	to, err := handlers.QueryTime(r, "to")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidPeriod)
		return
	}

	serviceReq := &models.ListInterventionsRequest{
		TechnicianID: technicianID,
		From:         from,
		To:           to,
	}
	if status := r.URL.Query().Get("status"); status != "" {
		serviceReq.Status = &status
	}

	result, err := h.service.List(r.Context(), serviceReq, actor)
	if err != nil {
		switch {
		case errors.Is(err, interventions.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidFilter)

		case errors.Is(err, interventions.ErrAccessDenied):
			h.logger.Warn("GET /technicians/{id}/interventions - Access denied: technician_id=%d, user_id=%d",
				technicianID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /technicians/{id}/interventions - Failed to list interventions: technician_id=%d, error=%v",
				technicianID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /technicians/{id}/interventions - Interventions retrieved: technician_id=%d, count=%d",
		technicianID, len(result.Interventions))
	handlers.RespondJSON(w, http.StatusOK, result.Interventions)
}

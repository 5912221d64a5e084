package generate_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ServiceDesk/internal/api/handlers"
	generateSlots "github.com/m04kA/SMC-ServiceDesk/internal/usecase/generate_slots"
)

const (
	msgInvalidTechnicianID = "некорректный ID техника"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidFormat       = "некорректный формат: даты YYYY-MM-DD, время HH:MM"
	msgInvalidSchedule     = "некорректное расписание"
)

type Handler struct {
	useCase GenerateSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GenerateSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/technicians/{technicianId}/slots/generate
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	technicianID, err := handlers.PathInt64(r, "technicianId")
	if err != nil {
		h.logger.Warn("POST /technicians/{id}/slots/generate - Invalid technician ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTechnicianID)
		return
	}

	var req GenerateSlotsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /technicians/{id}/slots/generate - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(technicianID)
	if err != nil {
		h.logger.Warn("POST /technicians/{id}/slots/generate - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFormat)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, generateSlots.ErrInvalidSchedule):
			h.logger.Warn("POST /technicians/{id}/slots/generate - Invalid schedule: technician_id=%d, %v", technicianID, err)
			handlers.RespondBadRequest(w, msgInvalidSchedule)

		default:
			h.logger.Error("POST /technicians/{id}/slots/generate - Failed to generate slots: technician_id=%d, error=%v",
				technicianID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /technicians/{id}/slots/generate - Slots generated: technician_id=%d, created=%d, skipped=%d",
		technicianID, result.Created, result.Skipped)
	handlers.RespondJSON(w, http.StatusCreated, GenerateSlotsResponse{
		TechnicianID: technicianID,
		Created:      result.Created,
		Skipped:      result.Skipped,
	})
}

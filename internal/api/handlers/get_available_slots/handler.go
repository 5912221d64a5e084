package get_available_slots

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-ServiceDesk/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-ServiceDesk/internal/usecase/get_available_slots"
)

const (
	msgInvalidTechnicianID = "некорректный ID техника"
	msgInvalidFrom         = "некорректный параметр from, ожидается RFC 3339 или YYYY-MM-DD"
	msgInvalidTo           = "некорректный параметр to, ожидается RFC 3339 или YYYY-MM-DD"
	msgInvalidFreeOnly     = "некорректный параметр freeOnly"
	msgInvalidWindow       = "некорректное окно поиска"
	msgWindowTooWide       = "окно поиска слишком широкое"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/slots
// Query params: technicianId, from, to, freeOnly (все необязательные)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	technicianID, err := handlers.QueryInt64(r, "technicianId")
	if err != nil {
		h.logger.Warn("GET /slots - Invalid technician ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTechnicianID)
		return
	}

	from, err := handlers.QueryTime(r, "from")
	if err != nil {
		h.logger.Warn("GET /slots - Invalid from: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFrom)
		return
	}

	to, err := handlers.QueryTime(r, "to")
	if err != nil {
		h.logger.Warn("GET /slots - Invalid to: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTo)
		return
	}

	freeOnly, err := handlers.QueryBool(r, "freeOnly")
	if err != nil {
		h.logger.Warn("GET /slots - Invalid freeOnly: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFreeOnly)
		return
	}

	req := &getAvailableSlots.Request{
		TechnicianID: technicianID,
		FreeOnly:     freeOnly,
	}
	req.From = timeOrZero(from)
	req.To = timeOrZero(to)

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidWindow)

		case errors.Is(err, getAvailableSlots.ErrWindowTooWide):
			handlers.RespondBadRequest(w, msgWindowTooWide)

		default:
			h.logger.Error("GET /slots - Failed to list slots: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

func timeOrZero(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}

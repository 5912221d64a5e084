package accept_request

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ServiceDesk/internal/api/handlers"
	"github.com/m04kA/SMC-ServiceDesk/internal/api/middleware"
	acceptRequest "github.com/m04kA/SMC-ServiceDesk/internal/usecase/accept_request"
)

const (
	msgInvalidRequestID   = "некорректный ID заявки"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidInput       = "необходимо указать слот"
	msgRequestNotFound    = "заявка не найдена"
	msgRequestNotPending  = "заявка уже обработана"
	msgSlotNotFound       = "слот не найден"
	msgSlotReserved       = "слот уже занят"
)

type Handler struct {
	useCase AcceptRequestUseCase
	logger  Logger
}

func NewHandler(useCase AcceptRequestUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/requests/{requestId}/accept
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	requestID, err := handlers.PathInt64(r, "requestId")
	if err != nil {
		h.logger.Warn("POST /requests/{id}/accept - Invalid request ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestID)
		return
	}

	responsableID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /requests/{id}/accept - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req AcceptRequestRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /requests/{id}/accept - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(requestID, responsableID))
	if err != nil {
		switch {
		case errors.Is(err, acceptRequest.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, acceptRequest.ErrRequestNotFound):
			handlers.RespondNotFound(w, msgRequestNotFound)

		case errors.Is(err, acceptRequest.ErrSlotNotFound):
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, acceptRequest.ErrRequestNotPending):
			h.logger.Warn("POST /requests/{id}/accept - Request not pending: request_id=%d", requestID)
			handlers.RespondConflict(w, msgRequestNotPending)

		case errors.Is(err, acceptRequest.ErrSlotAlreadyReserved):
			h.logger.Warn("POST /requests/{id}/accept - Slot reserved: request_id=%d, slot_id=%d",
				requestID, req.SlotID)
			handlers.RespondConflict(w, msgSlotReserved)

		default:
			h.logger.Error("POST /requests/{id}/accept - Failed to accept request: request_id=%d, error=%v",
				requestID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /requests/{id}/accept - Request accepted: request_id=%d, intervention_id=%d, responsable_id=%d",
		requestID, result.InterventionID, responsableID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

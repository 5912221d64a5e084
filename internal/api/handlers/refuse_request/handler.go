package refuse_request

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ServiceDesk/internal/api/handlers"
	"github.com/m04kA/SMC-ServiceDesk/internal/api/middleware"
	refuseRequest "github.com/m04kA/SMC-ServiceDesk/internal/usecase/refuse_request"
)

const (
	msgInvalidRequestID   = "некорректный ID заявки"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidReason      = "причина отказа обязательна и не длиннее 500 символов"
	msgRequestNotFound    = "заявка не найдена"
	msgRequestNotPending  = "заявка уже обработана"
)

type Handler struct {
	useCase RefuseRequestUseCase
	logger  Logger
}

func NewHandler(useCase RefuseRequestUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/requests/{requestId}/refuse
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	requestID, err := handlers.PathInt64(r, "requestId")
	if err != nil {
		h.logger.Warn("POST /requests/{id}/refuse - Invalid request ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestID)
		return
	}

	responsableID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /requests/{id}/refuse - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req RefuseRequestRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /requests/{id}/refuse - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(requestID, responsableID))
	if err != nil {
		switch {
		case errors.Is(err, refuseRequest.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidReason)

		case errors.Is(err, refuseRequest.ErrRequestNotFound):
			handlers.RespondNotFound(w, msgRequestNotFound)

		case errors.Is(err, refuseRequest.ErrRequestNotPending):
			h.logger.Warn("POST /requests/{id}/refuse - Request not pending: request_id=%d", requestID)
			handlers.RespondConflict(w, msgRequestNotPending)

		default:
			h.logger.Error("POST /requests/{id}/refuse - Failed to refuse request: request_id=%d, error=%v",
				requestID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /requests/{id}/refuse - Request refused: request_id=%d, responsable_id=%d", requestID, responsableID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

package submit_request

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ServiceDesk/internal/api/handlers"
	"github.com/m04kA/SMC-ServiceDesk/internal/api/middleware"
	submitRequest "github.com/m04kA/SMC-ServiceDesk/internal/usecase/submit_request"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidDate         = "некорректный формат желаемой даты, ожидается YYYY-MM-DD"
	msgMissingUserID       = "отсутствует ID пользователя"
	msgInvalidInput        = "некорректные данные заявки"
	msgActiveRequestExists = "у клиента уже есть активная заявка"
	msgSlotNotFound        = "слот не найден"
	msgSlotReserved        = "выбранный слот уже занят"
	msgClaimNotFound       = "рекламация не найдена"
	msgForbidden           = "рекламация принадлежит другому клиенту"
)

type Handler struct {
	useCase SubmitRequestUseCase
	logger  Logger
}

func NewHandler(useCase SubmitRequestUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/requests
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	clientID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /requests - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req SubmitRequestRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /requests - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(clientID)
	if err != nil {
		h.logger.Warn("POST /requests - Invalid desired date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, submitRequest.ErrInvalidInput):
			h.logger.Warn("POST /requests - Invalid input: client_id=%d, %v", clientID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, submitRequest.ErrActiveRequestExists):
			h.logger.Warn("POST /requests - Active request exists: client_id=%d", clientID)
			handlers.RespondConflict(w, msgActiveRequestExists)

		case errors.Is(err, submitRequest.ErrSlotAlreadyReserved):
			h.logger.Warn("POST /requests - Slot reserved: client_id=%d, slot_id=%v", clientID, req.SlotID)
			handlers.RespondConflict(w, msgSlotReserved)

		case errors.Is(err, submitRequest.ErrSlotNotFound):
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, submitRequest.ErrClaimNotFound):
			handlers.RespondNotFound(w, msgClaimNotFound)

		case errors.Is(err, submitRequest.ErrAccessDenied):
			h.logger.Warn("POST /requests - Claim access denied: client_id=%d, claim_id=%v", clientID, req.ClaimID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("POST /requests - Failed to submit request: client_id=%d, error=%v", clientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /requests - Request submitted: request_id=%d, client_id=%d", result.ID, clientID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

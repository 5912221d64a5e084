package refuse_request

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ServiceDesk/internal/domain"
	requestRepo "github.com/m04kA/SMC-ServiceDesk/internal/infra/storage/request"
	"github.com/m04kA/SMC-ServiceDesk/internal/integrations/events"
)

// UseCase use case отказа по заявке
type UseCase struct {
	requestRepo RequestRepository
	publisher   EventPublisher
	metrics     Metrics
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(requestRepo RequestRepository, publisher EventPublisher, metrics Metrics, logger Logger) *UseCase {
	return &UseCase{
		requestRepo: requestRepo,
		publisher:   publisher,
		metrics:     metrics,
		logger:      logger,
	}
}

// Execute отклоняет заявку с указанием причины. Слоты не затрагиваются
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RefuseRequest: request=%d, responsable=%d", req.RequestID, req.ResponsableID)

	if err := validateRequestID(req); err != nil {
		uc.logger.Warn("RefuseRequest: validation failed: %v", err)
		return nil, err
	}

	bookingRequest, err := uc.requestRepo.GetByID(ctx, req.RequestID)
	if err != nil {
		return nil, uc.mapError(err, req.RequestID)
	}
	if !bookingRequest.IsPending() {
		uc.logger.Warn("RefuseRequest: request=%d is %s", req.RequestID, bookingRequest.Status)
		return nil, ErrRequestNotPending
	}

	if err := validateReason(req); err != nil {
		uc.logger.Warn("RefuseRequest: validation failed: %v", err)
		return nil, err
	}

	// Условный UPDATE по статусу pending: параллельное принятие не будет перезаписано
	if err := uc.requestRepo.Refuse(ctx, req.RequestID, req.Reason); err != nil {
		return nil, uc.mapError(err, req.RequestID)
	}

	uc.metrics.IncRequestOutcome(string(domain.RequestStatusRefused))

	event := events.New(events.RequestRefused, req.RequestID, map[string]interface{}{
		"client_id":      bookingRequest.ClientID,
		"reason":         req.Reason,
		"responsable_id": req.ResponsableID,
	})
	if err := uc.publisher.Publish(ctx, event); err != nil {
		uc.logger.Error("RefuseRequest: failed to publish %s for request=%d: %v", event.Type, req.RequestID, err)
	}

	uc.logger.Info("RefuseRequest: request=%d refused", req.RequestID)

	return &Response{
		RequestID: req.RequestID,
		Status:    string(domain.RequestStatusRefused),
		Reason:    req.Reason,
	}, nil
}

func (uc *UseCase) mapError(err error, requestID int64) error {
	switch {
	case errors.Is(err, requestRepo.ErrRequestNotFound):
		uc.logger.Warn("RefuseRequest: request=%d not found", requestID)
		return ErrRequestNotFound
	case errors.Is(err, requestRepo.ErrRequestNotPending):
		uc.logger.Warn("RefuseRequest: request=%d is not pending", requestID)
		return ErrRequestNotPending
	default:
		uc.logger.Error("RefuseRequest: repository error for request=%d: %v", requestID, err)
		return fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}
}

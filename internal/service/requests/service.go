package requests

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ServiceDesk/internal/domain"
	requestRepo "github.com/m04kA/SMC-ServiceDesk/internal/infra/storage/request"
	"github.com/m04kA/SMC-ServiceDesk/internal/integrations/events"
	"github.com/m04kA/SMC-ServiceDesk/internal/service/requests/models"
)

// Service сервис для работы с заявками клиентов
type Service struct {
	requestRepo RequestRepository
	publisher   EventPublisher
	metrics     Metrics
	logger      Logger
}

// NewService создает новый экземпляр сервиса заявок
func NewService(requestRepo RequestRepository, publisher EventPublisher, metrics Metrics, logger Logger) *Service {
	return &Service{
		requestRepo: requestRepo,
		publisher:   publisher,
		metrics:     metrics,
		logger:      logger,
	}
}

// GetByID получает заявку по ID
// Клиент видит только свои заявки, ответственный видит все
func (s *Service) GetByID(ctx context.Context, id int64, actor domain.Actor) (*models.RequestResponse, error) {
	s.logger.Info("GetByID: fetching request id=%d for user=%d (%s)", id, actor.UserID, actor.Role)

	req, err := s.get(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if req.ClientID != actor.UserID && !actor.IsResponsable() {
		s.logger.Warn("GetByID: access denied for user=%d to request id=%d", actor.UserID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainRequest(req), nil
}

// ListByClient получает историю заявок клиента, опционально по статусу
func (s *Service) ListByClient(ctx context.Context, req *models.ListClientRequestsRequest, actor domain.Actor) (*models.RequestListResponse, error) {
	s.logger.Info("ListByClient: fetching requests for client=%d, status=%v", req.ClientID, req.Status)

	if req.ClientID != actor.UserID && !actor.IsResponsable() {
		s.logger.Warn("ListByClient: access denied for user=%d to client=%d", actor.UserID, req.ClientID)
		return nil, ErrAccessDenied
	}

	var domainStatus *domain.RequestStatus
	if req.Status != nil {
		status, err := models.ToDomainRequestStatus(*req.Status)
		if err != nil {
			s.logger.Warn("ListByClient: invalid status=%s for client=%d", *req.Status, req.ClientID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	list, err := s.requestRepo.ListByClient(ctx, req.ClientID, domainStatus)
	if err != nil {
		s.logger.Error("ListByClient: repository error for client=%d: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: ListByClient - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByClient: fetched %d requests for client=%d", len(list), req.ClientID)
	return models.FromDomainRequestList(list), nil
}

// ListPending получает заявки, ожидающие решения, от старых к новым
func (s *Service) ListPending(ctx context.Context, req *models.ListPendingRequest, actor domain.Actor) (*models.RequestListResponse, error) {
	s.logger.Info("ListPending: fetching pending requests for responsable=%d, assignedToMe=%t", actor.UserID, req.AssignedToMe)

	if !actor.IsResponsable() {
		s.logger.Warn("ListPending: user=%d is not a responsable", actor.UserID)
		return nil, ErrAccessDenied
	}

	filter := domain.PendingRequestsFilter{}
	if req.AssignedToMe {
		responsableID := actor.UserID
		filter.AssignedResponsableID = &responsableID
	}

	list, err := s.requestRepo.ListPending(ctx, filter)
	if err != nil {
		s.logger.Error("ListPending: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListPending - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainRequestList(list), nil
}

// Cancel отменяет заявку клиентом
// Только владелец и только пока заявка в статусе pending
func (s *Service) Cancel(ctx context.Context, requestID int64, clientID int64) (*models.RequestResponse, error) {
	s.logger.Info("Cancel: cancelling request id=%d by client=%d", requestID, clientID)

	req, err := s.get(ctx, "Cancel", requestID)
	if err != nil {
		return nil, err
	}

	if req.ClientID != clientID {
		s.logger.Warn("Cancel: access denied for client=%d to request id=%d", clientID, requestID)
		return nil, ErrAccessDenied
	}

	if !req.CanBeCancelledBy(clientID) {
		s.logger.Warn("Cancel: request id=%d cannot be cancelled, status=%s", requestID, req.Status)
		return nil, ErrInvalidState
	}

	if err := s.requestRepo.Cancel(ctx, requestID); err != nil {
		switch {
		case errors.Is(err, requestRepo.ErrRequestNotPending):
			s.logger.Warn("Cancel: request id=%d was processed concurrently", requestID)
			return nil, ErrInvalidState
		case errors.Is(err, requestRepo.ErrRequestNotFound):
			return nil, ErrRequestNotFound
		default:
			s.logger.Error("Cancel: repository error for request id=%d: %v", requestID, err)
			return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}
	}

	s.metrics.IncRequestOutcome(string(domain.RequestStatusCancelled))

	event := events.New(events.RequestCancelled, requestID, map[string]interface{}{
		"client_id": clientID,
	})
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("Cancel: failed to publish %s for request id=%d: %v", event.Type, requestID, err)
	}

	// Перечитываем, чтобы вернуть фактическое cancelled_at
	cancelled, err := s.get(ctx, "Cancel", requestID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Cancel: successfully cancelled request id=%d", requestID)
	return models.FromDomainRequest(cancelled), nil
}

func (s *Service) get(ctx context.Context, op string, id int64) (*domain.BookingRequest, error) {
	req, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, requestRepo.ErrRequestNotFound) {
			s.logger.Warn("%s: request id=%d not found", op, id)
			return nil, ErrRequestNotFound
		}
		s.logger.Error("%s: repository error for request id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return req, nil
}

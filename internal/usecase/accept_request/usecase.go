package accept_request

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ServiceDesk/internal/domain"
	requestRepo "github.com/m04kA/SMC-ServiceDesk/internal/infra/storage/request"
	slotRepo "github.com/m04kA/SMC-ServiceDesk/internal/infra/storage/slot"
	"github.com/m04kA/SMC-ServiceDesk/internal/integrations/events"
	"github.com/m04kA/SMC-ServiceDesk/internal/service/warranty"
)

// UseCase use case принятия заявки ответственным
type UseCase struct {
	requestRepo      RequestRepository
	slotRepo         SlotRepository
	interventionRepo InterventionRepository
	warranty         WarrantyEvaluator
	publisher        EventPublisher
	txManager        TransactionManager
	metrics          Metrics
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	requestRepo RequestRepository,
	slotRepo SlotRepository,
	interventionRepo InterventionRepository,
	warranty WarrantyEvaluator,
	publisher EventPublisher,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		requestRepo:      requestRepo,
		slotRepo:         slotRepo,
		interventionRepo: interventionRepo,
		warranty:         warranty,
		publisher:        publisher,
		txManager:        txManager,
		metrics:          metrics,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute принимает заявку: резервирует слот, создает вмешательство и подтверждает заявку
// Всё выполняется в одной транзакции: если слот уже занят, ничего не сохраняется
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("AcceptRequest: request=%d, slot=%d, responsable=%d", req.RequestID, req.SlotID, req.ResponsableID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("AcceptRequest: validation failed: %v", err)
		return nil, err
	}

	// 2. Предварительные проверки без блокировок
	bookingRequest, err := uc.requestRepo.GetByID(ctx, req.RequestID)
	if err != nil {
		return nil, uc.mapRequestError(err, req.RequestID)
	}
	if !bookingRequest.IsPending() {
		uc.logger.Warn("AcceptRequest: request=%d is %s", req.RequestID, bookingRequest.Status)
		return nil, ErrRequestNotPending
	}

	slot, err := uc.slotRepo.GetByID(ctx, req.SlotID)
	if err != nil {
		return nil, uc.mapSlotError(err, req.SlotID)
	}
	if slot.IsReserved {
		uc.metrics.IncSlotConflict()
		uc.logger.Warn("AcceptRequest: slot=%d already reserved", req.SlotID)
		return nil, ErrSlotAlreadyReserved
	}

	// 3. Гарантия определяется один раз, до транзакции: внешний вызов не держит блокировки
	isFree, err := uc.warranty.IsClaimUnderWarranty(ctx, bookingRequest.ClaimID, uc.timeProvider.Now())
	if err != nil {
		if !errors.Is(err, warranty.ErrClaimNotFound) && !errors.Is(err, warranty.ErrPurchasedArticleNotFound) {
			uc.logger.Error("AcceptRequest: warranty check failed for request=%d: %v", req.RequestID, err)
			return nil, fmt.Errorf("%w: warranty check failed: %v", ErrInternal, err)
		}
		uc.logger.Warn("AcceptRequest: warranty data missing for request=%d, billing as paid: %v", req.RequestID, err)
		isFree = false
	}

	var intervention *domain.Intervention

	// 4. Атомарно: блокировка заявки, вмешательство, резерв слота, подтверждение
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		locked, err := uc.requestRepo.GetByIDForUpdate(txCtx, req.RequestID)
		if err != nil {
			return err
		}
		if !locked.IsPending() {
			return ErrRequestNotPending
		}

		iv := domain.NewIntervention(slot.TechnicianID, slot.StartAt, isFree)
		iv.ClaimID = locked.ClaimID
		iv.RequestID = &locked.ID
		iv.SlotID = &slot.ID

		intervention, err = uc.interventionRepo.Create(txCtx, iv)
		if err != nil {
			return fmt.Errorf("%w: failed to create intervention: %w", ErrInternal, err)
		}

		if err := uc.slotRepo.Reserve(txCtx, slot.ID, intervention.ID); err != nil {
			return err
		}

		if err := uc.requestRepo.Confirm(txCtx, locked.ID, slot.ID, intervention.ID); err != nil {
			return err
		}

		return nil
	})
	if err != nil {
		return nil, uc.mapTxError(err, req)
	}

	uc.metrics.IncRequestOutcome(string(domain.RequestStatusConfirmed))
	uc.metrics.IncInterventionTransition(string(domain.InterventionStatusPlanned))

	uc.publish(ctx, events.New(events.RequestConfirmed, req.RequestID, map[string]interface{}{
		"client_id":       bookingRequest.ClientID,
		"slot_id":         slot.ID,
		"intervention_id": intervention.ID,
		"responsable_id":  req.ResponsableID,
	}))
	uc.publish(ctx, events.New(events.InterventionCreated, intervention.ID, map[string]interface{}{
		"technician_id": intervention.TechnicianID,
		"scheduled_at":  intervention.ScheduledAt,
		"is_free":       intervention.IsFree,
	}))

	uc.logger.Info("AcceptRequest: request=%d confirmed, slot=%d, intervention=%d, technician=%d, free=%t",
		req.RequestID, slot.ID, intervention.ID, intervention.TechnicianID, intervention.IsFree)

	return &Response{
		RequestID:      req.RequestID,
		Status:         string(domain.RequestStatusConfirmed),
		SlotID:         slot.ID,
		InterventionID: intervention.ID,
		TechnicianID:   intervention.TechnicianID,
		ScheduledAt:    intervention.ScheduledAt,
		IsFree:         intervention.IsFree,
	}, nil
}

func (uc *UseCase) mapRequestError(err error, requestID int64) error {
	switch {
	case errors.Is(err, requestRepo.ErrRequestNotFound):
		uc.logger.Warn("AcceptRequest: request=%d not found", requestID)
		return ErrRequestNotFound
	case errors.Is(err, requestRepo.ErrRequestNotPending):
		uc.logger.Warn("AcceptRequest: request=%d is not pending", requestID)
		return ErrRequestNotPending
	default:
		uc.logger.Error("AcceptRequest: request repository error for request=%d: %v", requestID, err)
		return fmt.Errorf("%w: request repository error: %v", ErrInternal, err)
	}
}

func (uc *UseCase) mapSlotError(err error, slotID int64) error {
	switch {
	case errors.Is(err, slotRepo.ErrSlotNotFound):
		uc.logger.Warn("AcceptRequest: slot=%d not found", slotID)
		return ErrSlotNotFound
	case errors.Is(err, slotRepo.ErrSlotAlreadyReserved):
		uc.metrics.IncSlotConflict()
		uc.logger.Warn("AcceptRequest: slot=%d already reserved", slotID)
		return ErrSlotAlreadyReserved
	default:
		uc.logger.Error("AcceptRequest: slot repository error for slot=%d: %v", slotID, err)
		return fmt.Errorf("%w: slot repository error: %v", ErrInternal, err)
	}
}

func (uc *UseCase) mapTxError(err error, req *Request) error {
	switch {
	case errors.Is(err, ErrRequestNotPending):
		uc.logger.Warn("AcceptRequest: request=%d was processed concurrently", req.RequestID)
		return ErrRequestNotPending
	case errors.Is(err, ErrInternal):
		uc.logger.Error("AcceptRequest: request=%d: %v", req.RequestID, err)
		return err
	case errors.Is(err, slotRepo.ErrSlotNotFound), errors.Is(err, slotRepo.ErrSlotAlreadyReserved):
		return uc.mapSlotError(err, req.SlotID)
	default:
		return uc.mapRequestError(err, req.RequestID)
	}
}

// publish отправляет событие после фиксации транзакции; ошибка публикации не отменяет операцию
func (uc *UseCase) publish(ctx context.Context, event events.Event) {
	if err := uc.publisher.Publish(ctx, event); err != nil {
		uc.logger.Error("AcceptRequest: failed to publish %s for id=%d: %v", event.Type, event.AggregateID, err)
	}
}

package submit_request

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ServiceDesk/internal/domain"
	slotRepo "github.com/m04kA/SMC-ServiceDesk/internal/infra/storage/slot"
	catalogClient "github.com/m04kA/SMC-ServiceDesk/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-ServiceDesk/internal/integrations/events"
)

// UseCase use case создания заявки клиента
type UseCase struct {
	requestRepo  RequestRepository
	slotRepo     SlotRepository
	claims       ClaimRegistry
	picker       ResponsablePicker
	publisher    EventPublisher
	txManager    TransactionManager
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	requestRepo RequestRepository,
	slotRepo SlotRepository,
	claims ClaimRegistry,
	picker ResponsablePicker,
	publisher EventPublisher,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		requestRepo:  requestRepo,
		slotRepo:     slotRepo,
		claims:       claims,
		picker:       picker,
		publisher:    publisher,
		txManager:    txManager,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute создает заявку в статусе pending
// Выбранный слот не резервируется: резерв происходит только при принятии заявки
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("SubmitRequest: client=%d, desired_date=%s, slot=%v, claim=%v",
		req.ClientID, req.DesiredDate.Format(domain.DateFormat), req.SlotID, req.ClaimID)

	now := uc.timeProvider.Now()

	// 1. Валидация входных данных
	if err := validateRequest(req, now); err != nil {
		uc.logger.Warn("SubmitRequest: validation failed: %v", err)
		return nil, err
	}

	// 2. Выбранный слот должен существовать и быть свободным на момент подачи
	if req.SlotID != nil {
		if err := uc.checkSlot(ctx, *req.SlotID, now); err != nil {
			return nil, err
		}
	}

	// 3. Рекламация должна принадлежать клиенту
	if req.ClaimID != nil {
		if err := uc.checkClaim(ctx, *req.ClaimID, req.ClientID); err != nil {
			return nil, err
		}
	}

	// 4. Назначаем ответственного; при недоступности UserService заявка остаётся без назначения
	responsableID, err := uc.picker.PickAvailableResponsable(ctx)
	if err != nil {
		uc.logger.Warn("SubmitRequest: responsable not assigned for client=%d: %v", req.ClientID, err)
		responsableID = nil
	}

	var created *domain.BookingRequest

	// 5. Проверка активной заявки и вставка под блокировкой клиента
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := uc.requestRepo.LockClient(txCtx, req.ClientID); err != nil {
			return fmt.Errorf("%w: failed to lock client: %w", ErrInternal, err)
		}

		active, err := uc.requestRepo.HasActive(txCtx, req.ClientID, now)
		if err != nil {
			return fmt.Errorf("%w: failed to check active requests: %w", ErrInternal, err)
		}
		if active {
			return ErrActiveRequestExists
		}

		created, err = uc.requestRepo.Create(txCtx, &domain.BookingRequest{
			ClientID:              req.ClientID,
			Motive:                req.Motive,
			DesiredDate:           req.DesiredDate,
			ClaimID:               req.ClaimID,
			SlotID:                req.SlotID,
			Comment:               req.Comment,
			Status:                domain.RequestStatusPending,
			AssignedResponsableID: responsableID,
		})
		if err != nil {
			return fmt.Errorf("%w: failed to create request: %w", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, ErrActiveRequestExists) {
			uc.logger.Warn("SubmitRequest: client=%d already has an active request", req.ClientID)
		} else {
			uc.logger.Error("SubmitRequest: client=%d: %v", req.ClientID, err)
		}
		return nil, err
	}

	uc.metrics.IncRequestOutcome(string(domain.RequestStatusPending))
	uc.publish(ctx, events.New(events.RequestSubmitted, created.ID, map[string]interface{}{
		"client_id":               created.ClientID,
		"slot_id":                 created.SlotID,
		"assigned_responsable_id": created.AssignedResponsableID,
	}))

	uc.logger.Info("SubmitRequest: created request id=%d for client=%d", created.ID, created.ClientID)

	return &Response{
		ID:                    created.ID,
		ClientID:              created.ClientID,
		Motive:                created.Motive,
		DesiredDate:           created.DesiredDate,
		SlotID:                created.SlotID,
		ClaimID:               created.ClaimID,
		Comment:               created.Comment,
		Status:                string(created.Status),
		AssignedResponsableID: created.AssignedResponsableID,
		CreatedAt:             created.CreatedAt,
	}, nil
}

// checkSlot проверяет, что выбранный слот существует, свободен и ещё не начался
func (uc *UseCase) checkSlot(ctx context.Context, slotID int64, now time.Time) error {
	slot, err := uc.slotRepo.GetByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			uc.logger.Warn("SubmitRequest: slot id=%d not found", slotID)
			return ErrSlotNotFound
		}
		uc.logger.Error("SubmitRequest: failed to get slot id=%d: %v", slotID, err)
		return fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
	}

	if slot.IsReserved {
		uc.logger.Warn("SubmitRequest: slot id=%d is already reserved", slotID)
		return ErrSlotAlreadyReserved
	}

	if !slot.StartAt.After(now) {
		return fmt.Errorf("%w: slot id=%d has already started", ErrInvalidInput, slotID)
	}

	return nil
}

// checkClaim проверяет, что рекламация существует и принадлежит клиенту
func (uc *UseCase) checkClaim(ctx context.Context, claimID, clientID int64) error {
	claim, err := uc.claims.GetClaim(ctx, claimID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrClaimNotFound) {
			uc.logger.Warn("SubmitRequest: claim id=%d not found", claimID)
			return ErrClaimNotFound
		}
		uc.logger.Error("SubmitRequest: failed to get claim id=%d: %v", claimID, err)
		return fmt.Errorf("%w: failed to get claim: %v", ErrInternal, err)
	}

	if claim.ClientID != clientID {
		uc.logger.Warn("SubmitRequest: claim id=%d belongs to client=%d, not %d", claimID, claim.ClientID, clientID)
		return ErrAccessDenied
	}

	return nil
}

// publish отправляет событие после фиксации транзакции; ошибка публикации не отменяет операцию
func (uc *UseCase) publish(ctx context.Context, event events.Event) {
	if err := uc.publisher.Publish(ctx, event); err != nil {
		uc.logger.Error("SubmitRequest: failed to publish %s for id=%d: %v", event.Type, event.AggregateID, err)
	}
}

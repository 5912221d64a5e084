package interventions

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ServiceDesk/internal/domain"
	interventionRepo "github.com/m04kA/SMC-ServiceDesk/internal/infra/storage/intervention"
	partRepo "github.com/m04kA/SMC-ServiceDesk/internal/infra/storage/part"
	slotRepo "github.com/m04kA/SMC-ServiceDesk/internal/infra/storage/slot"
	"github.com/m04kA/SMC-ServiceDesk/internal/integrations/events"
	"github.com/m04kA/SMC-ServiceDesk/internal/service/interventions/models"
	"github.com/m04kA/SMC-ServiceDesk/internal/service/warranty"
)

// Action переход жизненного цикла, доступный через API
type Action string

const (
	ActionStart    Action = "start"
	ActionComplete Action = "complete"
	ActionCancel   Action = "cancel"
)

var transitionEvents = map[Action]events.Type{
	ActionStart:    events.InterventionStarted,
	ActionComplete: events.InterventionCompleted,
	ActionCancel:   events.InterventionCancelled,
}

// Service сервис жизненного цикла вмешательств
type Service struct {
	interventionRepo InterventionRepository
	slotRepo         SlotRepository
	partRepo         PartRepository
	warranty         WarrantyEvaluator
	publisher        EventPublisher
	txManager        TransactionManager
	metrics          Metrics
	timeProvider     TimeProvider
	logger           Logger
}

// NewService создает новый экземпляр сервиса вмешательств
func NewService(
	interventionRepo InterventionRepository,
	slotRepo SlotRepository,
	partRepo PartRepository,
	warranty WarrantyEvaluator,
	publisher EventPublisher,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		interventionRepo: interventionRepo,
		slotRepo:         slotRepo,
		partRepo:         partRepo,
		warranty:         warranty,
		publisher:        publisher,
		txManager:        txManager,
		metrics:          metrics,
		timeProvider:     realTimeProvider{},
		logger:           logger,
	}
}

// GetByID получает вмешательство со строками запчастей
// Доступно назначенному технику и любому ответственному
func (s *Service) GetByID(ctx context.Context, id int64, actor domain.Actor) (*models.InterventionResponse, error) {
	s.logger.Info("GetByID: fetching intervention id=%d for user=%d (%s)", id, actor.UserID, actor.Role)

	iv, err := s.interventionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapError("GetByID", id, err)
	}

	if err := s.authorize(iv, actor); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to intervention id=%d", actor.UserID, id)
		return nil, err
	}

	return models.FromDomainIntervention(iv), nil
}

// List получает вмешательства техника по статусу и периоду
func (s *Service) List(ctx context.Context, req *models.ListInterventionsRequest, actor domain.Actor) (*models.InterventionListResponse, error) {
	s.logger.Info("List: fetching interventions for technician=%d, status=%v", req.TechnicianID, req.Status)

	if !actor.IsResponsable() && !(actor.Role == domain.RoleTechnician && actor.UserID == req.TechnicianID) {
		s.logger.Warn("List: access denied for user=%d to technician=%d", actor.UserID, req.TechnicianID)
		return nil, ErrAccessDenied
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter for technician=%d: %v", req.TechnicianID, err)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}
	if filter.From != nil && filter.To != nil && !filter.From.Before(*filter.To) {
		return nil, fmt.Errorf("%w: from must be before to", ErrInvalidInput)
	}

	list, err := s.interventionRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error for technician=%d: %v", req.TechnicianID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d interventions for technician=%d", len(list), req.TechnicianID)
	return models.FromDomainInterventionList(list), nil
}

// Create создает вмешательство напрямую, без заявки клиента
// При указании слота техник и время берутся из него, слот резервируется в той же транзакции
func (s *Service) Create(ctx context.Context, req *models.CreateInterventionRequest, actor domain.Actor) (*models.InterventionResponse, error) {
	s.logger.Info("Create: creating intervention by responsable=%d, slot=%v, technician=%v", actor.UserID, req.SlotID, req.TechnicianID)

	if !actor.IsResponsable() {
		return nil, ErrAccessDenied
	}

	iv, err := s.newIntervention(ctx, req)
	if err != nil {
		return nil, err
	}

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		created, err := s.interventionRepo.Create(txCtx, iv)
		if err != nil {
			return fmt.Errorf("%w: Create - repository error: %w", ErrInternal, err)
		}
		iv = created

		if iv.SlotID != nil {
			if err := s.slotRepo.Reserve(txCtx, *iv.SlotID, iv.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, s.mapError("Create", 0, err)
	}

	s.metrics.IncInterventionTransition(string(domain.InterventionStatusPlanned))
	s.publish(ctx, events.New(events.InterventionCreated, iv.ID, map[string]interface{}{
		"technician_id": iv.TechnicianID,
		"scheduled_at":  iv.ScheduledAt,
		"is_free":       iv.IsFree,
	}))

	s.logger.Info("Create: intervention id=%d created for technician=%d, free=%t", iv.ID, iv.TechnicianID, iv.IsFree)
	return models.FromDomainIntervention(iv), nil
}

// Transition выполняет переход жизненного цикла: start, complete или cancel
// Отмена освобождает связанный слот
func (s *Service) Transition(ctx context.Context, id int64, action Action, actor domain.Actor) (*models.InterventionResponse, error) {
	s.logger.Info("Transition: %s intervention id=%d by user=%d", action, id, actor.UserID)

	var apply func(iv *domain.Intervention) error
	now := s.timeProvider.Now()
	switch action {
	case ActionStart:
		apply = func(iv *domain.Intervention) error { return iv.Start(now) }
	case ActionComplete:
		apply = func(iv *domain.Intervention) error { return iv.Complete(now) }
	case ActionCancel:
		apply = func(iv *domain.Intervention) error { return iv.Cancel(now) }
	default:
		return nil, fmt.Errorf("%w: unknown action %q", ErrInvalidInput, action)
	}

	iv, err := s.mutate(ctx, "Transition", id, actor, func(txCtx context.Context, iv *domain.Intervention) error {
		if err := apply(iv); err != nil {
			return err
		}
		if action == ActionCancel && iv.SlotID != nil {
			if err := s.slotRepo.Release(txCtx, *iv.SlotID, iv.ID); err != nil && !errors.Is(err, slotRepo.ErrSlotNotFound) {
				return fmt.Errorf("%w: Transition - release slot: %w", ErrInternal, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.IncInterventionTransition(string(iv.Status))

	s.publish(ctx, events.New(transitionEvents[action], iv.ID, map[string]interface{}{
		"technician_id": iv.TechnicianID,
		"status":        iv.Status,
		"total_amount":  iv.TotalAmount.StringFixed(2),
	}))

	s.logger.Info("Transition: intervention id=%d is now %s", id, iv.Status)
	return models.FromDomainIntervention(iv), nil
}

// AddPart списывает запчасть со склада и добавляет строку по текущей цене
// Списание и строка сохраняются в одной транзакции
func (s *Service) AddPart(ctx context.Context, id int64, req *models.AddPartRequest, actor domain.Actor) (*models.InterventionResponse, error) {
	s.logger.Info("AddPart: intervention id=%d, part=%d, quantity=%d by user=%d", id, req.PartID, req.Quantity, actor.UserID)

	if req.PartID <= 0 {
		return nil, fmt.Errorf("%w: partID must be positive", ErrInvalidInput)
	}
	if req.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", ErrInvalidInput)
	}

	var consumption *domain.PartConsumption
	iv, err := s.mutate(ctx, "AddPart", id, actor, func(txCtx context.Context, iv *domain.Intervention) error {
		if err := iv.EnsureOpen(); err != nil {
			return err
		}

		var err error
		consumption, err = s.partRepo.Consume(txCtx, req.PartID, req.Quantity, &iv.ID)
		if err != nil {
			return err
		}

		line, err := domain.NewConsumedPart(iv.ID, req.PartID, consumption.Part.Name, req.Quantity, consumption.Part.UnitPrice)
		if err != nil {
			return err
		}
		if err := s.interventionRepo.AddPart(txCtx, line); err != nil {
			return fmt.Errorf("%w: AddPart - insert line: %w", ErrInternal, err)
		}
		return iv.AddPart(*line)
	})
	if err != nil {
		if errors.Is(err, ErrInsufficientStock) {
			s.metrics.IncStockConflict()
		}
		return nil, err
	}

	if consumption.Part.IsLowStock() {
		s.publish(ctx, events.New(events.StockLow, consumption.Part.ID, map[string]interface{}{
			"name":      consumption.Part.Name,
			"reference": consumption.Part.Reference,
			"stock":     consumption.Part.Stock,
			"min_stock": consumption.Part.MinStock,
		}))
	}

	s.logger.Info("AddPart: intervention id=%d total=%s", id, iv.TotalAmount.StringFixed(2))
	return models.FromDomainIntervention(iv), nil
}

// SetLabor устанавливает стоимость работ
func (s *Service) SetLabor(ctx context.Context, id int64, req *models.SetLaborRequest, actor domain.Actor) (*models.InterventionResponse, error) {
	s.logger.Info("SetLabor: intervention id=%d, amount=%s by user=%d", id, req.Amount.String(), actor.UserID)

	if req.Amount.IsNegative() {
		return nil, fmt.Errorf("%w: amount must not be negative", ErrInvalidInput)
	}
	amount := req.Amount.Round(2)

	iv, err := s.mutate(ctx, "SetLabor", id, actor, func(_ context.Context, iv *domain.Intervention) error {
		return iv.SetLabor(amount)
	})
	if err != nil {
		return nil, err
	}

	return models.FromDomainIntervention(iv), nil
}

// Reassign переназначает вмешательство другому технику
// Слот остается за вмешательством
func (s *Service) Reassign(ctx context.Context, id int64, req *models.ReassignRequest, actor domain.Actor) (*models.InterventionResponse, error) {
	s.logger.Info("Reassign: intervention id=%d to technician=%d by user=%d", id, req.TechnicianID, actor.UserID)

	if !actor.IsResponsable() {
		return nil, ErrAccessDenied
	}
	if req.TechnicianID <= 0 {
		return nil, fmt.Errorf("%w: technicianID must be positive", ErrInvalidInput)
	}

	var previous int64
	iv, err := s.mutate(ctx, "Reassign", id, actor, func(_ context.Context, iv *domain.Intervention) error {
		previous = iv.TechnicianID
		return iv.Reassign(req.TechnicianID)
	})
	if err != nil {
		return nil, err
	}

	// слот остаётся за вмешательством и не переносится в расписание нового техника
	if iv.SlotID != nil && previous != iv.TechnicianID {
		s.logger.Warn("Reassign: intervention id=%d keeps slot=%d of technician=%d, new technician=%d has no overlap check",
			iv.ID, *iv.SlotID, previous, iv.TechnicianID)
	}

	s.publish(ctx, events.New(events.InterventionReassigned, iv.ID, map[string]interface{}{
		"from_technician_id": previous,
		"to_technician_id":   iv.TechnicianID,
	}))

	return models.FromDomainIntervention(iv), nil
}

// MarkPaid отмечает оплату завершенного вмешательства
// Повторный вызов ничего не меняет; для бесплатных вмешательств операция пустая
func (s *Service) MarkPaid(ctx context.Context, id int64, actor domain.Actor) (*models.InterventionResponse, error) {
	s.logger.Info("MarkPaid: intervention id=%d by user=%d", id, actor.UserID)

	if !actor.IsResponsable() {
		return nil, ErrAccessDenied
	}

	iv, err := s.mutate(ctx, "MarkPaid", id, actor, func(_ context.Context, iv *domain.Intervention) error {
		if iv.Status != domain.InterventionStatusCompleted {
			return fmt.Errorf("%w: intervention is %s", ErrInvalidState, iv.Status)
		}
		if iv.IsFree || iv.IsPaid {
			return nil
		}
		now := s.timeProvider.Now()
		iv.IsPaid = true
		iv.PaidAt = &now
		return nil
	})
	if err != nil {
		return nil, err
	}

	return models.FromDomainIntervention(iv), nil
}

// mutate блокирует вмешательство, проверяет права, применяет изменение и сохраняет итог
func (s *Service) mutate(
	ctx context.Context,
	op string,
	id int64,
	actor domain.Actor,
	change func(txCtx context.Context, iv *domain.Intervention) error,
) (*domain.Intervention, error) {
	var result *domain.Intervention

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		iv, err := s.interventionRepo.GetByIDForUpdate(txCtx, id)
		if err != nil {
			return err
		}

		if err := s.authorize(iv, actor); err != nil {
			return err
		}

		if err := change(txCtx, iv); err != nil {
			return err
		}

		iv.RecalculateTotal()
		if err := s.interventionRepo.Update(txCtx, iv); err != nil {
			return fmt.Errorf("%w: %s - update: %w", ErrInternal, op, err)
		}

		result = iv
		return nil
	})
	if err != nil {
		return nil, s.mapError(op, id, err)
	}

	return result, nil
}

// authorize: назначенный техник или любой ответственный
func (s *Service) authorize(iv *domain.Intervention, actor domain.Actor) error {
	if actor.IsResponsable() {
		return nil
	}
	if actor.Role == domain.RoleTechnician && iv.IsAssignedTo(actor.UserID) {
		return nil
	}
	return ErrAccessDenied
}

func (s *Service) newIntervention(ctx context.Context, req *models.CreateInterventionRequest) (*domain.Intervention, error) {
	var (
		technicianID int64
		scheduledAt  = req.ScheduledAt
		slotID       *int64
	)

	if req.SlotID != nil {
		slot, err := s.slotRepo.GetByID(ctx, *req.SlotID)
		if err != nil {
			return nil, s.mapError("Create", 0, err)
		}
		if slot.IsReserved {
			s.metrics.IncSlotConflict()
			return nil, ErrSlotAlreadyReserved
		}
		if req.TechnicianID != nil && *req.TechnicianID != slot.TechnicianID {
			return nil, fmt.Errorf("%w: technician does not own the slot", ErrInvalidInput)
		}
		technicianID = slot.TechnicianID
		start := slot.StartAt
		scheduledAt = &start
		slotID = &slot.ID
	} else {
		if req.TechnicianID == nil || *req.TechnicianID <= 0 {
			return nil, fmt.Errorf("%w: technicianID or slotID is required", ErrInvalidInput)
		}
		if scheduledAt == nil || scheduledAt.IsZero() {
			return nil, fmt.Errorf("%w: scheduledAt is required without a slot", ErrInvalidInput)
		}
		technicianID = *req.TechnicianID
	}

	isFree, err := s.warranty.IsClaimUnderWarranty(ctx, req.ClaimID, s.timeProvider.Now())
	if err != nil {
		switch {
		case errors.Is(err, warranty.ErrClaimNotFound):
			return nil, fmt.Errorf("%w: claim not found", ErrInvalidInput)
		case errors.Is(err, warranty.ErrPurchasedArticleNotFound):
			s.logger.Warn("Create: purchased article missing for claim=%v, billing as paid", req.ClaimID)
			isFree = false
		default:
			s.logger.Error("Create: warranty check failed: %v", err)
			return nil, fmt.Errorf("%w: Create - warranty check: %v", ErrInternal, err)
		}
	}

	iv := domain.NewIntervention(technicianID, *scheduledAt, isFree)
	iv.ClaimID = req.ClaimID
	iv.SlotID = slotID
	return iv, nil
}

// mapError переводит ошибки хранилищ и домена в ошибки сервиса
func (s *Service) mapError(op string, id int64, err error) error {
	switch {
	case errors.Is(err, ErrAccessDenied),
		errors.Is(err, ErrInvalidState),
		errors.Is(err, ErrInvalidInput):
		s.logger.Warn("%s: intervention id=%d: %v", op, id, err)
		return err
	case errors.Is(err, interventionRepo.ErrInterventionNotFound):
		s.logger.Warn("%s: intervention id=%d not found", op, id)
		return ErrInterventionNotFound
	case errors.Is(err, slotRepo.ErrSlotNotFound):
		return ErrSlotNotFound
	case errors.Is(err, slotRepo.ErrSlotAlreadyReserved):
		s.metrics.IncSlotConflict()
		s.logger.Warn("%s: slot already reserved", op)
		return ErrSlotAlreadyReserved
	case errors.Is(err, partRepo.ErrPartNotFound):
		return ErrPartNotFound
	case errors.Is(err, partRepo.ErrInsufficientStock):
		s.logger.Warn("%s: intervention id=%d: insufficient stock", op, id)
		return ErrInsufficientStock
	case errors.Is(err, domain.ErrInvalidTransition):
		s.logger.Warn("%s: intervention id=%d: %v", op, id, err)
		return fmt.Errorf("%w: %v", ErrInvalidTransition, err)
	case errors.Is(err, domain.ErrInterventionClosed):
		s.logger.Warn("%s: intervention id=%d is closed", op, id)
		return ErrInterventionClosed
	case errors.Is(err, domain.ErrNegativeAmount), errors.Is(err, domain.ErrInvalidQuantity):
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	default:
		s.logger.Error("%s: intervention id=%d: %v", op, id, err)
		if errors.Is(err, ErrInternal) {
			return err
		}
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
}

// publish отправляет событие после фиксации транзакции; ошибка публикации не отменяет операцию
func (s *Service) publish(ctx context.Context, event events.Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("failed to publish %s for id=%d: %v", event.Type, event.AggregateID, err)
	}
}

package generate_slots

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ServiceDesk/internal/domain"
)

// UseCase use case генерации слотов техника
type UseCase struct {
	slotRepo  SlotRepository
	txManager TransactionManager
	location  *time.Location
	maxDays   int
	metrics   Metrics
	logger    Logger
}

// NewUseCase создает новый экземпляр use case
// location - часовой пояс, в котором интерпретируются окна hourStart/hourEnd
func NewUseCase(
	slotRepo SlotRepository,
	txManager TransactionManager,
	location *time.Location,
	maxDays int,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:  slotRepo,
		txManager: txManager,
		location:  location,
		maxDays:   maxDays,
		metrics:   metrics,
		logger:    logger,
	}
}

// Execute генерирует слоты и возвращает количество созданных
// Повторный вызов с теми же параметрами ничего не создаёт
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GenerateSlots: technician=%d, dates=%s..%s, window=%s-%s, duration=%d",
		req.TechnicianID, req.DateFrom.Format(domain.DateFormat), req.DateTo.Format(domain.DateFormat),
		req.HourStart, req.HourEnd, req.DurationMinutes)

	// 1. Валидация параметров: при ошибке ничего не сохраняется
	if err := validateRequest(req, uc.maxDays); err != nil {
		uc.logger.Warn("GenerateSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Нарезаем слоты в памяти
	candidates, err := buildSlots(req, uc.location)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSchedule, err)
	}
	if len(candidates) == 0 {
		uc.logger.Info("GenerateSlots: window is shorter than duration, nothing to create")
		return &Response{}, nil
	}

	var result Response

	// 3. Сохраняем под блокировкой расписания техника
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		result = Response{}

		if err := uc.slotRepo.LockTechnician(txCtx, req.TechnicianID); err != nil {
			return fmt.Errorf("%w: failed to lock technician schedule: %w", ErrInternal, err)
		}

		existing, err := uc.slotRepo.List(txCtx, domain.SlotsFilter{
			TechnicianID: &req.TechnicianID,
			From:         candidates[0].StartAt,
			To:           candidates[len(candidates)-1].EndAt,
		})
		if err != nil {
			return fmt.Errorf("%w: failed to list existing slots: %w", ErrInternal, err)
		}

		for _, candidate := range candidates {
			if conflicts(candidate, existing) {
				result.Skipped++
				continue
			}

			created, err := uc.slotRepo.CreateIfAbsent(txCtx, candidate)
			if err != nil {
				return fmt.Errorf("%w: failed to create slot: %w", ErrInternal, err)
			}
			if !created {
				result.Skipped++
				continue
			}

			result.Created++
			existing = append(existing, candidate)
		}

		return nil
	})
	if err != nil {
		uc.logger.Error("GenerateSlots: technician=%d: %v", req.TechnicianID, err)
		return nil, err
	}

	uc.metrics.AddSlotsGenerated(result.Created)
	uc.logger.Info("GenerateSlots: technician=%d, created=%d, skipped=%d",
		req.TechnicianID, result.Created, result.Skipped)

	return &result, nil
}

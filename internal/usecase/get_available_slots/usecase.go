package get_available_slots

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ServiceDesk/internal/domain"
)

// UseCase use case для получения слотов техников в окне
type UseCase struct {
	slotRepo     SlotRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(slotRepo SlotRepository, logger Logger) *UseCase {
	return &UseCase{
		slotRepo:     slotRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute возвращает слоты, пересекающиеся с окном, отсортированные по началу
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	now := uc.timeProvider.Now()

	from, to, err := normalizeRequest(req, now)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	resp := &Response{From: from, To: to, Slots: make([]Slot, 0)}
	if !from.Before(to) {
		return resp, nil
	}

	slots, err := uc.slotRepo.List(ctx, domain.SlotsFilter{
		TechnicianID: req.TechnicianID,
		From:         from,
		To:           to,
		FreeOnly:     req.FreeOnly,
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list slots: %v", err)
		return nil, fmt.Errorf("%w: failed to list slots: %v", ErrInternal, err)
	}

	for _, s := range slots {
		if req.FreeOnly && s.StartAt.Before(now) {
			continue
		}
		resp.Slots = append(resp.Slots, Slot{
			ID:              s.ID,
			TechnicianID:    s.TechnicianID,
			StartAt:         s.StartAt,
			EndAt:           s.EndAt,
			DurationMinutes: s.DurationMinutes(),
			IsReserved:      s.IsReserved,
		})
	}

	uc.logger.Info("GetAvailableSlots: window=%s..%s, free_only=%t, found=%d",
		from.Format(time.RFC3339), to.Format(time.RFC3339), req.FreeOnly, len(resp.Slots))

	return resp, nil
}

package accept_request

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ServiceDesk/internal/domain"
	"github.com/m04kA/SMC-ServiceDesk/internal/integrations/events"
)

// RequestRepository интерфейс репозитория заявок
type RequestRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.BookingRequest, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.BookingRequest, error)
	Confirm(ctx context.Context, id, slotID, interventionID int64) error
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Slot, error)
	Reserve(ctx context.Context, slotID, interventionID int64) error
}

// InterventionRepository интерфейс репозитория вмешательств
type InterventionRepository interface {
	Create(ctx context.Context, iv *domain.Intervention) (*domain.Intervention, error)
}

// WarrantyEvaluator решает, бесплатно ли вмешательство по гарантии
type WarrantyEvaluator interface {
	IsClaimUnderWarranty(ctx context.Context, claimID *int64, at time.Time) (bool, error)
}

// EventPublisher интерфейс издателя доменных событий
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics бизнес-метрики арбитража
type Metrics interface {
	IncRequestOutcome(outcome string)
	IncSlotConflict()
	IncInterventionTransition(status string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

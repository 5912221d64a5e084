package interventions

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ServiceDesk/internal/domain"
	"github.com/m04kA/SMC-ServiceDesk/internal/integrations/events"
)

// InterventionRepository интерфейс репозитория вмешательств
type InterventionRepository interface {
	Create(ctx context.Context, iv *domain.Intervention) (*domain.Intervention, error)
	GetByID(ctx context.Context, id int64) (*domain.Intervention, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Intervention, error)
	List(ctx context.Context, filter domain.InterventionsFilter) ([]*domain.Intervention, error)
	Update(ctx context.Context, iv *domain.Intervention) error
	AddPart(ctx context.Context, part *domain.ConsumedPart) error
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Slot, error)
	Reserve(ctx context.Context, slotID, interventionID int64) error
	Release(ctx context.Context, slotID, interventionID int64) error
}

// PartRepository интерфейс склада запчастей
type PartRepository interface {
	Consume(ctx context.Context, partID int64, quantity int, interventionID *int64) (*domain.PartConsumption, error)
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

// Metrics бизнес-метрики вмешательств
type Metrics interface {
	IncInterventionTransition(status string)
	IncSlotConflict()
	IncStockConflict()
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

type realTimeProvider struct{}

func (realTimeProvider) Now() time.Time { return time.Now() }

package submit_request

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ServiceDesk/internal/domain"
	"github.com/m04kA/SMC-ServiceDesk/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-ServiceDesk/internal/integrations/events"
)

// RequestRepository интерфейс репозитория заявок
type RequestRepository interface {
	LockClient(ctx context.Context, clientID int64) error
	HasActive(ctx context.Context, clientID int64, now time.Time) (bool, error)
	Create(ctx context.Context, req *domain.BookingRequest) (*domain.BookingRequest, error)
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Slot, error)
}

// ClaimRegistry интерфейс реестра рекламаций (CatalogService)
type ClaimRegistry interface {
	GetClaim(ctx context.Context, claimID int64) (*catalogservice.Claim, error)
}

// ResponsablePicker выбирает ответственного для новой заявки
type ResponsablePicker interface {
	PickAvailableResponsable(ctx context.Context) (*int64, error)
}

// EventPublisher интерфейс издателя доменных событий
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics бизнес-метрики заявок
type Metrics interface {
	IncRequestOutcome(outcome string)
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

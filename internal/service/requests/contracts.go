package requests

import (
	"context"

	"github.com/m04kA/SMC-ServiceDesk/internal/domain"
	"github.com/m04kA/SMC-ServiceDesk/internal/integrations/events"
)

// RequestRepository интерфейс репозитория заявок
type RequestRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.BookingRequest, error)
	ListByClient(ctx context.Context, clientID int64, status *domain.RequestStatus) ([]*domain.BookingRequest, error)
	ListPending(ctx context.Context, filter domain.PendingRequestsFilter) ([]*domain.BookingRequest, error)
	Cancel(ctx context.Context, id int64) error
}

// EventPublisher интерфейс издателя доменных событий
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// Metrics бизнес-метрики заявок
type Metrics interface {
	IncRequestOutcome(outcome string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

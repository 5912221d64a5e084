package inventory

import (
	"context"

	"github.com/m04kA/SMC-ServiceDesk/internal/domain"
	"github.com/m04kA/SMC-ServiceDesk/internal/integrations/events"
)

// PartRepository интерфейс склада запчастей
type PartRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Part, error)
	List(ctx context.Context, lowStockOnly bool) ([]*domain.Part, error)
	Restock(ctx context.Context, partID int64, quantity int, reason string) (*domain.PartConsumption, error)
	Adjust(ctx context.Context, partID int64, delta int, reason string) (*domain.PartConsumption, error)
	Movements(ctx context.Context, partID int64, limit uint64) ([]*domain.StockMovement, error)
}

// EventPublisher интерфейс издателя доменных событий
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics метрики склада
type Metrics interface {
	IncStockConflict()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

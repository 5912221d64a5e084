package generate_slots

import (
	"context"

	"github.com/m04kA/SMC-ServiceDesk/internal/domain"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	LockTechnician(ctx context.Context, technicianID int64) error
	List(ctx context.Context, filter domain.SlotsFilter) ([]*domain.Slot, error)
	CreateIfAbsent(ctx context.Context, slot *domain.Slot) (bool, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics бизнес-метрики генератора
type Metrics interface {
	AddSlotsGenerated(n int)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

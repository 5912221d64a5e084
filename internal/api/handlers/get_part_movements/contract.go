package get_part_movements

import (
	"context"

	"github.com/m04kA/SMC-ServiceDesk/internal/service/inventory/models"
)

type InventoryService interface {
	Movements(ctx context.Context, partID int64, limit int) (*models.MovementListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

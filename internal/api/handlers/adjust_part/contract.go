package adjust_part

import (
	"context"

	"github.com/m04kA/SMC-ServiceDesk/internal/service/inventory/models"
)

type InventoryService interface {
	Adjust(ctx context.Context, partID int64, req *models.AdjustRequest) (*models.StockChangeResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

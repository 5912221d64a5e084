package restock_part

import (
	"context"

	"github.com/m04kA/SMC-ServiceDesk/internal/service/inventory/models"
)

type InventoryService interface {
	Restock(ctx context.Context, partID int64, req *models.RestockRequest) (*models.StockChangeResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

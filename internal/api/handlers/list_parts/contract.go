package list_parts

import (
	"context"

	"github.com/m04kA/SMC-ServiceDesk/internal/service/inventory/models"
)

type InventoryService interface {
	List(ctx context.Context, lowStockOnly bool) (*models.PartListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

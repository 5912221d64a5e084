package get_intervention

import (
	"context"

	"github.com/m04kA/SMC-ServiceDesk/internal/domain"
	"github.com/m04kA/SMC-ServiceDesk/internal/service/interventions/models"
)

type InterventionService interface {
	GetByID(ctx context.Context, id int64, actor domain.Actor) (*models.InterventionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

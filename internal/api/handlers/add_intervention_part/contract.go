package add_intervention_part

import (
	"context"

	"github.com/m04kA/SMC-ServiceDesk/internal/domain"
	"github.com/m04kA/SMC-ServiceDesk/internal/service/interventions/models"
)

type InterventionService interface {
	AddPart(ctx context.Context, id int64, req *models.AddPartRequest, actor domain.Actor) (*models.InterventionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

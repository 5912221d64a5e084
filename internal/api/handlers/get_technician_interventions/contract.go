package get_technician_interventions

import (
	"context"

	"github.com/m04kA/SMC-ServiceDesk/internal/domain"
	"github.com/m04kA/SMC-ServiceDesk/internal/service/interventions/models"
)

type InterventionService interface {
	List(ctx context.Context, req *models.ListInterventionsRequest, actor domain.Actor) (*models.InterventionListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

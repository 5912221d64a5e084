package get_pending_requests

import (
	"context"

	"github.com/m04kA/SMC-ServiceDesk/internal/domain"
	"github.com/m04kA/SMC-ServiceDesk/internal/service/requests/models"
)

type RequestService interface {
	ListPending(ctx context.Context, req *models.ListPendingRequest, actor domain.Actor) (*models.RequestListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

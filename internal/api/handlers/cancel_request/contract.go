package cancel_request

import (
	"context"

	"github.com/m04kA/SMC-ServiceDesk/internal/service/requests/models"
)

type RequestService interface {
	Cancel(ctx context.Context, requestID int64, clientID int64) (*models.RequestResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package refuse_request

import (
	"context"

	refuseRequest "github.com/m04kA/SMC-ServiceDesk/internal/usecase/refuse_request"
)

type RefuseRequestUseCase interface {
	Execute(ctx context.Context, req *refuseRequest.Request) (*refuseRequest.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package create_hold

import (
	"context"

	createHold "github.com/m04kA/SMC-ReservationService/internal/usecase/create_hold"
)

type HoldService interface {
	CreateHold(ctx context.Context, req *createHold.Request) (*createHold.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

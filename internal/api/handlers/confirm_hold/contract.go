package confirm_hold

import (
	"context"

	confirmBooking "github.com/m04kA/SMC-ReservationService/internal/usecase/confirm_booking"
)

type ConfirmService interface {
	ConfirmBooking(ctx context.Context, req *confirmBooking.Request) (*confirmBooking.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

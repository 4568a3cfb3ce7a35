package reservation

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/usecase/confirm_booking"
	"github.com/m04kA/SMC-ReservationService/internal/usecase/create_hold"
	"github.com/m04kA/SMC-ReservationService/internal/usecase/get_availability"
	"github.com/m04kA/SMC-ReservationService/internal/usecase/release_hold"
)

// AvailabilityUseCase расчет свободных слотов
type AvailabilityUseCase interface {
	Execute(ctx context.Context, req *get_availability.Request) (*get_availability.Response, error)
}

// CreateHoldUseCase создание холда
type CreateHoldUseCase interface {
	Execute(ctx context.Context, req *create_hold.Request) (*create_hold.Response, error)
}

// ConfirmBookingUseCase подтверждение холда
type ConfirmBookingUseCase interface {
	Execute(ctx context.Context, req *confirm_booking.Request) (*confirm_booking.Response, error)
}

// ReleaseHoldUseCase освобождение холда
type ReleaseHoldUseCase interface {
	Execute(ctx context.Context, req *release_hold.Request) (*release_hold.Response, error)
}

// MetricsRecorder учет результатов операций
type MetricsRecorder interface {
	RecordOutcome(operation, outcome string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

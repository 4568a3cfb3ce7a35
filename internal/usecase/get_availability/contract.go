package get_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// ResourceProvider источник календаря ресурса
type ResourceProvider interface {
	GetResource(ctx context.Context, id string) (*domain.Resource, error)
	GetWorkingWindows(ctx context.Context, id string, date time.Time) ([]domain.TimeWindow, error)
}

// HoldRepository интерфейс репозитория холдов
type HoldRepository interface {
	ListActiveByResource(ctx context.Context, resourceID string, from, to time.Time) ([]*domain.Hold, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	ListActiveByResource(ctx context.Context, resourceID string, from, to time.Time) ([]*domain.Booking, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

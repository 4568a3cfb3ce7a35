package calendar

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// ResourceRepository интерфейс репозитория ресурсов
type ResourceRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Resource, error)
	Upsert(ctx context.Context, res *domain.Resource) (*domain.Resource, error)
}

// ResourceCache кеш календарей. Может отсутствовать (nil).
type ResourceCache interface {
	Get(ctx context.Context, id string) (*domain.Resource, error)
	Set(ctx context.Context, res *domain.Resource) error
	Invalidate(ctx context.Context, id string) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

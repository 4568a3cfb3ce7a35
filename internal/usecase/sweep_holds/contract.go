package sweep_holds

import (
	"context"
	"time"
)

// HoldRepository интерфейс репозитория холдов
type HoldRepository interface {
	ExpireStale(ctx context.Context, now time.Time) (int64, error)
	DeleteExpiredBefore(ctx context.Context, before time.Time) (int64, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// MetricsRecorder интерфейс для учета результатов очистки
type MetricsRecorder interface {
	RecordSweep(expired, deleted int64)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

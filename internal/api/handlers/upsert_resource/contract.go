package upsert_resource

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

type CalendarService interface {
	UpsertResource(ctx context.Context, res *domain.Resource) (*domain.Resource, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package reservation

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/usecase/confirm_booking"
	"github.com/m04kA/SMC-ReservationService/internal/usecase/create_hold"
	"github.com/m04kA/SMC-ReservationService/internal/usecase/get_availability"
	"github.com/m04kA/SMC-ReservationService/internal/usecase/release_hold"
)

// Service единая точка входа в ядро резервирования.
// Каждая операция выполняется ровно один раз, без повторов; результат учитывается в метриках.
type Service struct {
	availability AvailabilityUseCase
	createHold   CreateHoldUseCase
	confirm      ConfirmBookingUseCase
	release      ReleaseHoldUseCase
	metrics      MetricsRecorder
	logger       Logger
}

// NewService создает фасад. metrics может быть nil.
func NewService(
	availability AvailabilityUseCase,
	createHold CreateHoldUseCase,
	confirm ConfirmBookingUseCase,
	release ReleaseHoldUseCase,
	metrics MetricsRecorder,
	logger Logger,
) *Service {
	return &Service{
		availability: availability,
		createHold:   createHold,
		confirm:      confirm,
		release:      release,
		metrics:      metrics,
		logger:       logger,
	}
}

// GetAvailability возвращает свободные слоты ресурса в диапазоне [from, to)
func (s *Service) GetAvailability(ctx context.Context, req *get_availability.Request) (*get_availability.Response, error) {
	resp, err := s.availability.Execute(ctx, req)
	s.record(OpGetAvailability, outcomeOf(err), err)
	return resp, err
}

// CreateHold создает холд. При пересечении возвращает *domain.ConflictError.
func (s *Service) CreateHold(ctx context.Context, req *create_hold.Request) (*create_hold.Response, error) {
	resp, err := s.createHold.Execute(ctx, req)
	s.record(OpCreateHold, outcomeOf(err), err)
	return resp, err
}

// ConfirmBooking подтверждает холд
func (s *Service) ConfirmBooking(ctx context.Context, req *confirm_booking.Request) (*confirm_booking.Response, error) {
	resp, err := s.confirm.Execute(ctx, req)

	outcome := outcomeOf(err)
	if err == nil && !resp.Created {
		outcome = OutcomeReplay
	}
	s.record(OpConfirmBooking, outcome, err)

	return resp, err
}

// ReleaseHold освобождает холд досрочно
func (s *Service) ReleaseHold(ctx context.Context, req *release_hold.Request) (*release_hold.Response, error) {
	resp, err := s.release.Execute(ctx, req)
	s.record(OpReleaseHold, outcomeOf(err), err)
	return resp, err
}

func (s *Service) record(op, outcome string, err error) {
	if s.metrics != nil {
		s.metrics.RecordOutcome(op, outcome)
	}

	switch {
	case err == nil:
		s.logger.Info("Reservation: %s -> %s", op, outcome)
	case domain.IsBusinessError(err):
		s.logger.Warn("Reservation: %s -> %s: %v", op, outcome, err)
	default:
		s.logger.Error("Reservation: %s -> %s: %v", op, outcome, err)
	}
}

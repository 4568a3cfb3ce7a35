package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ReservationService/internal/service/bookings/models"
)

// Service сервис администрирования бронирований: просмотр, отмена и подтверждение
// (внешний процесс, например оплата)
type Service struct {
	bookingRepo  BookingRepository
	resourceRepo ResourceRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// Option настройка сервиса
type Option func(*Service)

// WithTimeProvider подменяет источник времени (для тестов)
func WithTimeProvider(tp TimeProvider) Option {
	return func(s *Service) {
		s.timeProvider = tp
	}
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	resourceRepo ResourceRepository,
	txManager TransactionManager,
	logger Logger,
	opts ...Option,
) *Service {
	s := &Service{
		bookingRepo:  bookingRepo,
		resourceRepo: resourceRepo,
		txManager:    txManager,
		timeProvider: realTimeProvider{},
		logger:       logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id string) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%s", id)

	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: booking_id must be a UUID", ErrInvalidInput)
	}

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%s not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrStoreUnavailable, err)
	}

	return models.FromDomainBooking(booking), nil
}

// ListByResource получает бронирования ресурса с фильтрацией
// Поддерживает фильтрацию по периоду, статусу и включению отменённых бронирований
//
// Примеры использования:
// - Все активные бронирования: ListByResource(ctx, &ListResourceBookingsRequest{ResourceID: id})
// - Бронирования за период: указать From и To
// - Только подтвержденные: указать Status = "confirmed"
// - Включая отменённые: IncludeCancelled = true
func (s *Service) ListByResource(ctx context.Context, req *models.ListResourceBookingsRequest) (*models.BookingListResponse, error) {
	logMsg := fmt.Sprintf("ListByResource: fetching bookings for resource=%s", req.ResourceID)
	if req.From != nil && req.To != nil {
		logMsg += fmt.Sprintf(", period=%s to %s", req.From.Format("2006-01-02"), req.To.Format("2006-01-02"))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeCancelled {
		logMsg += ", includeCancelled=true"
	}
	s.logger.Info(logMsg)

	if _, err := uuid.Parse(req.ResourceID); err != nil {
		return nil, fmt.Errorf("%w: resource_id must be a UUID", ErrInvalidInput)
	}
	if req.From != nil && req.To != nil && !req.To.After(*req.From) {
		return nil, fmt.Errorf("%w: to must be after from", ErrInvalidInput)
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("ListByResource: invalid filter for resource=%s: %v", req.ResourceID, err)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	var bookings []*domain.Booking
	err = s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		bookings, err = s.bookingRepo.ListByResource(txCtx, filter)
		return err
	})
	if err != nil {
		s.logger.Error("ListByResource: repository error for resource=%s: %v", req.ResourceID, err)
		return nil, fmt.Errorf("%w: ListByResource - repository error: %v", ErrStoreUnavailable, err)
	}

	s.logger.Info("ListByResource: fetched %d bookings for resource=%s", len(bookings), req.ResourceID)
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование (pending или confirmed)
// Интервал освобождается сразу после коммита.
func (s *Service) Cancel(ctx context.Context, bookingID string, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%s by user=%d", bookingID, req.UserID)

	if _, err := uuid.Parse(bookingID); err != nil {
		return fmt.Errorf("%w: booking_id must be a UUID", ErrInvalidInput)
	}

	reason := req.CancellationReason
	if reason != nil {
		trimmed := strings.TrimSpace(*reason)
		if utf8.RuneCountInString(trimmed) > domain.MaxCancellationReasonLength {
			return fmt.Errorf("%w: cancellation_reason must be at most %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
		}
		reason = &trimmed
		if trimmed == "" {
			reason = nil
		}
	}

	err := s.mutate(ctx, "Cancel", bookingID, func(txCtx context.Context, booking *domain.Booking) error {
		if !booking.CanBeCancelled() {
			s.logger.Warn("Cancel: booking id=%s cannot be cancelled, status=%s", bookingID, booking.Status)
			return ErrCannotCancel
		}
		return s.bookingRepo.Cancel(txCtx, booking.ID, reason, s.timeProvider.Now().UTC())
	})
	if err != nil {
		return err
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%s", bookingID)
	return nil
}

// UpdateStatus переводит бронирование из pending в confirmed
// Для отмены используется Cancel.
func (s *Service) UpdateStatus(ctx context.Context, bookingID string, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating booking id=%s to status=%s by user=%d", bookingID, req.Status, req.UserID)

	if _, err := uuid.Parse(bookingID); err != nil {
		return fmt.Errorf("%w: booking_id must be a UUID", ErrInvalidInput)
	}

	newStatus, err := models.ToDomainBookingStatus(req.Status)
	if err != nil || newStatus != domain.StatusConfirmed {
		s.logger.Warn("UpdateStatus: unsupported status=%s for booking id=%s", req.Status, bookingID)
		return fmt.Errorf("%w: status can only be set to %s", ErrInvalidInput, domain.StatusConfirmed)
	}

	err = s.mutate(ctx, "UpdateStatus", bookingID, func(txCtx context.Context, booking *domain.Booking) error {
		if !booking.CanBeConfirmed() {
			s.logger.Warn("UpdateStatus: booking id=%s cannot be confirmed, status=%s", bookingID, booking.Status)
			return ErrCannotConfirm
		}
		return s.bookingRepo.UpdateStatus(txCtx, booking.ID, newStatus)
	})
	if err != nil {
		return err
	}

	s.logger.Info("UpdateStatus: successfully updated booking id=%s to status=%s", bookingID, newStatus)
	return nil
}

// Вспомогательные методы

// mutate выполняет fn в транзакции под блокировкой ресурса и строки бронирования
func (s *Service) mutate(ctx context.Context, op, bookingID string, fn func(ctx context.Context, booking *domain.Booking) error) error {
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.bookingRepo.GetByID(txCtx, bookingID)
		if err != nil {
			return err
		}

		// Порядок блокировок: ресурс, затем бронирование
		if err := s.resourceRepo.LockByID(txCtx, booking.ResourceID); err != nil {
			return fmt.Errorf("lock resource: %w", err)
		}

		booking, err = s.bookingRepo.GetByIDForUpdate(txCtx, bookingID)
		if err != nil {
			return err
		}

		return fn(txCtx, booking)
	})
	if err == nil {
		return nil
	}

	if errors.Is(err, bookingRepo.ErrBookingNotFound) {
		s.logger.Warn("%s: booking id=%s not found", op, bookingID)
		return ErrBookingNotFound
	}
	if domain.IsBusinessError(err) {
		return err
	}

	s.logger.Error("%s: repository error for booking id=%s: %v", op, bookingID, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrStoreUnavailable, op, err)
}

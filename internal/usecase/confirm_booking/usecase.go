package confirm_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/booking"
	holdRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/hold"
	resourceRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/resource"
)

// Option настройка use case
type Option func(*UseCase)

// WithTimeProvider подменяет источник текущего времени
func WithTimeProvider(tp TimeProvider) Option {
	return func(uc *UseCase) {
		uc.timeProvider = tp
	}
}

// UseCase use case для подтверждения холда и создания бронирования
type UseCase struct {
	resourceRepo ResourceRepository
	holdRepo     HoldRepository
	bookingRepo  BookingRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	resourceRepo ResourceRepository,
	holdRepo HoldRepository,
	bookingRepo BookingRepository,
	txManager TransactionManager,
	logger Logger,
	opts ...Option,
) *UseCase {
	uc := &UseCase{
		resourceRepo: resourceRepo,
		holdRepo:     holdRepo,
		bookingRepo:  bookingRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Execute выполняет use case подтверждения холда
// Повторный вызов с тем же email клиента возвращает уже созданное бронирование (Created=false).
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ConfirmBooking: hold=%s, user_id=%d", req.HoldID, req.UserID)

	// 1. Валидация входных данных
	customer, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("ConfirmBooking: validation failed for hold=%s: %v", req.HoldID, err)
		return nil, err
	}

	var result *Response

	// 2. Выполняем операции с БД в одной транзакции
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 2.1. Читаем холд без блокировки, чтобы узнать ресурс
		hold, err := uc.holdRepo.GetByID(txCtx, req.HoldID)
		if err != nil {
			if errors.Is(err, holdRepo.ErrHoldNotFound) {
				return ErrHoldNotFound
			}
			return fmt.Errorf("get hold: %w", err)
		}

		// 2.2. Порядок блокировок: ресурс, затем холд
		if err := uc.resourceRepo.LockByID(txCtx, hold.ResourceID); err != nil {
			if errors.Is(err, resourceRepo.ErrResourceNotFound) {
				return ErrHoldNotFound
			}
			return fmt.Errorf("lock resource: %w", err)
		}

		hold, err = uc.holdRepo.GetByIDForUpdate(txCtx, req.HoldID)
		if err != nil {
			if errors.Is(err, holdRepo.ErrHoldNotFound) {
				return ErrHoldNotFound
			}
			return fmt.Errorf("lock hold: %w", err)
		}

		now := uc.timeProvider.Now()

		// 2.3. Проверяем состояние холда
		switch {
		case hold.Status == domain.HoldStatusConsumed:
			existing, err := uc.replay(txCtx, hold, customer)
			if err != nil {
				return err
			}
			result = &Response{Booking: existing, Created: false}
			return nil
		case !hold.IsActiveAt(now):
			uc.logger.Warn("ConfirmBooking: hold=%s expired at %s", hold.ID, hold.ExpiresAt.Format(time.RFC3339))
			return ErrHoldExpired
		}

		// 2.4. Создаем бронирование
		booking, err := uc.bookingRepo.Create(txCtx, &domain.Booking{
			ID:            uuid.NewString(),
			ResourceID:    hold.ResourceID,
			HoldID:        hold.ID,
			Start:         hold.Start,
			End:           hold.End,
			CustomerName:  customer.Name,
			CustomerEmail: customer.Email,
			CustomerPhone: customer.Phone,
			Notes:         customer.Notes,
			TotalAmount:   customer.TotalAmount,
			Status:        domain.StatusPending,
		})
		if err != nil {
			switch {
			case errors.Is(err, bookingRepo.ErrHoldAlreadyBooked):
				return ErrHoldAlreadyConsumed
			case errors.Is(err, bookingRepo.ErrOverlap):
				return domain.NewConflictError(hold.ResourceID, hold.Range())
			}
			return fmt.Errorf("create booking: %w", err)
		}

		// 2.5. Помечаем холд использованным
		if err := uc.holdRepo.UpdateStatus(txCtx, hold.ID, domain.HoldStatusConsumed); err != nil {
			return fmt.Errorf("consume hold: %w", err)
		}

		result = &Response{Booking: booking, Created: true}
		return nil
	})
	if err != nil {
		if !domain.IsBusinessError(err) {
			uc.logger.Error("ConfirmBooking: storage failure for hold=%s: %v", req.HoldID, err)
		}
		return nil, domain.AsStoreError("ConfirmBooking", err)
	}

	if result.Created {
		uc.logger.Info("ConfirmBooking: created booking id=%s for hold=%s", result.Booking.ID, req.HoldID)
	} else {
		uc.logger.Info("ConfirmBooking: replay for hold=%s, booking id=%s", req.HoldID, result.Booking.ID)
	}

	return result, nil
}

// replay возвращает бронирование уже использованного холда, если его создал тот же клиент
func (uc *UseCase) replay(ctx context.Context, hold *domain.Hold, customer domain.CustomerInfo) (*domain.Booking, error) {
	existing, err := uc.bookingRepo.GetByHoldID(ctx, hold.ID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrHoldAlreadyConsumed
		}
		return nil, fmt.Errorf("get booking by hold: %w", err)
	}

	if !strings.EqualFold(existing.CustomerEmail, customer.Email) {
		uc.logger.Warn("ConfirmBooking: hold=%s already consumed by another customer", hold.ID)
		return nil, ErrHoldAlreadyConsumed
	}

	return existing, nil
}

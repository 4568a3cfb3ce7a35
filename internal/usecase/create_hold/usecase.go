package create_hold

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	holdRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/hold"
	resourceRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/resource"
)

// Option настройка use case
type Option func(*UseCase)

// WithHoldTTL задает время жизни холда
func WithHoldTTL(ttl time.Duration) Option {
	return func(uc *UseCase) {
		if ttl > 0 {
			uc.ttl = ttl
		}
	}
}

// WithTimeProvider подменяет источник текущего времени
func WithTimeProvider(tp TimeProvider) Option {
	return func(uc *UseCase) {
		uc.timeProvider = tp
	}
}

// UseCase use case для создания холда на слот
type UseCase struct {
	resourceRepo ResourceRepository
	holdRepo     HoldRepository
	bookingRepo  BookingRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
	ttl          time.Duration
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
		ttl:          domain.DefaultHoldTTL,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Execute выполняет use case создания холда
// Проверка пересечений и вставка выполняются в одной транзакции под блокировкой строки ресурса,
// поэтому из двух конкурентных запросов на пересекающиеся интервалы успешен ровно один.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateHold: resource=%s, start=%s, end=%s",
		req.ResourceID, req.Start.UTC().Format(time.RFC3339), req.End.UTC().Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateHold: validation failed: %v", err)
		return nil, err
	}

	var result *domain.Hold
	requested := domain.TimeRange{Start: req.Start.UTC(), End: req.End.UTC()}

	// 2. Выполняем операции с БД в одной транзакции
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 2.1. Блокируем ресурс: все изменения его холдов и бронирований идут последовательно
		if err := uc.resourceRepo.LockByID(txCtx, req.ResourceID); err != nil {
			if errors.Is(err, resourceRepo.ErrResourceNotFound) {
				uc.logger.Warn("CreateHold: resource id=%s not found", req.ResourceID)
				return ErrResourceNotFound
			}
			return fmt.Errorf("lock resource: %w", err)
		}

		// Время берется после получения блокировки
		now := uc.timeProvider.Now()

		resource, err := uc.resourceRepo.GetByID(txCtx, req.ResourceID)
		if err != nil {
			if errors.Is(err, resourceRepo.ErrResourceNotFound) {
				return ErrResourceNotFound
			}
			return fmt.Errorf("get resource: %w", err)
		}

		// 2.2. Переводим холды с истекшим TTL в expired
		expired, err := uc.holdRepo.ExpireStaleByResource(txCtx, resource.ID, now)
		if err != nil {
			return fmt.Errorf("expire stale holds: %w", err)
		}
		if expired > 0 {
			uc.logger.Info("CreateHold: expired %d stale holds of resource=%s", expired, resource.ID)
		}

		// 2.3. Интервал должен быть слотом ресурса и не в прошлом
		if err := validateSlot(resource, requested.Start, requested.End, now); err != nil {
			uc.logger.Warn("CreateHold: %v", err)
			return err
		}

		// 2.4. Проверяем пересечения с холдами и бронированиями
		holds, err := uc.holdRepo.ListActiveByResource(txCtx, resource.ID, requested.Start, requested.End)
		if err != nil {
			return fmt.Errorf("list holds: %w", err)
		}
		bookings, err := uc.bookingRepo.ListActiveByResource(txCtx, resource.ID, requested.Start, requested.End)
		if err != nil {
			return fmt.Errorf("list bookings: %w", err)
		}

		reservations := domain.ReservationSet{Holds: holds, Bookings: bookings}
		if blocking, found := reservations.FirstOverlap(requested, now); found {
			uc.logger.Warn("CreateHold: resource=%s conflicts with [%s, %s)", resource.ID,
				blocking.Start.Format(time.RFC3339), blocking.End.Format(time.RFC3339))
			return domain.NewConflictError(resource.ID, blocking)
		}

		// 2.5. Создаем холд
		created, err := uc.holdRepo.Create(txCtx, &domain.Hold{
			ID:         uuid.NewString(),
			ResourceID: resource.ID,
			Start:      requested.Start,
			End:        requested.End,
			ExpiresAt:  now.Add(uc.ttl).UTC(),
			Status:     domain.HoldStatusActive,
		})
		if err != nil {
			if errors.Is(err, holdRepo.ErrOverlap) {
				uc.logger.Warn("CreateHold: storage rejected overlapping hold for resource=%s", resource.ID)
				return domain.NewConflictError(resource.ID, requested)
			}
			return fmt.Errorf("create hold: %w", err)
		}

		result = created
		return nil
	})
	if err != nil {
		if !domain.IsBusinessError(err) {
			uc.logger.Error("CreateHold: storage failure for resource=%s: %v", req.ResourceID, err)
		}
		return nil, domain.AsStoreError("CreateHold", err)
	}

	uc.logger.Info("CreateHold: created hold id=%s for resource=%s, expires_at=%s",
		result.ID, result.ResourceID, result.ExpiresAt.Format(time.RFC3339))

	return &Response{
		ID:         result.ID,
		ResourceID: result.ResourceID,
		Start:      result.Start,
		End:        result.End,
		ExpiresAt:  result.ExpiresAt,
		Status:     result.Status,
		CreatedAt:  result.CreatedAt,
	}, nil
}

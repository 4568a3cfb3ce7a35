package get_availability

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// Option настройка use case
type Option func(*UseCase)

// WithMaxRange задает максимальную длину запрашиваемого диапазона
func WithMaxRange(d time.Duration) Option {
	return func(uc *UseCase) {
		uc.maxRange = d
	}
}

// WithTimeProvider подменяет источник текущего времени
func WithTimeProvider(tp TimeProvider) Option {
	return func(uc *UseCase) {
		uc.timeProvider = tp
	}
}

// UseCase use case для получения свободных слотов ресурса
type UseCase struct {
	resources    ResourceProvider
	holdRepo     HoldRepository
	bookingRepo  BookingRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
	maxRange     time.Duration
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	resources ResourceProvider,
	holdRepo HoldRepository,
	bookingRepo BookingRepository,
	txManager TransactionManager,
	logger Logger,
	opts ...Option,
) *UseCase {
	uc := &UseCase{
		resources:    resources,
		holdRepo:     holdRepo,
		bookingRepo:  bookingRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
		maxRange:     domain.DefaultMaxAvailabilityRange,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Execute выполняет use case получения свободных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: resource=%s, from=%s, to=%s",
		req.ResourceID, req.From.Format(time.RFC3339), req.To.Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(req, uc.maxRange); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем календарь ресурса
	resource, err := uc.resources.GetResource(ctx, req.ResourceID)
	if err != nil {
		if domain.IsBusinessError(err) {
			uc.logger.Warn("GetAvailability: resource id=%s: %v", req.ResourceID, err)
			return nil, err
		}
		uc.logger.Error("GetAvailability: failed to get resource id=%s: %v", req.ResourceID, err)
		return nil, domain.AsStoreError("GetAvailability - get resource", err)
	}

	// 4. Читаем холды и бронирования одним снимком.
	// Слот, начинающийся перед to, может заканчиваться позже, поэтому окно расширяется на длительность.
	var reservations domain.ReservationSet
	windowEnd := req.To.Add(resource.Duration())

	err = uc.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		holds, err := uc.holdRepo.ListActiveByResource(txCtx, resource.ID, req.From, windowEnd)
		if err != nil {
			return fmt.Errorf("list holds: %w", err)
		}

		bookings, err := uc.bookingRepo.ListActiveByResource(txCtx, resource.ID, req.From, windowEnd)
		if err != nil {
			return fmt.Errorf("list bookings: %w", err)
		}

		reservations = domain.ReservationSet{Holds: holds, Bookings: bookings}
		return nil
	})
	if err != nil {
		uc.logger.Error("GetAvailability: failed to read reservations for resource=%s: %v", resource.ID, err)
		return nil, domain.AsStoreError("GetAvailability - read reservations", err)
	}

	// 5. Вычисляем свободные слоты по рабочим окнам календаря
	windows := func(date time.Time) ([]domain.TimeWindow, error) {
		return uc.resources.GetWorkingWindows(ctx, resource.ID, date)
	}

	slots, err := computeAvailability(resource, windows, req.From, req.To, now, reservations)
	if err != nil {
		if domain.IsBusinessError(err) {
			uc.logger.Warn("GetAvailability: failed to compute slots for resource=%s: %v", resource.ID, err)
			return nil, err
		}
		uc.logger.Error("GetAvailability: failed to read working windows for resource=%s: %v", resource.ID, err)
		return nil, domain.AsStoreError("GetAvailability - working windows", err)
	}

	uc.logger.Info("GetAvailability: %d free slots for resource=%s", len(slots), resource.ID)

	return &Response{
		Resource: resource,
		Slots:    slots,
	}, nil
}

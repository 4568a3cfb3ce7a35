package release_hold

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
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

// UseCase use case для досрочного освобождения холда
type UseCase struct {
	resourceRepo ResourceRepository
	holdRepo     HoldRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	resourceRepo ResourceRepository,
	holdRepo HoldRepository,
	txManager TransactionManager,
	logger Logger,
	opts ...Option,
) *UseCase {
	uc := &UseCase{
		resourceRepo: resourceRepo,
		holdRepo:     holdRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Execute выполняет use case освобождения холда
// Освобождение уже истекшего холда не является ошибкой.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ReleaseHold: hold=%s, user_id=%d", req.HoldID, req.UserID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ReleaseHold: validation failed: %v", err)
		return nil, err
	}

	resp := &Response{}

	// 2. Выполняем операции с БД в одной транзакции
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		hold, err := uc.holdRepo.GetByID(txCtx, req.HoldID)
		if err != nil {
			if errors.Is(err, holdRepo.ErrHoldNotFound) {
				return ErrHoldNotFound
			}
			return fmt.Errorf("get hold: %w", err)
		}

		// 2.1. Блокируем ресурс, затем перечитываем холд под блокировкой
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

		// 2.2. Переводим холд в expired
		if hold.Status == domain.HoldStatusConsumed {
			return ErrHoldAlreadyConsumed
		}

		// Холд с истекшим TTL уже не блокировал интервал
		resp.Released = !hold.IsExpiredAt(uc.timeProvider.Now())
		if hold.Status == domain.HoldStatusExpired {
			return nil
		}

		if err := uc.holdRepo.UpdateStatus(txCtx, hold.ID, domain.HoldStatusExpired); err != nil {
			return fmt.Errorf("expire hold: %w", err)
		}
		return nil
	})
	if err != nil {
		if !domain.IsBusinessError(err) {
			uc.logger.Error("ReleaseHold: storage failure for hold=%s: %v", req.HoldID, err)
		}
		return nil, domain.AsStoreError("ReleaseHold", err)
	}

	uc.logger.Info("ReleaseHold: hold=%s released=%t", req.HoldID, resp.Released)

	return resp, nil
}

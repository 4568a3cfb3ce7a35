package sweep_holds

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// Option настройка use case
type Option func(*UseCase)

// WithRetention задает, сколько хранить expired холды
func WithRetention(retention time.Duration) Option {
	return func(uc *UseCase) {
		if retention >= 0 {
			uc.retention = retention
		}
	}
}

// WithTimeProvider подменяет источник текущего времени
func WithTimeProvider(tp TimeProvider) Option {
	return func(uc *UseCase) {
		uc.timeProvider = tp
	}
}

// WithMetrics включает учет результатов очистки в метриках
func WithMetrics(m MetricsRecorder) Option {
	return func(uc *UseCase) {
		uc.metrics = m
	}
}

// UseCase use case для периодической очистки холдов.
// Корректность резервирования от него не зависит: TTL проверяется при каждом обращении.
type UseCase struct {
	holdRepo     HoldRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	metrics      MetricsRecorder
	logger       Logger
	retention    time.Duration
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(holdRepo HoldRepository, txManager TransactionManager, logger Logger, opts ...Option) *UseCase {
	uc := &UseCase{
		holdRepo:     holdRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
		retention:    domain.DefaultSweepRetention,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Execute выполняет очистку
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	now := req.Now
	if now.IsZero() {
		now = uc.timeProvider.Now()
	}

	resp := &Response{}

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Истекшие активные холды становятся expired
		expired, err := uc.holdRepo.ExpireStale(txCtx, now)
		if err != nil {
			return fmt.Errorf("expire stale holds: %w", err)
		}

		// 2. Удаляем expired холды старше периода хранения; consumed не трогаем
		deleted, err := uc.holdRepo.DeleteExpiredBefore(txCtx, now.Add(-uc.retention))
		if err != nil {
			return fmt.Errorf("delete expired holds: %w", err)
		}

		resp.Expired, resp.Deleted = expired, deleted
		return nil
	})
	if err != nil {
		uc.logger.Error("SweepHolds: %v", err)
		return nil, domain.AsStoreError("SweepHolds", err)
	}

	if uc.metrics != nil {
		uc.metrics.RecordSweep(resp.Expired, resp.Deleted)
	}

	if resp.Expired > 0 || resp.Deleted > 0 {
		uc.logger.Info("SweepHolds: expired=%d, deleted=%d", resp.Expired, resp.Deleted)
	}

	return resp, nil
}

package calendar

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	cacheRes "github.com/m04kA/SMC-ReservationService/internal/infra/cache/resource"
	resourceRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/resource"
)

// Service календарь ресурсов: описание ресурса и его рабочие окна.
// Кеш только ускоряет чтение: холды и бронирования остаются источником истины.
type Service struct {
	repo      ResourceRepository
	cache     ResourceCache
	txManager TransactionManager
	logger    Logger
}

// NewService создает сервис календаря. cache может быть nil.
func NewService(repo ResourceRepository, cache ResourceCache, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		repo:      repo,
		cache:     cache,
		txManager: txManager,
		logger:    logger,
	}
}

// GetResource получает ресурс по ID
func (s *Service) GetResource(ctx context.Context, id string) (*domain.Resource, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: resource_id must be a UUID", ErrInvalidInput)
	}

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, id)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, cacheRes.ErrCacheMiss) {
			s.logger.Warn("GetResource: cache read failed for resource id=%s: %v", id, err)
		}
	}

	res, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, resourceRepo.ErrResourceNotFound) {
			s.logger.Warn("GetResource: resource id=%s not found", id)
			return nil, ErrResourceNotFound
		}
		s.logger.Error("GetResource: repository error for resource id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetResource - repository error: %v", ErrStoreUnavailable, err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, res); err != nil {
			s.logger.Warn("GetResource: cache write failed for resource id=%s: %v", id, err)
		}
	}

	return res, nil
}

// GetWorkingWindows возвращает рабочие окна ресурса на локальную дату date, упорядоченные по открытию
func (s *Service) GetWorkingWindows(ctx context.Context, id string, date time.Time) ([]domain.TimeWindow, error) {
	res, err := s.GetResource(ctx, id)
	if err != nil {
		return nil, err
	}

	windows, err := res.WindowsFor(date)
	if err != nil {
		s.logger.Error("GetWorkingWindows: resource id=%s has broken calendar: %v", id, err)
		return nil, fmt.Errorf("%w: GetWorkingWindows: %v", ErrInvalidInput, err)
	}

	return windows, nil
}

// UpsertResource валидирует и сохраняет ресурс вместе с рабочими часами.
// Существующие холды и бронирования не пересматриваются.
func (s *Service) UpsertResource(ctx context.Context, res *domain.Resource) (*domain.Resource, error) {
	s.logger.Info("UpsertResource: resource id=%s, name=%q, duration=%d, granularity=%d, windows=%d",
		res.ID, res.Name, res.DurationMinutes, res.SlotGranularityMinutes, len(res.WorkingHours))

	if _, err := uuid.Parse(res.ID); err != nil {
		return nil, fmt.Errorf("%w: resource_id must be a UUID", ErrInvalidInput)
	}
	if res.Timezone == "" {
		res.Timezone = "UTC"
	}
	if err := res.Validate(); err != nil {
		s.logger.Warn("UpsertResource: validation failed for resource id=%s: %v", res.ID, err)
		return nil, err
	}

	var saved *domain.Resource
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error
		saved, err = s.repo.Upsert(txCtx, res)
		return err
	})
	if err != nil {
		s.logger.Error("UpsertResource: repository error for resource id=%s: %v", res.ID, err)
		return nil, fmt.Errorf("%w: UpsertResource - repository error: %v", ErrStoreUnavailable, err)
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, res.ID); err != nil {
			s.logger.Warn("UpsertResource: cache invalidation failed for resource id=%s: %v", res.ID, err)
		}
	}

	s.logger.Info("UpsertResource: saved resource id=%s", saved.ID)
	return saved, nil
}

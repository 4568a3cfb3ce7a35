package memstore

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	resourceRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/resource"
)

// ResourceRepo ресурсы в памяти
type ResourceRepo struct {
	s *Store
}

func cloneResource(r *domain.Resource) *domain.Resource {
	c := *r
	c.WorkingHours = append([]domain.WorkingWindow(nil), r.WorkingHours...)
	return &c
}

// GetByID получает ресурс
func (r *ResourceRepo) GetByID(ctx context.Context, id string) (*domain.Resource, error) {
	if err := r.s.fail(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	res, ok := r.s.resources[id]
	if !ok {
		return nil, resourceRepo.ErrResourceNotFound
	}
	return cloneResource(res), nil
}

// LockByID блокирует ресурс до конца транзакции
func (r *ResourceRepo) LockByID(ctx context.Context, id string) error {
	if err := r.s.fail(); err != nil {
		return err
	}
	r.s.mu.RLock()
	_, ok := r.s.resources[id]
	r.s.mu.RUnlock()
	if !ok {
		return resourceRepo.ErrResourceNotFound
	}

	r.s.lock(ctx, id)
	return nil
}

// Upsert создает или заменяет ресурс
func (r *ResourceRepo) Upsert(ctx context.Context, res *domain.Resource) (*domain.Resource, error) {
	if err := r.s.fail(); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	prev, existed := r.s.resources[res.ID]
	r.s.resources[res.ID] = cloneResource(res)
	onRollback(ctx, func() {
		if existed {
			r.s.resources[res.ID] = prev
		} else {
			delete(r.s.resources, res.ID)
		}
	})

	return cloneResource(res), nil
}

// Put сохраняет ресурс без транзакции (для подготовки данных в тестах)
func (r *ResourceRepo) Put(res *domain.Resource) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.resources[res.ID] = cloneResource(res)
}

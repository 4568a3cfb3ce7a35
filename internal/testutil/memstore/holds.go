package memstore

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	holdRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/hold"
)

// HoldRepo холды в памяти
type HoldRepo struct {
	s *Store
}

func cloneHold(h *domain.Hold) *domain.Hold {
	c := *h
	return &c
}

// Create сохраняет холд, эмулируя EXCLUDE-ограничение на активные холды
func (r *HoldRepo) Create(ctx context.Context, h *domain.Hold) (*domain.Hold, error) {
	if err := r.s.fail(); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if h.Status == domain.HoldStatusActive {
		for _, other := range r.s.holds {
			if other.ResourceID == h.ResourceID && other.Status == domain.HoldStatusActive &&
				overlaps(other.Start, other.End, h.Start, h.End) {
				return nil, holdRepo.ErrOverlap
			}
		}
	}

	now := time.Now()
	stored := cloneHold(h)
	stored.CreatedAt, stored.UpdatedAt = now, now
	r.s.holds[h.ID] = stored
	onRollback(ctx, func() { delete(r.s.holds, h.ID) })

	return cloneHold(stored), nil
}

// GetByID получает холд
func (r *HoldRepo) GetByID(ctx context.Context, id string) (*domain.Hold, error) {
	if err := r.s.fail(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	h, ok := r.s.holds[id]
	if !ok {
		return nil, holdRepo.ErrHoldNotFound
	}
	return cloneHold(h), nil
}

// GetByIDForUpdate получает холд. Строки холдов защищены блокировкой ресурса.
func (r *HoldRepo) GetByIDForUpdate(ctx context.Context, id string) (*domain.Hold, error) {
	return r.GetByID(ctx, id)
}

// ListActiveByResource холды в статусе active, пересекающие [from, to)
func (r *HoldRepo) ListActiveByResource(ctx context.Context, resourceID string, from, to time.Time) ([]*domain.Hold, error) {
	if err := r.s.fail(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*domain.Hold, 0)
	for _, h := range r.s.holds {
		if h.ResourceID == resourceID && h.Status == domain.HoldStatusActive && overlaps(h.Start, h.End, from, to) {
			out = append(out, cloneHold(h))
		}
	}
	return out, nil
}

// UpdateStatus меняет статус холда
func (r *HoldRepo) UpdateStatus(ctx context.Context, id string, status domain.HoldStatus) error {
	if err := r.s.fail(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	h, ok := r.s.holds[id]
	if !ok {
		return holdRepo.ErrHoldNotFound
	}
	r.setStatus(ctx, h, status)
	return nil
}

// ExpireStaleByResource переводит в expired активные холды ресурса с истекшим TTL
func (r *HoldRepo) ExpireStaleByResource(ctx context.Context, resourceID string, now time.Time) (int64, error) {
	return r.expire(ctx, func(h *domain.Hold) bool { return h.ResourceID == resourceID }, now)
}

// ExpireStale переводит в expired все активные холды с истекшим TTL
func (r *HoldRepo) ExpireStale(ctx context.Context, now time.Time) (int64, error) {
	return r.expire(ctx, func(*domain.Hold) bool { return true }, now)
}

func (r *HoldRepo) expire(ctx context.Context, match func(*domain.Hold) bool, now time.Time) (int64, error) {
	if err := r.s.fail(); err != nil {
		return 0, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var n int64
	for _, h := range r.s.holds {
		if match(h) && h.Status == domain.HoldStatusActive && !h.ExpiresAt.After(now) {
			r.setStatus(ctx, h, domain.HoldStatusExpired)
			n++
		}
	}
	return n, nil
}

// DeleteExpiredBefore удаляет expired холды, истекшие раньше before
func (r *HoldRepo) DeleteExpiredBefore(ctx context.Context, before time.Time) (int64, error) {
	if err := r.s.fail(); err != nil {
		return 0, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var n int64
	for id, h := range r.s.holds {
		if h.Status == domain.HoldStatusExpired && h.ExpiresAt.Before(before) {
			removed := h
			delete(r.s.holds, id)
			onRollback(ctx, func() { r.s.holds[removed.ID] = removed })
			n++
		}
	}
	return n, nil
}

// Put сохраняет холд без проверок (для подготовки данных в тестах)
func (r *HoldRepo) Put(h *domain.Hold) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.holds[h.ID] = cloneHold(h)
}

func (r *HoldRepo) setStatus(ctx context.Context, h *domain.Hold, status domain.HoldStatus) {
	prevStatus, prevUpdated := h.Status, h.UpdatedAt
	h.Status = status
	h.UpdatedAt = time.Now()
	onRollback(ctx, func() {
		h.Status = prevStatus
		h.UpdatedAt = prevUpdated
	})
}

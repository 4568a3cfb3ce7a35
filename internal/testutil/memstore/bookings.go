package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/booking"
)

// BookingRepo бронирования в памяти
type BookingRepo struct {
	s *Store
}

func cloneBooking(b *domain.Booking) *domain.Booking {
	c := *b
	return &c
}

// Create сохраняет бронирование, эмулируя UNIQUE(hold_id) и EXCLUDE-ограничение
func (r *BookingRepo) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	if err := r.s.fail(); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, other := range r.s.bookings {
		if other.HoldID == b.HoldID {
			return nil, bookingRepo.ErrHoldAlreadyBooked
		}
		if b.IsActive() && other.ResourceID == b.ResourceID && other.IsActive() &&
			overlaps(other.Start, other.End, b.Start, b.End) {
			return nil, bookingRepo.ErrOverlap
		}
	}

	now := time.Now()
	stored := cloneBooking(b)
	stored.CreatedAt, stored.UpdatedAt = now, now
	r.s.bookings[b.ID] = stored
	onRollback(ctx, func() { delete(r.s.bookings, b.ID) })

	return cloneBooking(stored), nil
}

// GetByID получает бронирование
func (r *BookingRepo) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	if err := r.s.fail(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	b, ok := r.s.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return cloneBooking(b), nil
}

// GetByIDForUpdate получает бронирование
func (r *BookingRepo) GetByIDForUpdate(ctx context.Context, id string) (*domain.Booking, error) {
	return r.GetByID(ctx, id)
}

// GetByHoldID получает бронирование, созданное из холда
func (r *BookingRepo) GetByHoldID(ctx context.Context, holdID string) (*domain.Booking, error) {
	if err := r.s.fail(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, b := range r.s.bookings {
		if b.HoldID == holdID {
			return cloneBooking(b), nil
		}
	}
	return nil, bookingRepo.ErrBookingNotFound
}

// ListActiveByResource pending/confirmed бронирования, пересекающие [from, to)
func (r *BookingRepo) ListActiveByResource(ctx context.Context, resourceID string, from, to time.Time) ([]*domain.Booking, error) {
	return r.ListByResource(ctx, domain.ResourceBookingsFilter{ResourceID: resourceID, From: &from, To: &to})
}

// ListByResource бронирования ресурса по фильтру
func (r *BookingRepo) ListByResource(ctx context.Context, filter domain.ResourceBookingsFilter) ([]*domain.Booking, error) {
	if err := r.s.fail(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*domain.Booking, 0)
	for _, b := range r.s.bookings {
		if b.ResourceID != filter.ResourceID {
			continue
		}
		if filter.From != nil && !b.End.After(*filter.From) {
			continue
		}
		if filter.To != nil && !b.Start.Before(*filter.To) {
			continue
		}
		if filter.Status != nil {
			if b.Status != *filter.Status {
				continue
			}
		} else if !filter.IncludeCancelled && !b.IsActive() {
			continue
		}
		out = append(out, cloneBooking(b))
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out, nil
}

// UpdateStatus обновляет статус бронирования
func (r *BookingRepo) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) error {
	if err := r.s.fail(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	b, ok := r.s.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	prev := *b
	b.Status = status
	b.UpdatedAt = time.Now()
	onRollback(ctx, func() { *b = prev })
	return nil
}

// Cancel отменяет бронирование
func (r *BookingRepo) Cancel(ctx context.Context, id string, reason *string, at time.Time) error {
	if err := r.s.fail(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	b, ok := r.s.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	prev := *b
	b.Status = domain.StatusCancelled
	b.CancellationReason = reason
	b.CancelledAt = &at
	b.UpdatedAt = time.Now()
	onRollback(ctx, func() { *b = prev })
	return nil
}

// Put сохраняет бронирование без проверок (для подготовки данных в тестах)
func (r *BookingRepo) Put(b *domain.Booking) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.bookings[b.ID] = cloneBooking(b)
}

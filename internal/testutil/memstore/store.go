// Package memstore хранилище в памяти для тестов use case'ов.
// Повторяет контракт PostgreSQL-репозиториев: блокировка строки ресурса до конца транзакции,
// откат изменений при ошибке, EXCLUDE-ограничения на пересечение интервалов.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// Store общее состояние хранилища
type Store struct {
	mu        sync.RWMutex
	resources map[string]*domain.Resource
	holds     map[string]*domain.Hold
	bookings  map[string]*domain.Booking

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex

	failMu  sync.RWMutex
	failure error
}

type txKey struct{}

type txState struct {
	held map[string]*sync.Mutex
	undo []func()
}

// New создает пустое хранилище
func New() *Store {
	return &Store{
		resources: make(map[string]*domain.Resource),
		holds:     make(map[string]*domain.Hold),
		bookings:  make(map[string]*domain.Booking),
		locks:     make(map[string]*sync.Mutex),
	}
}

// SetFailure заставляет все операции возвращать err (nil снимает отказ)
func (s *Store) SetFailure(err error) {
	s.failMu.Lock()
	defer s.failMu.Unlock()
	s.failure = err
}

func (s *Store) fail() error {
	s.failMu.RLock()
	defer s.failMu.RUnlock()
	return s.failure
}

// Do выполняет fn в транзакции. Вложенный вызов переиспользует внешнюю транзакцию.
func (s *Store) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*txState); ok {
		return fn(ctx)
	}
	if err := s.fail(); err != nil {
		return err
	}

	st := &txState{held: make(map[string]*sync.Mutex)}
	defer func() {
		for _, m := range st.held {
			m.Unlock()
		}
	}()

	if err := fn(context.WithValue(ctx, txKey{}, st)); err != nil {
		s.mu.Lock()
		for i := len(st.undo) - 1; i >= 0; i-- {
			st.undo[i]()
		}
		s.mu.Unlock()
		return err
	}

	return nil
}

// DoReadOnly то же, что Do
func (s *Store) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return s.Do(ctx, fn)
}

// lock берет блокировку ресурса на время транзакции из ctx
func (s *Store) lock(ctx context.Context, resourceID string) {
	st, ok := ctx.Value(txKey{}).(*txState)
	if !ok {
		return
	}
	if _, held := st.held[resourceID]; held {
		return
	}

	s.locksMu.Lock()
	m, exists := s.locks[resourceID]
	if !exists {
		m = &sync.Mutex{}
		s.locks[resourceID] = m
	}
	s.locksMu.Unlock()

	m.Lock()
	st.held[resourceID] = m
}

// onRollback регистрирует откат изменения. Вызывается под s.mu.
func onRollback(ctx context.Context, undo func()) {
	if st, ok := ctx.Value(txKey{}).(*txState); ok {
		st.undo = append(st.undo, undo)
	}
}

// Resources репозиторий ресурсов
func (s *Store) Resources() *ResourceRepo { return &ResourceRepo{s: s} }

// Holds репозиторий холдов
func (s *Store) Holds() *HoldRepo { return &HoldRepo{s: s} }

// Bookings репозиторий бронирований
func (s *Store) Bookings() *BookingRepo { return &BookingRepo{s: s} }

// AllHolds снимок всех холдов, упорядоченный по началу интервала
func (s *Store) AllHolds() []*domain.Hold {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Hold, 0, len(s.holds))
	for _, h := range s.holds {
		c := *h
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out
}

// AllBookings снимок всех бронирований, упорядоченный по началу интервала
func (s *Store) AllBookings() []*domain.Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Booking, 0, len(s.bookings))
	for _, b := range s.bookings {
		c := *b
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out
}

func overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

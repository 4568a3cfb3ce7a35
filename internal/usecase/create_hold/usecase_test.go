package create_hold

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	holdRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/hold"
	"github.com/m04kA/SMC-ReservationService/internal/testutil/memstore"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
)

type manualClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// 2025-10-15 is a Wednesday
var day = time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)

func clock(hh, mm int) time.Time {
	return day.Add(time.Duration(hh)*time.Hour + time.Duration(mm)*time.Minute)
}

type fixture struct {
	store    *memstore.Store
	resource *domain.Resource
	clock    *manualClock
	uc       *UseCase
}

func newFixture(t *testing.T, now time.Time, opts ...Option) *fixture {
	t.Helper()

	store := memstore.New()
	res := &domain.Resource{
		ID:                     uuid.NewString(),
		Name:                   "Loft",
		DurationMinutes:        60,
		SlotGranularityMinutes: 30,
		Timezone:               "UTC",
		WorkingHours:           []domain.WorkingWindow{{Weekday: time.Wednesday, Open: "09:00", Close: "12:00"}},
	}
	store.Resources().Put(res)

	clk := &manualClock{now: now}
	opts = append([]Option{WithTimeProvider(clk)}, opts...)
	uc := NewUseCase(store.Resources(), store.Holds(), store.Bookings(), store, logger.NewNop(), opts...)

	return &fixture{store: store, resource: res, clock: clk, uc: uc}
}

func (f *fixture) request(hh, mm int) *Request {
	start := clock(hh, mm)
	return &Request{ResourceID: f.resource.ID, Start: start, End: start.Add(time.Hour)}
}

func TestUseCase_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("creates active hold with default ttl", func(t *testing.T) {
		f := newFixture(t, clock(7, 0))

		resp, err := f.uc.Execute(ctx, f.request(9, 0))
		require.NoError(t, err)

		_, parseErr := uuid.Parse(resp.ID)
		assert.NoError(t, parseErr)
		assert.Equal(t, domain.HoldStatusActive, resp.Status)
		assert.Equal(t, clock(9, 0), resp.Start)
		assert.Equal(t, clock(10, 0), resp.End)
		assert.Equal(t, clock(7, 15), resp.ExpiresAt)
		assert.Len(t, f.store.AllHolds(), 1)
	})

	t.Run("overlapping request is rejected with the blocking range", func(t *testing.T) {
		f := newFixture(t, clock(7, 0))

		_, err := f.uc.Execute(ctx, f.request(9, 0))
		require.NoError(t, err)

		_, err = f.uc.Execute(ctx, f.request(9, 30))
		require.ErrorIs(t, err, ErrConflict)

		var ce *domain.ConflictError
		require.True(t, errors.As(err, &ce))
		assert.Equal(t, f.resource.ID, ce.ResourceID)
		assert.Equal(t, clock(9, 0), ce.Start)
		assert.Equal(t, clock(10, 0), ce.End)
	})

	t.Run("adjacent slot is free", func(t *testing.T) {
		f := newFixture(t, clock(7, 0))

		_, err := f.uc.Execute(ctx, f.request(9, 0))
		require.NoError(t, err)
		_, err = f.uc.Execute(ctx, f.request(10, 0))
		assert.NoError(t, err)
	})

	t.Run("confirmed booking blocks the range", func(t *testing.T) {
		f := newFixture(t, clock(7, 0))
		f.store.Bookings().Put(&domain.Booking{
			ID: uuid.NewString(), ResourceID: f.resource.ID, HoldID: uuid.NewString(),
			Start: clock(10, 0), End: clock(11, 0),
			CustomerName: "Ann", CustomerEmail: "ann@example.com",
			Status: domain.StatusConfirmed,
		})

		_, err := f.uc.Execute(ctx, f.request(10, 30))
		assert.ErrorIs(t, err, ErrConflict)
	})

	t.Run("cancelled booking does not block", func(t *testing.T) {
		f := newFixture(t, clock(7, 0))
		f.store.Bookings().Put(&domain.Booking{
			ID: uuid.NewString(), ResourceID: f.resource.ID, HoldID: uuid.NewString(),
			Start: clock(10, 0), End: clock(11, 0),
			CustomerName: "Ann", CustomerEmail: "ann@example.com",
			Status: domain.StatusCancelled,
		})

		_, err := f.uc.Execute(ctx, f.request(10, 0))
		assert.NoError(t, err)
	})

	t.Run("custom ttl", func(t *testing.T) {
		f := newFixture(t, clock(7, 0), WithHoldTTL(5*time.Minute))

		resp, err := f.uc.Execute(ctx, f.request(9, 0))
		require.NoError(t, err)
		assert.Equal(t, clock(7, 5), resp.ExpiresAt)
	})

	t.Run("started slot is rejected", func(t *testing.T) {
		f := newFixture(t, clock(9, 10))

		_, err := f.uc.Execute(ctx, f.request(9, 0))
		assert.ErrorIs(t, err, ErrInvalidRange)
	})
}

func TestUseCase_Execute_TTLBoundary(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, clock(7, 0))

	first, err := f.uc.Execute(ctx, f.request(9, 0))
	require.NoError(t, err)

	f.clock.Set(first.ExpiresAt.Add(-time.Second))
	_, err = f.uc.Execute(ctx, f.request(9, 0))
	require.ErrorIs(t, err, ErrConflict, "hold still active one second before expiry")

	f.clock.Set(first.ExpiresAt)
	second, err := f.uc.Execute(ctx, f.request(9, 0))
	require.NoError(t, err, "expires_at is exclusive")
	assert.NotEqual(t, first.ID, second.ID)

	var statuses []domain.HoldStatus
	for _, h := range f.store.AllHolds() {
		statuses = append(statuses, h.Status)
	}
	assert.ElementsMatch(t, []domain.HoldStatus{domain.HoldStatusExpired, domain.HoldStatusActive}, statuses)
}

func TestUseCase_Execute_Validation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, clock(7, 0))

	tests := []struct {
		name    string
		req     *Request
		wantErr error
	}{
		{
			name:    "malformed resource id",
			req:     &Request{ResourceID: "nope", Start: clock(9, 0), End: clock(10, 0)},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "missing start",
			req:     &Request{ResourceID: f.resource.ID, End: clock(10, 0)},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "end before start",
			req:     &Request{ResourceID: f.resource.ID, Start: clock(10, 0), End: clock(9, 0)},
			wantErr: ErrInvalidRange,
		},
		{
			name:    "misaligned start",
			req:     &Request{ResourceID: f.resource.ID, Start: clock(9, 15), End: clock(10, 15)},
			wantErr: ErrInvalidRange,
		},
		{
			name:    "wrong length",
			req:     &Request{ResourceID: f.resource.ID, Start: clock(9, 0), End: clock(11, 0)},
			wantErr: ErrInvalidRange,
		},
		{
			name:    "outside working hours",
			req:     &Request{ResourceID: f.resource.ID, Start: clock(11, 30), End: clock(12, 30)},
			wantErr: ErrInvalidRange,
		},
		{
			name:    "unknown resource",
			req:     &Request{ResourceID: uuid.NewString(), Start: clock(9, 0), End: clock(10, 0)},
			wantErr: ErrResourceNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.uc.Execute(ctx, tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	assert.Empty(t, f.store.AllHolds())
}

func TestUseCase_Execute_Concurrent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, clock(7, 0))

	const workers = 16
	var (
		mu        sync.Mutex
		wins      int
		conflicts int
	)

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < workers; i++ {
		// 09:00 and 09:30 overlap each other
		req := f.request(9, 0)
		if i%2 == 1 {
			req = f.request(9, 30)
		}
		g.Go(func() error {
			_, err := f.uc.Execute(gctx, req)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				wins++
			case errors.Is(err, ErrConflict):
				conflicts++
			default:
				return err
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	assert.Equal(t, 1, wins)
	assert.Equal(t, workers-1, conflicts)

	active := 0
	for _, h := range f.store.AllHolds() {
		if h.Status == domain.HoldStatusActive {
			active++
		}
	}
	assert.Equal(t, 1, active)
}

func TestUseCase_Execute_NoOverlapInvariant(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, clock(7, 0))

	g, gctx := errgroup.WithContext(ctx)
	for _, hh := range []int{9, 10, 11} {
		for _, mm := range []int{0, 30} {
			req := f.request(hh, mm)
			g.Go(func() error {
				_, err := f.uc.Execute(gctx, req)
				if err != nil && !errors.Is(err, ErrConflict) && !errors.Is(err, ErrInvalidRange) {
					return err
				}
				return nil
			})
		}
	}
	require.NoError(t, g.Wait())

	holds := f.store.AllHolds()
	require.NotEmpty(t, holds)
	for i := range holds {
		for j := i + 1; j < len(holds); j++ {
			assert.False(t, holds[i].Range().Overlaps(holds[j].Range()),
				"holds %s and %s overlap", holds[i].ID, holds[j].ID)
		}
	}
}

// blindHolds hides existing holds from the pre-check so that the storage constraint is what rejects the insert
type blindHolds struct {
	*memstore.HoldRepo
}

func (blindHolds) ListActiveByResource(context.Context, string, time.Time, time.Time) ([]*domain.Hold, error) {
	return nil, nil
}

func TestUseCase_Execute_StorageConstraint(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, clock(7, 0))
	f.store.Holds().Put(&domain.Hold{
		ID: uuid.NewString(), ResourceID: f.resource.ID,
		Start: clock(9, 0), End: clock(10, 0),
		ExpiresAt: clock(7, 15), Status: domain.HoldStatusActive,
	})

	uc := NewUseCase(f.store.Resources(), blindHolds{f.store.Holds()}, f.store.Bookings(), f.store,
		logger.NewNop(), WithTimeProvider(f.clock))

	_, err := uc.Execute(ctx, f.request(9, 30))
	require.ErrorIs(t, err, ErrConflict)
	assert.NotErrorIs(t, err, holdRepo.ErrOverlap)
}

func TestUseCase_Execute_StoreUnavailable(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, clock(7, 0))
	f.store.SetFailure(errors.New("connection refused"))

	_, err := f.uc.Execute(ctx, f.request(9, 0))
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

package get_availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/calendar"
	"github.com/m04kA/SMC-ReservationService/internal/testutil/memstore"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
)

type fixedClock struct{ now time.Time }

// shortHours отдает календарь ресурса, но рабочие окна задает сам
type shortHours struct {
	ResourceProvider
	windows []domain.TimeWindow
	err     error
}

func (s shortHours) GetWorkingWindows(ctx context.Context, id string, date time.Time) ([]domain.TimeWindow, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.windows, nil
}

func (c fixedClock) Now() time.Time { return c.now }

// 2025-10-15 is a Wednesday
var day = time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)

func clock(hh, mm int) time.Time {
	return day.Add(time.Duration(hh)*time.Hour + time.Duration(mm)*time.Minute)
}

type fixture struct {
	store    *memstore.Store
	resource *domain.Resource
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

	log := logger.NewNop()
	cal := calendar.NewService(store.Resources(), nil, store, log)
	opts = append([]Option{WithTimeProvider(fixedClock{now: now})}, opts...)
	uc := NewUseCase(cal, store.Holds(), store.Bookings(), store, log, opts...)

	return &fixture{store: store, resource: res, uc: uc}
}

func starts(slots []domain.Slot) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.Start.Format("15:04")
	}
	return out
}

func TestUseCase_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("empty calendar state yields every candidate", func(t *testing.T) {
		f := newFixture(t, clock(7, 0))

		resp, err := f.uc.Execute(ctx, &Request{ResourceID: f.resource.ID, From: day, To: day.Add(24 * time.Hour)})
		require.NoError(t, err)
		assert.Equal(t, []string{"09:00", "09:30", "10:00", "10:30"}, starts(resp.Slots))
		assert.Equal(t, f.resource.ID, resp.Resource.ID)
	})

	t.Run("active hold removes overlapping slots only", func(t *testing.T) {
		f := newFixture(t, clock(7, 0))
		f.store.Holds().Put(&domain.Hold{
			ID: uuid.NewString(), ResourceID: f.resource.ID,
			Start: clock(9, 0), End: clock(10, 0),
			ExpiresAt: clock(7, 15), Status: domain.HoldStatusActive,
		})

		resp, err := f.uc.Execute(ctx, &Request{ResourceID: f.resource.ID, From: day, To: day.Add(24 * time.Hour)})
		require.NoError(t, err)
		assert.Equal(t, []string{"10:00", "10:30"}, starts(resp.Slots))
	})

	t.Run("effectively expired hold does not block", func(t *testing.T) {
		f := newFixture(t, clock(7, 16))
		f.store.Holds().Put(&domain.Hold{
			ID: uuid.NewString(), ResourceID: f.resource.ID,
			Start: clock(9, 0), End: clock(10, 0),
			ExpiresAt: clock(7, 15), Status: domain.HoldStatusActive,
		})

		resp, err := f.uc.Execute(ctx, &Request{ResourceID: f.resource.ID, From: day, To: day.Add(24 * time.Hour)})
		require.NoError(t, err)
		assert.Len(t, resp.Slots, 4)
	})

	t.Run("bookings block, cancelled bookings do not", func(t *testing.T) {
		f := newFixture(t, clock(7, 0))
		f.store.Bookings().Put(&domain.Booking{
			ID: uuid.NewString(), ResourceID: f.resource.ID, HoldID: uuid.NewString(),
			Start: clock(10, 30), End: clock(11, 30), Status: domain.StatusConfirmed,
		})
		f.store.Bookings().Put(&domain.Booking{
			ID: uuid.NewString(), ResourceID: f.resource.ID, HoldID: uuid.NewString(),
			Start: clock(9, 0), End: clock(10, 0), Status: domain.StatusCancelled,
		})

		resp, err := f.uc.Execute(ctx, &Request{ResourceID: f.resource.ID, From: day, To: day.Add(24 * time.Hour)})
		require.NoError(t, err)
		assert.Equal(t, []string{"09:00", "09:30"}, starts(resp.Slots))
	})

	t.Run("slots in the past are skipped", func(t *testing.T) {
		f := newFixture(t, clock(9, 45))

		resp, err := f.uc.Execute(ctx, &Request{ResourceID: f.resource.ID, From: day, To: day.Add(24 * time.Hour)})
		require.NoError(t, err)
		assert.Equal(t, []string{"10:00", "10:30"}, starts(resp.Slots))
	})

	t.Run("repeated calls return the same sequence", func(t *testing.T) {
		f := newFixture(t, clock(7, 0))
		req := &Request{ResourceID: f.resource.ID, From: day, To: day.Add(7 * 24 * time.Hour)}

		first, err := f.uc.Execute(ctx, req)
		require.NoError(t, err)
		second, err := f.uc.Execute(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, first.Slots, second.Slots)
	})
}

func TestUseCase_Errors(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, clock(7, 0), WithMaxRange(48*time.Hour))

	tests := []struct {
		name string
		req  *Request
		want error
	}{
		{"to before from", &Request{ResourceID: f.resource.ID, From: day, To: day.Add(-time.Hour)}, domain.ErrInvalidRange},
		{"empty range", &Request{ResourceID: f.resource.ID, From: day, To: day}, domain.ErrInvalidRange},
		{"range too long", &Request{ResourceID: f.resource.ID, From: day, To: day.Add(72 * time.Hour)}, domain.ErrInvalidRange},
		{"malformed id", &Request{ResourceID: "loft", From: day, To: day.Add(time.Hour)}, domain.ErrInvalidInput},
		{"unknown resource", &Request{ResourceID: uuid.NewString(), From: day, To: day.Add(time.Hour)}, domain.ErrResourceNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.uc.Execute(ctx, tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	t.Run("store unavailable", func(t *testing.T) {
		f.store.SetFailure(errors.New("connection reset"))
		defer f.store.SetFailure(nil)

		_, err := f.uc.Execute(ctx, &Request{ResourceID: f.resource.ID, From: day, To: day.Add(time.Hour)})
		assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	})
}

func TestComputeAvailability_SlotStraddlingRangeEnd(t *testing.T) {
	res := &domain.Resource{
		ID: "r", DurationMinutes: 60, SlotGranularityMinutes: 30, Timezone: "UTC",
		WorkingHours: []domain.WorkingWindow{{Weekday: time.Wednesday, Open: "09:00", Close: "12:00"}},
	}
	reservations := domain.ReservationSet{
		Bookings: []*domain.Booking{{Start: clock(10, 30), End: clock(11, 30), Status: domain.StatusPending}},
	}

	slots, err := computeAvailability(res, res.WindowsFor, clock(9, 0), clock(10, 1), clock(0, 0), reservations)
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "09:30"}, starts(slots), "10:00 overlaps the booking past the range end")
}

func TestUseCase_UsesCalendarWorkingWindows(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, clock(7, 0))
	log := logger.NewNop()
	cal := calendar.NewService(f.store.Resources(), nil, f.store, log)

	t.Run("windows come from the calendar", func(t *testing.T) {
		provider := shortHours{
			ResourceProvider: cal,
			windows:          []domain.TimeWindow{{Open: clock(9, 0), Close: clock(10, 30)}},
		}
		uc := NewUseCase(provider, f.store.Holds(), f.store.Bookings(), f.store, log, WithTimeProvider(fixedClock{now: clock(7, 0)}))

		resp, err := uc.Execute(ctx, &Request{ResourceID: f.resource.ID, From: day, To: day.Add(time.Hour * 12)})
		require.NoError(t, err)
		assert.Equal(t, []string{"09:00"}, starts(resp.Slots))
	})

	t.Run("calendar failure maps to store unavailable", func(t *testing.T) {
		provider := shortHours{ResourceProvider: cal, err: errors.New("connection reset")}
		uc := NewUseCase(provider, f.store.Holds(), f.store.Bookings(), f.store, log, WithTimeProvider(fixedClock{now: clock(7, 0)}))

		_, err := uc.Execute(ctx, &Request{ResourceID: f.resource.ID, From: day, To: day.Add(time.Hour)})
		assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	})

	t.Run("broken calendar is invalid input", func(t *testing.T) {
		provider := shortHours{ResourceProvider: cal, err: domain.ErrInvalidInput}
		uc := NewUseCase(provider, f.store.Holds(), f.store.Bookings(), f.store, log, WithTimeProvider(fixedClock{now: clock(7, 0)}))

		_, err := uc.Execute(ctx, &Request{ResourceID: f.resource.ID, From: day, To: day.Add(time.Hour)})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

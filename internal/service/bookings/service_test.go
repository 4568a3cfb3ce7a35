package bookings

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/bookings/models"
	"github.com/m04kA/SMC-ReservationService/internal/testutil/memstore"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

var (
	day = time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)
	now = day.Add(8 * time.Hour)
)

type fixture struct {
	store      *memstore.Store
	resourceID string
	svc        *Service
}

func newFixture() *fixture {
	store := memstore.New()
	resourceID := uuid.NewString()
	store.Resources().Put(&domain.Resource{ID: resourceID, Name: "Loft", DurationMinutes: 60, SlotGranularityMinutes: 60, Timezone: "UTC"})

	svc := NewService(store.Bookings(), store.Resources(), store, logger.NewNop(), WithTimeProvider(fixedClock{now: now}))
	return &fixture{store: store, resourceID: resourceID, svc: svc}
}

func (f *fixture) put(startHour int, status domain.BookingStatus) *domain.Booking {
	b := &domain.Booking{
		ID:            uuid.NewString(),
		ResourceID:    f.resourceID,
		HoldID:        uuid.NewString(),
		Start:         day.Add(time.Duration(startHour) * time.Hour),
		End:           day.Add(time.Duration(startHour+1) * time.Hour),
		CustomerName:  "Ann",
		CustomerEmail: "ann@example.com",
		Status:        status,
	}
	f.store.Bookings().Put(b)
	return b
}

func TestService_GetByID(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	b := f.put(9, domain.StatusPending)

	resp, err := f.svc.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, resp.ID)
	assert.Equal(t, "2025-10-15T09:00:00Z", resp.Start)
	assert.Equal(t, "2025-10-15T10:00:00Z", resp.End)
	assert.Equal(t, "pending", resp.Status)

	_, err = f.svc.GetByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, ErrBookingNotFound)

	_, err = f.svc.GetByID(ctx, "7")
	assert.ErrorIs(t, err, ErrInvalidInput)

	f.store.SetFailure(errors.New("boom"))
	_, err = f.svc.GetByID(ctx, b.ID)
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestService_ListByResource(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	pending := f.put(9, domain.StatusPending)
	confirmed := f.put(11, domain.StatusConfirmed)
	cancelled := f.put(13, domain.StatusCancelled)

	ids := func(resp *models.BookingListResponse) []string {
		out := make([]string, len(resp.Bookings))
		for i, b := range resp.Bookings {
			out[i] = b.ID
		}
		return out
	}
	status := func(s string) *string { return &s }
	at := func(h int) *time.Time { t := day.Add(time.Duration(h) * time.Hour); return &t }

	tests := []struct {
		name string
		req  models.ListResourceBookingsRequest
		want []string
	}{
		{"active only by default", models.ListResourceBookingsRequest{}, []string{pending.ID, confirmed.ID}},
		{"include cancelled", models.ListResourceBookingsRequest{IncludeCancelled: true}, []string{pending.ID, confirmed.ID, cancelled.ID}},
		{"by status", models.ListResourceBookingsRequest{Status: status("cancelled")}, []string{cancelled.ID}},
		{"by period", models.ListResourceBookingsRequest{From: at(10), To: at(12)}, []string{confirmed.ID}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			req.ResourceID = f.resourceID
			resp, err := f.svc.ListByResource(ctx, &req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(resp))
		})
	}

	t.Run("unknown status", func(t *testing.T) {
		_, err := f.svc.ListByResource(ctx, &models.ListResourceBookingsRequest{ResourceID: f.resourceID, Status: status("done")})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("inverted period", func(t *testing.T) {
		_, err := f.svc.ListByResource(ctx, &models.ListResourceBookingsRequest{ResourceID: f.resourceID, From: at(12), To: at(10)})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("empty result is not nil", func(t *testing.T) {
		resp, err := f.svc.ListByResource(ctx, &models.ListResourceBookingsRequest{ResourceID: uuid.NewString()})
		require.NoError(t, err)
		assert.NotNil(t, resp.Bookings)
		assert.Empty(t, resp.Bookings)
	})
}

func TestService_Cancel(t *testing.T) {
	ctx := context.Background()

	t.Run("pending booking is cancelled with reason", func(t *testing.T) {
		f := newFixture()
		b := f.put(9, domain.StatusPending)
		reason := "  changed plans "

		require.NoError(t, f.svc.Cancel(ctx, b.ID, &models.CancelBookingRequest{CancellationReason: &reason}))

		got, err := f.store.Bookings().GetByID(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusCancelled, got.Status)
		require.NotNil(t, got.CancellationReason)
		assert.Equal(t, "changed plans", *got.CancellationReason)
		require.NotNil(t, got.CancelledAt)
		assert.Equal(t, now, *got.CancelledAt)
	})

	t.Run("confirmed booking can be cancelled", func(t *testing.T) {
		f := newFixture()
		b := f.put(9, domain.StatusConfirmed)
		assert.NoError(t, f.svc.Cancel(ctx, b.ID, &models.CancelBookingRequest{}))
	})

	t.Run("cancelled booking cannot be cancelled again", func(t *testing.T) {
		f := newFixture()
		b := f.put(9, domain.StatusCancelled)
		assert.ErrorIs(t, f.svc.Cancel(ctx, b.ID, &models.CancelBookingRequest{}), ErrCannotCancel)
	})

	t.Run("reason too long", func(t *testing.T) {
		f := newFixture()
		b := f.put(9, domain.StatusPending)
		reason := strings.Repeat("x", domain.MaxCancellationReasonLength+1)
		assert.ErrorIs(t, f.svc.Cancel(ctx, b.ID, &models.CancelBookingRequest{CancellationReason: &reason}), ErrInvalidInput)
	})

	t.Run("unknown booking", func(t *testing.T) {
		f := newFixture()
		assert.ErrorIs(t, f.svc.Cancel(ctx, uuid.NewString(), &models.CancelBookingRequest{}), ErrBookingNotFound)
	})
}

func TestService_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("pending to confirmed", func(t *testing.T) {
		f := newFixture()
		b := f.put(9, domain.StatusPending)

		require.NoError(t, f.svc.UpdateStatus(ctx, b.ID, &models.UpdateStatusRequest{Status: "confirmed"}))

		got, err := f.store.Bookings().GetByID(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusConfirmed, got.Status)
	})

	t.Run("already confirmed", func(t *testing.T) {
		f := newFixture()
		b := f.put(9, domain.StatusConfirmed)
		assert.ErrorIs(t, f.svc.UpdateStatus(ctx, b.ID, &models.UpdateStatusRequest{Status: "confirmed"}), ErrCannotConfirm)
	})

	t.Run("cancelled booking", func(t *testing.T) {
		f := newFixture()
		b := f.put(9, domain.StatusCancelled)
		assert.ErrorIs(t, f.svc.UpdateStatus(ctx, b.ID, &models.UpdateStatusRequest{Status: "confirmed"}), ErrCannotConfirm)
	})

	t.Run("only confirmed is accepted as target", func(t *testing.T) {
		f := newFixture()
		b := f.put(9, domain.StatusPending)
		for _, status := range []string{"pending", "cancelled", "paid"} {
			assert.ErrorIs(t, f.svc.UpdateStatus(ctx, b.ID, &models.UpdateStatusRequest{Status: status}), ErrInvalidInput, status)
		}
	})

	t.Run("store unavailable", func(t *testing.T) {
		f := newFixture()
		b := f.put(9, domain.StatusPending)
		f.store.SetFailure(errors.New("boom"))
		assert.ErrorIs(t, f.svc.UpdateStatus(ctx, b.ID, &models.UpdateStatusRequest{Status: "confirmed"}), ErrStoreUnavailable)
	})
}

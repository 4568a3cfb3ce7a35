package reservation

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/usecase/confirm_booking"
	"github.com/m04kA/SMC-ReservationService/internal/usecase/create_hold"
	"github.com/m04kA/SMC-ReservationService/internal/usecase/get_availability"
	"github.com/m04kA/SMC-ReservationService/internal/usecase/release_hold"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
)

type mockAvailability struct{ mock.Mock }

func (m *mockAvailability) Execute(ctx context.Context, req *get_availability.Request) (*get_availability.Response, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*get_availability.Response)
	return resp, args.Error(1)
}

type mockCreateHold struct{ mock.Mock }

func (m *mockCreateHold) Execute(ctx context.Context, req *create_hold.Request) (*create_hold.Response, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*create_hold.Response)
	return resp, args.Error(1)
}

type mockConfirm struct{ mock.Mock }

func (m *mockConfirm) Execute(ctx context.Context, req *confirm_booking.Request) (*confirm_booking.Response, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*confirm_booking.Response)
	return resp, args.Error(1)
}

type mockRelease struct{ mock.Mock }

func (m *mockRelease) Execute(ctx context.Context, req *release_hold.Request) (*release_hold.Response, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*release_hold.Response)
	return resp, args.Error(1)
}

type mockMetrics struct{ mock.Mock }

func (m *mockMetrics) RecordOutcome(operation, outcome string) {
	m.Called(operation, outcome)
}

type fixture struct {
	availability *mockAvailability
	createHold   *mockCreateHold
	confirm      *mockConfirm
	release      *mockRelease
	metrics      *mockMetrics
	svc          *Service
}

func newFixture() *fixture {
	f := &fixture{
		availability: &mockAvailability{},
		createHold:   &mockCreateHold{},
		confirm:      &mockConfirm{},
		release:      &mockRelease{},
		metrics:      &mockMetrics{},
	}
	f.svc = NewService(f.availability, f.createHold, f.confirm, f.release, f.metrics, logger.NewNop())
	return f
}

func TestService_CreateHold_Outcomes(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2025, 10, 15, 9, 0, 0, 0, time.UTC)
	req := &create_hold.Request{ResourceID: "r", Start: start, End: start.Add(time.Hour)}

	tests := []struct {
		name    string
		err     error
		outcome string
	}{
		{"success", nil, OutcomeOK},
		{"conflict", domain.NewConflictError("r", domain.TimeRange{Start: start, End: start.Add(time.Hour)}), OutcomeConflict},
		{"invalid range", fmt.Errorf("%w: misaligned", domain.ErrInvalidRange), OutcomeInvalid},
		{"unknown resource", domain.ErrResourceNotFound, OutcomeNotFound},
		{"store", fmt.Errorf("%w: CreateHold: timeout", domain.ErrStoreUnavailable), OutcomeStoreUnavailable},
		{"cancelled", context.Canceled, OutcomeCancelled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			var resp *create_hold.Response
			if tt.err == nil {
				resp = &create_hold.Response{ID: "h1"}
			}
			f.createHold.On("Execute", ctx, req).Return(resp, tt.err).Once()
			f.metrics.On("RecordOutcome", OpCreateHold, tt.outcome).Once()

			got, err := f.svc.CreateHold(ctx, req)

			assert.Equal(t, tt.err, err, "errors are returned unchanged")
			assert.Equal(t, resp, got)
			f.createHold.AssertNumberOfCalls(t, "Execute", 1)
			f.metrics.AssertExpectations(t)
		})
	}
}

func TestService_CreateHold_ConflictKeepsRange(t *testing.T) {
	f := newFixture()
	start := time.Date(2025, 10, 15, 9, 0, 0, 0, time.UTC)
	conflict := domain.NewConflictError("r", domain.TimeRange{Start: start, End: start.Add(time.Hour)})

	f.createHold.On("Execute", mock.Anything, mock.Anything).Return(nil, conflict)
	f.metrics.On("RecordOutcome", mock.Anything, mock.Anything)

	_, err := f.svc.CreateHold(context.Background(), &create_hold.Request{})

	var ce *domain.ConflictError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, start, ce.Start)
}

func TestService_ConfirmBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("created", func(t *testing.T) {
		f := newFixture()
		resp := &confirm_booking.Response{Booking: &domain.Booking{ID: "b1"}, Created: true}
		f.confirm.On("Execute", ctx, mock.Anything).Return(resp, nil)
		f.metrics.On("RecordOutcome", OpConfirmBooking, OutcomeOK).Once()

		got, err := f.svc.ConfirmBooking(ctx, &confirm_booking.Request{HoldID: "h"})
		require.NoError(t, err)
		assert.Same(t, resp, got)
		f.metrics.AssertExpectations(t)
	})

	t.Run("replay", func(t *testing.T) {
		f := newFixture()
		f.confirm.On("Execute", ctx, mock.Anything).
			Return(&confirm_booking.Response{Booking: &domain.Booking{ID: "b1"}}, nil)
		f.metrics.On("RecordOutcome", OpConfirmBooking, OutcomeReplay).Once()

		_, err := f.svc.ConfirmBooking(ctx, &confirm_booking.Request{HoldID: "h"})
		require.NoError(t, err)
		f.metrics.AssertExpectations(t)
	})

	t.Run("expired", func(t *testing.T) {
		f := newFixture()
		f.confirm.On("Execute", ctx, mock.Anything).Return(nil, domain.ErrHoldExpired)
		f.metrics.On("RecordOutcome", OpConfirmBooking, OutcomeExpired).Once()

		_, err := f.svc.ConfirmBooking(ctx, &confirm_booking.Request{HoldID: "h"})
		assert.ErrorIs(t, err, domain.ErrHoldExpired)
		f.metrics.AssertExpectations(t)
	})

	t.Run("consumed", func(t *testing.T) {
		f := newFixture()
		f.confirm.On("Execute", ctx, mock.Anything).Return(nil, domain.ErrHoldAlreadyConsumed)
		f.metrics.On("RecordOutcome", OpConfirmBooking, OutcomeConsumed).Once()

		_, err := f.svc.ConfirmBooking(ctx, &confirm_booking.Request{HoldID: "h"})
		assert.ErrorIs(t, err, domain.ErrHoldAlreadyConsumed)
		f.metrics.AssertExpectations(t)
	})
}

func TestService_GetAvailabilityAndRelease(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	f.availability.On("Execute", ctx, mock.Anything).Return(&get_availability.Response{}, nil)
	f.release.On("Execute", ctx, mock.Anything).Return(nil, domain.ErrHoldNotFound)
	f.metrics.On("RecordOutcome", OpGetAvailability, OutcomeOK).Once()
	f.metrics.On("RecordOutcome", OpReleaseHold, OutcomeNotFound).Once()

	_, err := f.svc.GetAvailability(ctx, &get_availability.Request{})
	require.NoError(t, err)

	_, err = f.svc.ReleaseHold(ctx, &release_hold.Request{HoldID: "h"})
	assert.ErrorIs(t, err, domain.ErrHoldNotFound)

	f.metrics.AssertExpectations(t)
}

func TestService_NilMetrics(t *testing.T) {
	availability := &mockAvailability{}
	availability.On("Execute", mock.Anything, mock.Anything).Return(&get_availability.Response{}, nil)

	svc := NewService(availability, nil, nil, nil, nil, logger.NewNop())
	_, err := svc.GetAvailability(context.Background(), &get_availability.Request{})
	assert.NoError(t, err)
}

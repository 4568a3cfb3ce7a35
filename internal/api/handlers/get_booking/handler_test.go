package get_booking

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/service/bookings"
	"github.com/m04kA/SMC-ReservationService/internal/service/bookings/models"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) GetByID(ctx context.Context, bookingID string) (*models.BookingResponse, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BookingResponse), args.Error(1)
}

func request(id string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/"+id, nil)
	return mux.SetURLVars(req, map[string]string{"bookingId": id})
}

func TestHandle_Found(t *testing.T) {
	svc := &mockService{}
	svc.On("GetByID", mock.Anything, "b-1").Return(&models.BookingResponse{
		ID: "b-1", ResourceID: "r-1", Status: "pending", Start: "2025-10-15T09:00:00Z", End: "2025-10-15T10:00:00Z",
	}, nil)

	rec := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(rec, request("b-1"))

	require.Equal(t, http.StatusOK, rec.Code)
	var got models.BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "b-1", got.ID)
	assert.Equal(t, "2025-10-15T09:00:00Z", got.Start)
	svc.AssertExpectations(t)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not found", bookings.ErrBookingNotFound, http.StatusNotFound, handlers.CodeBookingNotFound},
		{"malformed id", bookings.ErrInvalidInput, http.StatusBadRequest, handlers.CodeInvalidRequest},
		{"store down", bookings.ErrStoreUnavailable, http.StatusServiceUnavailable, handlers.CodeStoreUnavailable},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, handlers.CodeInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockService{}
			svc.On("GetByID", mock.Anything, "b-1").Return(nil, tt.err)

			rec := httptest.NewRecorder()
			NewHandler(svc, logger.NewNop()).Handle(rec, request("b-1"))

			assert.Equal(t, tt.status, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.code)
			svc.AssertExpectations(t)
		})
	}
}

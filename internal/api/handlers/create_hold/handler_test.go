package create_hold

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	createHold "github.com/m04kA/SMC-ReservationService/internal/usecase/create_hold"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) CreateHold(ctx context.Context, req *createHold.Request) (*createHold.Response, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*createHold.Response)
	return resp, args.Error(1)
}

const (
	resourceID = "5b0f3b0e-8d5e-4a57-9c38-2f0b0e6a1c11"
	body       = `{"resource_id":"5b0f3b0e-8d5e-4a57-9c38-2f0b0e6a1c11","start_t":"2025-10-15T09:00:00Z","end_t":"2025-10-15T10:00:00Z"}`
)

var (
	start = time.Date(2025, 10, 15, 9, 0, 0, 0, time.UTC)
	end   = start.Add(time.Hour)
)

func serve(t *testing.T, svc *mockService, payload string) *httptest.ResponseRecorder {
	t.Helper()
	h := NewHandler(svc, logger.NewNop())
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/holds", strings.NewReader(payload)))
	return rec
}

func TestHandle_Created(t *testing.T) {
	svc := &mockService{}
	svc.On("CreateHold", mock.Anything, &createHold.Request{ResourceID: resourceID, Start: start, End: end}).
		Return(&createHold.Response{
			ID:         "h-1",
			ResourceID: resourceID,
			Start:      start,
			End:        end,
			ExpiresAt:  start.Add(-time.Hour).Add(15 * time.Minute),
			Status:     domain.HoldStatusActive,
		}, nil)

	rec := serve(t, svc, body)

	require.Equal(t, http.StatusCreated, rec.Code)
	var got CreateHoldResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "h-1", got.Hold.ID)
	assert.Equal(t, "2025-10-15T09:00:00Z", got.Hold.Start)
	assert.Equal(t, "2025-10-15T08:15:00Z", got.Hold.ExpiresAt)
	assert.Equal(t, "active", got.Hold.Status)
	svc.AssertExpectations(t)
}

func TestHandle_ConflictCarriesRange(t *testing.T) {
	svc := &mockService{}
	blocking := domain.TimeRange{Start: start.Add(-30 * time.Minute), End: start.Add(30 * time.Minute)}
	svc.On("CreateHold", mock.Anything, mock.Anything).
		Return(nil, domain.NewConflictError(resourceID, blocking))

	rec := serve(t, svc, body)

	require.Equal(t, http.StatusConflict, rec.Code)
	var got handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, handlers.CodeConflict, got.Code)
	require.NotNil(t, got.Conflict)
	assert.Equal(t, "2025-10-15T08:30:00Z", got.Conflict.Start)
	assert.Equal(t, "2025-10-15T09:30:00Z", got.Conflict.End)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"resource not found", domain.ErrResourceNotFound, http.StatusNotFound, handlers.CodeResourceNotFound},
		{"invalid range", fmt.Errorf("%w: not a slot", domain.ErrInvalidRange), http.StatusBadRequest, handlers.CodeInvalidRange},
		{"invalid input", fmt.Errorf("%w: resource_id", domain.ErrInvalidInput), http.StatusBadRequest, handlers.CodeInvalidRequest},
		{"store unavailable", domain.AsStoreError("CreateHold", fmt.Errorf("dial tcp")), http.StatusServiceUnavailable, handlers.CodeStoreUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockService{}
			svc.On("CreateHold", mock.Anything, mock.Anything).Return(nil, tt.err)

			rec := serve(t, svc, body)

			assert.Equal(t, tt.status, rec.Code)
			var got handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
			assert.Equal(t, tt.code, got.Code)
		})
	}
}

func TestHandle_BadPayload(t *testing.T) {
	tests := map[string]string{
		"not json":          "{",
		"unknown field":     `{"resource_id":"x","slot":1}`,
		"invalid timestamp": `{"resource_id":"x","start_t":"tomorrow","end_t":"2025-10-15T10:00:00Z"}`,
	}

	for name, payload := range tests {
		t.Run(name, func(t *testing.T) {
			svc := &mockService{}
			rec := serve(t, svc, payload)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			svc.AssertNotCalled(t, "CreateHold", mock.Anything, mock.Anything)
		})
	}
}

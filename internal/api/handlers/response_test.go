package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondConflict(t *testing.T) {
	rec := httptest.NewRecorder()
	start := time.Date(2025, 10, 15, 11, 0, 0, 0, time.FixedZone("MSK", 3*3600))

	RespondConflict(rec, "занято", start, start.Add(time.Hour))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, CodeConflict, body.Code)
	require.NotNil(t, body.Conflict)
	assert.Equal(t, "2025-10-15T08:00:00Z", body.Conflict.Start)
	assert.Equal(t, "2025-10-15T09:00:00Z", body.Conflict.End)
}

func TestRespondStoreUnavailable(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondStoreUnavailable(rec)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
	assert.Contains(t, rec.Body.String(), `"code":"store_unavailable"`)
}

func TestRespondJSON_NilBody(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondJSON(rec, http.StatusNoContent, nil)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"valid", `{"name":"x"}`, false},
		{"unknown field", `{"name":"x","extra":1}`, true},
		{"trailing data", `{"name":"x"}{"name":"y"}`, true},
		{"malformed", `{"name":`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var p payload
			err := DecodeJSON(r, &p)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "x", p.Name)
		})
	}
}

func TestParseTimestamp(t *testing.T) {
	got, err := ParseTimestamp("2025-10-15T12:00:00+03:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 10, 15, 9, 0, 0, 0, time.UTC), got)

	_, err = ParseTimestamp("2025-10-15 12:00")
	assert.Error(t, err)
}

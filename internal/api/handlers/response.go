package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Машинные коды ошибок в теле ответа
const (
	CodeInvalidRequest      = "invalid_request"
	CodeInvalidRange        = "invalid_range"
	CodeUnauthorized        = "unauthorized"
	CodeNotFound            = "not_found"
	CodeResourceNotFound    = "resource_not_found"
	CodeHoldNotFound        = "hold_not_found"
	CodeBookingNotFound     = "booking_not_found"
	CodeConflict            = "conflict"
	CodeHoldExpired         = "hold_expired"
	CodeHoldAlreadyConsumed = "hold_already_consumed"
	CodeCannotCancel        = "cannot_cancel"
	CodeCannotConfirm       = "cannot_confirm"
	CodeRateLimited         = "rate_limited"
	CodeStoreUnavailable    = "store_unavailable"
	CodeInternalError       = "internal_error"
)

const (
	msgInternalError    = "внутренняя ошибка сервера"
	msgStoreUnavailable = "хранилище временно недоступно, повторите запрос"
)

// maxBodyBytes ограничение размера тела запроса
const maxBodyBytes = 1 << 20

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Code     string         `json:"code"`
	Message  string         `json:"message"`
	Conflict *ConflictRange `json:"conflict,omitempty"`
}

// ConflictRange занятый интервал, из-за которого отклонен холд
type ConflictRange struct {
	Start string `json:"start_t"`
	End   string `json:"end_t"`
}

// RespondJSON отправляет JSON ответ. data == nil означает пустое тело.
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	if data == nil {
		w.WriteHeader(status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// RespondError отправляет ошибку в формате {"code", "message"}
func RespondError(w http.ResponseWriter, status int, code, message string) {
	RespondJSON(w, status, ErrorResponse{Code: code, Message: message})
}

// RespondBadRequest 400
func RespondBadRequest(w http.ResponseWriter, code, message string) {
	RespondError(w, http.StatusBadRequest, code, message)
}

// RespondUnauthorized 401
func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, CodeUnauthorized, message)
}

// RespondNotFound 404
func RespondNotFound(w http.ResponseWriter, code, message string) {
	RespondError(w, http.StatusNotFound, code, message)
}

// RespondConflict 409 с занятым интервалом
func RespondConflict(w http.ResponseWriter, message string, start, end time.Time) {
	RespondJSON(w, http.StatusConflict, ErrorResponse{
		Code:    CodeConflict,
		Message: message,
		Conflict: &ConflictRange{
			Start: start.UTC().Format(time.RFC3339),
			End:   end.UTC().Format(time.RFC3339),
		},
	})
}

// RespondStoreUnavailable 503 с Retry-After
func RespondStoreUnavailable(w http.ResponseWriter) {
	w.Header().Set("Retry-After", "1")
	RespondError(w, http.StatusServiceUnavailable, CodeStoreUnavailable, msgStoreUnavailable)
}

// RespondInternalError 500
func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, CodeInternalError, msgInternalError)
}

// DecodeJSON декодирует тело запроса. Неизвестные поля и лишние данные после объекта отклоняются.
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return errors.New("empty request body")
	}

	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode json: %w", err)
	}
	if dec.More() {
		return errors.New("unexpected data after JSON object")
	}
	return nil
}

// ParseTimestamp разбирает RFC 3339 время и приводит его к UTC
func ParseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// FormatTimestamp форматирует время в RFC 3339 UTC
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

package reservation

import (
	"context"
	"errors"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// Результаты операций для метрик
const (
	OutcomeOK               = "ok"
	OutcomeReplay           = "replay"
	OutcomeConflict         = "conflict"
	OutcomeInvalid          = "invalid"
	OutcomeNotFound         = "not_found"
	OutcomeExpired          = "expired"
	OutcomeConsumed         = "consumed"
	OutcomeStoreUnavailable = "store_unavailable"
	OutcomeCancelled        = "cancelled"
)

// Operation имена операций для метрик
const (
	OpGetAvailability = "get_availability"
	OpCreateHold      = "create_hold"
	OpConfirmBooking  = "confirm_booking"
	OpReleaseHold     = "release_hold"
)

// outcomeOf классифицирует ошибку операции
func outcomeOf(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, domain.ErrConflict):
		return OutcomeConflict
	case errors.Is(err, domain.ErrInvalidRange), errors.Is(err, domain.ErrInvalidInput):
		return OutcomeInvalid
	case errors.Is(err, domain.ErrResourceNotFound), errors.Is(err, domain.ErrHoldNotFound):
		return OutcomeNotFound
	case errors.Is(err, domain.ErrHoldExpired):
		return OutcomeExpired
	case errors.Is(err, domain.ErrHoldAlreadyConsumed):
		return OutcomeConsumed
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return OutcomeCancelled
	default:
		return OutcomeStoreUnavailable
	}
}

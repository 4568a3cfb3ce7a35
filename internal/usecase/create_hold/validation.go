package create_hold

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if _, err := uuid.Parse(req.ResourceID); err != nil {
		return fmt.Errorf("%w: resource_id must be a UUID", ErrInvalidInput)
	}

	if req.Start.IsZero() || req.End.IsZero() {
		return fmt.Errorf("%w: start_t and end_t are required", ErrInvalidInput)
	}

	if !req.End.After(req.Start) {
		return fmt.Errorf("%w: end_t must be after start_t", ErrInvalidRange)
	}

	return nil
}

// validateSlot проверяет, что интервал совпадает с одним из слотов ресурса и ещё не начался
func validateSlot(resource *domain.Resource, start, end, now time.Time) error {
	ok, err := resource.IsCandidateSlot(start, end)
	if err != nil {
		return fmt.Errorf("%w: resource calendar: %v", ErrInvalidRange, err)
	}
	if !ok {
		return fmt.Errorf("%w: [%s, %s) is not a slot of resource %s", ErrInvalidRange,
			start.UTC().Format(time.RFC3339), end.UTC().Format(time.RFC3339), resource.ID)
	}

	if start.Before(now) {
		return fmt.Errorf("%w: slot already started", ErrInvalidRange)
	}

	return nil
}

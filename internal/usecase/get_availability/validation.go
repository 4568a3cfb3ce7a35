package get_availability

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, maxRange time.Duration) error {
	if _, err := uuid.Parse(req.ResourceID); err != nil {
		return fmt.Errorf("%w: resource_id must be a UUID", ErrInvalidInput)
	}

	if req.From.IsZero() || req.To.IsZero() {
		return fmt.Errorf("%w: from and to are required", ErrInvalidRange)
	}

	if !req.To.After(req.From) {
		return fmt.Errorf("%w: to must be after from", ErrInvalidRange)
	}

	// Если maxRange = 0, ограничения нет
	if maxRange > 0 && req.To.Sub(req.From) > maxRange {
		return fmt.Errorf("%w: range must not exceed %s", ErrInvalidRange, maxRange)
	}

	return nil
}

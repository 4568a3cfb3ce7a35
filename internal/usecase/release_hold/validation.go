package release_hold

import (
	"fmt"

	"github.com/google/uuid"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if _, err := uuid.Parse(req.HoldID); err != nil {
		return fmt.Errorf("%w: hold_id must be a UUID", ErrInvalidInput)
	}
	return nil
}

package release_hold

import "github.com/m04kA/SMC-ReservationService/internal/domain"

var (
	// ErrHoldNotFound возвращается, когда холд не найден
	ErrHoldNotFound = domain.ErrHoldNotFound

	// ErrHoldAlreadyConsumed возвращается, когда по холду уже создано бронирование
	ErrHoldAlreadyConsumed = domain.ErrHoldAlreadyConsumed

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = domain.ErrInvalidInput

	// ErrStoreUnavailable возвращается при недоступности хранилища
	ErrStoreUnavailable = domain.ErrStoreUnavailable
)

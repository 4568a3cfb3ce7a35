package confirm_booking

import "github.com/m04kA/SMC-ReservationService/internal/domain"

var (
	// ErrHoldNotFound возвращается, когда холд не найден
	ErrHoldNotFound = domain.ErrHoldNotFound

	// ErrHoldExpired возвращается, когда TTL холда истек
	ErrHoldExpired = domain.ErrHoldExpired

	// ErrHoldAlreadyConsumed возвращается, когда по холду уже создано бронирование другого клиента
	ErrHoldAlreadyConsumed = domain.ErrHoldAlreadyConsumed

	// ErrConflict возвращается, если интервал холда занят бронированием
	ErrConflict = domain.ErrConflict

	// ErrInvalidInput возвращается при некорректных данных клиента
	ErrInvalidInput = domain.ErrInvalidInput

	// ErrStoreUnavailable возвращается при недоступности хранилища
	ErrStoreUnavailable = domain.ErrStoreUnavailable
)

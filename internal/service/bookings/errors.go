package bookings

import "github.com/m04kA/SMC-ReservationService/internal/domain"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = domain.ErrBookingNotFound

	// ErrCannotCancel возвращается, когда бронирование не может быть отменено
	ErrCannotCancel = domain.ErrCannotCancel

	// ErrCannotConfirm возвращается, когда бронирование не в статусе pending
	ErrCannotConfirm = domain.ErrCannotConfirm

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = domain.ErrInvalidInput

	// ErrStoreUnavailable возвращается при внутренних ошибках хранилища
	ErrStoreUnavailable = domain.ErrStoreUnavailable
)

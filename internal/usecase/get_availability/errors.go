package get_availability

import "github.com/m04kA/SMC-ReservationService/internal/domain"

var (
	// ErrResourceNotFound возвращается, когда ресурс не найден
	ErrResourceNotFound = domain.ErrResourceNotFound

	// ErrInvalidRange возвращается, когда to <= from или диапазон превышает допустимый
	ErrInvalidRange = domain.ErrInvalidRange

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = domain.ErrInvalidInput

	// ErrStoreUnavailable возвращается при недоступности хранилища
	ErrStoreUnavailable = domain.ErrStoreUnavailable
)

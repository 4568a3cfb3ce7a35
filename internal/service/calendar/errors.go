package calendar

import "github.com/m04kA/SMC-ReservationService/internal/domain"

var (
	// ErrResourceNotFound возвращается, когда ресурс не найден
	ErrResourceNotFound = domain.ErrResourceNotFound

	// ErrInvalidInput возвращается при некорректном описании ресурса
	ErrInvalidInput = domain.ErrInvalidInput

	// ErrStoreUnavailable возвращается при недоступности хранилища
	ErrStoreUnavailable = domain.ErrStoreUnavailable
)

package create_hold

import "github.com/m04kA/SMC-ReservationService/internal/domain"

var (
	// ErrResourceNotFound возвращается, когда ресурс не найден
	ErrResourceNotFound = domain.ErrResourceNotFound

	// ErrInvalidRange возвращается, когда интервал не является слотом ресурса или уже в прошлом
	ErrInvalidRange = domain.ErrInvalidRange

	// ErrConflict возвращается, когда интервал пересекается с холдом или бронированием.
	// Конкретный интервал доступен через *domain.ConflictError.
	ErrConflict = domain.ErrConflict

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = domain.ErrInvalidInput

	// ErrStoreUnavailable возвращается при недоступности хранилища
	ErrStoreUnavailable = domain.ErrStoreUnavailable
)

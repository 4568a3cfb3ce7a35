package sweep_holds

import "github.com/m04kA/SMC-ReservationService/internal/domain"

var (
	// ErrStoreUnavailable возвращается при недоступности хранилища
	ErrStoreUnavailable = domain.ErrStoreUnavailable
)

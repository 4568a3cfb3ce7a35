package get_availability

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// Request модель запроса свободных слотов
type Request struct {
	ResourceID string    // ID ресурса
	From       time.Time // Начало диапазона (включительно)
	To         time.Time // Конец диапазона (не включительно)
}

// Response модель ответа со свободными слотами
type Response struct {
	Resource *domain.Resource // Ресурс, для которого считались слоты
	Slots    []domain.Slot    // Свободные слоты, упорядоченные по началу
}

package create_hold

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// Request модель запроса на создание холда
type Request struct {
	ResourceID string    // ID ресурса
	Start      time.Time // Начало слота
	End        time.Time // Конец слота
}

// Response модель ответа с созданным холдом
type Response struct {
	ID         string            // ID холда
	ResourceID string            // ID ресурса
	Start      time.Time         // Начало слота
	End        time.Time         // Конец слота
	ExpiresAt  time.Time         // Момент истечения TTL
	Status     domain.HoldStatus // Статус (active)
	CreatedAt  time.Time
}

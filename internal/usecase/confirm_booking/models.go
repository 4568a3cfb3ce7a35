package confirm_booking

import "github.com/m04kA/SMC-ReservationService/internal/domain"

// Request модель запроса на подтверждение холда
type Request struct {
	HoldID   string              // ID холда
	UserID   int64               // ID пользователя из X-User-ID (для логов)
	Customer domain.CustomerInfo // Данные клиента
}

// Response результат подтверждения
type Response struct {
	Booking *domain.Booking // Бронирование (новое или ранее созданное по этому холду)
	Created bool            // false при повторном подтверждении тем же клиентом
}

// customerInput данные клиента в виде, пригодном для validator
type customerInput struct {
	Name        string   `validate:"required,max=200"`
	Email       string   `validate:"required,email,max=254"`
	Phone       *string  `validate:"omitempty,max=32"`
	Notes       *string  `validate:"omitempty,max=500"`
	TotalAmount *float64 `validate:"omitempty,gte=0"`
}

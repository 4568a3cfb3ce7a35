package confirm_hold

import (
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/bookings/models"
	confirmBooking "github.com/m04kA/SMC-ReservationService/internal/usecase/confirm_booking"
)

// ConfirmHoldRequest тело запроса с данными клиента
type ConfirmHoldRequest struct {
	CustomerName  string   `json:"customer_name"`
	CustomerEmail string   `json:"customer_email"`
	CustomerPhone *string  `json:"customer_phone,omitempty"`
	Notes         *string  `json:"notes,omitempty"`
	TotalAmount   *float64 `json:"total_amount,omitempty"`
}

// ConfirmHoldResponse HTTP ответ
type ConfirmHoldResponse struct {
	Booking *models.BookingResponse `json:"booking"`
}

// ToUseCaseRequest формирует запрос к use case
func (r *ConfirmHoldRequest) ToUseCaseRequest(holdID string, userID int64) *confirmBooking.Request {
	return &confirmBooking.Request{
		HoldID: holdID,
		UserID: userID,
		Customer: domain.CustomerInfo{
			Name:        r.CustomerName,
			Email:       r.CustomerEmail,
			Phone:       r.CustomerPhone,
			Notes:       r.Notes,
			TotalAmount: r.TotalAmount,
		},
	}
}

package confirm_hold

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/bookings/models"
)

const (
	msgUnauthorized    = "требуется авторизация"
	msgInvalidBody     = "некорректное тело запроса"
	msgHoldNotFound    = "холд не найден"
	msgHoldExpired     = "срок действия холда истек"
	msgHoldConsumed    = "холд уже использован"
	msgBookingConflict = "интервал уже занят другим бронированием"
)

type Handler struct {
	service ConfirmService
	logger  Logger
}

func NewHandler(service ConfirmService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/holds/{holdId}/confirm
// 201 для нового бронирования, 200 для повторного подтверждения тем же клиентом
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /holds/{id}/confirm - Unauthorized access attempt")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	holdID := mux.Vars(r)["holdId"]

	var body ConfirmHoldRequest
	if err := handlers.DecodeJSON(r, &body); err != nil {
		h.logger.Warn("POST /holds/{id}/confirm - Invalid request body: hold_id=%s, error=%v", holdID, err)
		handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, msgInvalidBody)
		return
	}

	result, err := h.service.ConfirmBooking(r.Context(), body.ToUseCaseRequest(holdID, userID))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrHoldNotFound):
			h.logger.Warn("POST /holds/{id}/confirm - Hold not found: hold_id=%s", holdID)
			handlers.RespondNotFound(w, handlers.CodeHoldNotFound, msgHoldNotFound)

		case errors.Is(err, domain.ErrHoldExpired):
			h.logger.Warn("POST /holds/{id}/confirm - Hold expired: hold_id=%s", holdID)
			handlers.RespondError(w, http.StatusGone, handlers.CodeHoldExpired, msgHoldExpired)

		case errors.Is(err, domain.ErrHoldAlreadyConsumed):
			h.logger.Warn("POST /holds/{id}/confirm - Hold already consumed: hold_id=%s, user_id=%d", holdID, userID)
			handlers.RespondError(w, http.StatusConflict, handlers.CodeHoldAlreadyConsumed, msgHoldConsumed)

		case errors.Is(err, domain.ErrConflict):
			h.logger.Warn("POST /holds/{id}/confirm - Booking conflict: hold_id=%s", holdID)
			handlers.RespondError(w, http.StatusConflict, handlers.CodeConflict, msgBookingConflict)

		case errors.Is(err, domain.ErrInvalidInput):
			handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, err.Error())

		case errors.Is(err, domain.ErrStoreUnavailable):
			h.logger.Error("POST /holds/{id}/confirm - Store unavailable: hold_id=%s, error=%v", holdID, err)
			handlers.RespondStoreUnavailable(w)

		default:
			h.logger.Error("POST /holds/{id}/confirm - Failed to confirm hold: hold_id=%s, error=%v", holdID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	status := http.StatusCreated
	if !result.Created {
		status = http.StatusOK
	}

	h.logger.Info("POST /holds/{id}/confirm - Hold confirmed: hold_id=%s, booking_id=%s, created=%t, user_id=%d",
		holdID, result.Booking.ID, result.Created, userID)
	handlers.RespondJSON(w, status, ConfirmHoldResponse{Booking: models.FromDomainBooking(result.Booking)})
}

package release_hold

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	releaseHold "github.com/m04kA/SMC-ReservationService/internal/usecase/release_hold"
)

const (
	msgUnauthorized = "требуется авторизация"
	msgHoldNotFound = "холд не найден"
	msgHoldConsumed = "холд уже использован, отмените бронирование"
)

type Handler struct {
	service ReleaseService
	logger  Logger
}

func NewHandler(service ReleaseService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/holds/{holdId}
// Освобождение истекшего холда тоже отвечает 204
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /holds/{id} - Unauthorized access attempt")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	holdID := mux.Vars(r)["holdId"]

	result, err := h.service.ReleaseHold(r.Context(), &releaseHold.Request{HoldID: holdID, UserID: userID})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrHoldNotFound):
			h.logger.Warn("DELETE /holds/{id} - Hold not found: hold_id=%s", holdID)
			handlers.RespondNotFound(w, handlers.CodeHoldNotFound, msgHoldNotFound)

		case errors.Is(err, domain.ErrHoldAlreadyConsumed):
			h.logger.Warn("DELETE /holds/{id} - Hold already consumed: hold_id=%s", holdID)
			handlers.RespondError(w, http.StatusConflict, handlers.CodeHoldAlreadyConsumed, msgHoldConsumed)

		case errors.Is(err, domain.ErrInvalidInput):
			handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, err.Error())

		case errors.Is(err, domain.ErrStoreUnavailable):
			h.logger.Error("DELETE /holds/{id} - Store unavailable: hold_id=%s, error=%v", holdID, err)
			handlers.RespondStoreUnavailable(w)

		default:
			h.logger.Error("DELETE /holds/{id} - Failed to release hold: hold_id=%s, error=%v", holdID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /holds/{id} - Hold released: hold_id=%s, released=%t, user_id=%d", holdID, result.Released, userID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

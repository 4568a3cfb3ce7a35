package create_hold

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

const (
	msgInvalidBody      = "некорректное тело запроса"
	msgInvalidTimestamp = "некорректный формат времени, ожидается RFC 3339"
	msgResourceNotFound = "ресурс не найден"
	msgConflict         = "выбранный интервал уже занят"
)

type Handler struct {
	service HoldService
	logger  Logger
}

func NewHandler(service HoldService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/holds
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var body CreateHoldRequest
	if err := handlers.DecodeJSON(r, &body); err != nil {
		h.logger.Warn("POST /holds - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, msgInvalidBody)
		return
	}

	req, err := body.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /holds - Invalid timestamp: %v", err)
		handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, msgInvalidTimestamp)
		return
	}

	result, err := h.service.CreateHold(r.Context(), req)
	if err != nil {
		var conflict *domain.ConflictError
		switch {
		case errors.As(err, &conflict):
			h.logger.Warn("POST /holds - Conflict: resource_id=%s, blocking=%s..%s",
				body.ResourceID, handlers.FormatTimestamp(conflict.Start), handlers.FormatTimestamp(conflict.End))
			handlers.RespondConflict(w, msgConflict, conflict.Start, conflict.End)

		case errors.Is(err, domain.ErrConflict):
			handlers.RespondError(w, http.StatusConflict, handlers.CodeConflict, msgConflict)

		case errors.Is(err, domain.ErrResourceNotFound):
			h.logger.Warn("POST /holds - Resource not found: resource_id=%s", body.ResourceID)
			handlers.RespondNotFound(w, handlers.CodeResourceNotFound, msgResourceNotFound)

		case errors.Is(err, domain.ErrInvalidRange):
			handlers.RespondBadRequest(w, handlers.CodeInvalidRange, err.Error())

		case errors.Is(err, domain.ErrInvalidInput):
			handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, err.Error())

		case errors.Is(err, domain.ErrStoreUnavailable):
			h.logger.Error("POST /holds - Store unavailable: resource_id=%s, error=%v", body.ResourceID, err)
			handlers.RespondStoreUnavailable(w)

		default:
			h.logger.Error("POST /holds - Failed to create hold: resource_id=%s, error=%v", body.ResourceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /holds - Hold created: hold_id=%s, resource_id=%s", result.ID, result.ResourceID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

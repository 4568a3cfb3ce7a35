package get_availability

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	getAvailability "github.com/m04kA/SMC-ReservationService/internal/usecase/get_availability"
)

const (
	msgMissingRange     = "параметры from и to обязательны"
	msgInvalidTimestamp = "некорректный формат времени, ожидается RFC 3339"
	msgResourceNotFound = "ресурс не найден"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/resources/{resourceId}/availability
// Query params: from, to (required, RFC 3339)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	resourceID := mux.Vars(r)["resourceId"]

	fromStr := r.URL.Query().Get("from")
	toStr := r.URL.Query().Get("to")
	if fromStr == "" || toStr == "" {
		h.logger.Warn("GET /resources/{id}/availability - Missing range: resource_id=%s", resourceID)
		handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, msgMissingRange)
		return
	}

	from, err := handlers.ParseTimestamp(fromStr)
	if err != nil {
		h.logger.Warn("GET /resources/{id}/availability - Invalid from: %v", err)
		handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, msgInvalidTimestamp)
		return
	}
	to, err := handlers.ParseTimestamp(toStr)
	if err != nil {
		h.logger.Warn("GET /resources/{id}/availability - Invalid to: %v", err)
		handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, msgInvalidTimestamp)
		return
	}

	result, err := h.service.GetAvailability(r.Context(), &getAvailability.Request{
		ResourceID: resourceID,
		From:       from,
		To:         to,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrResourceNotFound):
			h.logger.Warn("GET /resources/{id}/availability - Resource not found: resource_id=%s", resourceID)
			handlers.RespondNotFound(w, handlers.CodeResourceNotFound, msgResourceNotFound)

		case errors.Is(err, domain.ErrInvalidRange):
			handlers.RespondBadRequest(w, handlers.CodeInvalidRange, err.Error())

		case errors.Is(err, domain.ErrInvalidInput):
			handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, err.Error())

		case errors.Is(err, domain.ErrStoreUnavailable):
			h.logger.Error("GET /resources/{id}/availability - Store unavailable: resource_id=%s, error=%v", resourceID, err)
			handlers.RespondStoreUnavailable(w)

		default:
			h.logger.Error("GET /resources/{id}/availability - Failed to get slots: resource_id=%s, error=%v", resourceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /resources/{id}/availability - Slots retrieved: resource_id=%s, slots_count=%d", resourceID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

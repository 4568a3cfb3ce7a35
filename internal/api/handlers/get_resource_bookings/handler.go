package get_resource_bookings

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/service/bookings"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/resources/{resourceId}/bookings
// Query params: from, to (RFC 3339), status, includeCancelled
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	resourceID := mux.Vars(r)["resourceId"]

	req, err := ToServiceRequest(resourceID, r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /resources/{id}/bookings - Invalid query params: %v", err)
		handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, err.Error())
		return
	}

	result, err := h.service.ListByResource(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, err.Error())

		case errors.Is(err, bookings.ErrStoreUnavailable):
			h.logger.Error("GET /resources/{id}/bookings - Store unavailable: resource_id=%s, error=%v", resourceID, err)
			handlers.RespondStoreUnavailable(w)

		default:
			h.logger.Error("GET /resources/{id}/bookings - Failed to list bookings: resource_id=%s, error=%v", resourceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /resources/{id}/bookings - Bookings retrieved: resource_id=%s, count=%d", resourceID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}

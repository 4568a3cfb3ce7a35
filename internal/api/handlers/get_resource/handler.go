package get_resource

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

const msgResourceNotFound = "ресурс не найден"

type Handler struct {
	service CalendarService
	logger  Logger
}

func NewHandler(service CalendarService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/resources/{resourceId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	resourceID := mux.Vars(r)["resourceId"]

	resource, err := h.service.GetResource(r.Context(), resourceID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrResourceNotFound):
			h.logger.Warn("GET /resources/{id} - Resource not found: resource_id=%s", resourceID)
			handlers.RespondNotFound(w, handlers.CodeResourceNotFound, msgResourceNotFound)

		case errors.Is(err, domain.ErrInvalidInput):
			handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, err.Error())

		case errors.Is(err, domain.ErrStoreUnavailable):
			h.logger.Error("GET /resources/{id} - Store unavailable: resource_id=%s, error=%v", resourceID, err)
			handlers.RespondStoreUnavailable(w)

		default:
			h.logger.Error("GET /resources/{id} - Failed to get resource: resource_id=%s, error=%v", resourceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /resources/{id} - Resource retrieved: resource_id=%s", resourceID)
	handlers.RespondJSON(w, http.StatusOK, FromDomain(resource))
}

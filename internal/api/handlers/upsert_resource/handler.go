package upsert_resource

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_resource"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

const (
	msgUnauthorized = "требуется авторизация"
	msgInvalidBody  = "некорректное тело запроса"
)

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

// Handle PUT /api/v1/resources/{resourceId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /resources/{id} - Unauthorized access attempt")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	resourceID := mux.Vars(r)["resourceId"]

	var body UpsertResourceRequest
	if err := handlers.DecodeJSON(r, &body); err != nil {
		h.logger.Warn("PUT /resources/{id} - Invalid request body: resource_id=%s, error=%v", resourceID, err)
		handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, msgInvalidBody)
		return
	}

	resource, err := body.ToDomain(resourceID)
	if err != nil {
		h.logger.Warn("PUT /resources/{id} - Invalid working hours: resource_id=%s, error=%v", resourceID, err)
		handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, err.Error())
		return
	}

	saved, err := h.service.UpsertResource(r.Context(), resource)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, err.Error())

		case errors.Is(err, domain.ErrStoreUnavailable):
			h.logger.Error("PUT /resources/{id} - Store unavailable: resource_id=%s, error=%v", resourceID, err)
			handlers.RespondStoreUnavailable(w)

		default:
			h.logger.Error("PUT /resources/{id} - Failed to save resource: resource_id=%s, error=%v", resourceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /resources/{id} - Resource saved: resource_id=%s, user_id=%d", saved.ID, userID)
	handlers.RespondJSON(w, http.StatusOK, get_resource.FromDomain(saved))
}

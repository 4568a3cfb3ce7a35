package get_resource_bookings

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
func ToServiceRequest(resourceID string, query url.Values) (*models.ListResourceBookingsRequest, error) {
	req := &models.ListResourceBookingsRequest{
		ResourceID:       resourceID,
		IncludeCancelled: false, // По умолчанию только активные
	}

	if fromStr := query.Get("from"); fromStr != "" {
		from, err := handlers.ParseTimestamp(fromStr)
		if err != nil {
			return nil, fmt.Errorf("invalid from value: %w", err)
		}
		req.From = &from
	}

	if toStr := query.Get("to"); toStr != "" {
		to, err := handlers.ParseTimestamp(toStr)
		if err != nil {
			return nil, fmt.Errorf("invalid to value: %w", err)
		}
		req.To = &to
	}

	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	if includeStr := query.Get("includeCancelled"); includeStr != "" {
		include, err := strconv.ParseBool(includeStr)
		if err != nil {
			return nil, fmt.Errorf("invalid includeCancelled value: %w", err)
		}
		req.IncludeCancelled = include
	}

	return req, nil
}

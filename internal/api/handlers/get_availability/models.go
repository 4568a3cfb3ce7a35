package get_availability

import (
	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	getAvailability "github.com/m04kA/SMC-ReservationService/internal/usecase/get_availability"
)

// SlotResponse свободный слот
type SlotResponse struct {
	Start string `json:"start_t"`
	End   string `json:"end_t"`
}

// ResourceSummary краткое описание ресурса
type ResourceSummary struct {
	ID                     string `json:"id"`
	Name                   string `json:"name"`
	Timezone               string `json:"timezone"`
	DurationMinutes        int    `json:"duration_minutes"`
	SlotGranularityMinutes int    `json:"slot_granularity_minutes"`
}

// AvailabilityResponse HTTP ответ со свободными слотами
type AvailabilityResponse struct {
	Resource ResourceSummary `json:"resource"`
	Slots    []SlotResponse  `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP ответ
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	out := &AvailabilityResponse{
		Slots: make([]SlotResponse, 0, len(resp.Slots)),
	}

	if r := resp.Resource; r != nil {
		out.Resource = ResourceSummary{
			ID:                     r.ID,
			Name:                   r.Name,
			Timezone:               r.Timezone,
			DurationMinutes:        r.DurationMinutes,
			SlotGranularityMinutes: r.SlotGranularityMinutes,
		}
	}

	for _, s := range resp.Slots {
		out.Slots = append(out.Slots, SlotResponse{
			Start: handlers.FormatTimestamp(s.Start),
			End:   handlers.FormatTimestamp(s.End),
		})
	}

	return out
}

package get_resource

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// WorkingWindowResponse рабочий интервал дня недели (0 = воскресенье)
type WorkingWindowResponse struct {
	Weekday int    `json:"weekday"`
	Open    string `json:"open"`
	Close   string `json:"close"`
}

// ResourceResponse ресурс с рабочими часами
type ResourceResponse struct {
	ID                     string                  `json:"id"`
	Name                   string                  `json:"name"`
	DurationMinutes        int                     `json:"duration_minutes"`
	SlotGranularityMinutes int                     `json:"slot_granularity_minutes"`
	Timezone               string                  `json:"timezone"`
	WorkingHours           []WorkingWindowResponse `json:"working_hours"`
	CreatedAt              time.Time               `json:"created_at"`
	UpdatedAt              time.Time               `json:"updated_at"`
}

// FromDomain конвертирует domain.Resource в HTTP ответ
func FromDomain(r *domain.Resource) *ResourceResponse {
	resp := &ResourceResponse{
		ID:                     r.ID,
		Name:                   r.Name,
		DurationMinutes:        r.DurationMinutes,
		SlotGranularityMinutes: r.SlotGranularityMinutes,
		Timezone:               r.Timezone,
		WorkingHours:           make([]WorkingWindowResponse, 0, len(r.WorkingHours)),
		CreatedAt:              r.CreatedAt.UTC(),
		UpdatedAt:              r.UpdatedAt.UTC(),
	}

	for _, w := range r.WorkingHours {
		resp.WorkingHours = append(resp.WorkingHours, WorkingWindowResponse{
			Weekday: int(w.Weekday),
			Open:    w.Open.String(),
			Close:   w.Close.String(),
		})
	}

	return resp
}

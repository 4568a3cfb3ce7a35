package resource

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// cachedResource представление ресурса в Redis
type cachedResource struct {
	ID                     string         `json:"id"`
	Name                   string         `json:"name"`
	DurationMinutes        int            `json:"duration_minutes"`
	SlotGranularityMinutes int            `json:"slot_granularity_minutes"`
	Timezone               string         `json:"timezone"`
	WorkingHours           []cachedWindow `json:"working_hours"`
	CreatedAt              time.Time      `json:"created_at"`
	UpdatedAt              time.Time      `json:"updated_at"`
}

type cachedWindow struct {
	Weekday int    `json:"weekday"`
	Open    string `json:"open"`
	Close   string `json:"close"`
}

func fromDomain(r *domain.Resource) cachedResource {
	hours := make([]cachedWindow, len(r.WorkingHours))
	for i, w := range r.WorkingHours {
		hours[i] = cachedWindow{Weekday: int(w.Weekday), Open: w.Open.String(), Close: w.Close.String()}
	}
	return cachedResource{
		ID:                     r.ID,
		Name:                   r.Name,
		DurationMinutes:        r.DurationMinutes,
		SlotGranularityMinutes: r.SlotGranularityMinutes,
		Timezone:               r.Timezone,
		WorkingHours:           hours,
		CreatedAt:              r.CreatedAt,
		UpdatedAt:              r.UpdatedAt,
	}
}

func (c cachedResource) toDomain() *domain.Resource {
	hours := make([]domain.WorkingWindow, len(c.WorkingHours))
	for i, w := range c.WorkingHours {
		hours[i] = domain.WorkingWindow{
			Weekday: time.Weekday(w.Weekday),
			Open:    types.TimeString(w.Open),
			Close:   types.TimeString(w.Close),
		}
	}
	return &domain.Resource{
		ID:                     c.ID,
		Name:                   c.Name,
		DurationMinutes:        c.DurationMinutes,
		SlotGranularityMinutes: c.SlotGranularityMinutes,
		Timezone:               c.Timezone,
		WorkingHours:           hours,
		CreatedAt:              c.CreatedAt,
		UpdatedAt:              c.UpdatedAt,
	}
}

package upsert_resource

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// WorkingWindowRequest рабочий интервал дня недели (0 = воскресенье, 6 = суббота)
type WorkingWindowRequest struct {
	Weekday int    `json:"weekday"`
	Open    string `json:"open"`
	Close   string `json:"close"`
}

// UpsertResourceRequest тело запроса
type UpsertResourceRequest struct {
	Name                   string                 `json:"name"`
	DurationMinutes        int                    `json:"duration_minutes"`
	SlotGranularityMinutes int                    `json:"slot_granularity_minutes"`
	Timezone               string                 `json:"timezone"`
	WorkingHours           []WorkingWindowRequest `json:"working_hours"`
}

// ToDomain собирает domain.Resource. Формат HH:MM проверяется здесь, остальное в сервисе.
func (r *UpsertResourceRequest) ToDomain(id string) (*domain.Resource, error) {
	res := &domain.Resource{
		ID:                     id,
		Name:                   r.Name,
		DurationMinutes:        r.DurationMinutes,
		SlotGranularityMinutes: r.SlotGranularityMinutes,
		Timezone:               r.Timezone,
		WorkingHours:           make([]domain.WorkingWindow, 0, len(r.WorkingHours)),
	}

	for i, w := range r.WorkingHours {
		if w.Weekday < int(time.Sunday) || w.Weekday > int(time.Saturday) {
			return nil, fmt.Errorf("working_hours[%d]: weekday must be in 0..6", i)
		}
		open, err := types.NewTimeStringFromString(w.Open)
		if err != nil {
			return nil, fmt.Errorf("working_hours[%d].open: %w", i, err)
		}
		closeAt, err := types.NewTimeStringFromString(w.Close)
		if err != nil {
			return nil, fmt.Errorf("working_hours[%d].close: %w", i, err)
		}
		res.WorkingHours = append(res.WorkingHours, domain.WorkingWindow{
			Weekday: time.Weekday(w.Weekday),
			Open:    open,
			Close:   closeAt,
		})
	}

	return res, nil
}

package domain

import (
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// Resource bookable entity (venue, room) and its operating rules
type Resource struct {
	ID                     string
	Name                   string
	DurationMinutes        int // length of one bookable unit
	SlotGranularityMinutes int // step between candidate start times, <= DurationMinutes
	Timezone               string
	WorkingHours           []WorkingWindow
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// WorkingWindow opening interval for a weekday, local wall-clock time of the resource
type WorkingWindow struct {
	Weekday time.Weekday
	Open    types.TimeString
	Close   types.TimeString
}

// TimeWindow absolute working interval for a concrete date
type TimeWindow struct {
	Open  time.Time
	Close time.Time
}

// Duration returns the length of one bookable unit
func (r *Resource) Duration() time.Duration {
	return time.Duration(r.DurationMinutes) * time.Minute
}

// Granularity returns the step between candidate start times
func (r *Resource) Granularity() time.Duration {
	return time.Duration(r.SlotGranularityMinutes) * time.Minute
}

// Location resolves the resource time zone, UTC when unset
func (r *Resource) Location() (*time.Location, error) {
	if r.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(r.Timezone)
}

// WindowsFor returns the working windows for the local date of day, ordered by open time
func (r *Resource) WindowsFor(day time.Time) ([]TimeWindow, error) {
	loc, err := r.Location()
	if err != nil {
		return nil, err
	}
	local := day.In(loc)

	windows := make([]TimeWindow, 0, 2)
	for _, w := range r.WorkingHours {
		if w.Weekday != local.Weekday() {
			continue
		}
		open, err := w.Open.On(local, loc)
		if err != nil {
			return nil, err
		}
		closeAt, err := w.Close.On(local, loc)
		if err != nil {
			return nil, err
		}
		windows = append(windows, TimeWindow{Open: open, Close: closeAt})
	}

	sort.Slice(windows, func(i, j int) bool {
		return windows[i].Open.Before(windows[j].Open)
	})
	return windows, nil
}

// Validate checks the operating rules of the resource
func (r *Resource) Validate() error {
	if r.Name == "" || len(r.Name) > MaxResourceNameLength {
		return fmt.Errorf("%w: name must be 1..%d characters", ErrInvalidInput, MaxResourceNameLength)
	}
	if r.DurationMinutes < MinDurationMinutes || r.DurationMinutes > MaxDurationMinutes {
		return fmt.Errorf("%w: duration_minutes must be in [%d, %d]", ErrInvalidInput, MinDurationMinutes, MaxDurationMinutes)
	}
	if r.SlotGranularityMinutes <= 0 || r.SlotGranularityMinutes > r.DurationMinutes {
		return fmt.Errorf("%w: slot_granularity_minutes must be in [1, duration_minutes]", ErrInvalidInput)
	}
	if _, err := r.Location(); err != nil {
		return fmt.Errorf("%w: unknown timezone %q", ErrInvalidInput, r.Timezone)
	}

	byDay := make(map[time.Weekday][][2]int)
	for _, w := range r.WorkingHours {
		if w.Weekday < time.Sunday || w.Weekday > time.Saturday {
			return fmt.Errorf("%w: invalid weekday %d", ErrInvalidInput, w.Weekday)
		}
		open, err := w.Open.Minutes()
		if err != nil {
			return fmt.Errorf("%w: open %q: %v", ErrInvalidInput, w.Open, err)
		}
		closeAt, err := w.Close.Minutes()
		if err != nil {
			return fmt.Errorf("%w: close %q: %v", ErrInvalidInput, w.Close, err)
		}
		if open >= closeAt {
			return fmt.Errorf("%w: window %s-%s on %s must open before it closes", ErrInvalidInput, w.Open, w.Close, w.Weekday)
		}
		for _, other := range byDay[w.Weekday] {
			if open < other[1] && other[0] < closeAt {
				return fmt.Errorf("%w: overlapping windows on %s", ErrInvalidInput, w.Weekday)
			}
		}
		byDay[w.Weekday] = append(byDay[w.Weekday], [2]int{open, closeAt})
	}

	return nil
}

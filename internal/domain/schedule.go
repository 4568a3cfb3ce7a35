package domain

import (
	"fmt"
	"sort"
	"time"
)

// WindowSource yields the working windows of the local date of day, ordered by open time
type WindowSource func(day time.Time) ([]TimeWindow, error)

// CandidateSlots returns every canonical slot whose start lies in [from, to), ordered by start.
// Working windows of each local date come from source, usually r.WindowsFor.
// Candidates step from each window's open time by the slot granularity; a slot must end
// strictly before the window closes, so 09:00-12:00 with 60/30 yields 09:00..10:30.
func (r *Resource) CandidateSlots(source WindowSource, from, to time.Time) ([]Slot, error) {
	if r.DurationMinutes <= 0 || r.SlotGranularityMinutes <= 0 {
		return nil, fmt.Errorf("%w: resource %s has no slot duration", ErrInvalidInput, r.ID)
	}

	loc, err := r.Location()
	if err != nil {
		return nil, err
	}

	duration := r.Duration()
	step := r.Granularity()

	slots := make([]Slot, 0)
	local := from.In(loc)
	day := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)

	for day.Before(to) {
		windows, err := source(day)
		if err != nil {
			return nil, err
		}

		for _, w := range windows {
			for start := w.Open; start.Add(duration).Before(w.Close); start = start.Add(step) {
				if start.Before(from) {
					continue
				}
				if !start.Before(to) {
					break
				}
				slots = append(slots, Slot{
					ResourceID: r.ID,
					Start:      start.UTC(),
					End:        start.Add(duration).UTC(),
				})
			}
		}

		day = time.Date(day.Year(), day.Month(), day.Day()+1, 0, 0, 0, 0, loc)
	}

	sort.SliceStable(slots, func(i, j int) bool {
		return slots[i].Start.Before(slots[j].Start)
	})

	return slots, nil
}

// IsCandidateSlot reports whether [start, end) is exactly one of the slots CandidateSlots would emit
func (r *Resource) IsCandidateSlot(start, end time.Time) (bool, error) {
	if r.DurationMinutes <= 0 || r.SlotGranularityMinutes <= 0 {
		return false, nil
	}
	if end.Sub(start) != r.Duration() {
		return false, nil
	}

	windows, err := r.WindowsFor(start)
	if err != nil {
		return false, err
	}

	step := r.Granularity()
	for _, w := range windows {
		if start.Before(w.Open) || !end.Before(w.Close) {
			continue
		}
		if start.Sub(w.Open)%step == 0 {
			return true, nil
		}
	}

	return false, nil
}

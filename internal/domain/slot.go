package domain

import "time"

// Slot candidate start/end pair a client could request. Derived, never persisted
type Slot struct {
	ResourceID string
	Start      time.Time
	End        time.Time
}

// TimeRange half-open interval [Start, End)
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether two half-open ranges intersect.
// Adjacent ranges (one ends where the other starts) do not overlap.
func (r TimeRange) Overlaps(other TimeRange) bool {
	return r.Start.Before(other.End) && other.Start.Before(r.End)
}

// Range returns the slot interval
func (s Slot) Range() TimeRange {
	return TimeRange{Start: s.Start, End: s.End}
}

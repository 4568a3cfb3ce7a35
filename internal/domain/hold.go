package domain

import "time"

// HoldStatus represents the status of a hold
type HoldStatus string

const (
	HoldStatusActive   HoldStatus = "active"
	HoldStatusExpired  HoldStatus = "expired"
	HoldStatusConsumed HoldStatus = "consumed"
)

// Hold short-lived exclusive claim on a slot pending confirmation
type Hold struct {
	ID         string
	ResourceID string
	Start      time.Time
	End        time.Time
	ExpiresAt  time.Time
	Status     HoldStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Range returns the held interval
func (h *Hold) Range() TimeRange {
	return TimeRange{Start: h.Start, End: h.End}
}

// IsActiveAt returns true if the hold still blocks its range at instant now.
// An active hold whose TTL has elapsed counts as expired even before the sweep flips it.
func (h *Hold) IsActiveAt(now time.Time) bool {
	return h.Status == HoldStatusActive && h.ExpiresAt.After(now)
}

// IsExpiredAt returns true if the hold was released or its TTL elapsed
func (h *Hold) IsExpiredAt(now time.Time) bool {
	return h.Status == HoldStatusExpired || (h.Status == HoldStatusActive && !h.ExpiresAt.After(now))
}

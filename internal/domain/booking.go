package domain

import (
	"sort"
	"time"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
)

// Booking durable reservation created from a consumed hold
type Booking struct {
	ID            string
	ResourceID    string
	HoldID        string
	Start         time.Time
	End           time.Time
	CustomerName  string
	CustomerEmail string
	CustomerPhone *string
	Notes         *string
	TotalAmount   *float64
	Status        BookingStatus

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Range returns the booked interval
func (b *Booking) Range() TimeRange {
	return TimeRange{Start: b.Start, End: b.End}
}

// IsActive returns true if the booking occupies its time range
func (b *Booking) IsActive() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.IsActive()
}

// CanBeConfirmed returns true if the booking can move to confirmed
func (b *Booking) CanBeConfirmed() bool {
	return b.Status == StatusPending
}

// CustomerInfo contact details supplied at confirmation time
type CustomerInfo struct {
	Name        string
	Email       string
	Phone       *string
	Notes       *string
	TotalAmount *float64
}

// ResourceBookingsFilter filter for listing bookings of a resource
type ResourceBookingsFilter struct {
	ResourceID       string         // required
	From             *time.Time     // bookings ending after From (optional)
	To               *time.Time     // bookings starting before To (optional)
	Status           *BookingStatus // optional
	IncludeCancelled bool
}

// ReservationSet committed reservations of one resource, used for overlap checks
type ReservationSet struct {
	Holds    []*Hold
	Bookings []*Booking
}

// Blocking returns every range that is reserved at instant now
func (s ReservationSet) Blocking(now time.Time) []TimeRange {
	ranges := make([]TimeRange, 0, len(s.Holds)+len(s.Bookings))
	for _, h := range s.Holds {
		if h.IsActiveAt(now) {
			ranges = append(ranges, h.Range())
		}
	}
	for _, b := range s.Bookings {
		if b.IsActive() {
			ranges = append(ranges, b.Range())
		}
	}
	sort.Slice(ranges, func(i, j int) bool {
		return ranges[i].Start.Before(ranges[j].Start)
	})
	return ranges
}

// FirstOverlap returns the first reserved range overlapping r
func (s ReservationSet) FirstOverlap(r TimeRange, now time.Time) (TimeRange, bool) {
	for _, blocked := range s.Blocking(now) {
		if blocked.Overlaps(r) {
			return blocked, true
		}
	}
	return TimeRange{}, false
}

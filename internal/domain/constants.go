package domain

import "time"

// Default configuration values
const (
	DefaultHoldTTL              = 15 * time.Minute
	DefaultMaxAvailabilityRange = 31 * 24 * time.Hour
	DefaultSweepRetention       = 24 * time.Hour
)

// Business validation constants
const (
	MinDurationMinutes          = 5
	MaxDurationMinutes          = 1440 // 24 hours
	MaxResourceNameLength       = 200
	MaxCustomerNameLength       = 200
	MaxCustomerEmailLength      = 254
	MaxCustomerPhoneLength      = 32
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
)

// ActiveBookingStatuses statuses that occupy a time range
var ActiveBookingStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}

package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func morningResource() *Resource {
	return &Resource{
		ID:                     "res-1",
		Name:                   "Loft",
		DurationMinutes:        60,
		SlotGranularityMinutes: 30,
		Timezone:               "UTC",
		WorkingHours: []WorkingWindow{
			{Weekday: time.Wednesday, Open: "09:00", Close: "12:00"},
		},
	}
}

func at(hhmm string) time.Time {
	t, err := time.Parse("2006-01-02 15:04", "2025-10-15 "+hhmm) // wednesday
	if err != nil {
		panic(err)
	}
	return t
}

func starts(slots []Slot) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.Start.Format("15:04")
	}
	return out
}

func TestCandidateSlots(t *testing.T) {
	r := morningResource()
	day := at("00:00")

	t.Run("steps by granularity inside the window", func(t *testing.T) {
		slots, err := r.CandidateSlots(r.WindowsFor, day, day.Add(24*time.Hour))
		require.NoError(t, err)
		assert.Equal(t, []string{"09:00", "09:30", "10:00", "10:30"}, starts(slots))
		for _, s := range slots {
			assert.Equal(t, time.Hour, s.End.Sub(s.Start))
			assert.Equal(t, "res-1", s.ResourceID)
		}
	})

	t.Run("only starts within the range", func(t *testing.T) {
		slots, err := r.CandidateSlots(r.WindowsFor, at("09:30"), at("10:30"))
		require.NoError(t, err)
		assert.Equal(t, []string{"09:30", "10:00"}, starts(slots))
	})

	t.Run("closed day yields nothing", func(t *testing.T) {
		thursday := day.Add(24 * time.Hour)
		slots, err := r.CandidateSlots(r.WindowsFor, thursday, thursday.Add(24*time.Hour))
		require.NoError(t, err)
		assert.Empty(t, slots)
	})

	t.Run("multi-day range covers every matching weekday", func(t *testing.T) {
		slots, err := r.CandidateSlots(r.WindowsFor, day, day.Add(14*24*time.Hour))
		require.NoError(t, err)
		assert.Len(t, slots, 8)
	})

	t.Run("deterministic", func(t *testing.T) {
		a, err := r.CandidateSlots(r.WindowsFor, day, day.Add(7*24*time.Hour))
		require.NoError(t, err)
		b, err := r.CandidateSlots(r.WindowsFor, day, day.Add(7*24*time.Hour))
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})

	t.Run("window closing at midnight", func(t *testing.T) {
		late := morningResource()
		late.WorkingHours = []WorkingWindow{{Weekday: time.Wednesday, Open: "22:00", Close: "24:00"}}
		slots, err := late.CandidateSlots(late.WindowsFor, day, day.Add(24*time.Hour))
		require.NoError(t, err)
		assert.Equal(t, []string{"22:00", "22:30"}, starts(slots))
	})

	t.Run("windows from an external source", func(t *testing.T) {
		source := func(d time.Time) ([]TimeWindow, error) {
			return []TimeWindow{{Open: d.Add(14 * time.Hour), Close: d.Add(16 * time.Hour)}}, nil
		}
		slots, err := r.CandidateSlots(source, day, day.Add(24*time.Hour))
		require.NoError(t, err)
		assert.Equal(t, []string{"14:00", "14:30"}, starts(slots))
	})

	t.Run("source error is returned", func(t *testing.T) {
		boom := errors.New("calendar unavailable")
		_, err := r.CandidateSlots(func(time.Time) ([]TimeWindow, error) { return nil, boom }, day, day.Add(time.Hour))
		assert.ErrorIs(t, err, boom)
	})

	t.Run("resource timezone shifts windows", func(t *testing.T) {
		berlin := morningResource()
		berlin.Timezone = "Europe/Berlin"
		slots, err := berlin.CandidateSlots(berlin.WindowsFor, day, day.Add(24*time.Hour))
		require.NoError(t, err)
		// CEST is UTC+2 in October
		assert.Equal(t, []string{"07:00", "07:30", "08:00", "08:30"}, starts(slots))
	})

	t.Run("zero granularity is rejected", func(t *testing.T) {
		bad := morningResource()
		bad.SlotGranularityMinutes = 0
		_, err := bad.CandidateSlots(bad.WindowsFor, day, day.Add(time.Hour))
		assert.True(t, errors.Is(err, ErrInvalidInput))
	})
}

func TestIsCandidateSlot(t *testing.T) {
	r := morningResource()

	tests := []struct {
		name       string
		start, end string
		want       bool
	}{
		{"aligned first slot", "09:00", "10:00", true},
		{"aligned on granularity", "10:30", "11:30", true},
		{"misaligned start", "09:15", "10:15", false},
		{"wrong length", "09:00", "09:30", false},
		{"ends at close", "11:00", "12:00", false},
		{"runs past close", "11:30", "12:30", false},
		{"before open", "08:30", "09:30", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := r.IsCandidateSlot(at(tt.start), at(tt.end))
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestResourceValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, morningResource().Validate())
	})

	t.Run("granularity above duration", func(t *testing.T) {
		r := morningResource()
		r.SlotGranularityMinutes = 90
		assert.ErrorIs(t, r.Validate(), ErrInvalidInput)
	})

	t.Run("window opens after close", func(t *testing.T) {
		r := morningResource()
		r.WorkingHours = []WorkingWindow{{Weekday: time.Monday, Open: "12:00", Close: "09:00"}}
		assert.ErrorIs(t, r.Validate(), ErrInvalidInput)
	})

	t.Run("overlapping windows on one day", func(t *testing.T) {
		r := morningResource()
		r.WorkingHours = append(r.WorkingHours, WorkingWindow{Weekday: time.Wednesday, Open: "11:00", Close: "14:00"})
		assert.ErrorIs(t, r.Validate(), ErrInvalidInput)
	})

	t.Run("adjacent windows are fine", func(t *testing.T) {
		r := morningResource()
		r.WorkingHours = append(r.WorkingHours, WorkingWindow{Weekday: time.Wednesday, Open: "12:00", Close: "14:00"})
		assert.NoError(t, r.Validate())
	})

	t.Run("unknown timezone", func(t *testing.T) {
		r := morningResource()
		r.Timezone = "Mars/Olympus"
		assert.ErrorIs(t, r.Validate(), ErrInvalidInput)
	})
}

func TestTimeRangeOverlaps(t *testing.T) {
	a := TimeRange{Start: at("09:00"), End: at("10:00")}

	assert.False(t, a.Overlaps(TimeRange{Start: at("10:00"), End: at("11:00")}), "adjacent ranges")
	assert.True(t, a.Overlaps(TimeRange{Start: at("09:30"), End: at("10:30")}))
	assert.True(t, a.Overlaps(TimeRange{Start: at("08:00"), End: at("12:00")}))
	assert.False(t, a.Overlaps(TimeRange{Start: at("08:00"), End: at("09:00")}))
}

func TestHoldEffectiveStatus(t *testing.T) {
	h := &Hold{Status: HoldStatusActive, ExpiresAt: at("10:15")}

	assert.True(t, h.IsActiveAt(at("10:14")))
	assert.False(t, h.IsActiveAt(at("10:15")), "expires_at is exclusive")
	assert.True(t, h.IsExpiredAt(at("10:15")))

	h.Status = HoldStatusConsumed
	assert.False(t, h.IsActiveAt(at("10:00")))
	assert.False(t, h.IsExpiredAt(at("11:00")))
}

func TestConflictErrorMatchesSentinel(t *testing.T) {
	err := NewConflictError("res-1", TimeRange{Start: at("09:00"), End: at("10:00")})

	assert.True(t, errors.Is(err, ErrConflict))

	var ce *ConflictError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, at("09:00"), ce.Start)
}

func TestAsStoreError(t *testing.T) {
	assert.Nil(t, AsStoreError("op", nil))
	assert.Equal(t, ErrHoldExpired, AsStoreError("op", ErrHoldExpired))

	conflict := NewConflictError("r", TimeRange{})
	assert.Same(t, conflict, AsStoreError("op", conflict))

	wrapped := AsStoreError("CreateHold", errors.New("connection refused"))
	assert.ErrorIs(t, wrapped, ErrStoreUnavailable)
	assert.False(t, IsBusinessError(wrapped))
}

package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReservationOverlaps(t *testing.T) {
	const duration = 90

	base := time.Date(2025, 11, 20, 14, 0, 0, 0, time.UTC)
	candidateStart := base
	candidateEnd := base.Add(duration * time.Minute)

	t.Run("бронь за минуту до конца длительности пересекается", func(t *testing.T) {
		r := &Reservation{ReservedAt: base.Add((duration - 1) * time.Minute)}
		assert.True(t, r.Overlaps(candidateStart, candidateEnd, duration))
	})

	t.Run("бронь ровно через длительность не пересекается", func(t *testing.T) {
		r := &Reservation{ReservedAt: base.Add(duration * time.Minute)}
		assert.False(t, r.Overlaps(candidateStart, candidateEnd, duration))
	})

	t.Run("бронь, заканчивающаяся ровно в начале кандидата, не пересекается", func(t *testing.T) {
		r := &Reservation{ReservedAt: base.Add(-duration * time.Minute)}
		assert.False(t, r.Overlaps(candidateStart, candidateEnd, duration))
	})
}

func TestReservationStatusTransitions(t *testing.T) {
	pending := &Reservation{Status: StatusPending}
	confirmed := &Reservation{Status: StatusConfirmed}
	cancelled := &Reservation{Status: StatusCancelledByUser}

	assert.True(t, pending.IsActive())
	assert.True(t, confirmed.IsActive())
	assert.False(t, cancelled.IsActive())

	assert.True(t, pending.CanBeConfirmed())
	assert.False(t, confirmed.CanBeConfirmed())
	assert.False(t, cancelled.CanBeConfirmed())

	assert.True(t, pending.CanBeCancelled())
	assert.True(t, confirmed.CanBeCancelled())
	// Из отменённого состояния переходов нет
	assert.False(t, cancelled.CanBeCancelled())
}

func TestReservationLocalTime(t *testing.T) {
	utc := time.Date(2025, 11, 20, 18, 0, 0, 0, time.UTC)

	r := &Reservation{ReservedAt: utc}
	assert.Equal(t, utc, r.LocalTime())

	offset := 120
	r = &Reservation{ReservedAt: utc, TZOffsetMinutes: &offset}
	assert.Equal(t, "20:00", r.LocalTime().Format(TimeFormat))
}

func TestVenueConfigPools(t *testing.T) {
	cfg := &VenueConfig{
		GlobalCapacity: 40,
		Zones: []Zone{
			{ID: "hall", Name: "Sala", Capacity: 30, Enabled: false},
			{ID: "terrace", Name: "Terrazza", Capacity: 12, Enabled: true},
		},
	}

	assert.True(t, cfg.HasZones())

	first := cfg.FirstEnabledZone()
	assert.Equal(t, "terrace", first.ID)

	capacity, name := cfg.PoolCapacity(first)
	assert.Equal(t, 12, capacity)
	assert.Equal(t, "Terrazza", name)

	capacity, name = cfg.PoolCapacity(nil)
	assert.Equal(t, 40, capacity)
	assert.Equal(t, "", name)
}

func TestVenueConfigDefaults(t *testing.T) {
	cfg := &VenueConfig{}

	assert.Equal(t, DefaultSlotIntervalMinutes, cfg.SlotInterval())
	assert.Equal(t, DefaultMaxAdvanceDays, cfg.MaxAdvanceDays())
	assert.Equal(t, DefaultAvgDurationMinutes, cfg.AvgDuration())
	assert.Equal(t, DefaultLeadBufferMinutes, cfg.LeadBufferMinutes())

	cfg.LeadHours = 2.5
	assert.Equal(t, 150, cfg.LeadBufferMinutes())
}

func TestVenueConfigBlockedDates(t *testing.T) {
	cfg := &VenueConfig{BlockedDates: []string{"2025-12-25"}}

	assert.True(t, cfg.IsDateBlocked(time.Date(2025, 12, 25, 10, 0, 0, 0, time.UTC)))
	assert.False(t, cfg.IsDateBlocked(time.Date(2025, 12, 26, 10, 0, 0, 0, time.UTC)))
}

package domain

import (
	"time"
)

// Zone named seating area with its own capacity pool
type Zone struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
	Enabled  bool   `json:"enabled"`
}

// VenueConfig represents the reservation configuration of a venue
// Вместимость либо глобальная (Zones пуст), либо раздельная по зонам -
// пулы зон независимы и не суммируются
type VenueConfig struct {
	BusinessID int64

	GlobalCapacity int
	AutoConfirm    bool

	// LeadHours минимальное время предупреждения для броней "на сегодня" (в часах, может быть дробным)
	LeadHours float64
	// MaxDays горизонт бронирования в днях (0 = значение по умолчанию)
	MaxDays int
	// AvgDurationMinutes фиксированная длительность всех броней
	AvgDurationMinutes int
	// SlotIntervalMinutes шаг генерации слотов
	SlotIntervalMinutes int

	// Timezone IANA-имя локального часового пояса заведения
	Timezone string

	// RawShifts сырые записи смен из конфигурации (legacy-формат, парсятся ShiftParser'ом)
	RawShifts []RawShift
	Zones     []Zone
	// BlockedDates даты в формате YYYY-MM-DD, закрытые для бронирования
	BlockedDates []string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasZones returns true if the venue uses per-zone capacity pools
func (c *VenueConfig) HasZones() bool {
	return len(c.Zones) > 0
}

// EnabledZones возвращает только включённые зоны
func (c *VenueConfig) EnabledZones() []Zone {
	zones := make([]Zone, 0, len(c.Zones))
	for _, z := range c.Zones {
		if z.Enabled {
			zones = append(zones, z)
		}
	}
	return zones
}

// FirstEnabledZone возвращает первую включённую зону или nil
func (c *VenueConfig) FirstEnabledZone() *Zone {
	for i := range c.Zones {
		if c.Zones[i].Enabled {
			return &c.Zones[i]
		}
	}
	return nil
}

// ZoneByID возвращает зону по идентификатору или nil
func (c *VenueConfig) ZoneByID(id string) *Zone {
	for i := range c.Zones {
		if c.Zones[i].ID == id {
			return &c.Zones[i]
		}
	}
	return nil
}

// IsDateBlocked проверяет, закрыта ли дата для бронирования
func (c *VenueConfig) IsDateBlocked(date time.Time) bool {
	key := date.Format(DateFormat)
	for _, d := range c.BlockedDates {
		if d == key {
			return true
		}
	}
	return false
}

// Location возвращает локальный часовой пояс заведения
// При некорректном значении используется UTC
func (c *VenueConfig) Location() *time.Location {
	if c.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// SlotInterval возвращает шаг генерации слотов с учётом значения по умолчанию
func (c *VenueConfig) SlotInterval() int {
	if c.SlotIntervalMinutes <= 0 {
		return DefaultSlotIntervalMinutes
	}
	return c.SlotIntervalMinutes
}

// MaxAdvanceDays возвращает горизонт бронирования с учётом значения по умолчанию
func (c *VenueConfig) MaxAdvanceDays() int {
	if c.MaxDays <= 0 {
		return DefaultMaxAdvanceDays
	}
	return c.MaxDays
}

// AvgDuration возвращает длительность брони с учётом значения по умолчанию
func (c *VenueConfig) AvgDuration() int {
	if c.AvgDurationMinutes <= 0 {
		return DefaultAvgDurationMinutes
	}
	return c.AvgDurationMinutes
}

// LeadBufferMinutes возвращает минимальный буфер до начала брони "на сегодня"
// lead_hours > 0 имеет приоритет, иначе действует буфер по умолчанию
func (c *VenueConfig) LeadBufferMinutes() int {
	if c.LeadHours > 0 {
		return int(c.LeadHours * 60)
	}
	return DefaultLeadBufferMinutes
}

// PoolCapacity возвращает вместимость пула и его человекочитаемое имя
// zone == nil означает глобальный пул заведения
// Вместимость <= 0 трактуется как безлимит (проверка не выполняется)
func (c *VenueConfig) PoolCapacity(zone *Zone) (int, string) {
	if zone != nil {
		return zone.Capacity, zone.Name
	}
	return c.GlobalCapacity, ""
}

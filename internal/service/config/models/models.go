package models

import (
	"time"

	"github.com/tavolo-app/ReservationService/internal/domain"
)

// Request модели

// UpdateConfigRequest запрос на полное обновление конфигурации заведения
// Конфигурация заменяется целиком (PUT-семантика)
type UpdateConfigRequest struct {
	UserID     int64 `json:"userId"`
	BusinessID int64 `json:"businessId"`

	GlobalCapacity int  `json:"globalCapacity"`
	AutoConfirm    bool `json:"autoConfirm"`

	LeadHours           float64 `json:"leadHours"`
	MaxDays             int     `json:"maxDays"`
	AvgDurationMinutes  int     `json:"avgDurationMinutes"`
	SlotIntervalMinutes int     `json:"slotIntervalMinutes"`

	Timezone string `json:"timezone"`

	Shifts       []ShiftEntry `json:"shifts"`
	Zones        []ZoneEntry  `json:"zones"`
	BlockedDates []string     `json:"blockedDates"`
}

// ShiftEntry смена в запросе обновления; принимаются оба написания границ
type ShiftEntry struct {
	From  string `json:"from,omitempty"`
	To    string `json:"to,omitempty"`
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
}

// ZoneEntry зона посадки в запросе обновления
type ZoneEntry struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
	Enabled  bool   `json:"enabled"`
}

// Response модели

// ConfigResponse ответ с данными конфигурации заведения
type ConfigResponse struct {
	BusinessID int64 `json:"businessId"`

	GlobalCapacity int  `json:"globalCapacity"`
	AutoConfirm    bool `json:"autoConfirm"`

	LeadHours           float64 `json:"leadHours"`
	MaxDays             int     `json:"maxDays"`
	AvgDurationMinutes  int     `json:"avgDurationMinutes"`
	SlotIntervalMinutes int     `json:"slotIntervalMinutes"`

	Timezone string `json:"timezone"`

	Shifts       []ShiftEntry `json:"shifts"`
	Zones        []ZoneEntry  `json:"zones"`
	BlockedDates []string     `json:"blockedDates"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Методы конвертации

// FromDomainConfig конвертирует domain модель в DTO
func FromDomainConfig(c *domain.VenueConfig) *ConfigResponse {
	if c == nil {
		return nil
	}

	shifts := make([]ShiftEntry, 0, len(c.RawShifts))
	for _, s := range c.RawShifts {
		shifts = append(shifts, ShiftEntry{
			From:  s.From,
			To:    s.To,
			Start: s.Start,
			End:   s.End,
		})
	}

	zones := make([]ZoneEntry, 0, len(c.Zones))
	for _, z := range c.Zones {
		zones = append(zones, ZoneEntry{
			ID:       z.ID,
			Name:     z.Name,
			Capacity: z.Capacity,
			Enabled:  z.Enabled,
		})
	}

	blocked := c.BlockedDates
	if blocked == nil {
		blocked = []string{}
	}

	return &ConfigResponse{
		BusinessID:          c.BusinessID,
		GlobalCapacity:      c.GlobalCapacity,
		AutoConfirm:         c.AutoConfirm,
		LeadHours:           c.LeadHours,
		MaxDays:             c.MaxDays,
		AvgDurationMinutes:  c.AvgDurationMinutes,
		SlotIntervalMinutes: c.SlotIntervalMinutes,
		Timezone:            c.Timezone,
		Shifts:              shifts,
		Zones:               zones,
		BlockedDates:        blocked,
		CreatedAt:           c.CreatedAt,
		UpdatedAt:           c.UpdatedAt,
	}
}

// ToDomainConfig конвертирует UpdateConfigRequest в domain модель
func (r *UpdateConfigRequest) ToDomainConfig() *domain.VenueConfig {
	rawShifts := make([]domain.RawShift, 0, len(r.Shifts))
	for _, s := range r.Shifts {
		rawShifts = append(rawShifts, domain.RawShift{
			From:  s.From,
			To:    s.To,
			Start: s.Start,
			End:   s.End,
		})
	}

	zones := make([]domain.Zone, 0, len(r.Zones))
	for _, z := range r.Zones {
		zones = append(zones, domain.Zone{
			ID:       z.ID,
			Name:     z.Name,
			Capacity: z.Capacity,
			Enabled:  z.Enabled,
		})
	}

	return &domain.VenueConfig{
		BusinessID:          r.BusinessID,
		GlobalCapacity:      r.GlobalCapacity,
		AutoConfirm:         r.AutoConfirm,
		LeadHours:           r.LeadHours,
		MaxDays:             r.MaxDays,
		AvgDurationMinutes:  r.AvgDurationMinutes,
		SlotIntervalMinutes: r.SlotIntervalMinutes,
		Timezone:            r.Timezone,
		RawShifts:           rawShifts,
		Zones:               zones,
		BlockedDates:        r.BlockedDates,
	}
}

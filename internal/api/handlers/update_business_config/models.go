package update_business_config

import (
	"github.com/tavolo-app/ReservationService/internal/service/config/models"
)

// UpdateBusinessConfigRequest HTTP request model
// Конфигурация заменяется целиком (PUT-семантика)
type UpdateBusinessConfigRequest struct {
	GlobalCapacity int  `json:"globalCapacity"`
	AutoConfirm    bool `json:"autoConfirm"`

	LeadHours           float64 `json:"leadHours"`
	MaxDays             int     `json:"maxDays"`
	AvgDurationMinutes  int     `json:"avgDurationMinutes"`
	SlotIntervalMinutes int     `json:"slotIntervalMinutes"`

	Timezone string `json:"timezone"`

	Shifts       []models.ShiftEntry `json:"shifts"`
	Zones        []models.ZoneEntry  `json:"zones"`
	BlockedDates []string            `json:"blockedDates"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateBusinessConfigRequest) ToServiceRequest(businessID, userID int64) *models.UpdateConfigRequest {
	return &models.UpdateConfigRequest{
		UserID:              userID,
		BusinessID:          businessID,
		GlobalCapacity:      r.GlobalCapacity,
		AutoConfirm:         r.AutoConfirm,
		LeadHours:           r.LeadHours,
		MaxDays:             r.MaxDays,
		AvgDurationMinutes:  r.AvgDurationMinutes,
		SlotIntervalMinutes: r.SlotIntervalMinutes,
		Timezone:            r.Timezone,
		Shifts:              r.Shifts,
		Zones:               r.Zones,
		BlockedDates:        r.BlockedDates,
	}
}

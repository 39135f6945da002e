package get_available_slots

import (
	"time"

	"github.com/tavolo-app/ReservationService/internal/domain"
	getAvailableSlots "github.com/tavolo-app/ReservationService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date       string          `json:"date"`
	BusinessID int64           `json:"businessId"`
	ZoneID     *string         `json:"zoneId,omitempty"`
	ZoneName   string          `json:"zoneName,omitempty"`
	Slots      []AvailableSlot `json:"slots"`
}

// AvailableSlot модель временного слота
type AvailableSlot struct {
	StartTime       string `json:"startTime"`
	DurationMinutes int    `json:"durationMinutes"`
	AvailableSeats  int    `json:"availableSeats"`
	TotalSeats      int    `json:"totalSeats"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			StartTime:       slot.StartTime.String(),
			DurationMinutes: slot.DurationMinutes,
			AvailableSeats:  slot.AvailableSeats,
			TotalSeats:      slot.TotalSeats,
		}
	}

	return &AvailableSlotsResponse{
		Date:       resp.Date.Format(domain.DateFormat),
		BusinessID: resp.BusinessID,
		ZoneID:     resp.ZoneID,
		ZoneName:   resp.ZoneName,
		Slots:      slots,
	}
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(businessID int64, dateStr, zoneIDStr string) (*getAvailableSlots.Request, error) {
	// Парсим дату
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	req := &getAvailableSlots.Request{
		BusinessID: businessID,
		Date:       date,
	}

	if zoneIDStr != "" {
		req.ZoneID = &zoneIDStr
	}

	return req, nil
}

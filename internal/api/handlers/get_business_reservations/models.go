package get_business_reservations

import (
	"fmt"
	"strconv"
	"time"

	"github.com/tavolo-app/ReservationService/internal/domain"
	"github.com/tavolo-app/ReservationService/internal/service/reservations/models"
	"github.com/tavolo-app/ReservationService/pkg/ptr"
)

// ToServiceRequest формирует запрос к сервису из query параметров
// Период задается либо одной датой (date), либо диапазоном (startDate + endDate)
func ToServiceRequest(
	businessID int64,
	userID int64,
	zoneIDStr string,
	statusStr string,
	dateStr string,
	startDateStr string,
	endDateStr string,
	includeInactiveStr string,
) (*models.GetVenueReservationsRequest, error) {
	req := &models.GetVenueReservationsRequest{
		UserID:          userID,
		BusinessID:      businessID,
		IncludeInactive: false, // По умолчанию только активные
	}

	// Парсим zoneId если указан
	if zoneIDStr != "" {
		req.ZoneID = ptr.Ptr(zoneIDStr)
	}

	// Парсим status если указан
	if statusStr != "" {
		req.Status = ptr.Ptr(statusStr)
	}

	// Парсим date если указана (одна дата имеет приоритет над диапазоном)
	if dateStr != "" {
		date, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			return nil, err
		}
		req.StartDate = &date
		req.EndDate = &date
	} else if startDateStr != "" && endDateStr != "" {
		startDate, err := time.Parse(domain.DateFormat, startDateStr)
		if err != nil {
			return nil, err
		}
		endDate, err := time.Parse(domain.DateFormat, endDateStr)
		if err != nil {
			return nil, err
		}
		if endDate.Before(startDate) {
			return nil, fmt.Errorf("endDate is before startDate")
		}
		req.StartDate = &startDate
		req.EndDate = &endDate
	}

	// Парсим includeInactive если указан
	if includeInactiveStr != "" {
		includeInactive, err := strconv.ParseBool(includeInactiveStr)
		if err != nil {
			return nil, fmt.Errorf("invalid includeInactive value: %w", err)
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}

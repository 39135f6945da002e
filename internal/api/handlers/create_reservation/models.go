package create_reservation

import (
	"time"

	"github.com/tavolo-app/ReservationService/internal/domain"
	createReservation "github.com/tavolo-app/ReservationService/internal/usecase/create_reservation"
	"github.com/tavolo-app/ReservationService/pkg/types"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	UserID     int64 `json:"userId,omitempty"`
	BusinessID int64 `json:"businessId"`

	CustomerName  string  `json:"customerName"`
	CustomerPhone string  `json:"customerPhone"`
	CustomerEmail *string `json:"customerEmail,omitempty"`

	PartySize int `json:"partySize"`

	Date      string `json:"date"`      // "2025-10-15"
	StartTime string `json:"startTime"` // "19:30"

	ZoneID *string `json:"zoneId,omitempty"`
	Notes  *string `json:"notes,omitempty"`

	TZOffsetMinutes *int `json:"tzOffsetMinutes,omitempty"`
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID         int64  `json:"id"`
	BusinessID int64  `json:"businessId"`
	Status     string `json:"status"`

	CustomerName  string  `json:"customerName"`
	CustomerPhone string  `json:"customerPhone"`
	CustomerEmail *string `json:"customerEmail,omitempty"`

	PartySize int `json:"partySize"`

	ReservedAt string `json:"reservedAt"` // ISO 8601, UTC
	Date       string `json:"date"`
	StartTime  string `json:"startTime"`

	ZoneID   *string `json:"zoneId,omitempty"`
	ZoneName string  `json:"zoneName,omitempty"`
	Notes    string  `json:"notes,omitempty"`

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest(userID int64) (*createReservation.Request, error) {
	// Парсим дату
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	// Парсим время
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createReservation.Request{
		UserID:          userID,
		BusinessID:      r.BusinessID,
		CustomerName:    r.CustomerName,
		CustomerPhone:   r.CustomerPhone,
		CustomerEmail:   r.CustomerEmail,
		PartySize:       r.PartySize,
		Date:            date,
		StartTime:       startTime,
		ZoneID:          r.ZoneID,
		Notes:           r.Notes,
		TZOffsetMinutes: r.TZOffsetMinutes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *ReservationResponse {
	return &ReservationResponse{
		ID:            resp.ID,
		BusinessID:    resp.BusinessID,
		Status:        resp.Status,
		CustomerName:  resp.CustomerName,
		CustomerPhone: resp.CustomerPhone,
		CustomerEmail: resp.CustomerEmail,
		PartySize:     resp.PartySize,
		ReservedAt:    resp.ReservedAt.UTC().Format(time.RFC3339),
		Date:          resp.Date.Format(domain.DateFormat),
		StartTime:     resp.StartTime.String(),
		ZoneID:        resp.ZoneID,
		ZoneName:      resp.ZoneName,
		Notes:         resp.Notes,
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     resp.UpdatedAt.Format(time.RFC3339),
	}
}

package config

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tavolo-app/ReservationService/internal/domain"
	configRepo "github.com/tavolo-app/ReservationService/internal/infra/storage/venueconfig"
	"github.com/tavolo-app/ReservationService/internal/integrations/businessservice"
	"github.com/tavolo-app/ReservationService/internal/service/config/models"
)

type fakeConfigRepo struct {
	config    *domain.VenueConfig
	getErr    error
	upsertErr error

	upserted *domain.VenueConfig
}

func (f *fakeConfigRepo) GetByBusinessID(_ context.Context, _ int64) (*domain.VenueConfig, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.config, nil
}

func (f *fakeConfigRepo) Upsert(_ context.Context, config *domain.VenueConfig) (*domain.VenueConfig, error) {
	if f.upsertErr != nil {
		return nil, f.upsertErr
	}
	f.upserted = config
	return config, nil
}

type fakeBusinessClient struct {
	business *businessservice.Business
	err      error
}

func (f *fakeBusinessClient) GetBusiness(_ context.Context, _ int64) (*businessservice.Business, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.business, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func managedBusiness() *businessservice.Business {
	return &businessservice.Business{
		ID:         1,
		Name:       "Траттория",
		ManagerIDs: []int64{7, 9},
	}
}

func validUpdateRequest() *models.UpdateConfigRequest {
	return &models.UpdateConfigRequest{
		UserID:              7,
		BusinessID:          1,
		GlobalCapacity:      20,
		AutoConfirm:         true,
		LeadHours:           1.5,
		MaxDays:             30,
		AvgDurationMinutes:  90,
		SlotIntervalMinutes: 30,
		Timezone:            "Europe/Moscow",
		Shifts: []models.ShiftEntry{
			{From: "13:00", To: "16:00"},
			{Start: "19:00", End: "23:00"},
		},
		Zones: []models.ZoneEntry{
			{ID: "main", Name: "Основной зал", Capacity: 12, Enabled: true},
		},
		BlockedDates: []string{"2026-12-31"},
	}
}

func TestGet(t *testing.T) {
	t.Run("успешное чтение", func(t *testing.T) {
		repo := &fakeConfigRepo{config: &domain.VenueConfig{
			BusinessID:     1,
			GlobalCapacity: 20,
			RawShifts:      []domain.RawShift{{From: "13:00", To: "16:00"}},
		}}
		svc := NewService(repo, &fakeBusinessClient{}, nopLogger{})

		resp, err := svc.Get(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, int64(1), resp.BusinessID)
		assert.Equal(t, 20, resp.GlobalCapacity)
		require.Len(t, resp.Shifts, 1)
	})

	t.Run("конфигурация не найдена", func(t *testing.T) {
		repo := &fakeConfigRepo{getErr: configRepo.ErrConfigNotFound}
		svc := NewService(repo, &fakeBusinessClient{}, nopLogger{})

		_, err := svc.Get(context.Background(), 1)
		assert.ErrorIs(t, err, ErrConfigNotFound)
	})
}

func TestUpdate(t *testing.T) {
	t.Run("менеджер заменяет конфигурацию целиком", func(t *testing.T) {
		repo := &fakeConfigRepo{}
		svc := NewService(repo, &fakeBusinessClient{business: managedBusiness()}, nopLogger{})

		resp, err := svc.Update(context.Background(), validUpdateRequest())
		require.NoError(t, err)

		require.NotNil(t, repo.upserted)
		assert.Equal(t, int64(1), repo.upserted.BusinessID)
		assert.Equal(t, "Europe/Moscow", resp.Timezone)
		assert.True(t, resp.AutoConfirm)
	})

	t.Run("не менеджер получает отказ", func(t *testing.T) {
		repo := &fakeConfigRepo{}
		svc := NewService(repo, &fakeBusinessClient{business: managedBusiness()}, nopLogger{})

		req := validUpdateRequest()
		req.UserID = 100

		_, err := svc.Update(context.Background(), req)
		assert.ErrorIs(t, err, ErrAccessDenied)
		assert.Nil(t, repo.upserted)
	})

	t.Run("заведение не найдено", func(t *testing.T) {
		svc := NewService(&fakeConfigRepo{}, &fakeBusinessClient{err: businessservice.ErrBusinessNotFound}, nopLogger{})

		_, err := svc.Update(context.Background(), validUpdateRequest())
		assert.ErrorIs(t, err, ErrBusinessNotFound)
	})
}

func TestUpdateValidation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*models.UpdateConfigRequest)
	}{
		{"отрицательная вместимость", func(r *models.UpdateConfigRequest) { r.GlobalCapacity = -1 }},
		{"отрицательный leadHours", func(r *models.UpdateConfigRequest) { r.LeadHours = -0.5 }},
		{"maxDays за пределом", func(r *models.UpdateConfigRequest) { r.MaxDays = 366 }},
		{"слишком длинная бронь", func(r *models.UpdateConfigRequest) { r.AvgDurationMinutes = 481 }},
		{"шаг слотов за пределом", func(r *models.UpdateConfigRequest) { r.SlotIntervalMinutes = 241 }},
		{"неизвестный часовой пояс", func(r *models.UpdateConfigRequest) { r.Timezone = "Mars/Olympus" }},
		{"зона без id", func(r *models.UpdateConfigRequest) {
			r.Zones = []models.ZoneEntry{{ID: "", Name: "Зал"}}
		}},
		{"дубликат id зоны", func(r *models.UpdateConfigRequest) {
			r.Zones = []models.ZoneEntry{{ID: "main"}, {ID: "main"}}
		}},
		{"отрицательная вместимость зоны", func(r *models.UpdateConfigRequest) {
			r.Zones = []models.ZoneEntry{{ID: "main", Capacity: -1}}
		}},
		{"кривой формат заблокированной даты", func(r *models.UpdateConfigRequest) {
			r.BlockedDates = []string{"31.12.2026"}
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &fakeConfigRepo{}
			svc := NewService(repo, &fakeBusinessClient{business: managedBusiness()}, nopLogger{})

			req := validUpdateRequest()
			tc.mutate(req)

			_, err := svc.Update(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Nil(t, repo.upserted)
		})
	}
}

func TestUpdateShiftValidation(t *testing.T) {
	// На записи смены валидируются строго, в отличие от чтения,
	// где некорректные записи молча отбрасываются
	cases := []struct {
		name   string
		shifts []models.ShiftEntry
	}{
		{"кривой формат открытия", []models.ShiftEntry{{From: "25:00", To: "16:00"}}},
		{"кривой формат закрытия", []models.ShiftEntry{{From: "13:00", To: "abc"}}},
		{"нет закрытия", []models.ShiftEntry{{From: "13:00"}}},
		{"закрытие не позже открытия", []models.ShiftEntry{{From: "16:00", To: "13:00"}}},
		{"нулевая длительность", []models.ShiftEntry{{From: "13:00", To: "13:00"}}},
		{"пересекающиеся смены", []models.ShiftEntry{
			{From: "13:00", To: "17:00"},
			{From: "16:00", To: "22:00"},
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewService(&fakeConfigRepo{}, &fakeBusinessClient{business: managedBusiness()}, nopLogger{})

			req := validUpdateRequest()
			req.Shifts = tc.shifts

			_, err := svc.Update(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}

	t.Run("граничащие смены не считаются пересечением", func(t *testing.T) {
		svc := NewService(&fakeConfigRepo{}, &fakeBusinessClient{business: managedBusiness()}, nopLogger{})

		req := validUpdateRequest()
		req.Shifts = []models.ShiftEntry{
			{From: "12:00", To: "16:00"},
			{From: "16:00", To: "22:00"},
		}

		_, err := svc.Update(context.Background(), req)
		assert.NoError(t, err)
	})
}

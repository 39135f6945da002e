package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tavolo-app/ReservationService/internal/domain"
	configRepo "github.com/tavolo-app/ReservationService/internal/infra/storage/venueconfig"
)

type fakeReservationRepo struct {
	reservations []*domain.Reservation
	err          error
}

func (f *fakeReservationRepo) GetByVenueWithFilter(_ context.Context, _ domain.VenueReservationsFilter) ([]*domain.Reservation, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.reservations, nil
}

type fakeConfigRepo struct {
	config *domain.VenueConfig
	err    error
}

func (f *fakeConfigRepo) GetByBusinessID(_ context.Context, _ int64) (*domain.VenueConfig, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.config, nil
}

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time { return c.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// testNow фиксированный момент "сейчас": 2026-09-01 12:00 UTC
var testNow = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

func newUseCase(config *domain.VenueConfig, reservations []*domain.Reservation) *UseCase {
	uc := NewUseCase(
		&fakeReservationRepo{reservations: reservations},
		&fakeConfigRepo{config: config},
		nopLogger{},
	)
	uc.timeProvider = &fixedClock{now: testNow}
	return uc
}

func baseConfig() *domain.VenueConfig {
	return &domain.VenueConfig{
		BusinessID:          1,
		GlobalCapacity:      10,
		AvgDurationMinutes:  90,
		SlotIntervalMinutes: 30,
		MaxDays:             30,
		RawShifts: []domain.RawShift{
			{From: "13:00", To: "16:00"},
		},
	}
}

func baseRequest() *Request {
	return &Request{
		BusinessID: 1,
		Date:       time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
	}
}

func startTimes(slots []Slot) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.StartTime.String()
	}
	return out
}

func TestExecute_SlotGeneration(t *testing.T) {
	t.Run("слоты идут от начала смены с фиксированным шагом", func(t *testing.T) {
		uc := newUseCase(baseConfig(), nil)

		resp, err := uc.Execute(context.Background(), baseRequest())
		require.NoError(t, err)

		// Полуинтервал [13:00, 16:00): слот 16:00 не генерируется
		assert.Equal(t, []string{"13:00", "13:30", "14:00", "14:30", "15:00", "15:30"}, startTimes(resp.Slots))
		for _, s := range resp.Slots {
			assert.Equal(t, 90, s.DurationMinutes)
			assert.Equal(t, 10, s.TotalSeats)
			assert.Equal(t, 10, s.AvailableSeats)
		}
	})

	t.Run("генерация детерминирована", func(t *testing.T) {
		uc := newUseCase(baseConfig(), nil)

		first, err := uc.Execute(context.Background(), baseRequest())
		require.NoError(t, err)
		second, err := uc.Execute(context.Background(), baseRequest())
		require.NoError(t, err)

		assert.Equal(t, first.Slots, second.Slots)
	})

	t.Run("несколько смен в один день", func(t *testing.T) {
		config := baseConfig()
		config.RawShifts = []domain.RawShift{
			{From: "12:00", To: "14:00"},
			{Start: "19:00", End: "21:00"},
		}
		uc := newUseCase(config, nil)

		resp, err := uc.Execute(context.Background(), baseRequest())
		require.NoError(t, err)

		assert.Equal(t, []string{"12:00", "12:30", "13:00", "13:30", "19:00", "19:30", "20:00", "20:30"}, startTimes(resp.Slots))
	})

	t.Run("некорректные смены молча отбрасываются", func(t *testing.T) {
		config := baseConfig()
		config.RawShifts = []domain.RawShift{
			{From: "25:00", To: "26:00"},
			{From: "13:00", To: "14:00"},
		}
		uc := newUseCase(config, nil)

		resp, err := uc.Execute(context.Background(), baseRequest())
		require.NoError(t, err)
		assert.Equal(t, []string{"13:00", "13:30"}, startTimes(resp.Slots))
	})

	t.Run("нет ни одной валидной смены - пустой список", func(t *testing.T) {
		config := baseConfig()
		config.RawShifts = nil
		uc := newUseCase(config, nil)

		resp, err := uc.Execute(context.Background(), baseRequest())
		require.NoError(t, err)
		assert.Empty(t, resp.Slots)
	})
}

func TestExecute_TodayLeadBuffer(t *testing.T) {
	// Сейчас 12:00; для сегодняшней даты слоты не раньше now + буфер
	today := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	t.Run("буфер по умолчанию 15 минут", func(t *testing.T) {
		config := baseConfig()
		config.RawShifts = []domain.RawShift{{From: "11:00", To: "14:00"}}
		uc := newUseCase(config, nil)

		req := baseRequest()
		req.Date = today

		resp, err := uc.Execute(context.Background(), req)
		require.NoError(t, err)

		// Порог 12:15: слоты 11:00-12:00 отсечены
		assert.Equal(t, []string{"12:30", "13:00", "13:30"}, startTimes(resp.Slots))
	})

	t.Run("lead_hours имеет приоритет над буфером по умолчанию", func(t *testing.T) {
		config := baseConfig()
		config.RawShifts = []domain.RawShift{{From: "11:00", To: "16:00"}}
		config.LeadHours = 1.5
		uc := newUseCase(config, nil)

		req := baseRequest()
		req.Date = today

		resp, err := uc.Execute(context.Background(), req)
		require.NoError(t, err)

		// Порог 13:30
		assert.Equal(t, []string{"13:30", "14:00", "14:30", "15:00", "15:30"}, startTimes(resp.Slots))
	})

	t.Run("будущая дата без нижней границы", func(t *testing.T) {
		config := baseConfig()
		config.RawShifts = []domain.RawShift{{From: "11:00", To: "12:30"}}
		uc := newUseCase(config, nil)

		resp, err := uc.Execute(context.Background(), baseRequest())
		require.NoError(t, err)
		assert.Equal(t, []string{"11:00", "11:30", "12:00"}, startTimes(resp.Slots))
	})
}

func TestExecute_SeatAvailability(t *testing.T) {
	day := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	active := func(at time.Time, party int) *domain.Reservation {
		return &domain.Reservation{
			BusinessID: 1,
			PartySize:  party,
			ReservedAt: at,
			Status:     domain.StatusConfirmed,
		}
	}

	t.Run("места вычитаются в окне пересечения", func(t *testing.T) {
		// Брони: 4 места с 13:30 (13:30-15:00) и 6 мест с 14:00 (14:00-15:30)
		reservations := []*domain.Reservation{
			active(day.Add(13*time.Hour+30*time.Minute), 4),
			active(day.Add(14*time.Hour), 6),
		}
		uc := newUseCase(baseConfig(), reservations)

		resp, err := uc.Execute(context.Background(), baseRequest())
		require.NoError(t, err)
		require.Len(t, resp.Slots, 6)

		// 13:00-14:30 пересекает обе брони: 10 - 10 = 0
		bySlot := map[string]int{}
		for _, s := range resp.Slots {
			bySlot[s.StartTime.String()] = s.AvailableSeats
		}
		assert.Equal(t, 0, bySlot["13:00"])
		assert.Equal(t, 0, bySlot["13:30"])
		assert.Equal(t, 0, bySlot["14:00"])
		assert.Equal(t, 0, bySlot["14:30"])
		// 15:00-16:30 пересекает только бронь 14:00-15:30: 10 - 6 = 4
		assert.Equal(t, 4, bySlot["15:00"])
		// 15:30-17:00 начинается ровно в момент освобождения: пересечений нет
		assert.Equal(t, 10, bySlot["15:30"])
	})

	t.Run("отменённые брони не занимают места", func(t *testing.T) {
		cancelled := active(day.Add(13*time.Hour), 10)
		cancelled.Status = domain.StatusCancelledByVenue
		uc := newUseCase(baseConfig(), []*domain.Reservation{cancelled})

		resp, err := uc.Execute(context.Background(), baseRequest())
		require.NoError(t, err)
		for _, s := range resp.Slots {
			assert.Equal(t, 10, s.AvailableSeats)
		}
	})

	t.Run("переполнение сверх вместимости не уводит в минус", func(t *testing.T) {
		uc := newUseCase(baseConfig(), []*domain.Reservation{
			active(day.Add(13*time.Hour+30*time.Minute), 8),
			active(day.Add(14*time.Hour), 8),
		})

		resp, err := uc.Execute(context.Background(), baseRequest())
		require.NoError(t, err)

		for _, s := range resp.Slots {
			assert.GreaterOrEqual(t, s.AvailableSeats, 0)
		}
	})

	t.Run("безлимитный пул не считает доступность", func(t *testing.T) {
		config := baseConfig()
		config.GlobalCapacity = 0
		uc := newUseCase(config, []*domain.Reservation{
			active(day.Add(14*time.Hour), 50),
		})

		resp, err := uc.Execute(context.Background(), baseRequest())
		require.NoError(t, err)
		for _, s := range resp.Slots {
			assert.Equal(t, 0, s.TotalSeats)
			assert.Equal(t, 0, s.AvailableSeats)
			assert.False(t, s.IsFull())
		}
	})
}

func TestExecute_Zones(t *testing.T) {
	zonedConfig := func() *domain.VenueConfig {
		config := baseConfig()
		config.Zones = []domain.Zone{
			{ID: "terrace", Name: "Терраса", Capacity: 6, Enabled: false},
			{ID: "main", Name: "Основной зал", Capacity: 8, Enabled: true},
		}
		return config
	}

	t.Run("зона по умолчанию - первая включённая", func(t *testing.T) {
		uc := newUseCase(zonedConfig(), nil)

		resp, err := uc.Execute(context.Background(), baseRequest())
		require.NoError(t, err)

		require.NotNil(t, resp.ZoneID)
		assert.Equal(t, "main", *resp.ZoneID)
		assert.Equal(t, "Основной зал", resp.ZoneName)
		for _, s := range resp.Slots {
			assert.Equal(t, 8, s.TotalSeats)
		}
	})

	t.Run("несуществующая зона", func(t *testing.T) {
		uc := newUseCase(zonedConfig(), nil)
		req := baseRequest()
		zoneID := "garden"
		req.ZoneID = &zoneID

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrZoneNotFound)
	})

	t.Run("отключённая зона", func(t *testing.T) {
		uc := newUseCase(zonedConfig(), nil)
		req := baseRequest()
		zoneID := "terrace"
		req.ZoneID = &zoneID

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrZoneNotAvailable)
	})

	t.Run("legacy-запись без zone_id атрибутируется по тегу в заметках", func(t *testing.T) {
		day := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
		legacy := &domain.Reservation{
			BusinessID: 1,
			PartySize:  5,
			ReservedAt: day.Add(14 * time.Hour),
			Status:     domain.StatusPending,
			Notes:      "[ID:main] [Zona: Основной зал]\nу окна",
		}
		uc := newUseCase(zonedConfig(), []*domain.Reservation{legacy})

		resp, err := uc.Execute(context.Background(), baseRequest())
		require.NoError(t, err)

		bySlot := map[string]int{}
		for _, s := range resp.Slots {
			bySlot[s.StartTime.String()] = s.AvailableSeats
		}
		assert.Equal(t, 3, bySlot["14:00"])
		assert.Equal(t, 8, bySlot["15:30"])
	})
}

func TestExecute_DateValidation(t *testing.T) {
	t.Run("вчерашняя дата", func(t *testing.T) {
		uc := newUseCase(baseConfig(), nil)
		req := baseRequest()
		req.Date = time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidDate)
	})

	t.Run("дата за горизонтом бронирования", func(t *testing.T) {
		uc := newUseCase(baseConfig(), nil)
		req := baseRequest()
		req.Date = time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrDateTooFarInFuture)
	})

	t.Run("заблокированная дата", func(t *testing.T) {
		config := baseConfig()
		config.BlockedDates = []string{"2026-09-10"}
		uc := newUseCase(config, nil)

		_, err := uc.Execute(context.Background(), baseRequest())
		assert.ErrorIs(t, err, ErrDateBlocked)
	})
}

func TestExecute_LocalDateWindow(t *testing.T) {
	// Дата в запросе распарсена в UTC; окно бронирования считается
	// в часовом поясе заведения по календарным полям, а не по инстантам

	t.Run("к западу от UTC слоты на сегодня доступны", func(t *testing.T) {
		// now = 2026-09-01 05:00 UTC = 2026-08-31 19:00 в Гонолулу (UTC-10)
		config := baseConfig()
		config.Timezone = "Pacific/Honolulu"
		config.RawShifts = []domain.RawShift{{From: "18:00", To: "22:00"}}
		uc := newUseCase(config, nil)
		uc.timeProvider = &fixedClock{now: time.Date(2026, 9, 1, 5, 0, 0, 0, time.UTC)}

		req := baseRequest()
		req.Date = time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

		resp, err := uc.Execute(context.Background(), req)
		require.NoError(t, err)

		// Нижняя граница "сегодня": 19:00 локального + 15 минут буфера
		assert.Equal(t, []string{"19:30", "20:00", "20:30", "21:00", "21:30"}, startTimes(resp.Slots))
	})

	t.Run("к востоку от UTC последний день горизонта принимается", func(t *testing.T) {
		config := baseConfig()
		config.Timezone = "Europe/Moscow"
		uc := newUseCase(config, nil)

		req := baseRequest()
		req.Date = time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC) // сегодня + 29 при maxDays=30

		resp, err := uc.Execute(context.Background(), req)
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Slots)
	})
}

func TestExecute_BusinessNotFound(t *testing.T) {
	uc := NewUseCase(
		&fakeReservationRepo{},
		&fakeConfigRepo{err: configRepo.ErrConfigNotFound},
		nopLogger{},
	)
	uc.timeProvider = &fixedClock{now: testNow}

	_, err := uc.Execute(context.Background(), baseRequest())
	assert.ErrorIs(t, err, ErrBusinessNotFound)
}

package create_reservation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tavolo-app/ReservationService/internal/domain"
	configRepo "github.com/tavolo-app/ReservationService/internal/infra/storage/venueconfig"
	"github.com/tavolo-app/ReservationService/internal/integrations/userservice"
	"github.com/tavolo-app/ReservationService/pkg/types"
)

// --- фейки зависимостей ---

type fakeReservationRepo struct {
	existing  []*domain.Reservation
	getErr    error
	createErr error

	created []*domain.Reservation
}

func (f *fakeReservationRepo) Create(_ context.Context, r *domain.Reservation) (*domain.Reservation, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	c := *r
	c.ID = int64(len(f.created) + 100)
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	f.created = append(f.created, &c)
	return &c, nil
}

func (f *fakeReservationRepo) GetByVenueWithFilter(_ context.Context, _ domain.VenueReservationsFilter) ([]*domain.Reservation, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.existing, nil
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

type fakeUserClient struct {
	profile *userservice.Profile
	err     error
}

func (f *fakeUserClient) GetProfileWithGracefulDegradation(_ context.Context, _ int64) (*userservice.Profile, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.profile, nil
}

type fakePublisher struct {
	err       error
	published []*domain.Reservation
}

func (f *fakePublisher) ReservationCreated(_ context.Context, r *domain.Reservation) error {
	f.published = append(f.published, r)
	return f.err
}

type fakeTxManager struct{}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time { return c.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// --- тестовая обвязка ---

type env struct {
	uc          *UseCase
	reservation *fakeReservationRepo
	config      *fakeConfigRepo
	user        *fakeUserClient
	publisher   *fakePublisher
}

// testNow фиксированный момент "сейчас": 2026-09-01 12:00 UTC
var testNow = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

func newEnv(config *domain.VenueConfig) *env {
	e := &env{
		reservation: &fakeReservationRepo{},
		config:      &fakeConfigRepo{config: config},
		user:        &fakeUserClient{err: userservice.ErrProfileNotFound},
		publisher:   &fakePublisher{},
	}
	e.uc = NewUseCase(e.reservation, e.config, e.user, e.publisher, &fakeTxManager{}, nopLogger{})
	e.uc.timeProvider = &fixedClock{now: testNow}
	return e
}

func baseConfig() *domain.VenueConfig {
	return &domain.VenueConfig{
		BusinessID:         1,
		GlobalCapacity:     10,
		AvgDurationMinutes: 90,
		MaxDays:            30,
		RawShifts: []domain.RawShift{
			{From: "13:00", To: "16:00"},
		},
	}
}

func baseRequest() *Request {
	return &Request{
		BusinessID:    1,
		CustomerName:  "Иван Петров",
		CustomerPhone: "+79001234567",
		PartySize:     2,
		Date:          time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		StartTime:     types.TimeString("14:15"),
	}
}

func activeReservation(at time.Time, party int) *domain.Reservation {
	return &domain.Reservation{
		ID:         int64(party),
		BusinessID: 1,
		PartySize:  party,
		ReservedAt: at,
		Status:     domain.StatusConfirmed,
	}
}

// --- тесты ---

func TestExecute_Success(t *testing.T) {
	e := newEnv(baseConfig())

	resp, err := e.uc.Execute(context.Background(), baseRequest())
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, int64(100), resp.ID)
	assert.Equal(t, time.Date(2026, 9, 10, 14, 15, 0, 0, time.UTC), resp.ReservedAt)
	assert.Nil(t, resp.ZoneID)

	require.Len(t, e.reservation.created, 1)
	require.Len(t, e.publisher.published, 1)
	assert.Equal(t, resp.ID, e.publisher.published[0].ID)
}

func TestExecute_TimezoneConversion(t *testing.T) {
	// Локальные дата и время заведения переводятся в UTC по его часовому поясу
	config := baseConfig()
	config.Timezone = "Europe/Moscow"
	config.RawShifts = []domain.RawShift{{From: "12:00", To: "23:00"}}

	e := newEnv(config)
	req := baseRequest()
	req.StartTime = types.TimeString("19:30")

	resp, err := e.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	// 19:30 MSK (UTC+3) == 16:30 UTC
	assert.Equal(t, time.Date(2026, 9, 10, 16, 30, 0, 0, time.UTC), resp.ReservedAt)
}

func TestExecute_CapacityWindow(t *testing.T) {
	// Смена 13:00-16:00, длительность 90 мин, общая вместимость 10.
	// Заняты 4 места с 13:30 и 6 мест с 14:00 - окно 14:15-15:45 заполнено полностью
	day := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	existing := []*domain.Reservation{
		activeReservation(day.Add(13*time.Hour+30*time.Minute), 4),
		activeReservation(day.Add(14*time.Hour), 6),
	}

	t.Run("мест нет - отказ без записи в хранилище", func(t *testing.T) {
		e := newEnv(baseConfig())
		e.reservation.existing = existing

		_, err := e.uc.Execute(context.Background(), baseRequest())
		require.ErrorIs(t, err, ErrCapacityExceeded)

		assert.Empty(t, e.reservation.created)
		assert.Empty(t, e.publisher.published)
	})

	t.Run("граничащий интервал не считается пересечением", func(t *testing.T) {
		e := newEnv(baseConfig())
		e.reservation.existing = []*domain.Reservation{
			activeReservation(day.Add(13*time.Hour), 10), // 13:00-14:30
		}

		req := baseRequest()
		req.StartTime = types.TimeString("14:30") // начинается ровно в момент освобождения

		_, err := e.uc.Execute(context.Background(), req)
		require.NoError(t, err)
	})

	t.Run("отменённые брони места не занимают", func(t *testing.T) {
		e := newEnv(baseConfig())
		cancelled := activeReservation(day.Add(14*time.Hour), 10)
		cancelled.Status = domain.StatusCancelledByUser
		e.reservation.existing = []*domain.Reservation{cancelled}

		_, err := e.uc.Execute(context.Background(), baseRequest())
		require.NoError(t, err)
	})

	t.Run("вместимость 0 - безлимит", func(t *testing.T) {
		config := baseConfig()
		config.GlobalCapacity = 0
		e := newEnv(config)
		e.reservation.existing = existing

		_, err := e.uc.Execute(context.Background(), baseRequest())
		require.NoError(t, err)
	})
}

func TestExecute_PastTime(t *testing.T) {
	config := baseConfig()
	config.RawShifts = []domain.RawShift{{From: "00:00", To: "23:59"}}

	t.Run("момент ровно сейчас отклоняется", func(t *testing.T) {
		e := newEnv(config)
		req := baseRequest()
		req.Date = time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
		req.StartTime = types.TimeString("12:00") // testNow

		_, err := e.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrPastTime)
	})

	t.Run("сегодня, но раньше текущего времени", func(t *testing.T) {
		e := newEnv(config)
		req := baseRequest()
		req.Date = time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
		req.StartTime = types.TimeString("11:00")

		_, err := e.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrPastTime)
	})

	t.Run("вчерашняя дата", func(t *testing.T) {
		e := newEnv(config)
		req := baseRequest()
		req.Date = time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

		_, err := e.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidDate)
	})
}

func TestExecute_DateWindow(t *testing.T) {
	t.Run("дата за горизонтом бронирования", func(t *testing.T) {
		e := newEnv(baseConfig())
		req := baseRequest()
		req.Date = time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC) // max_days = 30

		_, err := e.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrDateTooFarInFuture)
	})

	t.Run("последний день горизонта включительно", func(t *testing.T) {
		e := newEnv(baseConfig())
		req := baseRequest()
		req.Date = time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC) // сегодня + 29

		_, err := e.uc.Execute(context.Background(), req)
		assert.NoError(t, err)
	})

	t.Run("заблокированная дата", func(t *testing.T) {
		config := baseConfig()
		config.BlockedDates = []string{"2026-09-10"}
		e := newEnv(config)

		_, err := e.uc.Execute(context.Background(), baseRequest())
		assert.ErrorIs(t, err, ErrDateBlocked)
	})
}

func TestExecute_LocalDateWindow(t *testing.T) {
	// Дата в запросе распарсена в UTC; окно бронирования считается
	// в часовом поясе заведения по календарным полям, а не по инстантам

	t.Run("к западу от UTC сегодняшний день не считается прошлым", func(t *testing.T) {
		// now = 2026-09-01 05:00 UTC = 2026-08-31 19:00 в Гонолулу (UTC-10)
		config := baseConfig()
		config.Timezone = "Pacific/Honolulu"
		config.RawShifts = []domain.RawShift{{From: "18:00", To: "22:00"}}
		e := newEnv(config)
		e.uc.timeProvider = &fixedClock{now: time.Date(2026, 9, 1, 5, 0, 0, 0, time.UTC)}

		req := baseRequest()
		req.Date = time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
		req.StartTime = types.TimeString("20:00")

		resp, err := e.uc.Execute(context.Background(), req)
		require.NoError(t, err)

		// 20:00 HST == 06:00 UTC следующего дня
		assert.Equal(t, time.Date(2026, 9, 1, 6, 0, 0, 0, time.UTC), resp.ReservedAt)
	})

	t.Run("к востоку от UTC последний день горизонта принимается", func(t *testing.T) {
		config := baseConfig()
		config.Timezone = "Europe/Moscow"
		e := newEnv(config)

		req := baseRequest()
		req.Date = time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC) // сегодня + 29 при maxDays=30

		_, err := e.uc.Execute(context.Background(), req)
		assert.NoError(t, err)
	})
}

func TestExecute_OutsideShift(t *testing.T) {
	e := newEnv(baseConfig())
	req := baseRequest()
	req.StartTime = types.TimeString("17:00") // смена закрывается в 16:00

	_, err := e.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrOutsideShift)
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

	t.Run("без зоны в запросе выбирается первая включённая", func(t *testing.T) {
		e := newEnv(zonedConfig())

		resp, err := e.uc.Execute(context.Background(), baseRequest())
		require.NoError(t, err)

		require.NotNil(t, resp.ZoneID)
		assert.Equal(t, "main", *resp.ZoneID)
		assert.Equal(t, "Основной зал", resp.ZoneName)
		assert.Equal(t, "[ID:main] [Zona: Основной зал]\n", resp.Notes)
	})

	t.Run("отключённая зона недоступна", func(t *testing.T) {
		e := newEnv(zonedConfig())
		req := baseRequest()
		zoneID := "terrace"
		req.ZoneID = &zoneID

		_, err := e.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrZoneNotAvailable)
	})

	t.Run("несуществующая зона недоступна", func(t *testing.T) {
		e := newEnv(zonedConfig())
		req := baseRequest()
		zoneID := "garden"
		req.ZoneID = &zoneID

		_, err := e.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrZoneNotAvailable)
	})

	t.Run("legacy-запись без тегов зоны занимает места в каждой зоне", func(t *testing.T) {
		e := newEnv(zonedConfig())
		day := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
		legacy := activeReservation(day.Add(14*time.Hour), 7)
		legacy.Notes = "столик у окна" // ни [id:...], ни zona:
		e.reservation.existing = []*domain.Reservation{legacy}

		// 7 занятых + 2 запрошенных > 8 мест зоны main
		_, err := e.uc.Execute(context.Background(), baseRequest())
		assert.ErrorIs(t, err, ErrCapacityExceeded)
	})

	t.Run("запись чужой зоны в пуле не учитывается", func(t *testing.T) {
		e := newEnv(zonedConfig())
		day := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
		other := activeReservation(day.Add(14*time.Hour), 7)
		terrace := "terrace"
		other.ZoneID = &terrace
		e.reservation.existing = []*domain.Reservation{other}

		_, err := e.uc.Execute(context.Background(), baseRequest())
		assert.NoError(t, err)
	})

	t.Run("все зоны отключены - глобальный пул", func(t *testing.T) {
		config := zonedConfig()
		for i := range config.Zones {
			config.Zones[i].Enabled = false
		}
		e := newEnv(config)

		resp, err := e.uc.Execute(context.Background(), baseRequest())
		require.NoError(t, err)
		assert.Nil(t, resp.ZoneID)
	})
}

func TestExecute_AutoConfirm(t *testing.T) {
	config := baseConfig()
	config.AutoConfirm = true
	e := newEnv(config)

	resp, err := e.uc.Execute(context.Background(), baseRequest())
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
}

func TestExecute_ProfileEnrichment(t *testing.T) {
	t.Run("email подтягивается из профиля", func(t *testing.T) {
		e := newEnv(baseConfig())
		email := "ivan@example.com"
		e.user = &fakeUserClient{profile: &userservice.Profile{ID: 42, Email: &email}}
		e.uc.userClient = e.user

		req := baseRequest()
		req.UserID = 42

		resp, err := e.uc.Execute(context.Background(), req)
		require.NoError(t, err)
		require.NotNil(t, resp.CustomerEmail)
		assert.Equal(t, email, *resp.CustomerEmail)
	})

	t.Run("недоступность профиля не блокирует бронь", func(t *testing.T) {
		e := newEnv(baseConfig())
		e.user.err = userservice.ErrServiceDegraded

		req := baseRequest()
		req.UserID = 42

		resp, err := e.uc.Execute(context.Background(), req)
		require.NoError(t, err)
		assert.Nil(t, resp.CustomerEmail)
	})

	t.Run("явный email из запроса имеет приоритет", func(t *testing.T) {
		e := newEnv(baseConfig())
		profileEmail := "profile@example.com"
		e.user = &fakeUserClient{profile: &userservice.Profile{ID: 42, Email: &profileEmail}}
		e.uc.userClient = e.user

		req := baseRequest()
		req.UserID = 42
		reqEmail := "manual@example.com"
		req.CustomerEmail = &reqEmail

		resp, err := e.uc.Execute(context.Background(), req)
		require.NoError(t, err)
		require.NotNil(t, resp.CustomerEmail)
		assert.Equal(t, reqEmail, *resp.CustomerEmail)
	})
}

func TestExecute_NotificationFailureTolerated(t *testing.T) {
	e := newEnv(baseConfig())
	e.publisher.err = errors.New("broker unavailable")

	resp, err := e.uc.Execute(context.Background(), baseRequest())
	require.NoError(t, err)
	assert.NotZero(t, resp.ID)
	require.Len(t, e.reservation.created, 1)
}

func TestExecute_BusinessNotFound(t *testing.T) {
	e := newEnv(nil)
	e.config.err = configRepo.ErrConfigNotFound

	_, err := e.uc.Execute(context.Background(), baseRequest())
	assert.ErrorIs(t, err, ErrBusinessNotFound)
}

func TestExecute_Validation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Request)
	}{
		{"нулевой businessID", func(r *Request) { r.BusinessID = 0 }},
		{"пустое имя", func(r *Request) { r.CustomerName = "  " }},
		{"пустой телефон", func(r *Request) { r.CustomerPhone = "" }},
		{"partySize меньше минимума", func(r *Request) { r.PartySize = 0 }},
		{"partySize больше максимума", func(r *Request) { r.PartySize = domain.MaxPartySize + 1 }},
		{"нет даты", func(r *Request) { r.Date = time.Time{} }},
		{"нет времени", func(r *Request) { r.StartTime = "" }},
		{"кривой формат времени", func(r *Request) { r.StartTime = types.TimeString("25:99") }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := newEnv(baseConfig())
			req := baseRequest()
			tc.mutate(req)

			_, err := e.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Empty(t, e.reservation.created)
		})
	}
}

package venueconfig

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/tavolo-app/ReservationService/internal/domain"
	"github.com/tavolo-app/ReservationService/pkg/dbmetrics"
	"github.com/tavolo-app/ReservationService/pkg/psqlbuilder"
)

// DBExecutor интерфейс для выполнения SQL запросов
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий для работы с конфигурацией заведений
// Смены, зоны и заблокированные даты лежат в JSONB-колонках: смены хранятся
// в сыром legacy-формате и нормализуются доменным парсером при чтении
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория конфигурации
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByBusinessID получает конфигурацию заведения
func (r *Repository) GetByBusinessID(ctx context.Context, businessID int64) (*domain.VenueConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"business_id",
		"global_capacity",
		"auto_confirm",
		"lead_hours",
		"max_days",
		"avg_duration_minutes",
		"slot_interval_minutes",
		"timezone",
		"shifts",
		"zones",
		"blocked_dates",
		"created_at",
		"updated_at",
	).
		From("venue_config").
		Where(squirrel.Eq{"business_id": businessID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByBusinessID - build select query: %v", ErrBuildQuery, err)
	}

	var config domain.VenueConfig
	var shiftsJSON, zonesJSON, blockedJSON []byte
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&config.BusinessID,
		&config.GlobalCapacity,
		&config.AutoConfirm,
		&config.LeadHours,
		&config.MaxDays,
		&config.AvgDurationMinutes,
		&config.SlotIntervalMinutes,
		&config.Timezone,
		&shiftsJSON,
		&zonesJSON,
		&blockedJSON,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBusinessID - scan config: %v", ErrScanRow, err)
	}

	// Некорректный JSON в legacy-полях не фатален: поле считается пустым
	if len(shiftsJSON) > 0 {
		_ = json.Unmarshal(shiftsJSON, &config.RawShifts)
	}
	if len(zonesJSON) > 0 {
		_ = json.Unmarshal(zonesJSON, &config.Zones)
	}
	if len(blockedJSON) > 0 {
		_ = json.Unmarshal(blockedJSON, &config.BlockedDates)
	}

	config.CreatedAt = createdAt.Time
	config.UpdatedAt = updatedAt.Time

	return &config, nil
}

// Upsert создает или полностью обновляет конфигурацию заведения
func (r *Repository) Upsert(ctx context.Context, config *domain.VenueConfig) (*domain.VenueConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	shiftsJSON, err := json.Marshal(config.RawShifts)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - marshal shifts: %v", ErrEncode, err)
	}
	zonesJSON, err := json.Marshal(config.Zones)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - marshal zones: %v", ErrEncode, err)
	}
	blockedJSON, err := json.Marshal(config.BlockedDates)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - marshal blocked dates: %v", ErrEncode, err)
	}

	query, args, err := psqlbuilder.Insert("venue_config").
		Columns(
			"business_id",
			"global_capacity",
			"auto_confirm",
			"lead_hours",
			"max_days",
			"avg_duration_minutes",
			"slot_interval_minutes",
			"timezone",
			"shifts",
			"zones",
			"blocked_dates",
		).
		Values(
			config.BusinessID,
			config.GlobalCapacity,
			config.AutoConfirm,
			config.LeadHours,
			config.MaxDays,
			config.AvgDurationMinutes,
			config.SlotIntervalMinutes,
			config.Timezone,
			shiftsJSON,
			zonesJSON,
			blockedJSON,
		).
		Suffix(`ON CONFLICT (business_id) DO UPDATE SET
			global_capacity = EXCLUDED.global_capacity,
			auto_confirm = EXCLUDED.auto_confirm,
			lead_hours = EXCLUDED.lead_hours,
			max_days = EXCLUDED.max_days,
			avg_duration_minutes = EXCLUDED.avg_duration_minutes,
			slot_interval_minutes = EXCLUDED.slot_interval_minutes,
			timezone = EXCLUDED.timezone,
			shifts = EXCLUDED.shifts,
			zones = EXCLUDED.zones,
			blocked_dates = EXCLUDED.blocked_dates,
			updated_at = NOW()
		RETURNING created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build upsert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute upsert: %v", ErrExecQuery, err)
	}

	config.CreatedAt = createdAt.Time
	config.UpdatedAt = updatedAt.Time

	return config, nil
}

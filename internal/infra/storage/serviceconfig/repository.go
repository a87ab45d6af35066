package serviceconfig

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/psqlbuilder"
)

var columns = []string{
	"sitter_id",
	"service",
	"enabled",
	"slot_step_min",
	"min_duration_min",
	"max_duration_min",
	"lead_time_min",
	"buffer_before_min",
	"buffer_after_min",
	"overnight_required",
	"check_in_start_min",
	"check_in_end_min",
	"check_out_start_min",
	"check_out_end_min",
	"updated_at",
}

// Repository репозиторий настроек услуг ситтера
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetBySitterAndService получает сохранённую конфигурацию услуги.
// Если строки нет, возвращает ErrConfigNotFound - дефолты подставляет сервисный слой.
func (r *Repository) GetBySitterAndService(ctx context.Context, sitterID int64, service domain.ServiceType) (*domain.ServiceConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("service_configs").
		Where(squirrel.Eq{"sitter_id": sitterID, "service": string(service)}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetBySitterAndService - build select query: %v", ErrBuildQuery, err)
	}

	cfg, err := scanConfig(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySitterAndService - scan config: %v", ErrScanRow, err)
	}

	return cfg, nil
}

// ListBySitter получает все сохранённые конфигурации ситтера
func (r *Repository) ListBySitter(ctx context.Context, sitterID int64) ([]domain.ServiceConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("service_configs").
		Where(squirrel.Eq{"sitter_id": sitterID}).
		OrderBy("service ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListBySitter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBySitter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	configs := make([]domain.ServiceConfig, 0)
	for rows.Next() {
		cfg, err := scanConfig(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListBySitter - scan row: %v", ErrScanRow, err)
		}
		configs = append(configs, *cfg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListBySitter - rows error: %v", ErrScanRow, err)
	}

	return configs, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanConfig(row scanner) (*domain.ServiceConfig, error) {
	var cfg domain.ServiceConfig
	var checkInStart, checkInEnd, checkOutStart, checkOutEnd sql.NullInt64
	var updatedAt sql.NullTime

	err := row.Scan(
		&cfg.SitterID,
		&cfg.Service,
		&cfg.Enabled,
		&cfg.SlotStepMin,
		&cfg.MinDurationMin,
		&cfg.MaxDurationMin,
		&cfg.LeadTimeMin,
		&cfg.BufferBeforeMin,
		&cfg.BufferAfterMin,
		&cfg.OvernightRequired,
		&checkInStart,
		&checkInEnd,
		&checkOutStart,
		&checkOutEnd,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	// Слишком мелкий шаг из базы поднимаем до минимального
	if cfg.SlotStepMin < domain.MinSlotStepMinutes {
		cfg.SlotStepMin = domain.MinSlotStepMinutes
	}

	cfg.CheckInStartMin = nullableInt(checkInStart)
	cfg.CheckInEndMin = nullableInt(checkInEnd)
	cfg.CheckOutStartMin = nullableInt(checkOutStart)
	cfg.CheckOutEndMin = nullableInt(checkOutEnd)
	cfg.UpdatedAt = updatedAt.Time

	return &cfg, nil
}

func nullableInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}

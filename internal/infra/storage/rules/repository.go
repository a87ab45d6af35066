package rules

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/psqlbuilder"
)

// Repository репозиторий еженедельных правил доступности
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория правил
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListBySitter получает правила ситтера. Если services пуст - по всем услугам.
func (r *Repository) ListBySitter(ctx context.Context, sitterID int64, services []domain.ServiceType) ([]domain.AvailabilityRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := listQuery(sitterID, services)
	if err != nil {
		return nil, err
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBySitter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]domain.AvailabilityRule, 0)
	for rows.Next() {
		var rule domain.AvailabilityRule
		err := rows.Scan(
			&rule.ID,
			&rule.SitterID,
			&rule.Service,
			&rule.DayOfWeek,
			&rule.StartMin,
			&rule.EndMin,
			&rule.Status,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListBySitter - scan row: %v", ErrScanRow, err)
		}
		result = append(result, rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListBySitter - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

func listQuery(sitterID int64, services []domain.ServiceType) (string, []interface{}, error) {
	builder := psqlbuilder.Select(
		"id",
		"sitter_id",
		"service",
		"day_of_week",
		"start_minute",
		"end_minute",
		"status",
	).
		From("availability_rules").
		Where(squirrel.Eq{"sitter_id": sitterID})

	if len(services) > 0 {
		builder = builder.Where(squirrel.Eq{"service": serviceStrings(services)})
	}

	query, args, err := builder.OrderBy("id ASC").ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: ListBySitter - build select query: %v", ErrBuildQuery, err)
	}
	return query, args, nil
}

func serviceStrings(services []domain.ServiceType) []string {
	out := make([]string, len(services))
	for i, s := range services {
		out[i] = string(s)
	}
	return out
}

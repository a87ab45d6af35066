package exceptions

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/psqlbuilder"
)

// Repository репозиторий исключений из расписания на конкретные даты
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория исключений
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListBySitterAndRange получает исключения ситтера на даты [from, to] (YYYY-MM-DD, включительно).
// Порядок - по id: при пересечении исключений побеждает более позднее.
func (r *Repository) ListBySitterAndRange(
	ctx context.Context,
	sitterID int64,
	services []domain.ServiceType,
	from, to string,
) ([]domain.AvailabilityException, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := listQuery(sitterID, services, from, to)
	if err != nil {
		return nil, err
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBySitterAndRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]domain.AvailabilityException, 0)
	for rows.Next() {
		var e domain.AvailabilityException
		err := rows.Scan(
			&e.ID,
			&e.SitterID,
			&e.Service,
			&e.Date,
			&e.StartMin,
			&e.EndMin,
			&e.Status,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListBySitterAndRange - scan row: %v", ErrScanRow, err)
		}
		result = append(result, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListBySitterAndRange - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

func listQuery(sitterID int64, services []domain.ServiceType, from, to string) (string, []interface{}, error) {
	builder := psqlbuilder.Select(
		"id",
		"sitter_id",
		"service",
		"to_char(date, 'YYYY-MM-DD')",
		"start_minute",
		"end_minute",
		"status",
	).
		From("availability_exceptions").
		Where(squirrel.Eq{"sitter_id": sitterID}).
		Where(squirrel.GtOrEq{"date": from}).
		Where(squirrel.LtOrEq{"date": to})

	if len(services) > 0 {
		names := make([]string, len(services))
		for i, s := range services {
			names[i] = string(s)
		}
		builder = builder.Where(squirrel.Eq{"service": names})
	}

	query, args, err := builder.OrderBy("id ASC").ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: ListBySitterAndRange - build select query: %v", ErrBuildQuery, err)
	}
	return query, args, nil
}

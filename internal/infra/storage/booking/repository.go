package booking

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/psqlbuilder"
)

// Repository репозиторий бронирований (только чтение: бронирования создаёт BookingService)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListBySitterAndRange получает бронирования ситтера, окно которых пересекается с [From, To).
// Порядок - по id (порядок хранения), от него зависит выбор причины soft-блокировки.
//
// Строки с NULL в start_at/end_at отсекаются условиями на окно в SQL.
// NULL в created_at доходит до движка нулевым временем, и движок такую бронь пропускает.
func (r *Repository) ListBySitterAndRange(ctx context.Context, filter domain.BookingsFilter) ([]domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := listQuery(filter)
	if err != nil {
		return nil, err
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBySitterAndRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

func listQuery(filter domain.BookingsFilter) (string, []interface{}, error) {
	if filter.SitterID <= 0 || filter.From.IsZero() || !filter.To.After(filter.From) {
		return "", nil, fmt.Errorf("%w: sitter=%d, from=%s, to=%s", ErrInvalidFilter, filter.SitterID, filter.From, filter.To)
	}

	statuses := filter.Statuses
	if len(statuses) == 0 {
		statuses = domain.BlockingStatuses
	}
	statusStrings := make([]string, len(statuses))
	for i, s := range statuses {
		statusStrings[i] = string(s)
	}

	query, args, err := psqlbuilder.Select(
		"id",
		"sitter_id",
		"service",
		"status",
		"created_at",
		"start_at",
		"end_at",
	).
		From("bookings").
		Where(squirrel.Eq{"sitter_id": filter.SitterID}).
		Where(squirrel.Lt{"start_at": filter.To}).
		Where(squirrel.Gt{"end_at": filter.From}).
		Where(squirrel.Expr("status = ANY(?)", pq.Array(statusStrings))).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return "", nil, fmt.Errorf("%w: ListBySitterAndRange - build select query: %v", ErrBuildQuery, err)
	}

	return query, args, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]domain.Booking, error) {
	bookings := make([]domain.Booking, 0)

	for rows.Next() {
		var booking domain.Booking
		var createdAt, startAt, endAt sql.NullTime

		err := rows.Scan(
			&booking.ID,
			&booking.SitterID,
			&booking.Service,
			&booking.Status,
			&createdAt,
			&startAt,
			&endAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}

		booking.CreatedAt = createdAt.Time
		booking.StartAt = startAt.Time
		booking.EndAt = endAt.Time

		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

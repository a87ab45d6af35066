package booking

import (
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

func TestListQuery(t *testing.T) {
	from := time.Date(2026, 2, 15, 23, 0, 0, 0, time.UTC)
	to := from.Add(24 * time.Hour)

	query, args, err := listQuery(domain.BookingsFilter{SitterID: 7, From: from, To: to})
	require.NoError(t, err)

	assert.Equal(t,
		"SELECT id, sitter_id, service, status, created_at, start_at, end_at FROM bookings "+
			"WHERE sitter_id = $1 AND start_at < $2 AND end_at > $3 AND status = ANY($4) ORDER BY id ASC",
		query)
	require.Len(t, args, 4)
	assert.Equal(t, int64(7), args[0])
	assert.Equal(t, to, args[1])
	assert.Equal(t, from, args[2])
	assert.Equal(t, pq.Array([]string{"PENDING_PAYMENT", "PENDING_ACCEPTANCE", "CONFIRMED", "PAID"}), args[3])
}

func TestListQuery_ExplicitStatuses(t *testing.T) {
	from := time.Date(2026, 2, 15, 23, 0, 0, 0, time.UTC)

	_, args, err := listQuery(domain.BookingsFilter{
		SitterID: 7,
		From:     from,
		To:       from.Add(time.Hour),
		Statuses: []domain.BookingStatus{domain.BookingPaid},
	})
	require.NoError(t, err)
	assert.Equal(t, pq.Array([]string{"PAID"}), args[3])
}

func TestListQuery_InvalidFilter(t *testing.T) {
	from := time.Date(2026, 2, 15, 23, 0, 0, 0, time.UTC)

	for name, f := range map[string]domain.BookingsFilter{
		"no sitter": {From: from, To: from.Add(time.Hour)},
		"no from":   {SitterID: 1, To: from},
		"empty":     {SitterID: 1, From: from, To: from},
		"inverted":  {SitterID: 1, From: from, To: from.Add(-time.Hour)},
	} {
		t.Run(name, func(t *testing.T) {
			_, _, err := listQuery(f)
			assert.ErrorIs(t, err, ErrInvalidFilter)
		})
	}
}

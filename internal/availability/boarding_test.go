package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

func boardingRule(weekday, start, end int) domain.AvailabilityRule {
	return domain.AvailabilityRule{SitterID: 1, Service: domain.ServiceBoarding, DayOfWeek: weekday, StartMin: start, EndMin: end, Status: domain.StatusAvailable}
}

func boardingInput(start, end string, rules ...domain.AvailabilityRule) BoardingInput {
	return BoardingInput{
		StartDate: start,
		EndDate:   end,
		Rules:     rules,
		Config:    domain.DefaultServiceConfig(1, domain.ServiceBoarding),
		Now:       at("2026-02-10", 9, 0),
	}
}

func TestCheckBoardingRange_ConfirmedBookingBlocksStay(t *testing.T) {
	now := at("2026-02-10", 9, 0)
	confirmed := booking(domain.BookingConfirmed, now, at("2026-02-16", 10, 0), at("2026-02-16", 12, 0))

	t.Run("monday only rule", func(t *testing.T) {
		in := boardingInput("2026-02-16", "2026-02-17", boardingRule(1, 8*60, 19*60))
		in.Bookings = []domain.Booking{confirmed}

		res, err := CheckBoardingRange(in)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusUnavailable, res.Status)
		assert.Contains(t, res.BlockingDays, "2026-02-16")
		require.Len(t, res.Days, 2)
		assert.Equal(t, domain.ReasonBookingConfirmed, res.Days[0].Reason)
		assert.Equal(t, domain.ReasonNoAvailability, res.Days[1].Reason)
	})

	t.Run("every day open", func(t *testing.T) {
		in := boardingInput("2026-02-16", "2026-02-17", boardingRule(1, 8*60, 19*60), boardingRule(2, 8*60, 19*60))
		in.Bookings = []domain.Booking{confirmed}

		res, err := CheckBoardingRange(in)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusUnavailable, res.Status)
		assert.Equal(t, []string{"2026-02-16"}, res.BlockingDays)
		assert.Equal(t, domain.StatusAvailable, res.Days[1].Status)
	})
}

func TestCheckBoardingRange_AllAvailable(t *testing.T) {
	res, err := CheckBoardingRange(boardingInput("2026-02-16", "2026-02-18",
		boardingRule(1, 8*60, 19*60), boardingRule(2, 0, 24*60), boardingRule(3, 8*60, 12*60)))

	require.NoError(t, err)
	assert.Equal(t, domain.StatusAvailable, res.Status)
	assert.Nil(t, res.BlockingDays)
	require.Len(t, res.Days, 3)
	for _, d := range res.Days {
		assert.Equal(t, domain.StatusAvailable, d.Status, d.Date)
		assert.Empty(t, d.Reason)
	}
}

func TestCheckBoardingRange_SingleDayStay(t *testing.T) {
	res, err := CheckBoardingRange(boardingInput("2026-02-16", "2026-02-16", boardingRule(1, 8*60, 19*60)))

	require.NoError(t, err)
	assert.Equal(t, domain.StatusAvailable, res.Status)
	assert.Len(t, res.Days, 1)
}

func TestCheckBoardingRange_CheckInOutWindowsTrimDays(t *testing.T) {
	now := at("2026-02-10", 9, 0)
	in := boardingInput("2026-02-16", "2026-02-17", boardingRule(1, 0, 24*60), boardingRule(2, 0, 24*60))
	in.Bookings = []domain.Booking{
		booking(domain.BookingConfirmed, now, at("2026-02-16", 2, 0), at("2026-02-16", 4, 0)),
		booking(domain.BookingConfirmed, now, at("2026-02-17", 14, 0), at("2026-02-17", 16, 0)),
	}

	res, err := CheckBoardingRange(in)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusAvailable, res.Status)
}

func TestCheckBoardingRange_IgnoresConfiguredBuffers(t *testing.T) {
	now := at("2026-02-10", 9, 0)
	in := boardingInput("2026-02-16", "2026-02-17", boardingRule(1, 8*60, 19*60), boardingRule(2, 8*60, 19*60))
	in.Config.BufferBeforeMin = 120
	in.Bookings = []domain.Booking{
		booking(domain.BookingConfirmed, now, at("2026-02-17", 13, 0), at("2026-02-17", 14, 0)),
	}

	res, err := CheckBoardingRange(in)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusAvailable, res.Status)
}

func TestCheckBoardingRange_LeadTimeOnFirstDay(t *testing.T) {
	in := boardingInput("2026-02-16", "2026-02-17", boardingRule(1, 8*60, 19*60), boardingRule(2, 8*60, 19*60))
	in.Now = at("2026-02-15", 10, 0)

	res, err := CheckBoardingRange(in)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusUnavailable, res.Status)
	assert.Equal(t, []string{"2026-02-16"}, res.BlockingDays)
	assert.Equal(t, domain.ReasonLeadTime, res.Days[0].Reason)
	assert.Equal(t, domain.StatusAvailable, res.Days[1].Status)

	in.Now = at("2026-02-15", 8, 0)
	res, err = CheckBoardingRange(in)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusAvailable, res.Status)
}

func TestCheckBoardingRange_PendingBookingMakesStayOnRequest(t *testing.T) {
	now := at("2026-02-10", 9, 0)
	in := boardingInput("2026-02-16", "2026-02-17", boardingRule(1, 8*60, 19*60), boardingRule(2, 8*60, 19*60))
	in.Bookings = []domain.Booking{
		booking(domain.BookingPendingAcceptance, now.Add(-1), at("2026-02-17", 9, 0), at("2026-02-17", 10, 0)),
	}

	res, err := CheckBoardingRange(in)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusOnRequest, res.Status)
	assert.Nil(t, res.BlockingDays)
	assert.Equal(t, domain.ReasonPendingAcceptance, res.Days[1].Reason)
}

func TestCheckBoardingRange_InvalidRange(t *testing.T) {
	for _, tt := range [][2]string{
		{"2026-02-17", "2026-02-16"},
		{"", "2026-02-16"},
		{"2026-02-16", "2026-13-01"},
	} {
		_, err := CheckBoardingRange(boardingInput(tt[0], tt[1]))
		assert.ErrorIs(t, err, ErrInvalidDateRange, "%s..%s", tt[0], tt[1])
	}
}

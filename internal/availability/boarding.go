package availability

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// ErrInvalidDateRange is returned for malformed or inverted stay dates
var ErrInvalidDateRange = errors.New("availability: invalid date range")

// BoardingInput describes an overnight stay from StartDate (check-in) to EndDate (check-out), inclusive
type BoardingInput struct {
	StartDate  string
	EndDate    string
	Rules      []domain.AvailabilityRule
	Exceptions []domain.AvailabilityException
	Bookings   []domain.Booking
	Config     domain.ServiceConfig
	Now        time.Time
}

// CheckBoardingRange evaluates the whole stay as one unit: a single unavailable day makes the
// stay unavailable. Lead time only applies to the check-in of the first day.
func CheckBoardingRange(in BoardingInput) (domain.BoardingRangeResult, error) {
	start, end, ok := parseRange(in.StartDate, in.EndDate)
	if !ok {
		return domain.BoardingRangeResult{}, ErrInvalidDateRange
	}

	cfg := in.Config
	cfg.BufferBeforeMin = 0
	cfg.BufferAfterMin = 0

	days := DaysBetween(start, end)
	result := domain.BoardingRangeResult{
		Days: make([]domain.BoardingDay, 0, len(days)),
	}

	for _, d := range days {
		result.Days = append(result.Days, evaluateStayDay(d, in, cfg, d == start, d == end))
	}

	checkIn := start.At(start.Offset(valueOr(cfg.CheckInStartMin, 0)))
	if checkIn.Sub(in.Now) < time.Duration(cfg.LeadTimeMin)*time.Minute {
		result.Days[0].Status = domain.StatusUnavailable
		result.Days[0].Reason = domain.ReasonLeadTime
	}

	result.Status = domain.StatusAvailable
	for _, day := range result.Days {
		switch day.Status {
		case domain.StatusUnavailable:
			result.Status = domain.StatusUnavailable
			result.BlockingDays = append(result.BlockingDays, day.Date)
		case domain.StatusOnRequest:
			if result.Status == domain.StatusAvailable {
				result.Status = domain.StatusOnRequest
			}
		}
	}

	return result, nil
}

// evaluateStayDay returns the most restrictive slot status of the part of the day the pet stays.
// The first day starts at check-in, the last day ends at check-out.
func evaluateStayDay(d Day, in BoardingInput, cfg domain.ServiceConfig, isFirst, isLast bool) domain.BoardingDay {
	slots := computeDaySlots(d, DayInput{
		Date:       d.String(),
		Rules:      in.Rules,
		Exceptions: in.Exceptions,
		Bookings:   in.Bookings,
		Config:     cfg,
		Now:        in.Now,
	}, true)

	counted := make([]domain.DaySlot, 0, len(slots))
	for _, s := range slots {
		if isFirst && cfg.CheckInStartMin != nil && s.EndMin <= d.Offset(*cfg.CheckInStartMin) {
			continue
		}
		if isLast && cfg.CheckOutEndMin != nil && s.StartMin >= d.Offset(*cfg.CheckOutEndMin) {
			continue
		}
		counted = append(counted, s)
	}

	worst, ok := strictestSlot(counted)
	if !ok {
		return domain.BoardingDay{
			Date:   d.String(),
			Status: domain.StatusUnavailable,
			Reason: domain.ReasonNoAvailability,
		}
	}

	return domain.BoardingDay{
		Date:   d.String(),
		Status: worst.Status,
		Reason: worst.Reason,
	}
}

func valueOr(v *int, fallback int) int {
	if v == nil {
		return fallback
	}
	return *v
}

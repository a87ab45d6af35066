package check_boarding_range

import (
	"fmt"

	"github.com/m04kA/SMC-AvailabilityService/internal/availability"
)

// validateRequest валидирует входные данные запроса и возвращает даты заезда и выезда
func validateRequest(req *Request, maxDays int) (availability.Day, availability.Day, error) {
	if req.SitterID <= 0 {
		return availability.Day{}, availability.Day{}, fmt.Errorf("%w: sitterID must be positive", ErrInvalidInput)
	}

	start, ok := availability.ParseDay(req.StartDate)
	if !ok {
		return availability.Day{}, availability.Day{}, fmt.Errorf("%w: start %q, expected YYYY-MM-DD", ErrInvalidDateRange, req.StartDate)
	}
	end, ok := availability.ParseDay(req.EndDate)
	if !ok {
		return availability.Day{}, availability.Day{}, fmt.Errorf("%w: end %q, expected YYYY-MM-DD", ErrInvalidDateRange, req.EndDate)
	}
	if end.Before(start) {
		return availability.Day{}, availability.Day{}, fmt.Errorf("%w: end is before start", ErrInvalidDateRange)
	}

	if maxDays > 0 && len(availability.DaysBetween(start, end)) > maxDays {
		return availability.Day{}, availability.Day{}, fmt.Errorf("%w: at most %d days", ErrRangeTooLong, maxDays)
	}

	return start, end, nil
}

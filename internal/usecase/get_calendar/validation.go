package get_calendar

import (
	"fmt"

	"github.com/m04kA/SMC-AvailabilityService/internal/availability"
)

// validateRequest валидирует входные данные запроса и возвращает границы диапазона
func validateRequest(req *Request, maxDays int) (availability.Day, availability.Day, error) {
	if req.SitterID <= 0 {
		return availability.Day{}, availability.Day{}, fmt.Errorf("%w: sitterID must be positive", ErrInvalidInput)
	}

	for _, svc := range req.Services {
		if !svc.IsValid() {
			return availability.Day{}, availability.Day{}, fmt.Errorf("%w: %q", ErrUnknownService, svc)
		}
	}

	from, ok := availability.ParseDay(req.From)
	if !ok {
		return availability.Day{}, availability.Day{}, fmt.Errorf("%w: from %q, expected YYYY-MM-DD", ErrInvalidDateRange, req.From)
	}
	to, ok := availability.ParseDay(req.To)
	if !ok {
		return availability.Day{}, availability.Day{}, fmt.Errorf("%w: to %q, expected YYYY-MM-DD", ErrInvalidDateRange, req.To)
	}
	if to.Before(from) {
		return availability.Day{}, availability.Day{}, fmt.Errorf("%w: to is before from", ErrInvalidDateRange)
	}

	if maxDays > 0 && len(availability.DaysBetween(from, to)) > maxDays {
		return availability.Day{}, availability.Day{}, fmt.Errorf("%w: at most %d days", ErrRangeTooLong, maxDays)
	}

	return from, to, nil
}

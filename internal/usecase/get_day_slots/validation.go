package get_day_slots

import (
	"fmt"

	"github.com/m04kA/SMC-AvailabilityService/internal/availability"
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) (availability.Day, error) {
	if req.SitterID <= 0 {
		return availability.Day{}, fmt.Errorf("%w: sitterID must be positive", ErrInvalidInput)
	}

	if !req.Service.IsValid() {
		return availability.Day{}, fmt.Errorf("%w: %q", ErrUnknownService, req.Service)
	}

	day, ok := availability.ParseDay(req.Date)
	if !ok {
		return availability.Day{}, fmt.Errorf("%w: %q, expected YYYY-MM-DD", ErrInvalidDate, req.Date)
	}

	if req.DurationMin < 0 {
		return availability.Day{}, fmt.Errorf("%w: duration must not be negative", ErrInvalidDuration)
	}

	return day, nil
}

// validateDuration проверяет запрошенную длительность по границам услуги
func validateDuration(durationMin int, cfg *domain.ServiceConfig) error {
	if durationMin == 0 {
		return nil
	}
	if durationMin < cfg.MinDurationMin || (cfg.MaxDurationMin > 0 && durationMin > cfg.MaxDurationMin) {
		return fmt.Errorf("%w: %d is outside [%d, %d]", ErrInvalidDuration, durationMin, cfg.MinDurationMin, cfg.MaxDurationMin)
	}
	return nil
}

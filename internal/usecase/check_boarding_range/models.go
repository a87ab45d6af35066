package check_boarding_range

import "github.com/m04kA/SMC-AvailabilityService/internal/domain"

// Request модель запроса проверки передержки
type Request struct {
	SitterID  int64
	StartDate string // Дата заезда YYYY-MM-DD
	EndDate   string // Дата выезда YYYY-MM-DD, включительно
}

// Response модель ответа проверки передержки
type Response struct {
	SitterID  int64
	StartDate string
	EndDate   string
	Result    domain.BoardingRangeResult
}

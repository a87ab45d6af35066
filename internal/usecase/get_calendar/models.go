package get_calendar

import (
	"github.com/m04kA/SMC-AvailabilityService/internal/availability"
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// Options ограничения use case из конфигурации
type Options struct {
	MaxDays int  // Максимальная длина диапазона в днях
	Verify  bool // Сверять индексированный расчёт с наивным
}

// Request модель запроса календаря
type Request struct {
	SitterID int64
	From     string               // YYYY-MM-DD
	To       string               // YYYY-MM-DD, включительно
	Services []domain.ServiceType // Пусто - все услуги
}

// Response модель ответа календаря
type Response struct {
	SitterID int64
	From     string
	To       string
	Services []domain.ServiceType
	Days     []domain.CalendarDay
	Stats    availability.CalendarStats
}

package check_boarding_range

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// RulesRepository интерфейс репозитория еженедельных правил
type RulesRepository interface {
	ListBySitter(ctx context.Context, sitterID int64, services []domain.ServiceType) ([]domain.AvailabilityRule, error)
}

// ExceptionsRepository интерфейс репозитория исключений
type ExceptionsRepository interface {
	ListBySitterAndRange(ctx context.Context, sitterID int64, services []domain.ServiceType, from, to string) ([]domain.AvailabilityException, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	ListBySitterAndRange(ctx context.Context, filter domain.BookingsFilter) ([]domain.Booking, error)
}

// ConfigService интерфейс сервиса настроек услуг
type ConfigService interface {
	Effective(ctx context.Context, sitterID int64, service domain.ServiceType) (*domain.ServiceConfig, error)
}

// MetricsRecorder интерфейс для метрик проверок передержки
type MetricsRecorder interface {
	ObserveBoardingCheck(status string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

package serviceconfig

import (
	"context"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// ConfigRepository интерфейс репозитория настроек услуг
type ConfigRepository interface {
	GetBySitterAndService(ctx context.Context, sitterID int64, service domain.ServiceType) (*domain.ServiceConfig, error)
	ListBySitter(ctx context.Context, sitterID int64) ([]domain.ServiceConfig, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

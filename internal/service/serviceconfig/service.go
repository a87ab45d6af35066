package serviceconfig

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	configRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/serviceconfig"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/serviceconfig/models"
)

// Service сервис для чтения настроек услуг ситтера
type Service struct {
	configRepo ConfigRepository
	logger     Logger
}

// NewService создает новый экземпляр сервиса настроек
func NewService(configRepo ConfigRepository, logger Logger) *Service {
	return &Service{
		configRepo: configRepo,
		logger:     logger,
	}
}

// GetEffective возвращает сохранённую конфигурацию услуги или дефолтную, если строки нет
func (s *Service) GetEffective(ctx context.Context, req *models.GetConfigRequest) (*models.ConfigResponse, error) {
	cfg, err := s.Effective(ctx, req.SitterID, req.Service)
	if err != nil {
		return nil, err
	}
	return models.FromDomainConfig(cfg), nil
}

// Effective то же, что GetEffective, но возвращает domain модель (для use cases)
func (s *Service) Effective(ctx context.Context, sitterID int64, service domain.ServiceType) (*domain.ServiceConfig, error) {
	// 1. Валидация входных данных
	if sitterID <= 0 {
		return nil, fmt.Errorf("%w: sitterID must be positive", ErrInvalidInput)
	}
	if !service.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownService, service)
	}

	// 2. Пробуем получить сохранённую конфигурацию
	cfg, err := s.configRepo.GetBySitterAndService(ctx, sitterID, service)
	if err == nil {
		s.logger.Info("Effective: using stored config for sitter=%d, service=%s", sitterID, service)
		return cfg, nil
	}
	if !errors.Is(err, configRepo.ErrConfigNotFound) {
		s.logger.Error("Effective: repository error for sitter=%d, service=%s: %v", sitterID, service, err)
		return nil, fmt.Errorf("%w: Effective - repository error: %v", ErrInternal, err)
	}

	// 3. Конфигурации нет - используем дефолтные значения
	s.logger.Info("Effective: using default config for sitter=%d, service=%s", sitterID, service)
	defaults := domain.DefaultServiceConfig(sitterID, service)
	return &defaults, nil
}

// ListStored возвращает все сохранённые конфигурации ситтера. Недостающие услуги движок заполнит дефолтами.
func (s *Service) ListStored(ctx context.Context, sitterID int64) ([]domain.ServiceConfig, error) {
	configs, err := s.configRepo.ListBySitter(ctx, sitterID)
	if err != nil {
		s.logger.Error("ListStored: repository error for sitter=%d: %v", sitterID, err)
		return nil, fmt.Errorf("%w: ListStored - repository error: %v", ErrInternal, err)
	}
	return configs, nil
}

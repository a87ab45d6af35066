package serviceconfig

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	configRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/serviceconfig"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/serviceconfig/models"
)

type repoMock struct {
	mock.Mock
}

func (m *repoMock) GetBySitterAndService(ctx context.Context, sitterID int64, service domain.ServiceType) (*domain.ServiceConfig, error) {
	args := m.Called(ctx, sitterID, service)
	cfg, _ := args.Get(0).(*domain.ServiceConfig)
	return cfg, args.Error(1)
}

func (m *repoMock) ListBySitter(ctx context.Context, sitterID int64) ([]domain.ServiceConfig, error) {
	args := m.Called(ctx, sitterID)
	configs, _ := args.Get(0).([]domain.ServiceConfig)
	return configs, args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestGetEffective_Stored(t *testing.T) {
	repo := new(repoMock)
	stored := &domain.ServiceConfig{
		SitterID:       3,
		Service:        domain.ServiceWalking,
		Enabled:        true,
		SlotStepMin:    15,
		MinDurationMin: 45,
		UpdatedAt:      time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	repo.On("GetBySitterAndService", mock.Anything, int64(3), domain.ServiceWalking).Return(stored, nil)

	resp, err := NewService(repo, nopLogger{}).GetEffective(context.Background(), &models.GetConfigRequest{SitterID: 3, Service: domain.ServiceWalking})
	require.NoError(t, err)

	assert.False(t, resp.IsDefault)
	assert.Equal(t, 15, resp.SlotStepMin)
	require.NotNil(t, resp.UpdatedAt)
	repo.AssertExpectations(t)
}

func TestGetEffective_FallsBackToDefaults(t *testing.T) {
	repo := new(repoMock)
	repo.On("GetBySitterAndService", mock.Anything, int64(3), domain.ServiceBoarding).Return(nil, configRepo.ErrConfigNotFound)

	resp, err := NewService(repo, nopLogger{}).GetEffective(context.Background(), &models.GetConfigRequest{SitterID: 3, Service: domain.ServiceBoarding})
	require.NoError(t, err)

	assert.True(t, resp.IsDefault)
	assert.Nil(t, resp.UpdatedAt)
	assert.Equal(t, 1440, resp.LeadTimeMin)
	require.NotNil(t, resp.CheckInStart)
	assert.Equal(t, "08:00", *resp.CheckInStart)
	assert.Equal(t, "12:00", *resp.CheckOutEnd)
}

func TestGetEffective_Errors(t *testing.T) {
	t.Run("invalid sitter", func(t *testing.T) {
		_, err := NewService(new(repoMock), nopLogger{}).Effective(context.Background(), 0, domain.ServiceWalking)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("unknown service", func(t *testing.T) {
		_, err := NewService(new(repoMock), nopLogger{}).Effective(context.Background(), 1, domain.ServiceType("grooming"))
		assert.ErrorIs(t, err, ErrUnknownService)
	})

	t.Run("repository failure", func(t *testing.T) {
		repo := new(repoMock)
		repo.On("GetBySitterAndService", mock.Anything, int64(1), domain.ServiceWalking).Return(nil, errors.New("connection reset"))

		_, err := NewService(repo, nopLogger{}).Effective(context.Background(), 1, domain.ServiceWalking)
		assert.ErrorIs(t, err, ErrInternal)
	})
}

func TestListStored(t *testing.T) {
	repo := new(repoMock)
	repo.On("ListBySitter", mock.Anything, int64(9)).Return([]domain.ServiceConfig{{SitterID: 9, Service: domain.ServiceDayCare}}, nil)

	configs, err := NewService(repo, nopLogger{}).ListStored(context.Background(), 9)
	require.NoError(t, err)
	assert.Len(t, configs, 1)
}

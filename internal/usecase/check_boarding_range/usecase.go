package check_boarding_range

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/m04kA/SMC-AvailabilityService/internal/availability"
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/otelx"
)

// UseCase use case для проверки диапазона передержки
type UseCase struct {
	rulesRepo      RulesRepository
	exceptionsRepo ExceptionsRepository
	bookingRepo    BookingRepository
	configService  ConfigService
	metrics        MetricsRecorder
	timeProvider   TimeProvider
	logger         Logger
	maxDays        int
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	rulesRepo RulesRepository,
	exceptionsRepo ExceptionsRepository,
	bookingRepo BookingRepository,
	configService ConfigService,
	metrics MetricsRecorder,
	logger Logger,
	maxDays int,
) *UseCase {
	return &UseCase{
		rulesRepo:      rulesRepo,
		exceptionsRepo: exceptionsRepo,
		bookingRepo:    bookingRepo,
		configService:  configService,
		metrics:        metrics,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
		maxDays:        maxDays,
	}
}

// Execute выполняет use case проверки передержки
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	ctx, span := otelx.Tracer("usecase").Start(ctx, "CheckBoardingRange")
	defer span.End()
	span.SetAttributes(
		attribute.Int64("sitter.id", req.SitterID),
		attribute.String("start", req.StartDate),
		attribute.String("end", req.EndDate),
	)

	uc.logger.Info("CheckBoardingRange: sitter=%d, start=%s, end=%s", req.SitterID, req.StartDate, req.EndDate)

	// 1. Валидация входных данных
	start, end, err := validateRequest(req, uc.maxDays)
	if err != nil {
		uc.logger.Warn("CheckBoardingRange: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем конфигурацию передержки
	cfg, err := uc.configService.Effective(ctx, req.SitterID, domain.ServiceBoarding)
	if err != nil {
		uc.logger.Error("CheckBoardingRange: failed to get config: %v", err)
		return uc.fail(span, fmt.Errorf("%w: failed to get config: %v", ErrInternal, err))
	}

	// 4. Загружаем правила, исключения и бронирования за период проживания
	services := []domain.ServiceType{domain.ServiceBoarding}

	rules, err := uc.rulesRepo.ListBySitter(ctx, req.SitterID, services)
	if err != nil {
		uc.logger.Error("CheckBoardingRange: failed to get rules: %v", err)
		return uc.fail(span, fmt.Errorf("%w: failed to get rules: %v", ErrInternal, err))
	}

	exceptions, err := uc.exceptionsRepo.ListBySitterAndRange(ctx, req.SitterID, services, req.StartDate, req.EndDate)
	if err != nil {
		uc.logger.Error("CheckBoardingRange: failed to get exceptions: %v", err)
		return uc.fail(span, fmt.Errorf("%w: failed to get exceptions: %v", ErrInternal, err))
	}

	// Буферы для передержки не применяются, окно совпадает с периодом проживания
	bookings, err := uc.bookingRepo.ListBySitterAndRange(ctx, domain.BookingsFilter{
		SitterID: req.SitterID,
		From:     start.Start(),
		To:       end.End(),
	})
	if err != nil {
		uc.logger.Error("CheckBoardingRange: failed to get bookings: %v", err)
		return uc.fail(span, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err))
	}

	// 5. Проверяем весь период как единое целое
	result, err := availability.CheckBoardingRange(availability.BoardingInput{
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		Rules:      rules,
		Exceptions: exceptions,
		Bookings:   bookings,
		Config:     *cfg,
		Now:        now,
	})
	if err != nil {
		if errors.Is(err, availability.ErrInvalidDateRange) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidDateRange, err)
		}
		return uc.fail(span, fmt.Errorf("%w: failed to check range: %v", ErrInternal, err))
	}

	uc.metrics.ObserveBoardingCheck(string(result.Status))

	span.SetAttributes(attribute.String("status", string(result.Status)), attribute.StringSlice("blocking_days", result.BlockingDays))
	uc.logger.Info("CheckBoardingRange: sitter=%d, %s..%s is %s (blocking days: %v)",
		req.SitterID, req.StartDate, req.EndDate, result.Status, result.BlockingDays)

	return &Response{
		SitterID:  req.SitterID,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Result:    result,
	}, nil
}

func (uc *UseCase) fail(span trace.Span, err error) (*Response, error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return nil, err
}

package get_day_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/m04kA/SMC-AvailabilityService/internal/availability"
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/serviceconfig"
	"github.com/m04kA/SMC-AvailabilityService/pkg/otelx"
)

// UseCase use case для получения слотов одного дня
type UseCase struct {
	rulesRepo      RulesRepository
	exceptionsRepo ExceptionsRepository
	bookingRepo    BookingRepository
	configService  ConfigService
	metrics        MetricsRecorder
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	rulesRepo RulesRepository,
	exceptionsRepo ExceptionsRepository,
	bookingRepo BookingRepository,
	configService ConfigService,
	metrics MetricsRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		rulesRepo:      rulesRepo,
		exceptionsRepo: exceptionsRepo,
		bookingRepo:    bookingRepo,
		configService:  configService,
		metrics:        metrics,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute выполняет use case получения слотов дня
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	ctx, span := otelx.Tracer("usecase").Start(ctx, "GetDaySlots")
	defer span.End()
	span.SetAttributes(
		attribute.Int64("sitter.id", req.SitterID),
		attribute.String("service", string(req.Service)),
		attribute.String("date", req.Date),
	)

	uc.logger.Info("GetDaySlots: sitter=%d, service=%s, date=%s, duration=%d",
		req.SitterID, req.Service, req.Date, req.DurationMin)

	// 1. Валидация входных данных
	day, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("GetDaySlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем действующую конфигурацию услуги (сохранённую или дефолтную)
	cfg, err := uc.configService.Effective(ctx, req.SitterID, req.Service)
	if err != nil {
		if errors.Is(err, serviceconfig.ErrUnknownService) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownService, req.Service)
		}
		uc.logger.Error("GetDaySlots: failed to get config: %v", err)
		return uc.fail(span, fmt.Errorf("%w: failed to get config: %v", ErrInternal, err))
	}

	// 4. Проверяем длительность по границам услуги
	if err := validateDuration(req.DurationMin, cfg); err != nil {
		uc.logger.Warn("GetDaySlots: duration validation failed: %v", err)
		return nil, err
	}

	// 5. Загружаем правила, исключения и бронирования
	services := []domain.ServiceType{req.Service}

	rules, err := uc.rulesRepo.ListBySitter(ctx, req.SitterID, services)
	if err != nil {
		uc.logger.Error("GetDaySlots: failed to get rules: %v", err)
		return uc.fail(span, fmt.Errorf("%w: failed to get rules: %v", ErrInternal, err))
	}

	exceptions, err := uc.exceptionsRepo.ListBySitterAndRange(ctx, req.SitterID, services, req.Date, req.Date)
	if err != nil {
		uc.logger.Error("GetDaySlots: failed to get exceptions: %v", err)
		return uc.fail(span, fmt.Errorf("%w: failed to get exceptions: %v", ErrInternal, err))
	}

	// Бронирования блокируют ситтера по всем услугам, поэтому фильтр без услуги.
	// Окно расширяем на буферы, чтобы не потерять соседние бронирования.
	filter := domain.BookingsFilter{
		SitterID: req.SitterID,
		From:     day.Start().Add(-time.Duration(cfg.BufferBeforeMin) * time.Minute),
		To:       day.End().Add(time.Duration(cfg.BufferAfterMin) * time.Minute),
	}
	bookings, err := uc.bookingRepo.ListBySitterAndRange(ctx, filter)
	if err != nil {
		uc.logger.Error("GetDaySlots: failed to get bookings: %v", err)
		return uc.fail(span, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err))
	}

	// 6. Вычисляем слоты
	slots := availability.ComputeDaySlots(availability.DayInput{
		Date:        req.Date,
		Rules:       rules,
		Exceptions:  exceptions,
		Bookings:    bookings,
		Config:      *cfg,
		Now:         now,
		DurationMin: req.DurationMin,
	})

	for _, s := range slots {
		uc.metrics.ObserveSlot(string(req.Service), string(s.Status))
	}

	duration := req.DurationMin
	if duration == 0 {
		duration = cfg.MinDurationMin
	}

	resp := &Response{
		SitterID:    req.SitterID,
		Service:     req.Service,
		Date:        req.Date,
		DurationMin: duration,
		DayStatus:   availability.SummarizeDayStatus(slots),
		Slots:       slots,
	}

	span.SetAttributes(attribute.Int("slots", len(slots)), attribute.String("day.status", string(resp.DayStatus)))
	uc.logger.Info("GetDaySlots: generated %d slots for sitter=%d, service=%s, date=%s, status=%s (rules=%d, exceptions=%d, bookings=%d)",
		len(slots), req.SitterID, req.Service, req.Date, resp.DayStatus, len(rules), len(exceptions), len(bookings))

	return resp, nil
}

func (uc *UseCase) fail(span trace.Span, err error) (*Response, error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return nil, err
}

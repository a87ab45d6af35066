package get_calendar

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/m04kA/SMC-AvailabilityService/internal/availability"
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/otelx"
)

// UseCase use case для построения календаря доступности ситтера
type UseCase struct {
	rulesRepo      RulesRepository
	exceptionsRepo ExceptionsRepository
	bookingRepo    BookingRepository
	configService  ConfigService
	txBeginner     TxBeginner
	metrics        MetricsRecorder
	timeProvider   TimeProvider
	logger         Logger
	opts           Options
}

// NewUseCase создает новый экземпляр use case. txBeginner может быть nil - тогда чтения идут без транзакции.
func NewUseCase(
	rulesRepo RulesRepository,
	exceptionsRepo ExceptionsRepository,
	bookingRepo BookingRepository,
	configService ConfigService,
	txBeginner TxBeginner,
	metrics MetricsRecorder,
	logger Logger,
	opts Options,
) *UseCase {
	return &UseCase{
		rulesRepo:      rulesRepo,
		exceptionsRepo: exceptionsRepo,
		bookingRepo:    bookingRepo,
		configService:  configService,
		txBeginner:     txBeginner,
		metrics:        metrics,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
		opts:           opts,
	}
}

// sitterData строки ситтера, прочитанные одним снимком
type sitterData struct {
	configs    []domain.ServiceConfig
	rules      []domain.AvailabilityRule
	exceptions []domain.AvailabilityException
	bookings   []domain.Booking
}

// Execute выполняет use case построения календаря
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	ctx, span := otelx.Tracer("usecase").Start(ctx, "GetCalendar")
	defer span.End()
	span.SetAttributes(
		attribute.Int64("sitter.id", req.SitterID),
		attribute.String("from", req.From),
		attribute.String("to", req.To),
	)

	uc.logger.Info("GetCalendar: sitter=%d, from=%s, to=%s, services=%v", req.SitterID, req.From, req.To, req.Services)

	// 1. Валидация входных данных
	from, to, err := validateRequest(req, uc.opts.MaxDays)
	if err != nil {
		uc.logger.Warn("GetCalendar: validation failed: %v", err)
		return nil, err
	}
	services := availability.CalendarServices(req.Services)

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Читаем все данные ситтера один раз
	data, err := uc.load(ctx, req, services, from, to)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	// 4. Строим календарь по индексам
	input := availability.CalendarInput{
		SitterID:   req.SitterID,
		From:       req.From,
		To:         req.To,
		Services:   services,
		Rules:      data.rules,
		Exceptions: data.exceptions,
		Bookings:   data.bookings,
		Configs:    data.configs,
		Now:        now,
	}
	days, stats := availability.BuildCalendar(input)
	uc.metrics.ObserveCalendar(stats.Days, stats.AvgBookingsPerDay)

	// 5. Сверяем с наивным расчётом (только при включённой проверке)
	if uc.opts.Verify {
		uc.verify(span, input, days)
	}

	span.SetAttributes(attribute.Int("days", stats.Days), attribute.Int("bookings", stats.Bookings))
	uc.logger.Info("GetCalendar: built %d days for sitter=%d (services=%d, rules=%d, exceptions=%d, bookings=%d, bookings/day min=%d max=%d avg=%.2f)",
		stats.Days, req.SitterID, stats.Services, stats.Rules, stats.Exceptions, stats.Bookings,
		stats.MinBookingsPerDay, stats.MaxBookingsPerDay, stats.AvgBookingsPerDay)

	return &Response{
		SitterID: req.SitterID,
		From:     req.From,
		To:       req.To,
		Services: services,
		Days:     days,
		Stats:    stats,
	}, nil
}

// load читает конфигурации, правила, исключения и бронирования. Если есть txBeginner,
// все чтения идут в одной read-only транзакции, чтобы календарь был согласован.
func (uc *UseCase) load(ctx context.Context, req *Request, services []domain.ServiceType, from, to availability.Day) (*sitterData, error) {
	if uc.txBeginner != nil && !dbmetrics.IsInTransaction(ctx) {
		tx, err := uc.txBeginner.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
		if err != nil {
			uc.logger.Error("GetCalendar: failed to begin transaction: %v", err)
			return nil, fmt.Errorf("%w: failed to begin transaction: %v", ErrInternal, err)
		}
		defer func() {
			_ = tx.Rollback()
		}()
		ctx = dbmetrics.WithTx(ctx, tx)
	}

	configs, err := uc.configService.ListStored(ctx, req.SitterID)
	if err != nil {
		uc.logger.Error("GetCalendar: failed to get configs: %v", err)
		return nil, fmt.Errorf("%w: failed to get configs: %v", ErrInternal, err)
	}

	rules, err := uc.rulesRepo.ListBySitter(ctx, req.SitterID, services)
	if err != nil {
		uc.logger.Error("GetCalendar: failed to get rules: %v", err)
		return nil, fmt.Errorf("%w: failed to get rules: %v", ErrInternal, err)
	}

	exceptions, err := uc.exceptionsRepo.ListBySitterAndRange(ctx, req.SitterID, services, req.From, req.To)
	if err != nil {
		uc.logger.Error("GetCalendar: failed to get exceptions: %v", err)
		return nil, fmt.Errorf("%w: failed to get exceptions: %v", ErrInternal, err)
	}

	// Окно бронирований расширяем на максимальный буфер среди услуг
	before, after := 0, 0
	for _, svc := range services {
		cfg := availability.EffectiveConfig(req.SitterID, svc, configs)
		before = max(before, cfg.BufferBeforeMin)
		after = max(after, cfg.BufferAfterMin)
	}
	bookings, err := uc.bookingRepo.ListBySitterAndRange(ctx, domain.BookingsFilter{
		SitterID: req.SitterID,
		From:     from.Start().Add(-time.Duration(before) * time.Minute),
		To:       to.End().Add(time.Duration(after) * time.Minute),
	})
	if err != nil {
		uc.logger.Error("GetCalendar: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	return &sitterData{
		configs:    configs,
		rules:      rules,
		exceptions: exceptions,
		bookings:   bookings,
	}, nil
}

// verify пересчитывает календарь наивно и логирует расхождения. Ответ клиенту не меняется.
func (uc *UseCase) verify(span trace.Span, input availability.CalendarInput, indexed []domain.CalendarDay) {
	naive := availability.BuildCalendarNaive(input)
	mismatches := diffCalendars(indexed, naive)
	if len(mismatches) == 0 {
		return
	}

	uc.metrics.IncCalendarMismatch()
	span.AddEvent("calendar mismatch", trace.WithAttributes(attribute.StringSlice("dates", mismatches)))
	uc.logger.Error("GetCalendar: indexed calendar differs from naive for sitter=%d on %d dates: %v",
		input.SitterID, len(mismatches), mismatches)
}

// diffCalendars возвращает даты, на которых календари расходятся
func diffCalendars(a, b []domain.CalendarDay) []string {
	mismatches := make([]string, 0)
	n := max(len(a), len(b))
	for i := 0; i < n; i++ {
		if i >= len(a) || i >= len(b) {
			mismatches = append(mismatches, fmt.Sprintf("#%d", i))
			continue
		}
		if a[i].Date != b[i].Date || !sameStatuses(a[i].Statuses, b[i].Statuses) {
			mismatches = append(mismatches, a[i].Date)
		}
	}
	return mismatches
}

func sameStatuses(a, b map[domain.ServiceType]domain.SlotStatus) bool {
	if len(a) != len(b) {
		return false
	}
	for svc, status := range a {
		if other, ok := b[svc]; !ok || other != status {
			return false
		}
	}
	return true
}

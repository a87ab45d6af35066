package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	checkBoardingRangeHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/check_boarding_range"
	getCalendarHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/get_calendar"
	getDaySlotsHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/get_day_slots"
	getServiceConfigHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/get_service_config"
	"github.com/m04kA/SMC-AvailabilityService/internal/api/middleware"
	"github.com/m04kA/SMC-AvailabilityService/internal/config"
	"github.com/m04kA/SMC-AvailabilityService/internal/infra/migrations"
	bookingRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/booking"
	exceptionsRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/exceptions"
	rulesRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/rules"
	serviceConfigRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/serviceconfig"
	serviceConfigService "github.com/m04kA/SMC-AvailabilityService/internal/service/serviceconfig"
	checkBoardingRangeUC "github.com/m04kA/SMC-AvailabilityService/internal/usecase/check_boarding_range"
	getCalendarUC "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_calendar"
	getDaySlotsUC "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_day_slots"
	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/logger"
	"github.com/m04kA/SMC-AvailabilityService/pkg/metrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/otelx"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-AvailabilityService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем трассировку
	shutdownTracing, err := otelx.Setup(context.Background(), otelx.Config{
		Enabled:      cfg.Tracing.Enabled,
		ServiceName:  cfg.Metrics.ServiceName,
		OTLPEndpoint: cfg.Tracing.OTLPEndpoint,
		SampleRatio:  cfg.Tracing.SampleRatio,
	})
	if err != nil {
		log.Fatal("Failed to initialize tracing: %v", err)
	}
	if cfg.Tracing.Enabled {
		log.Info("Tracing enabled, exporting to %s (sample ratio %.2f)", cfg.Tracing.OTLPEndpoint, cfg.Tracing.SampleRatio)
	}

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Применяем миграции
	if cfg.Database.MigrateOnStart {
		migrator, err := migrations.NewMigrator(db, log)
		if err != nil {
			log.Fatal("Failed to initialize migrator: %v", err)
		}
		if err := migrator.Up(context.Background()); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
	}

	// Оборачиваем соединение: с nil метриками обёртка ничего не пишет
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
	if cfg.Metrics.Enabled {
		log.Info("Database metrics collection started")
	}

	// Инициализируем репозитории
	rulesRepository := rulesRepo.NewRepository(wrappedDB)
	exceptionsRepository := exceptionsRepo.NewRepository(wrappedDB)
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	serviceConfigRepository := serviceConfigRepo.NewRepository(wrappedDB)

	// Инициализируем сервисы
	configSvc := serviceConfigService.NewService(serviceConfigRepository, log)

	// Инициализируем use cases
	getDaySlotsUseCase := getDaySlotsUC.NewUseCase(
		rulesRepository,
		exceptionsRepository,
		bookingRepository,
		configSvc,
		metricsCollector,
		log,
	)

	getCalendarUseCase := getCalendarUC.NewUseCase(
		rulesRepository,
		exceptionsRepository,
		bookingRepository,
		configSvc,
		wrappedDB,
		metricsCollector,
		log,
		getCalendarUC.Options{
			MaxDays: cfg.Availability.MaxCalendarDays,
			Verify:  cfg.Availability.VerifyCalendar,
		},
	)
	if cfg.Availability.VerifyCalendar {
		log.Warn("Calendar verification enabled: every calendar is also built naively")
	}

	checkBoardingRangeUseCase := checkBoardingRangeUC.NewUseCase(
		rulesRepository,
		exceptionsRepository,
		bookingRepository,
		configSvc,
		metricsCollector,
		log,
		cfg.Availability.MaxBoardingDays,
	)

	// Инициализируем handlers
	getDaySlots := getDaySlotsHandler.NewHandler(getDaySlotsUseCase, log)
	getCalendar := getCalendarHandler.NewHandler(getCalendarUseCase, log)
	checkBoardingRange := checkBoardingRangeHandler.NewHandler(checkBoardingRangeUseCase, log)
	getServiceConfig := getServiceConfigHandler.NewHandler(configSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// Health check
	r.HandleFunc("/healthz", func(w http.ResponseWriter, req *http.Request) {
		ctx, cancel := context.WithTimeout(req.Context(), 2*time.Second)
		defer cancel()
		if err := wrappedDB.PingContext(ctx); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("database unavailable"))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// Слоты одного дня по услуге
	api.HandleFunc("/sitters/{sitterId}/services/{service}/slots",
		getDaySlots.Handle).Methods(http.MethodGet)

	// Действующая конфигурация услуги
	api.HandleFunc("/sitters/{sitterId}/services/{service}/config",
		getServiceConfig.Handle).Methods(http.MethodGet)

	// Календарь статусов по дням
	api.HandleFunc("/sitters/{sitterId}/calendar",
		getCalendar.Handle).Methods(http.MethodGet)

	// Проверка диапазона передержки
	api.HandleFunc("/sitters/{sitterId}/boarding/check",
		checkBoardingRange.Handle).Methods(http.MethodGet)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      otelhttp.NewHandler(r, cfg.Metrics.ServiceName),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error("Failed to flush traces: %v", err)
	}

	log.Info("Server stopped gracefully")
}

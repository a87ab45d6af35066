package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics коллекция метрик сервиса
type Metrics struct {
	// HTTP
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// База данных
	DBQueryDuration     *prometheus.HistogramVec
	DBQueryErrors       *prometheus.CounterVec
	DBOpenConnections   prometheus.Gauge
	DBInUseConnections  prometheus.Gauge
	DBIdleConnections   prometheus.Gauge
	DBWaitCount         prometheus.Gauge
	DBWaitDurationTotal prometheus.Gauge

	// Движок доступности
	SlotsComputed          *prometheus.CounterVec
	CalendarDays           prometheus.Histogram
	CalendarBookingsPerDay prometheus.Histogram
	CalendarMismatches     prometheus.Counter
	BoardingChecks         *prometheus.CounterVec
}

// New создает и регистрирует метрики в глобальном реестре prometheus
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry создает метрики в указанном реестре (для тестов)
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	labels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: labels,
		}, []string{"method", "path", "status"}),

		HTTPRequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),

		HTTPRequestsInFlight: f.NewGauge(prometheus.GaugeOpts{
			Name:        "http_requests_in_flight",
			Help:        "Number of HTTP requests being served",
			ConstLabels: labels,
		}),

		DBQueryDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			ConstLabels: labels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),

		DBQueryErrors: f.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_query_errors_total",
			Help:        "Total number of failed database queries",
			ConstLabels: labels,
		}, []string{"operation"}),

		DBOpenConnections: f.NewGauge(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established connections",
			ConstLabels: labels,
		}),

		DBInUseConnections: f.NewGauge(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of connections currently in use",
			ConstLabels: labels,
		}),

		DBIdleConnections: f.NewGauge(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle connections",
			ConstLabels: labels,
		}),

		DBWaitCount: f.NewGauge(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: labels,
		}),

		DBWaitDurationTotal: f.NewGauge(prometheus.GaugeOpts{
			Name:        "db_wait_duration_seconds_total",
			Help:        "Total time blocked waiting for a new connection",
			ConstLabels: labels,
		}),

		SlotsComputed: f.NewCounterVec(prometheus.CounterOpts{
			Name:        "availability_slots_computed_total",
			Help:        "Number of day slots produced, by service and status",
			ConstLabels: labels,
		}, []string{"service", "status"}),

		CalendarDays: f.NewHistogram(prometheus.HistogramOpts{
			Name:        "availability_calendar_days",
			Help:        "Number of dates requested per calendar build",
			ConstLabels: labels,
			Buckets:     []float64{1, 7, 14, 31, 62},
		}),

		CalendarBookingsPerDay: f.NewHistogram(prometheus.HistogramOpts{
			Name:        "availability_calendar_bookings_per_day",
			Help:        "Average number of blocking bookings bucketed per date",
			ConstLabels: labels,
			Buckets:     []float64{0, 1, 2, 5, 10, 20, 50},
		}),

		CalendarMismatches: f.NewCounter(prometheus.CounterOpts{
			Name:        "availability_calendar_mismatches_total",
			Help:        "Indexed calendar builds that differed from the reference build",
			ConstLabels: labels,
		}),

		BoardingChecks: f.NewCounterVec(prometheus.CounterOpts{
			Name:        "availability_boarding_checks_total",
			Help:        "Boarding range checks by verdict",
			ConstLabels: labels,
		}, []string{"status"}),
	}
}

// Методы ниже безопасно вызывать на nil, когда метрики выключены

// ObserveSlot учитывает один вычисленный слот
func (m *Metrics) ObserveSlot(service, status string) {
	if m == nil {
		return
	}
	m.SlotsComputed.WithLabelValues(service, status).Inc()
}

// ObserveCalendar учитывает размер построенного календаря
func (m *Metrics) ObserveCalendar(days int, avgBookingsPerDay float64) {
	if m == nil {
		return
	}
	m.CalendarDays.Observe(float64(days))
	m.CalendarBookingsPerDay.Observe(avgBookingsPerDay)
}

// IncCalendarMismatch учитывает расхождение индексированного и эталонного календаря
func (m *Metrics) IncCalendarMismatch() {
	if m == nil {
		return
	}
	m.CalendarMismatches.Inc()
}

// ObserveBoardingCheck учитывает вердикт проверки периода передержки
func (m *Metrics) ObserveBoardingCheck(status string) {
	if m == nil {
		return
	}
	m.BoardingChecks.WithLabelValues(status).Inc()
}

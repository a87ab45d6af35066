package availability

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// CalendarInput describes a month-style view: every date of [From, To] for every service.
// Collections may contain rows of other sitters and services; they are filtered out.
type CalendarInput struct {
	SitterID   int64
	From       string
	To         string
	Services   []domain.ServiceType // empty means domain.AllServices
	Rules      []domain.AvailabilityRule
	Exceptions []domain.AvailabilityException
	Bookings   []domain.Booking
	Configs    []domain.ServiceConfig // stored rows; missing services fall back to defaults
	Now        time.Time
}

// CalendarStats describes the indexed build for observability
type CalendarStats struct {
	Days              int
	Services          int
	Rules             int
	Exceptions        int
	Bookings          int
	MinBookingsPerDay int
	MaxBookingsPerDay int
	AvgBookingsPerDay float64
}

type ruleKey struct {
	service domain.ServiceType
	weekday int
}

type exceptionKey struct {
	service domain.ServiceType
	date    string
}

type calendarIndex struct {
	rules      map[ruleKey][]domain.AvailabilityRule
	exceptions map[exceptionKey][]domain.AvailabilityException
	bookings   map[string][]domain.Booking
	stats      CalendarStats
}

// BuildCalendar computes per-date, per-service day statuses using pre-bucketed inputs.
// Its output must always equal BuildCalendarNaive for the same input.
func BuildCalendar(in CalendarInput) ([]domain.CalendarDay, CalendarStats) {
	from, to, ok := parseRange(in.From, in.To)
	if !ok {
		return []domain.CalendarDay{}, CalendarStats{}
	}

	services := CalendarServices(in.Services)
	configs := resolveConfigs(in.SitterID, services, in.Configs)
	days := DaysBetween(from, to)
	idx := buildIndex(in, from, to, days, services, configs)

	result := make([]domain.CalendarDay, 0, len(days))
	for _, d := range days {
		date := d.String()
		day := domain.CalendarDay{
			Date:     date,
			Statuses: make(map[domain.ServiceType]domain.SlotStatus, len(services)),
		}
		for _, svc := range services {
			slots := computeDaySlots(d, DayInput{
				Date:       date,
				Rules:      idx.rules[ruleKey{service: svc, weekday: d.Weekday()}],
				Exceptions: idx.exceptions[exceptionKey{service: svc, date: date}],
				Bookings:   idx.bookings[date],
				Config:     configs[svc],
				Now:        in.Now,
			}, false)
			day.Statuses[svc] = SummarizeDayStatus(slots)
		}
		result = append(result, day)
	}

	return result, idx.stats
}

func buildIndex(
	in CalendarInput,
	from, to Day,
	days []Day,
	services []domain.ServiceType,
	configs map[domain.ServiceType]domain.ServiceConfig,
) calendarIndex {
	idx := calendarIndex{
		rules:      make(map[ruleKey][]domain.AvailabilityRule),
		exceptions: make(map[exceptionKey][]domain.AvailabilityException),
		bookings:   make(map[string][]domain.Booking),
	}

	wanted := make(map[domain.ServiceType]bool, len(services))
	for _, svc := range services {
		wanted[svc] = true
	}

	for _, r := range in.Rules {
		if r.SitterID != in.SitterID || !wanted[r.Service] {
			continue
		}
		k := ruleKey{service: r.Service, weekday: r.DayOfWeek}
		idx.rules[k] = append(idx.rules[k], r)
		idx.stats.Rules++
	}

	for _, e := range in.Exceptions {
		if e.SitterID != in.SitterID || !wanted[e.Service] {
			continue
		}
		k := exceptionKey{service: e.Service, date: e.Date}
		idx.exceptions[k] = append(idx.exceptions[k], e)
		idx.stats.Exceptions++
	}

	// Buffers stretch hard blocks past the booking itself, so buckets use the widest one.
	before, after := maxBuffers(configs)
	for _, b := range in.Bookings {
		if b.SitterID != in.SitterID || !b.HasValidWindow() || !b.IsBlocking() {
			continue
		}
		first := DayOf(b.StartAt.Add(-before))
		last := DayOf(b.EndAt.Add(after).Add(-time.Nanosecond))
		if first.Before(from) {
			first = from
		}
		if to.Before(last) {
			last = to
		}
		touched := false
		for _, d := range DaysBetween(first, last) {
			date := d.String()
			idx.bookings[date] = append(idx.bookings[date], b)
			touched = true
		}
		if touched {
			idx.stats.Bookings++
		}
	}

	idx.stats.Days = len(days)
	idx.stats.Services = len(services)
	fillBookingsPerDay(&idx.stats, days, idx.bookings)

	return idx
}

func fillBookingsPerDay(stats *CalendarStats, days []Day, buckets map[string][]domain.Booking) {
	if len(days) == 0 {
		return
	}
	total := 0
	stats.MinBookingsPerDay = -1
	for _, d := range days {
		n := len(buckets[d.String()])
		total += n
		if stats.MinBookingsPerDay < 0 || n < stats.MinBookingsPerDay {
			stats.MinBookingsPerDay = n
		}
		if n > stats.MaxBookingsPerDay {
			stats.MaxBookingsPerDay = n
		}
	}
	stats.AvgBookingsPerDay = float64(total) / float64(len(days))
}

func maxBuffers(configs map[domain.ServiceType]domain.ServiceConfig) (before, after time.Duration) {
	maxBefore, maxAfter := 0, 0
	for _, cfg := range configs {
		maxBefore = max(maxBefore, cfg.BufferBeforeMin)
		maxAfter = max(maxAfter, cfg.BufferAfterMin)
	}
	return time.Duration(maxBefore) * time.Minute, time.Duration(maxAfter) * time.Minute
}

func parseRange(fromStr, toStr string) (Day, Day, bool) {
	from, ok := ParseDay(fromStr)
	if !ok {
		return Day{}, Day{}, false
	}
	to, ok := ParseDay(toStr)
	if !ok || to.Before(from) {
		return Day{}, Day{}, false
	}
	return from, to, true
}

// CalendarServices returns the requested services without repeats, or every service when none is requested
func CalendarServices(requested []domain.ServiceType) []domain.ServiceType {
	if len(requested) == 0 {
		return domain.AllServices
	}
	seen := make(map[domain.ServiceType]bool, len(requested))
	services := make([]domain.ServiceType, 0, len(requested))
	for _, svc := range requested {
		if seen[svc] {
			continue
		}
		seen[svc] = true
		services = append(services, svc)
	}
	return services
}

// resolveConfigs picks the first stored row per service, falling back to the hardcoded defaults
func resolveConfigs(sitterID int64, services []domain.ServiceType, stored []domain.ServiceConfig) map[domain.ServiceType]domain.ServiceConfig {
	configs := make(map[domain.ServiceType]domain.ServiceConfig, len(services))
	for _, svc := range services {
		configs[svc] = EffectiveConfig(sitterID, svc, stored)
	}
	return configs
}

// EffectiveConfig returns the stored config of the service or its default
func EffectiveConfig(sitterID int64, service domain.ServiceType, stored []domain.ServiceConfig) domain.ServiceConfig {
	for _, cfg := range stored {
		if cfg.SitterID == sitterID && cfg.Service == service {
			return cfg
		}
	}
	return domain.DefaultServiceConfig(sitterID, service)
}

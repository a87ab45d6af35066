package get_calendar

import (
	"strings"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	getCalendar "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_calendar"
)

// CalendarResponse HTTP response model
type CalendarResponse struct {
	SitterID int64         `json:"sitterId"`
	From     string        `json:"from"`
	To       string        `json:"to"`
	Services []string      `json:"services"`
	Days     []CalendarDay `json:"days"`
	Stats    CalendarStats `json:"stats"`
}

// CalendarDay статусы услуг на одну дату
type CalendarDay struct {
	Date     string            `json:"date"`
	Statuses map[string]string `json:"statuses"`
}

// CalendarStats статистика построения календаря
type CalendarStats struct {
	Rules             int     `json:"rules"`
	Exceptions        int     `json:"exceptions"`
	Bookings          int     `json:"bookings"`
	MinBookingsPerDay int     `json:"minBookingsPerDay"`
	MaxBookingsPerDay int     `json:"maxBookingsPerDay"`
	AvgBookingsPerDay float64 `json:"avgBookingsPerDay"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getCalendar.Response) *CalendarResponse {
	services := make([]string, len(resp.Services))
	for i, svc := range resp.Services {
		services[i] = string(svc)
	}

	days := make([]CalendarDay, len(resp.Days))
	for i, d := range resp.Days {
		statuses := make(map[string]string, len(d.Statuses))
		for svc, status := range d.Statuses {
			statuses[string(svc)] = string(status)
		}
		days[i] = CalendarDay{Date: d.Date, Statuses: statuses}
	}

	return &CalendarResponse{
		SitterID: resp.SitterID,
		From:     resp.From,
		To:       resp.To,
		Services: services,
		Days:     days,
		Stats: CalendarStats{
			Rules:             resp.Stats.Rules,
			Exceptions:        resp.Stats.Exceptions,
			Bookings:          resp.Stats.Bookings,
			MinBookingsPerDay: resp.Stats.MinBookingsPerDay,
			MaxBookingsPerDay: resp.Stats.MaxBookingsPerDay,
			AvgBookingsPerDay: resp.Stats.AvgBookingsPerDay,
		},
	}
}

// ToUseCaseRequest создает запрос use case из query параметров.
// services передаются через запятую, пустое значение - все услуги.
func ToUseCaseRequest(sitterID int64, from, to, servicesStr string) *getCalendar.Request {
	req := &getCalendar.Request{
		SitterID: sitterID,
		From:     from,
		To:       to,
	}

	for _, s := range strings.Split(servicesStr, ",") {
		if s = strings.TrimSpace(s); s != "" {
			req.Services = append(req.Services, domain.ServiceType(s))
		}
	}

	return req
}

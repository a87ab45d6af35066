package get_day_slots

import (
	"strconv"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/availability"
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	getDaySlots "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_day_slots"
)

// DaySlotsResponse HTTP response model
type DaySlotsResponse struct {
	SitterID    int64     `json:"sitterId"`
	Service     string    `json:"service"`
	Date        string    `json:"date"`
	DurationMin int       `json:"durationMin"`
	DayStatus   string    `json:"dayStatus"`
	Slots       []DaySlot `json:"slots"`
}

// DaySlot модель слота дня
type DaySlot struct {
	StartAt         time.Time `json:"startAt"`
	EndAt           time.Time `json:"endAt"`
	StartTime       string    `json:"startTime"` // HH:MM
	EndTime         string    `json:"endTime"`   // HH:MM
	DurationMinutes int       `json:"durationMinutes"`
	Status          string    `json:"status"`
	Reason          string    `json:"reason,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getDaySlots.Response) *DaySlotsResponse {
	day, _ := availability.ParseDay(resp.Date)
	slots := make([]DaySlot, len(resp.Slots))
	for i := range resp.Slots {
		slot := &resp.Slots[i]
		slots[i] = DaySlot{
			StartAt:         slot.StartAt,
			EndAt:           slot.EndAt,
			StartTime:       day.ClockOf(slot.StartAt),
			EndTime:         day.ClockOf(slot.EndAt),
			DurationMinutes: slot.DurationMinutes(),
			Status:          string(slot.Status),
			Reason:          slot.Reason,
		}
	}

	return &DaySlotsResponse{
		SitterID:    resp.SitterID,
		Service:     string(resp.Service),
		Date:        resp.Date,
		DurationMin: resp.DurationMin,
		DayStatus:   string(resp.DayStatus),
		Slots:       slots,
	}
}

// ToUseCaseRequest создает запрос use case из URL и query параметров
func ToUseCaseRequest(sitterID int64, service, date, durationStr string) (*getDaySlots.Request, error) {
	req := &getDaySlots.Request{
		SitterID: sitterID,
		Service:  domain.ServiceType(service),
		Date:     date,
	}

	// duration опционален
	if durationStr != "" {
		duration, err := strconv.Atoi(durationStr)
		if err != nil {
			return nil, err
		}
		req.DurationMin = duration
	}

	return req, nil
}

package models

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/availability"
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// GetConfigRequest запрос на получение действующей конфигурации услуги
type GetConfigRequest struct {
	SitterID int64              `json:"sitterId"`
	Service  domain.ServiceType `json:"service"`
}

// ConfigResponse действующая конфигурация услуги (сохранённая или дефолтная)
type ConfigResponse struct {
	SitterID          int64      `json:"sitterId"`
	Service           string     `json:"service"`
	Enabled           bool       `json:"enabled"`
	SlotStepMin       int        `json:"slotStepMin"`
	MinDurationMin    int        `json:"minDurationMin"`
	MaxDurationMin    int        `json:"maxDurationMin"`
	LeadTimeMin       int        `json:"leadTimeMin"`
	BufferBeforeMin   int        `json:"bufferBeforeMin"`
	BufferAfterMin    int        `json:"bufferAfterMin"`
	OvernightRequired bool       `json:"overnightRequired"`
	CheckInStart      *string    `json:"checkInStart,omitempty"`  // HH:MM
	CheckInEnd        *string    `json:"checkInEnd,omitempty"`    // HH:MM
	CheckOutStart     *string    `json:"checkOutStart,omitempty"` // HH:MM
	CheckOutEnd       *string    `json:"checkOutEnd,omitempty"`   // HH:MM
	IsDefault         bool       `json:"isDefault"`               // true - конфигурация не сохранена, используются дефолты
	UpdatedAt         *time.Time `json:"updatedAt,omitempty"`
}

// FromDomainConfig конвертирует domain модель в DTO
func FromDomainConfig(c *domain.ServiceConfig) *ConfigResponse {
	if c == nil {
		return nil
	}

	resp := &ConfigResponse{
		SitterID:          c.SitterID,
		Service:           string(c.Service),
		Enabled:           c.Enabled,
		SlotStepMin:       c.SlotStepMin,
		MinDurationMin:    c.MinDurationMin,
		MaxDurationMin:    c.MaxDurationMin,
		LeadTimeMin:       c.LeadTimeMin,
		BufferBeforeMin:   c.BufferBeforeMin,
		BufferAfterMin:    c.BufferAfterMin,
		OvernightRequired: c.OvernightRequired,
		CheckInStart:      clock(c.CheckInStartMin),
		CheckInEnd:        clock(c.CheckInEndMin),
		CheckOutStart:     clock(c.CheckOutStartMin),
		CheckOutEnd:       clock(c.CheckOutEndMin),
		IsDefault:         !c.IsStored(),
	}

	if c.IsStored() {
		updatedAt := c.UpdatedAt
		resp.UpdatedAt = &updatedAt
	}

	return resp
}

func clock(minute *int) *string {
	if minute == nil {
		return nil
	}
	s := availability.FormatClock(*minute)
	return &s
}

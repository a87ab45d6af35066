package domain

import "time"

// ServiceType identifies one of the services a sitter offers
type ServiceType string

const (
	ServiceWalking  ServiceType = "walking"
	ServiceDayCare  ServiceType = "day_care"
	ServiceBoarding ServiceType = "boarding"
)

// AllServices lists services in calendar display order
var AllServices = []ServiceType{ServiceWalking, ServiceDayCare, ServiceBoarding}

// IsValid returns true if the service is known
func (s ServiceType) IsValid() bool {
	switch s {
	case ServiceWalking, ServiceDayCare, ServiceBoarding:
		return true
	default:
		return false
	}
}

// ServiceConfig holds the slot settings of one (sitter, service) pair.
// Check-in/out windows are only meaningful for overnight services.
type ServiceConfig struct {
	SitterID          int64
	Service           ServiceType
	Enabled           bool
	SlotStepMin       int
	MinDurationMin    int
	MaxDurationMin    int
	LeadTimeMin       int
	BufferBeforeMin   int
	BufferAfterMin    int
	OvernightRequired bool
	CheckInStartMin   *int
	CheckInEndMin     *int
	CheckOutStartMin  *int
	CheckOutEndMin    *int
	UpdatedAt         time.Time
}

// IsStored returns true if the config came from storage rather than the hardcoded defaults
func (c *ServiceConfig) IsStored() bool {
	return !c.UpdatedAt.IsZero()
}

// DefaultServiceConfig returns the hardcoded config used when the sitter has no stored row
func DefaultServiceConfig(sitterID int64, service ServiceType) ServiceConfig {
	cfg := ServiceConfig{
		SitterID: sitterID,
		Service:  service,
		Enabled:  true,
	}

	switch service {
	case ServiceWalking:
		cfg.SlotStepMin = 30
		cfg.MinDurationMin = 30
		cfg.MaxDurationMin = 120
		cfg.LeadTimeMin = 120
		cfg.BufferBeforeMin = 15
		cfg.BufferAfterMin = 15
	case ServiceDayCare:
		cfg.SlotStepMin = 60
		cfg.MinDurationMin = 120
		cfg.MaxDurationMin = 720
		cfg.LeadTimeMin = 180
	case ServiceBoarding:
		cfg.SlotStepMin = 60
		cfg.MinDurationMin = 60
		cfg.MaxDurationMin = MinutesPerDay
		cfg.LeadTimeMin = MinutesPerDay
		cfg.OvernightRequired = true
		cfg.CheckInStartMin = intPtr(8 * 60)
		cfg.CheckInEndMin = intPtr(19 * 60)
		cfg.CheckOutStartMin = intPtr(8 * 60)
		cfg.CheckOutEndMin = intPtr(12 * 60)
	default:
		cfg.Enabled = false
	}

	return cfg
}

func intPtr(v int) *int {
	return &v
}

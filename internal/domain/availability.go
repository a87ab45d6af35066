package domain

// SlotStatus is the closed set of availability states a slot, interval or day can be in
type SlotStatus string

const (
	StatusAvailable   SlotStatus = "AVAILABLE"
	StatusOnRequest   SlotStatus = "ON_REQUEST"
	StatusUnavailable SlotStatus = "UNAVAILABLE"
)

// IsValid returns true if the status is one of the known values
func (s SlotStatus) IsValid() bool {
	switch s {
	case StatusAvailable, StatusOnRequest, StatusUnavailable:
		return true
	default:
		return false
	}
}

// Rank orders statuses from least to most restrictive
func (s SlotStatus) Rank() int {
	switch s {
	case StatusAvailable:
		return 0
	case StatusOnRequest:
		return 1
	default:
		return 2
	}
}

// AvailabilityRule is a weekly recurring window edited by the sitter.
// DayOfWeek follows time.Weekday: 0 = Sunday.
type AvailabilityRule struct {
	ID        int64
	SitterID  int64
	Service   ServiceType
	DayOfWeek int
	StartMin  int
	EndMin    int
	Status    SlotStatus // AVAILABLE or ON_REQUEST
}

// AvailabilityException overrides the weekly rules of one calendar date within its own window.
// An all-day override is a single row spanning [0, 1440).
type AvailabilityException struct {
	ID       int64
	SitterID int64
	Service  ServiceType
	Date     string // YYYY-MM-DD
	StartMin int
	EndMin   int
	Status   SlotStatus
}

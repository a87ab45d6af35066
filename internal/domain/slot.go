package domain

import "time"

// DaySlot is one bookable window of a single calendar day. It is derived per request and never stored.
type DaySlot struct {
	StartAt time.Time
	EndAt   time.Time
	// StartMin and EndMin count minutes elapsed since local midnight, so DST days keep real lengths
	StartMin int
	EndMin   int
	Status   SlotStatus
	Reason   string
}

// DurationMinutes returns the slot length in minutes
func (s *DaySlot) DurationMinutes() int {
	return s.EndMin - s.StartMin
}

// CalendarDay holds the summarized status of every requested service for one date
type CalendarDay struct {
	Date     string
	Statuses map[ServiceType]SlotStatus
}

// BoardingDay is the verdict for one date of a boarding stay
type BoardingDay struct {
	Date   string
	Status SlotStatus
	Reason string
}

// BoardingRangeResult is the verdict for a whole stay evaluated as one unit
type BoardingRangeResult struct {
	Status       SlotStatus
	Days         []BoardingDay
	BlockingDays []string
}

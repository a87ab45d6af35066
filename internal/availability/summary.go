package availability

import "github.com/m04kA/SMC-AvailabilityService/internal/domain"

// SummarizeDayStatus reduces a day's slots to one status for calendar rendering:
// any AVAILABLE slot makes the day AVAILABLE, an empty day is UNAVAILABLE,
// otherwise any ON_REQUEST slot makes it ON_REQUEST.
func SummarizeDayStatus(slots []domain.DaySlot) domain.SlotStatus {
	if len(slots) == 0 {
		return domain.StatusUnavailable
	}

	onRequest := false
	for _, s := range slots {
		switch s.Status {
		case domain.StatusAvailable:
			return domain.StatusAvailable
		case domain.StatusOnRequest:
			onRequest = true
		}
	}

	if onRequest {
		return domain.StatusOnRequest
	}
	return domain.StatusUnavailable
}

// strictestSlot returns the most restrictive slot, the first one on ties
func strictestSlot(slots []domain.DaySlot) (domain.DaySlot, bool) {
	if len(slots) == 0 {
		return domain.DaySlot{}, false
	}
	worst := slots[0]
	for _, s := range slots[1:] {
		if s.Status.Rank() > worst.Status.Rank() {
			worst = s
		}
	}
	return worst, true
}

package availability

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// DayInput is everything ComputeDaySlots needs for one (sitter, service, date).
// Rules and exceptions for other weekdays or dates are ignored, so callers may pass wider slices.
type DayInput struct {
	Date       string // YYYY-MM-DD in the fixed zone
	Rules      []domain.AvailabilityRule
	Exceptions []domain.AvailabilityException
	Bookings   []domain.Booking
	Config     domain.ServiceConfig
	Now        time.Time
	// DurationMin overrides Config.MinDurationMin when positive
	DurationMin int
}

// ComputeDaySlots returns the ordered slots of one day. A malformed date yields no slots.
func ComputeDaySlots(in DayInput) []domain.DaySlot {
	day, ok := ParseDay(in.Date)
	if !ok {
		return []domain.DaySlot{}
	}
	return computeDaySlots(day, in, false)
}

func computeDaySlots(day Day, in DayInput, skipLeadTime bool) []domain.DaySlot {
	slots := make([]domain.DaySlot, 0)
	if !in.Config.Enabled {
		return slots
	}

	duration := in.DurationMin
	if duration <= 0 {
		duration = in.Config.MinDurationMin
	}
	if duration <= 0 {
		return slots
	}
	step := in.Config.SlotStepMin
	if step <= 0 {
		step = duration
	}

	agenda := buildAgenda(day, in.Rules, in.Exceptions)
	if len(agenda) == 0 {
		return slots
	}

	hard, soft := projectBlocks(day, in)
	agenda = applyHardBlocks(agenda, hard)

	leadTime := time.Duration(in.Config.LeadTimeMin) * time.Minute

	for _, iv := range agenda {
		for start := ceilToStep(iv.Start, step); start+duration <= iv.End; start += step {
			end := start + duration
			slot := domain.DaySlot{
				StartAt:  day.At(start),
				EndAt:    day.At(end),
				StartMin: start,
				EndMin:   end,
				Status:   iv.Status,
				Reason:   iv.Reason,
			}

			if !skipLeadTime && slot.StartAt.Sub(in.Now) < leadTime {
				slot.Status = domain.StatusUnavailable
				slot.Reason = domain.ReasonLeadTime
			} else if slot.Status == domain.StatusAvailable {
				for _, sb := range soft {
					if sb.overlaps(start, end) {
						slot.Status = domain.StatusOnRequest
						slot.Reason = sb.Reason
						break
					}
				}
			}

			slots = append(slots, slot)
		}
	}

	sort.SliceStable(slots, func(a, b int) bool {
		if slots[a].StartMin != slots[b].StartMin {
			return slots[a].StartMin < slots[b].StartMin
		}
		return slots[a].EndMin < slots[b].EndMin
	})

	return slots
}

// buildAgenda lays the date's exceptions over its weekly rules
func buildAgenda(day Day, rules []domain.AvailabilityRule, exceptions []domain.AvailabilityException) []Interval {
	weekday := day.Weekday()
	base := make([]Interval, 0)
	for _, r := range rules {
		if r.DayOfWeek != weekday {
			continue
		}
		if r.Status != domain.StatusAvailable && r.Status != domain.StatusOnRequest {
			continue
		}
		iv, ok := NormalizeWithin(Interval{
			Start:  day.Offset(r.StartMin),
			End:    day.Offset(r.EndMin),
			Status: r.Status,
		}, day.Minutes())
		if ok {
			base = append(base, iv)
		}
	}
	agenda := Flatten(MergeSameStatus(base))

	date := day.String()
	overrides := make([]Interval, 0)
	for _, e := range exceptions {
		if e.Date != date || !e.Status.IsValid() {
			continue
		}
		iv, ok := NormalizeWithin(Interval{
			Start:  day.Offset(e.StartMin),
			End:    day.Offset(e.EndMin),
			Status: e.Status,
			Reason: exceptionReason(e.Status),
		}, day.Minutes())
		if ok {
			overrides = append(overrides, iv)
		}
	}

	return Override(agenda, overrides)
}

func exceptionReason(status domain.SlotStatus) string {
	switch status {
	case domain.StatusUnavailable:
		return domain.ReasonExceptionUnavailable
	case domain.StatusOnRequest:
		return domain.ReasonExceptionOnRequest
	default:
		return ""
	}
}

// projectBlocks translates bookings into hard and soft intervals of this date, keeping storage order
func projectBlocks(day Day, in DayInput) (hard, soft []Interval) {
	for _, b := range in.Bookings {
		block, ok := BlockForBooking(b, in.Now, in.Config.BufferBeforeMin, in.Config.BufferAfterMin)
		if !ok {
			continue
		}
		iv, ok := block.Project(day)
		if !ok {
			continue
		}
		if block.Kind == BlockHard {
			hard = append(hard, iv)
		} else {
			soft = append(soft, iv)
		}
	}
	return hard, soft
}

// applyHardBlocks removes hard windows from the offerable agenda. The removed parts are kept
// as UNAVAILABLE with the block's reason so occupied slots still show up in the day view.
func applyHardBlocks(agenda []Interval, hard []Interval) []Interval {
	if len(hard) == 0 {
		return agenda
	}

	occupied := make([]Interval, 0)
	for _, h := range hard {
		for _, removed := range Intersect(agenda, h) {
			removed.Status = domain.StatusUnavailable
			removed.Reason = h.Reason
			occupied = append(occupied, removed)
		}
		agenda = Subtract(agenda, h)
	}

	return MergeSameStatus(append(agenda, occupied...))
}

func ceilToStep(minute, step int) int {
	if minute%step == 0 {
		return minute
	}
	return (minute/step + 1) * step
}

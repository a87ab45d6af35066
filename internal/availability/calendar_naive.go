package availability

import "github.com/m04kA/SMC-AvailabilityService/internal/domain"

// BuildCalendarNaive is the reference implementation of BuildCalendar: for every date and service it
// filters the full collections and runs ComputeDaySlots. It is O(days × services × records) and only
// runs in tests and when calendar verification is switched on.
func BuildCalendarNaive(in CalendarInput) []domain.CalendarDay {
	from, to, ok := parseRange(in.From, in.To)
	if !ok {
		return []domain.CalendarDay{}
	}

	services := CalendarServices(in.Services)
	days := DaysBetween(from, to)
	result := make([]domain.CalendarDay, 0, len(days))

	for _, d := range days {
		date := d.String()
		day := domain.CalendarDay{
			Date:     date,
			Statuses: make(map[domain.ServiceType]domain.SlotStatus, len(services)),
		}

		for _, svc := range services {
			rules := make([]domain.AvailabilityRule, 0)
			for _, r := range in.Rules {
				if r.SitterID == in.SitterID && r.Service == svc {
					rules = append(rules, r)
				}
			}

			exceptions := make([]domain.AvailabilityException, 0)
			for _, e := range in.Exceptions {
				if e.SitterID == in.SitterID && e.Service == svc {
					exceptions = append(exceptions, e)
				}
			}

			bookings := make([]domain.Booking, 0)
			for _, b := range in.Bookings {
				if b.SitterID == in.SitterID {
					bookings = append(bookings, b)
				}
			}

			slots := ComputeDaySlots(DayInput{
				Date:       date,
				Rules:      rules,
				Exceptions: exceptions,
				Bookings:   bookings,
				Config:     EffectiveConfig(in.SitterID, svc, in.Configs),
				Now:        in.Now,
			})
			day.Statuses[svc] = SummarizeDayStatus(slots)
		}

		result = append(result, day)
	}

	return result
}

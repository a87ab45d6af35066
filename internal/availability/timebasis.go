package availability

import (
	"fmt"
	"time"
	_ "time/tzdata"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

var location = mustLoadLocation(domain.Timezone)

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(fmt.Sprintf("availability: load timezone %s: %v", name, err))
	}
	return loc
}

// Location returns the fixed zone every day boundary is computed in
func Location() *time.Location {
	return location
}

// Day is a calendar date in the fixed zone
type Day struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseDay parses a strict YYYY-MM-DD date. Normalized dates like 2026-02-30 are rejected.
func ParseDay(s string) (Day, bool) {
	t, err := time.Parse(domain.DateFormat, s)
	if err != nil {
		return Day{}, false
	}
	return Day{Year: t.Year(), Month: t.Month(), Day: t.Day()}, true
}

// DayOf returns the local calendar date an instant falls on
func DayOf(t time.Time) Day {
	y, m, d := t.In(location).Date()
	return Day{Year: y, Month: m, Day: d}
}

// String formats the date as YYYY-MM-DD
func (d Day) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// AddDays shifts the date by n calendar days
func (d Day) AddDays(n int) Day {
	t := time.Date(d.Year, d.Month, d.Day+n, 12, 0, 0, 0, time.UTC)
	return Day{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// Before reports whether d is strictly earlier than other
func (d Day) Before(other Day) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

// Weekday of the calendar date, 0 = Sunday
func (d Day) Weekday() int {
	return int(time.Date(d.Year, d.Month, d.Day, 12, 0, 0, 0, time.UTC).Weekday())
}

// Start is local midnight of the date
func (d Day) Start() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, location)
}

// End is local midnight of the following date. On DST transition days End-Start is 23h or 25h.
func (d Day) End() time.Time {
	return d.AddDays(1).Start()
}

// Minutes is the length of the date in minutes: 1440, or 1380 and 1500 on DST transition days
func (d Day) Minutes() int {
	return int(d.End().Sub(d.Start()) / time.Minute)
}

// Offset converts a wall-clock minute of this date into minutes elapsed since local midnight.
// Slots, rules and blocks of a day all live on the elapsed scale. 1440 maps to the end of the date.
func (d Day) Offset(clock int) int {
	if clock >= domain.MinutesPerDay {
		return d.Minutes()
	}
	if clock <= 0 {
		return 0
	}
	wall := time.Date(d.Year, d.Month, d.Day, 0, clock, 0, 0, location)
	return int(wall.Sub(d.Start()) / time.Minute)
}

// At returns the instant an elapsed minute falls on. Minutes past the end of the date map to End.
func (d Day) At(minute int) time.Time {
	if minute >= d.Minutes() {
		return d.End()
	}
	return d.Start().Add(time.Duration(minute) * time.Minute)
}

// ClockOf formats an instant of this date as local HH:MM. The end of the date formats as 24:00.
func (d Day) ClockOf(t time.Time) string {
	if !t.Before(d.End()) {
		return "24:00"
	}
	return t.In(location).Format(domain.TimeFormat)
}

// elapsedMinutes counts whole minutes from the start of the date, rounding partial minutes up when ceil is set
func (d Day) elapsedMinutes(t time.Time, ceil bool) int {
	elapsed := t.Sub(d.Start())
	minutes := int(elapsed / time.Minute)
	if ceil && elapsed%time.Minute > 0 {
		minutes++
	}
	return minutes
}

// DaysBetween lists every date in [from, to]. Empty if to is before from.
func DaysBetween(from, to Day) []Day {
	if to.Before(from) {
		return nil
	}
	days := make([]Day, 0)
	for d := from; !to.Before(d); d = d.AddDays(1) {
		days = append(days, d)
	}
	return days
}

// ParseClock parses HH:MM into minutes since midnight. 24:00 is accepted as 1440.
func ParseClock(s string) (int, error) {
	if s == "24:00" {
		return domain.MinutesPerDay, nil
	}
	t, err := time.Parse(domain.TimeFormat, s)
	if err != nil {
		return 0, fmt.Errorf("invalid clock %q: %w", s, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatClock formats minutes since midnight as HH:MM
func FormatClock(minute int) string {
	return fmt.Sprintf("%02d:%02d", minute/60, minute%60)
}

package availability

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

const monday = "2026-02-16"

func testConfig() domain.ServiceConfig {
	return domain.ServiceConfig{
		SitterID:       1,
		Service:        domain.ServiceWalking,
		Enabled:        true,
		SlotStepMin:    30,
		MinDurationMin: 30,
		MaxDurationMin: 120,
	}
}

func rule(weekday, start, end int, status domain.SlotStatus) domain.AvailabilityRule {
	return domain.AvailabilityRule{SitterID: 1, Service: domain.ServiceWalking, DayOfWeek: weekday, StartMin: start, EndMin: end, Status: status}
}

func exception(date string, start, end int, status domain.SlotStatus) domain.AvailabilityException {
	return domain.AvailabilityException{SitterID: 1, Service: domain.ServiceWalking, Date: date, StartMin: start, EndMin: end, Status: status}
}

func starts(slots []domain.DaySlot) []int {
	out := make([]int, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.StartMin)
	}
	return out
}

func slotAt(t *testing.T, slots []domain.DaySlot, startMin int) domain.DaySlot {
	t.Helper()
	for _, s := range slots {
		if s.StartMin == startMin {
			return s
		}
	}
	t.Fatalf("no slot starting at %s", FormatClock(startMin))
	return domain.DaySlot{}
}

func TestComputeDaySlots_PlainRuleMorning(t *testing.T) {
	slots := ComputeDaySlots(DayInput{
		Date:   monday,
		Rules:  []domain.AvailabilityRule{rule(1, 9*60, 12*60, domain.StatusAvailable)},
		Config: testConfig(),
		Now:    at("2026-02-10", 9, 0),
	})

	require.Len(t, slots, 6)
	assert.Equal(t, []int{540, 570, 600, 630, 660, 690}, starts(slots))
	for _, s := range slots {
		assert.Equal(t, domain.StatusAvailable, s.Status)
		assert.Empty(t, s.Reason)
		assert.Equal(t, 30, s.DurationMinutes())
	}
	assert.True(t, slots[0].StartAt.Equal(at(monday, 9, 0)))
	assert.True(t, slots[5].EndAt.Equal(at(monday, 12, 0)))
}

func TestComputeDaySlots_ExceptionClosesHourInsideRule(t *testing.T) {
	slots := ComputeDaySlots(DayInput{
		Date:       monday,
		Rules:      []domain.AvailabilityRule{rule(1, 9*60, 12*60, domain.StatusAvailable)},
		Exceptions: []domain.AvailabilityException{exception(monday, 10*60, 11*60, domain.StatusUnavailable)},
		Config:     testConfig(),
		Now:        at("2026-02-10", 9, 0),
	})

	require.Len(t, slots, 6)
	for _, s := range slots {
		if s.StartMin == 600 || s.StartMin == 630 {
			assert.Equal(t, domain.StatusUnavailable, s.Status)
			assert.Equal(t, domain.ReasonExceptionUnavailable, s.Reason)
			continue
		}
		assert.Equal(t, domain.StatusAvailable, s.Status, "slot %s", FormatClock(s.StartMin))
	}
}

func TestComputeDaySlots_ConfirmedBookingBlocksOverlappingSlots(t *testing.T) {
	now := at("2026-02-10", 9, 0)
	slots := ComputeDaySlots(DayInput{
		Date:     monday,
		Rules:    []domain.AvailabilityRule{rule(1, 9*60, 11*60, domain.StatusAvailable)},
		Bookings: []domain.Booking{booking(domain.BookingConfirmed, now, at(monday, 9, 30), at(monday, 10, 30))},
		Config:   testConfig(),
		Now:      now,
	})

	require.Equal(t, []int{540, 570, 600, 630}, starts(slots))
	assert.Equal(t, domain.StatusAvailable, slotAt(t, slots, 540).Status)
	assert.Equal(t, domain.StatusAvailable, slotAt(t, slots, 630).Status)
	for _, m := range []int{570, 600} {
		s := slotAt(t, slots, m)
		assert.Equal(t, domain.StatusUnavailable, s.Status)
		assert.Equal(t, domain.ReasonBookingConfirmed, s.Reason)
	}
}

func TestComputeDaySlots_BuffersWidenHardBlock(t *testing.T) {
	now := at("2026-02-10", 9, 0)
	cfg := testConfig()
	cfg.BufferBeforeMin = 30
	cfg.BufferAfterMin = 30

	slots := ComputeDaySlots(DayInput{
		Date:     monday,
		Rules:    []domain.AvailabilityRule{rule(1, 9*60, 13*60, domain.StatusAvailable)},
		Bookings: []domain.Booking{booking(domain.BookingPaid, now, at(monday, 10, 30), at(monday, 11, 0))},
		Config:   cfg,
		Now:      now,
	})

	for _, s := range slots {
		blocked := s.StartMin >= 600 && s.StartMin < 690
		if blocked {
			assert.Equal(t, domain.StatusUnavailable, s.Status, "slot %s", FormatClock(s.StartMin))
		} else {
			assert.Equal(t, domain.StatusAvailable, s.Status, "slot %s", FormatClock(s.StartMin))
		}
	}
}

func TestComputeDaySlots_HardBlockOutsideAgendaAddsNothing(t *testing.T) {
	now := at("2026-02-10", 9, 0)
	slots := ComputeDaySlots(DayInput{
		Date:     monday,
		Rules:    []domain.AvailabilityRule{rule(1, 9*60, 10*60, domain.StatusAvailable)},
		Bookings: []domain.Booking{booking(domain.BookingConfirmed, now, at(monday, 14, 0), at(monday, 16, 0))},
		Config:   testConfig(),
		Now:      now,
	})

	assert.Equal(t, []int{540, 570}, starts(slots))
}

func TestComputeDaySlots_MultiDayBookingBlocksWholeDay(t *testing.T) {
	now := at("2026-02-10", 9, 0)
	slots := ComputeDaySlots(DayInput{
		Date:     monday,
		Rules:    []domain.AvailabilityRule{rule(1, 8*60, 20*60, domain.StatusAvailable)},
		Bookings: []domain.Booking{booking(domain.BookingConfirmed, now, at("2026-02-15", 18, 0), at("2026-02-17", 10, 0))},
		Config:   testConfig(),
		Now:      now,
	})

	require.NotEmpty(t, slots)
	for _, s := range slots {
		assert.Equal(t, domain.StatusUnavailable, s.Status)
		assert.Equal(t, domain.ReasonBookingConfirmed, s.Reason)
	}
	assert.Equal(t, domain.StatusUnavailable, SummarizeDayStatus(slots))
}

func TestComputeDaySlots_SoftBlocks(t *testing.T) {
	now := at("2026-02-16", 6, 0)
	rules := []domain.AvailabilityRule{
		rule(1, 9*60, 10*60, domain.StatusAvailable),
		rule(1, 10*60, 11*60, domain.StatusOnRequest),
	}
	exceptions := []domain.AvailabilityException{exception(monday, 11*60, 12*60, domain.StatusUnavailable)}
	rules = append(rules, rule(1, 11*60, 12*60, domain.StatusAvailable))

	bookings := []domain.Booking{
		booking(domain.BookingPendingPayment, now.Add(-10*time.Minute), at(monday, 9, 0), at(monday, 12, 0)),
		booking(domain.BookingPendingAcceptance, now.Add(-time.Hour), at(monday, 9, 0), at(monday, 12, 0)),
	}

	slots := ComputeDaySlots(DayInput{
		Date:       monday,
		Rules:      rules,
		Exceptions: exceptions,
		Bookings:   bookings,
		Config:     testConfig(),
		Now:        now,
	})
	require.Len(t, slots, 6)

	t.Run("available is downgraded with first matching block", func(t *testing.T) {
		s := slotAt(t, slots, 540)
		assert.Equal(t, domain.StatusOnRequest, s.Status)
		assert.Equal(t, domain.ReasonPendingPayment, s.Reason)
	})

	t.Run("on request keeps its own reason", func(t *testing.T) {
		s := slotAt(t, slots, 600)
		assert.Equal(t, domain.StatusOnRequest, s.Status)
		assert.Empty(t, s.Reason)
	})

	t.Run("unavailable is never upgraded", func(t *testing.T) {
		s := slotAt(t, slots, 660)
		assert.Equal(t, domain.StatusUnavailable, s.Status)
		assert.Equal(t, domain.ReasonExceptionUnavailable, s.Reason)
	})
}

func TestComputeDaySlots_SoftBlockExpires(t *testing.T) {
	created := at("2026-02-16", 6, 0)
	in := DayInput{
		Date:     monday,
		Rules:    []domain.AvailabilityRule{rule(1, 9*60, 10*60, domain.StatusAvailable)},
		Bookings: []domain.Booking{booking(domain.BookingPendingPayment, created, at(monday, 9, 0), at(monday, 10, 0))},
		Config:   testConfig(),
	}

	in.Now = created.Add(20 * time.Minute)
	assert.Equal(t, domain.StatusOnRequest, SummarizeDayStatus(ComputeDaySlots(in)))

	in.Now = created.Add(40 * time.Minute)
	assert.Equal(t, domain.StatusAvailable, SummarizeDayStatus(ComputeDaySlots(in)))
}

func TestComputeDaySlots_LeadTime(t *testing.T) {
	cfg := testConfig()
	cfg.LeadTimeMin = 120
	now := at(monday, 8, 0)

	slots := ComputeDaySlots(DayInput{
		Date:     monday,
		Rules:    []domain.AvailabilityRule{rule(1, 9*60, 12*60, domain.StatusAvailable)},
		Bookings: []domain.Booking{booking(domain.BookingConfirmed, now, at(monday, 9, 0), at(monday, 9, 30))},
		Config:   cfg,
		Now:      now,
	})

	require.Len(t, slots, 6)
	for _, s := range slots {
		if s.StartMin < 600 {
			assert.Equal(t, domain.StatusUnavailable, s.Status)
			assert.Equal(t, domain.ReasonLeadTime, s.Reason, "lead time wins over the booking at %s", FormatClock(s.StartMin))
			continue
		}
		assert.Equal(t, domain.StatusAvailable, s.Status, "slot %s", FormatClock(s.StartMin))
	}
}

func TestComputeDaySlots_LeadTimeMonotonic(t *testing.T) {
	cfg := testConfig()
	cfg.LeadTimeMin = 90
	rules := []domain.AvailabilityRule{rule(1, 0, 24*60, domain.StatusAvailable)}

	for minute := 0; minute < 24*60; minute += 17 {
		now := at(monday, 0, 0).Add(time.Duration(minute) * time.Minute)
		slots := ComputeDaySlots(DayInput{Date: monday, Rules: rules, Config: cfg, Now: now})
		threshold := now.Add(90 * time.Minute)
		for _, s := range slots {
			if s.StartAt.Before(threshold) {
				require.Equal(t, domain.ReasonLeadTime, s.Reason)
			} else {
				require.Equal(t, domain.StatusAvailable, s.Status)
			}
		}
	}
}

func TestComputeDaySlots_ExceptionsApplyInStorageOrder(t *testing.T) {
	in := DayInput{
		Date:   monday,
		Rules:  []domain.AvailabilityRule{rule(1, 9*60, 12*60, domain.StatusAvailable)},
		Config: testConfig(),
		Now:    at("2026-02-10", 9, 0),
	}
	closeLate := exception(monday, 10*60, 12*60, domain.StatusUnavailable)
	reopen := exception(monday, 10*60+30, 11*60, domain.StatusOnRequest)

	in.Exceptions = []domain.AvailabilityException{closeLate, reopen}
	slots := ComputeDaySlots(in)
	assert.Equal(t, domain.StatusOnRequest, slotAt(t, slots, 630).Status)
	assert.Equal(t, domain.StatusUnavailable, slotAt(t, slots, 600).Status)

	in.Exceptions = []domain.AvailabilityException{reopen, closeLate}
	slots = ComputeDaySlots(in)
	assert.Equal(t, domain.StatusUnavailable, slotAt(t, slots, 630).Status)
	assert.Equal(t, domain.ReasonExceptionUnavailable, slotAt(t, slots, 630).Reason)
}

func TestComputeDaySlots_ExceptionOpensDayWithoutRules(t *testing.T) {
	sunday := "2026-02-15"
	slots := ComputeDaySlots(DayInput{
		Date:       sunday,
		Rules:      []domain.AvailabilityRule{rule(1, 9*60, 12*60, domain.StatusAvailable)},
		Exceptions: []domain.AvailabilityException{exception(sunday, 14*60, 15*60, domain.StatusAvailable)},
		Config:     testConfig(),
		Now:        at("2026-02-10", 9, 0),
	})

	assert.Equal(t, []int{840, 870}, starts(slots))
}

func TestComputeDaySlots_ExceptionForOtherDateIgnored(t *testing.T) {
	slots := ComputeDaySlots(DayInput{
		Date:       monday,
		Rules:      []domain.AvailabilityRule{rule(1, 9*60, 10*60, domain.StatusAvailable)},
		Exceptions: []domain.AvailabilityException{exception("2026-02-23", 0, 1440, domain.StatusUnavailable)},
		Config:     testConfig(),
		Now:        at("2026-02-10", 9, 0),
	})

	assert.Equal(t, domain.StatusAvailable, SummarizeDayStatus(slots))
}

func TestComputeDaySlots_StepAlignmentAndDurationOverride(t *testing.T) {
	slots := ComputeDaySlots(DayInput{
		Date:        monday,
		Rules:       []domain.AvailabilityRule{rule(1, 9*60+10, 12*60, domain.StatusAvailable)},
		Config:      testConfig(),
		Now:         at("2026-02-10", 9, 0),
		DurationMin: 60,
	})

	assert.Equal(t, []int{570, 600, 630, 660}, starts(slots))
	for _, s := range slots {
		assert.Equal(t, 60, s.DurationMinutes())
	}
}

func TestComputeDaySlots_EmptyResults(t *testing.T) {
	base := DayInput{
		Date:   monday,
		Rules:  []domain.AvailabilityRule{rule(1, 9*60, 12*60, domain.StatusAvailable)},
		Config: testConfig(),
		Now:    at("2026-02-10", 9, 0),
	}

	t.Run("malformed date", func(t *testing.T) {
		for _, date := range []string{"", "2026-02-30", "16/02/2026", "2026-2-16"} {
			in := base
			in.Date = date
			slots := ComputeDaySlots(in)
			assert.NotNil(t, slots)
			assert.Empty(t, slots, date)
		}
	})

	t.Run("disabled service", func(t *testing.T) {
		in := base
		in.Config.Enabled = false
		assert.Empty(t, ComputeDaySlots(in))
	})

	t.Run("no rule for weekday", func(t *testing.T) {
		in := base
		in.Date = "2026-02-17"
		assert.Empty(t, ComputeDaySlots(in))
	})

	t.Run("window shorter than duration", func(t *testing.T) {
		in := base
		in.DurationMin = 240
		assert.Empty(t, ComputeDaySlots(in))
	})
}

func TestComputeDaySlots_DaylightSavingDay(t *testing.T) {
	// Europe/Paris moves from UTC+1 to UTC+2 on 2026-03-29.
	sunday := "2026-03-29"
	d, _ := ParseDay(sunday)
	assert.Equal(t, 23*time.Hour, d.End().Sub(d.Start()))

	slots := ComputeDaySlots(DayInput{
		Date:   sunday,
		Rules:  []domain.AvailabilityRule{rule(0, 9*60, 10*60, domain.StatusAvailable)},
		Config: testConfig(),
		Now:    at("2026-03-20", 9, 0),
	})

	require.Len(t, slots, 2)
	assert.True(t, slots[0].StartAt.Equal(time.Date(2026, 3, 29, 7, 0, 0, 0, time.UTC)))
}

func TestComputeDaySlots_AutumnDaylightSavingDay(t *testing.T) {
	// Europe/Paris moves from UTC+2 to UTC+1 on 2026-10-25 and repeats 02:00-03:00.
	sunday := "2026-10-25"
	d, _ := ParseDay(sunday)
	assert.Equal(t, 25*time.Hour, d.End().Sub(d.Start()))

	confirmed := booking(domain.BookingConfirmed, at("2026-10-20", 9, 0),
		time.Date(2026, 10, 25, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 10, 25, 1, 0, 0, 0, time.UTC))

	slots := ComputeDaySlots(DayInput{
		Date:     sunday,
		Rules:    []domain.AvailabilityRule{rule(0, 1*60, 4*60, domain.StatusAvailable)},
		Bookings: []domain.Booking{confirmed},
		Config:   testConfig(),
		Now:      at("2026-10-20", 9, 0),
	})

	// 01:00-04:00 local lasts four real hours on this date
	require.Len(t, slots, 8)
	assert.True(t, slots[0].StartAt.Equal(time.Date(2026, 10, 24, 23, 0, 0, 0, time.UTC)))
	assert.True(t, slots[7].EndAt.Equal(time.Date(2026, 10, 25, 3, 0, 0, 0, time.UTC)))
	for _, s := range slots {
		assert.Equal(t, 30*time.Minute, s.EndAt.Sub(s.StartAt), "slot at %s", s.StartAt)
		assert.Equal(t, 30, s.DurationMinutes())

		overlaps := s.StartAt.Before(confirmed.EndAt) && confirmed.StartAt.Before(s.EndAt)
		if overlaps {
			assert.Equal(t, domain.StatusUnavailable, s.Status, "slot at %s", s.StartAt)
			assert.Equal(t, domain.ReasonBookingConfirmed, s.Reason)
		} else {
			assert.Equal(t, domain.StatusAvailable, s.Status, "slot at %s", s.StartAt)
		}
	}
	assert.Equal(t, domain.StatusUnavailable, slotAt(t, slots, 120).Status)
	assert.Equal(t, domain.StatusUnavailable, slotAt(t, slots, 150).Status)
	assert.Equal(t, domain.StatusAvailable, slotAt(t, slots, 180).Status)
}

func TestComputeDaySlots_Deterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 50; i++ {
		fx := randomFixture(rng)
		in := DayInput{
			Date:       fx.from,
			Rules:      fx.rules,
			Exceptions: fx.exceptions,
			Bookings:   fx.bookings,
			Config:     EffectiveConfig(fx.sitterID, domain.ServiceWalking, fx.configs),
			Now:        fx.now,
		}
		require.Equal(t, ComputeDaySlots(in), ComputeDaySlots(in))
	}
}

func TestComputeDaySlots_HardBlockPriority(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 200; i++ {
		fx := randomFixture(rng)
		cfg := EffectiveConfig(fx.sitterID, domain.ServiceWalking, fx.configs)
		day, _ := ParseDay(fx.from)

		rows := make([]domain.Booking, 0)
		for _, b := range fx.bookings {
			if b.SitterID == fx.sitterID {
				rows = append(rows, b)
			}
		}

		slots := ComputeDaySlots(DayInput{
			Date:       fx.from,
			Rules:      fx.rules,
			Exceptions: fx.exceptions,
			Bookings:   rows,
			Config:     cfg,
			Now:        fx.now,
		})

		for _, b := range rows {
			block, ok := BlockForBooking(b, fx.now, cfg.BufferBeforeMin, cfg.BufferAfterMin)
			if !ok || block.Kind != BlockHard {
				continue
			}
			iv, ok := block.Project(day)
			if !ok {
				continue
			}
			for _, s := range slots {
				if iv.overlaps(s.StartMin, s.EndMin) {
					require.Equal(t, domain.StatusUnavailable, s.Status,
						"fixture %d: slot %s overlaps a hard block", i, FormatClock(s.StartMin))
				}
			}
		}
	}
}

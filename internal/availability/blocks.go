package availability

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// BlockKind says how a booking affects the agenda
type BlockKind int

const (
	// BlockHard removes the window from the offerable agenda
	BlockHard BlockKind = iota + 1
	// BlockSoft downgrades AVAILABLE slots to ON_REQUEST while its TTL runs
	BlockSoft
)

// Block is an absolute time window derived from a booking
type Block struct {
	Kind    BlockKind
	StartAt time.Time
	EndAt   time.Time
	Reason  string
}

type blockPolicy struct {
	kind        BlockKind
	ttl         time.Duration // soft blocks only
	reason      string
	withBuffers bool
}

// blockPolicies maps a booking status to its effect. Statuses absent from the table never block.
var blockPolicies = map[domain.BookingStatus]blockPolicy{
	domain.BookingConfirmed:         {kind: BlockHard, reason: domain.ReasonBookingConfirmed, withBuffers: true},
	domain.BookingPaid:              {kind: BlockHard, reason: domain.ReasonBookingConfirmed, withBuffers: true},
	domain.BookingPendingPayment:    {kind: BlockSoft, ttl: domain.PendingPaymentTTL, reason: domain.ReasonPendingPayment},
	domain.BookingPendingAcceptance: {kind: BlockSoft, ttl: domain.PendingAcceptanceTTL, reason: domain.ReasonPendingAcceptance},
}

// BlockForBooking translates a booking into a block as seen at now.
// Returns false for non-blocking statuses, expired soft blocks and rows with missing timestamps.
func BlockForBooking(b domain.Booking, now time.Time, bufferBeforeMin, bufferAfterMin int) (Block, bool) {
	if !b.HasValidWindow() {
		return Block{}, false
	}

	policy, ok := blockPolicies[b.Status]
	if !ok {
		return Block{}, false
	}

	if policy.kind == BlockSoft && now.Sub(b.CreatedAt) > policy.ttl {
		return Block{}, false
	}

	block := Block{
		Kind:    policy.kind,
		StartAt: b.StartAt,
		EndAt:   b.EndAt,
		Reason:  policy.reason,
	}
	if policy.withBuffers {
		block.StartAt = block.StartAt.Add(-time.Duration(bufferBeforeMin) * time.Minute)
		block.EndAt = block.EndAt.Add(time.Duration(bufferAfterMin) * time.Minute)
	}

	return block, true
}

// Project maps the block onto the minutes elapsed since local midnight of the given date.
// Parts before or after the date are clamped; a block that misses the date entirely yields false.
func (b Block) Project(day Day) (Interval, bool) {
	dayStart, dayEnd := day.Start(), day.End()
	if !b.StartAt.Before(dayEnd) || !b.EndAt.After(dayStart) {
		return Interval{}, false
	}

	// sub-minute ends still occupy the minute they started
	return NormalizeWithin(Interval{
		Start:  day.elapsedMinutes(b.StartAt, false),
		End:    day.elapsedMinutes(b.EndAt, true),
		Status: domain.StatusUnavailable,
		Reason: b.Reason,
	}, day.Minutes())
}

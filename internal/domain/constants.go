package domain

import "time"

// Time basis
const (
	// Timezone anchors every "which day is this instant" and weekday decision
	Timezone      = "Europe/Paris"
	MinutesPerDay = 1440
)

// Soft block lifetimes
const (
	PendingPaymentTTL    = 30 * time.Minute
	PendingAcceptanceTTL = 24 * time.Hour
)

// Reason codes attached to slots and blocks
const (
	ReasonLeadTime             = "lead_time"
	ReasonExceptionUnavailable = "exception_unavailable"
	ReasonExceptionOnRequest   = "exception_on_request"
	ReasonBookingConfirmed     = "booking_confirmed_overlap"
	ReasonPendingPayment       = "booking_pending_payment"
	ReasonPendingAcceptance    = "booking_pending_acceptance"
	ReasonNoAvailability       = "no_availability"
)

// Business validation constants
const (
	MinSlotStepMinutes = 5
	MaxCalendarDays    = 62
	MaxBoardingDays    = 60
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// BlockingStatuses список статусов, которые могут блокировать слоты (жестко или мягко)
var BlockingStatuses = []BookingStatus{
	BookingPendingPayment,
	BookingPendingAcceptance,
	BookingConfirmed,
	BookingPaid,
}

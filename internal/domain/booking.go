package domain

import "time"

// BookingStatus represents the lifecycle state of a booking
type BookingStatus string

const (
	BookingDraft             BookingStatus = "DRAFT"
	BookingPendingPayment    BookingStatus = "PENDING_PAYMENT"
	BookingPendingAcceptance BookingStatus = "PENDING_ACCEPTANCE"
	BookingConfirmed         BookingStatus = "CONFIRMED"
	BookingPaid              BookingStatus = "PAID"
	BookingCancelled         BookingStatus = "CANCELLED"
	BookingRefunded          BookingStatus = "REFUNDED"
	BookingPaymentFailed     BookingStatus = "PAYMENT_FAILED"
	BookingRefundFailed      BookingStatus = "REFUND_FAILED"
)

// Booking is the part of a booking row the availability engine needs.
// A booking occupies the sitter for every service, not only the one it was made for.
type Booking struct {
	ID        int64
	SitterID  int64
	Service   ServiceType
	Status    BookingStatus
	CreatedAt time.Time
	StartAt   time.Time
	EndAt     time.Time
}

// HasValidWindow returns true if all timestamps are present and the window is not inverted
func (b *Booking) HasValidWindow() bool {
	if b.CreatedAt.IsZero() || b.StartAt.IsZero() || b.EndAt.IsZero() {
		return false
	}
	return b.EndAt.After(b.StartAt)
}

// IsBlocking returns true if the status can produce a block at all (ignoring TTL)
func (b *Booking) IsBlocking() bool {
	for _, s := range BlockingStatuses {
		if b.Status == s {
			return true
		}
	}
	return false
}

// BookingsFilter фильтр для получения бронирований ситтера
type BookingsFilter struct {
	SitterID int64
	From     time.Time       // начало окна (включительно)
	To       time.Time       // конец окна (не включительно)
	Statuses []BookingStatus // если пусто - BlockingStatuses
}

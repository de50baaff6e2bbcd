package bookings

import (
	"time"

	"eventhub/internal/selection"
	"eventhub/pkg/money"
)

// Booking is a committed selection. Its seats are price snapshots taken at
// commit time and never change afterwards.
type Booking struct {
	ID            int64                    `json:"id" validate:"required,min=1"`
	UserID        int64                    `json:"userId" validate:"required,min=1"`
	EventID       int64                    `json:"eventId" validate:"required,min=1"`
	EventTitle    string                   `json:"eventTitle"`
	Seats         []selection.SeatSnapshot `json:"seats" validate:"required,min=1,dive"`
	PaymentMethod string                   `json:"paymentMethod"`
	TransactionID string                   `json:"transactionId" validate:"required"`
	BookingDate   time.Time                `json:"bookingDate"`
	Status        Status                   `json:"status" validate:"oneof=confirmed cancelled"`
	TotalAmount   money.Amount             `json:"totalAmount" validate:"gte=0"`
	CancelledAt   *time.Time               `json:"cancelledAt,omitempty"`
	CancelledBy   int64                    `json:"cancelledBy,omitempty"`
}

func (b *Booking) IsConfirmed() bool {
	return b.Status == StatusConfirmed
}

func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// Cancel moves a confirmed booking to cancelled. It reports false when the
// booking was not confirmed and leaves it untouched.
func (b *Booking) Cancel(by int64, at time.Time) bool {
	if !b.Status.CanBeCancelled() {
		return false
	}
	b.Status = StatusCancelled
	b.CancelledAt = &at
	b.CancelledBy = by
	return true
}

// SeatIDs lists the booked seat ids in booking order.
func (b *Booking) SeatIDs() []string {
	ids := make([]string, 0, len(b.Seats))
	for _, s := range b.Seats {
		ids = append(ids, s.ID)
	}
	return ids
}

// Actor is whoever asks for a booking operation.
type Actor struct {
	UserID int64
	Admin  bool
}

// CanAccess reports whether the actor owns the booking or is an administrator.
func (a Actor) CanAccess(b *Booking) bool {
	return a.Admin || (a.UserID != 0 && a.UserID == b.UserID)
}

package notifications

import (
	"encoding/json"
	"strconv"
	"time"

	"eventhub/internal/bookings"
	"eventhub/pkg/money"
)

type EventType string

const (
	EventTypeBookingConfirmed EventType = "booking.confirmed"
	EventTypeBookingCancelled EventType = "booking.cancelled"
)

// BookingEvent is the message published for each booking state change.
type BookingEvent struct {
	Type          EventType    `json:"type"`
	BookingID     int64        `json:"booking_id"`
	EventID       int64        `json:"event_id"`
	EventTitle    string       `json:"event_title"`
	UserID        int64        `json:"user_id"`
	SeatIDs       []string     `json:"seat_ids"`
	TotalAmount   money.Amount `json:"total_amount"`
	PaymentMethod string       `json:"payment_method"`
	TransactionID string       `json:"transaction_id"`
	SeatsReleased bool         `json:"seats_released,omitempty"`
	OccurredAt    time.Time    `json:"occurred_at"`
}

// NewBookingEvent describes b as an event of type t.
func NewBookingEvent(t EventType, b *bookings.Booking, at time.Time) *BookingEvent {
	return &BookingEvent{
		Type:          t,
		BookingID:     b.ID,
		EventID:       b.EventID,
		EventTitle:    b.EventTitle,
		UserID:        b.UserID,
		SeatIDs:       b.SeatIDs(),
		TotalAmount:   b.TotalAmount,
		PaymentMethod: b.PaymentMethod,
		TransactionID: b.TransactionID,
		OccurredAt:    at,
	}
}

// ToJSON converts the event to JSON
func (e *BookingEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// GetPartitionKey keeps every message for one event seat map on the same partition.
func (e *BookingEvent) GetPartitionKey() string {
	return strconv.FormatInt(e.EventID, 10)
}

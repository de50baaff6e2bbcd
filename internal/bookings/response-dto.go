package bookings

import (
	"eventhub/internal/events"
	"eventhub/internal/payments"
	"eventhub/internal/pricing"
	"eventhub/internal/selection"
)

// QuoteResponse prices a prospective selection.
type QuoteResponse struct {
	EventID  int64                    `json:"event_id"`
	Seats    []selection.SeatSnapshot `json:"seats"`
	Rejected []string                 `json:"rejected,omitempty"`
	Summary  pricing.Quote            `json:"summary"`
}

func newQuoteResponse(event *events.Event, sel *selection.Session, rejected []string) *QuoteResponse {
	return &QuoteResponse{
		EventID:  event.ID,
		Seats:    sel.Seats(),
		Rejected: rejected,
		Summary:  sel.Summary(),
	}
}

// BookingResponse is returned by checkout.
type BookingResponse struct {
	Booking *Booking          `json:"booking"`
	Payment *payments.Receipt `json:"payment"`
}

// ConflictDetails is the error body for a seat conflict.
type ConflictDetails struct {
	SeatIDs []string `json:"seat_ids"`
}

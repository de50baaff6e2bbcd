// Package selection tracks a visitor's uncommitted seat picks for one event.
package selection

import (
	"eventhub/internal/events"
	"eventhub/internal/pricing"
	"eventhub/internal/seatmap"
	"eventhub/pkg/money"
)

// SeatSnapshot captures a seat and its price at the moment it was picked.
type SeatSnapshot struct {
	ID    string       `json:"id" validate:"required"`
	Row   int          `json:"row" validate:"min=1"`
	Col   int          `json:"col" validate:"min=1"`
	Tier  seatmap.Tier `json:"type" validate:"oneof=VIP Premium Standard"`
	Price money.Amount `json:"price" validate:"gte=0"`
}

// Session is an ordered set of picked seats. It reads the event's seat map
// and never writes to it. A Session is owned by a single caller and is not
// safe for concurrent use.
type Session struct {
	event   *events.Event
	seats   []SeatSnapshot
	summary pricing.Quote
}

func NewSession(event *events.Event) *Session {
	return &Session{event: event}
}

// EventID is the event the session is scoped to.
func (s *Session) EventID() int64 {
	if s.event == nil {
		return 0
	}
	return s.event.ID
}

// Toggle adds an unoccupied seat, or removes it if already picked. Unknown
// and occupied seats are ignored. It reports whether the session changed.
func (s *Session) Toggle(seatID string) bool {
	if s.event == nil {
		return false
	}
	seat, ok := s.event.SeatMap.Find(seatID)
	if !ok || seat.Occupied {
		return false
	}

	if i := s.indexOf(seatID); i >= 0 {
		s.seats = append(s.seats[:i], s.seats[i+1:]...)
	} else {
		s.seats = append(s.seats, SeatSnapshot{
			ID:    seat.ID,
			Row:   seat.Row,
			Col:   seat.Col,
			Tier:  seat.Tier,
			Price: s.event.PriceFor(seat.Tier),
		})
	}
	s.summary = Summarize(s.seats)
	return true
}

func (s *Session) indexOf(seatID string) int {
	for i := range s.seats {
		if s.seats[i].ID == seatID {
			return i
		}
	}
	return -1
}

// IsSelected reports whether the seat is in the session.
func (s *Session) IsSelected(seatID string) bool {
	return s.indexOf(seatID) >= 0
}

// Seats returns a copy of the picked seats in pick order.
func (s *Session) Seats() []SeatSnapshot {
	return append([]SeatSnapshot(nil), s.seats...)
}

// SeatIDs returns the picked seat ids in pick order.
func (s *Session) SeatIDs() []string {
	ids := make([]string, 0, len(s.seats))
	for _, seat := range s.seats {
		ids = append(ids, seat.ID)
	}
	return ids
}

func (s *Session) Len() int {
	return len(s.seats)
}

// Summary returns the derived subtotal, service fee and total.
func (s *Session) Summary() pricing.Quote {
	return s.summary
}

// Clear empties the session.
func (s *Session) Clear() {
	s.seats = nil
	s.summary = pricing.Quote{}
}

// Summarize prices a list of snapshots.
func Summarize(seats []SeatSnapshot) pricing.Quote {
	prices := make([]money.Amount, 0, len(seats))
	for _, seat := range seats {
		prices = append(prices, seat.Price)
	}
	return pricing.Calculate(prices)
}

// FromSeatIDs starts a session by toggling each id in order and returns the
// ids that could not be picked (unknown, occupied or repeated).
func FromSeatIDs(event *events.Event, seatIDs []string) (*Session, []string) {
	s := NewSession(event)
	var rejected []string
	for _, id := range seatIDs {
		if s.IsSelected(id) || !s.Toggle(id) {
			rejected = append(rejected, id)
		}
	}
	return s, rejected
}

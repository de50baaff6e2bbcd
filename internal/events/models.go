package events

import (
	"eventhub/internal/seatmap"
	"eventhub/pkg/money"
)

// Event is a bookable event together with the seat map it owns.
type Event struct {
	ID           int64    `json:"id" validate:"required,min=1"`
	Title        string   `json:"title" validate:"required"`
	Description  string   `json:"description"`
	Date         string   `json:"date"`
	Time         string   `json:"time"`
	Location     string   `json:"location"`
	Category     string   `json:"category"`
	Rating       float64  `json:"rating"`
	TotalReviews int      `json:"totalReviews"`
	Images       []string `json:"images"`
	Performers   []string `json:"performers"`
	Featured     bool     `json:"featured"`

	Price      money.Amount                  `json:"price" validate:"gte=0"`
	SeatPrices map[seatmap.Tier]money.Amount `json:"seatPrices"`
	SeatMap    seatmap.Grid                  `json:"seatMap" validate:"dive,dive"`

	TotalSeats     int `json:"totalSeats" validate:"gte=0"`
	AvailableSeats int `json:"availableSeats" validate:"gte=0"`
}

// PriceFor resolves a tier's price, falling back to the base price when the tier is unpriced.
func (e *Event) PriceFor(tier seatmap.Tier) money.Amount {
	if p, ok := e.SeatPrices[tier]; ok && p > 0 {
		return p
	}
	return e.Price
}

// OccupiedSeats counts occupied seats in the live map.
func (e *Event) OccupiedSeats() int {
	return e.SeatMap.OccupiedCount()
}

// IsReconciled reports whether availableSeats + occupied == totalSeats.
func (e *Event) IsReconciled() bool {
	return e.AvailableSeats+e.OccupiedSeats() == e.TotalSeats
}

// Reconcile recomputes availability from the seat map.
func (e *Event) Reconcile() {
	e.TotalSeats = e.SeatMap.Capacity()
	e.AvailableSeats = e.TotalSeats - e.OccupiedSeats()
}

func (e *Event) IsSoldOut() bool {
	return e.AvailableSeats <= 0
}

// Status is the availability badge shown in listings.
func (e *Event) Status() Status {
	if e.IsSoldOut() {
		return StatusSoldOut
	}
	return StatusActive
}

// Clone returns a deep copy so callers can edit without touching stored state.
func (e *Event) Clone() *Event {
	out := *e
	out.Images = append([]string(nil), e.Images...)
	out.Performers = append([]string(nil), e.Performers...)
	out.SeatMap = e.SeatMap.Clone()
	if e.SeatPrices != nil {
		out.SeatPrices = make(map[seatmap.Tier]money.Amount, len(e.SeatPrices))
		for k, v := range e.SeatPrices {
			out.SeatPrices[k] = v
		}
	}
	return &out
}

// DefaultSeatPrices derives tier prices from a base price: VIP 1.5x, Premium 1.3x, Standard 1x.
func DefaultSeatPrices(base money.Amount) map[seatmap.Tier]money.Amount {
	return map[seatmap.Tier]money.Amount{
		seatmap.TierVIP:      base.MulRatio(3, 2),
		seatmap.TierPremium:  base.MulRatio(13, 10),
		seatmap.TierStandard: base,
	}
}

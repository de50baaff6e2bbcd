package events

import (
	"eventhub/internal/seatmap"
	"eventhub/pkg/money"
)

// EventSummary is the listing card view of an event, without the seat map.
type EventSummary struct {
	ID             int64                         `json:"id"`
	Title          string                        `json:"title"`
	Date           string                        `json:"date"`
	Time           string                        `json:"time"`
	Location       string                        `json:"location"`
	Category       string                        `json:"category"`
	Price          money.Amount                  `json:"price"`
	SeatPrices     map[seatmap.Tier]money.Amount `json:"seatPrices"`
	Featured       bool                          `json:"featured"`
	Images         []string                      `json:"images"`
	TotalSeats     int                           `json:"totalSeats"`
	AvailableSeats int                           `json:"availableSeats"`
	Status         Status                        `json:"status"`
}

func (e *Event) ToSummary() EventSummary {
	return EventSummary{
		ID:             e.ID,
		Title:          e.Title,
		Date:           e.Date,
		Time:           e.Time,
		Location:       e.Location,
		Category:       e.Category,
		Price:          e.Price,
		SeatPrices:     e.SeatPrices,
		Featured:       e.Featured,
		Images:         e.Images,
		TotalSeats:     e.TotalSeats,
		AvailableSeats: e.AvailableSeats,
		Status:         e.Status(),
	}
}

func ToSummaries(list []Event) []EventSummary {
	out := make([]EventSummary, 0, len(list))
	for i := range list {
		out = append(out, list[i].ToSummary())
	}
	return out
}

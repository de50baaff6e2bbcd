package events

import "eventhub/pkg/money"

// ListQuery filters the catalogue. An empty or "all" category matches every event.
type ListQuery struct {
	Search   string `form:"search"`
	Category string `form:"category"`
}

// CreateEventRequest lays out a new event. The seat map is rows x ceil(totalSeats/rows).
type CreateEventRequest struct {
	Title         string        `json:"title" validate:"required,min=2,max=200"`
	Description   string        `json:"description" validate:"max=2000"`
	Date          string        `json:"date" validate:"required,datetime=2006-01-02"`
	Time          string        `json:"time" validate:"required,datetime=15:04"`
	Location      string        `json:"location" validate:"required"`
	Category      string        `json:"category" validate:"required"`
	Price         money.Amount  `json:"price" validate:"gt=0"`
	Rows          int           `json:"rows" validate:"required,min=1,max=100"`
	TotalSeats    int           `json:"totalSeats" validate:"required,min=1,max=10000"`
	VIPPrice      *money.Amount `json:"vipPrice,omitempty" validate:"omitempty,gt=0"`
	PremiumPrice  *money.Amount `json:"premiumPrice,omitempty" validate:"omitempty,gt=0"`
	StandardPrice *money.Amount `json:"standardPrice,omitempty" validate:"omitempty,gt=0"`
	Featured      bool          `json:"featured"`
	Performers    []string      `json:"performers"`
	Images        []string      `json:"images" validate:"omitempty,dive,url"`
}

// UpdateEventRequest edits display metadata and prices. The seat map and
// seat counts are owned by the booking ledger and cannot be edited here.
type UpdateEventRequest struct {
	Title         *string       `json:"title,omitempty" validate:"omitempty,min=2,max=200"`
	Description   *string       `json:"description,omitempty" validate:"omitempty,max=2000"`
	Date          *string       `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Time          *string       `json:"time,omitempty" validate:"omitempty,datetime=15:04"`
	Location      *string       `json:"location,omitempty"`
	Category      *string       `json:"category,omitempty"`
	Price         *money.Amount `json:"price,omitempty" validate:"omitempty,gt=0"`
	VIPPrice      *money.Amount `json:"vipPrice,omitempty" validate:"omitempty,gt=0"`
	PremiumPrice  *money.Amount `json:"premiumPrice,omitempty" validate:"omitempty,gt=0"`
	StandardPrice *money.Amount `json:"standardPrice,omitempty" validate:"omitempty,gt=0"`
	Featured      *bool         `json:"featured,omitempty"`
	Performers    []string      `json:"performers,omitempty"`
	Images        []string      `json:"images,omitempty" validate:"omitempty,dive,url"`
}

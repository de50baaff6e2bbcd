package seatmap

import (
	"errors"
	"fmt"
)

// Tier classifies a seat for pricing. It is fixed when the map is generated.
type Tier string

const (
	TierVIP      Tier = "VIP"
	TierPremium  Tier = "Premium"
	TierStandard Tier = "Standard"
)

// Tiers lists every tier from most to least expensive.
func Tiers() []Tier {
	return []Tier{TierVIP, TierPremium, TierStandard}
}

func (t Tier) IsValid() bool {
	switch t {
	case TierVIP, TierPremium, TierStandard:
		return true
	default:
		return false
	}
}

func (t Tier) String() string {
	return string(t)
}

// TierForRow maps a 1-indexed row to its tier: rows 1-2 VIP, 3-4 Premium, the rest Standard.
func TierForRow(row int) Tier {
	switch {
	case row <= 2:
		return TierVIP
	case row <= 4:
		return TierPremium
	default:
		return TierStandard
	}
}

var ErrInvalidSeatID = errors.New("invalid seat id")

// Seat is one cell of an event's seat map.
type Seat struct {
	ID       string `json:"id" validate:"required"`
	Row      int    `json:"row" validate:"min=1"`
	Col      int    `json:"col" validate:"min=1"`
	Tier     Tier   `json:"type" validate:"oneof=VIP Premium Standard"`
	Occupied bool   `json:"occupied"`
}

// SeatID renders the canonical "R{row}C{col}" id.
func SeatID(row, col int) string {
	return fmt.Sprintf("R%dC%d", row, col)
}

// ParseSeatID splits a canonical seat id into row and column.
func ParseSeatID(id string) (row, col int, err error) {
	if _, err := fmt.Sscanf(id, "R%dC%d", &row, &col); err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidSeatID, id)
	}
	if row < 1 || col < 1 || SeatID(row, col) != id {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidSeatID, id)
	}
	return row, col, nil
}

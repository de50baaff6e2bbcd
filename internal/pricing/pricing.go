// Package pricing computes the amounts shown in a selection summary and charged on commit.
package pricing

import "eventhub/pkg/money"

// ServiceFeePercent is the fixed surcharge on the subtotal. There is no tax component.
const ServiceFeePercent = 5

// Quote is the derived breakdown for a set of seat prices.
type Quote struct {
	Seats      int          `json:"seats"`
	Subtotal   money.Amount `json:"subtotal"`
	ServiceFee money.Amount `json:"serviceFee"`
	Total      money.Amount `json:"total"`
}

// Calculate sums prices and applies the service fee.
func Calculate(prices []money.Amount) Quote {
	subtotal := money.Sum(prices...)
	fee := subtotal.Percent(ServiceFeePercent)
	return Quote{
		Seats:      len(prices),
		Subtotal:   subtotal,
		ServiceFee: fee,
		Total:      subtotal + fee,
	}
}

// IsZero reports whether the quote covers no seats.
func (q Quote) IsZero() bool {
	return q.Seats == 0 && q.Total == 0
}

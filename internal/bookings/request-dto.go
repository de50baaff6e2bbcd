package bookings

import (
	"strings"

	"eventhub/internal/payments"
)

type CreateBookingRequest struct {
	EventID int64            `json:"event_id" binding:"required,min=1"`
	SeatIDs []string         `json:"seat_ids" binding:"required,min=1,unique,dive,required"`
	Payment payments.Details `json:"payment" binding:"required"`
}

type QuoteRequest struct {
	SeatIDs []string `json:"seat_ids" binding:"required,min=1,unique,dive,required"`
}

// ListQuery filters the admin booking list. Zero fields match everything.
type ListQuery struct {
	Status  string `form:"status" binding:"omitempty,oneof=confirmed cancelled"`
	EventID int64  `form:"event_id" binding:"omitempty,min=1"`
	UserID  int64  `form:"user_id" binding:"omitempty,min=1"`
	Search  string `form:"search"`
}

func (q ListQuery) matches(b *Booking) bool {
	if q.Status != "" && string(b.Status) != q.Status {
		return false
	}
	if q.EventID != 0 && b.EventID != q.EventID {
		return false
	}
	if q.UserID != 0 && b.UserID != q.UserID {
		return false
	}
	if term := strings.ToLower(strings.TrimSpace(q.Search)); term != "" {
		return strings.Contains(strings.ToLower(b.TransactionID), term) ||
			strings.Contains(strings.ToLower(b.EventTitle), term)
	}
	return true
}

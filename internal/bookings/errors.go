package bookings

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptySelection        = errors.New("selection is empty")
	ErrSeatAlreadyTaken      = errors.New("seat already taken")
	ErrBookingNotFound       = errors.New("booking not found")
	ErrInvalidEventReference = errors.New("invalid event reference")
	ErrForbidden             = errors.New("not allowed to access this booking")
	ErrDuplicateSeat         = errors.New("seat listed more than once")
)

// SeatAlreadyTakenError names the seats that were no longer available at commit time.
type SeatAlreadyTakenError struct {
	SeatIDs []string
}

func (e *SeatAlreadyTakenError) Error() string {
	return fmt.Sprintf("%s: %s", ErrSeatAlreadyTaken, strings.Join(e.SeatIDs, ", "))
}

func (e *SeatAlreadyTakenError) Is(target error) bool {
	return target == ErrSeatAlreadyTaken
}

package bookings

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"eventhub/internal/metrics"
	"eventhub/internal/selection"
	"eventhub/pkg/idgen"
	"eventhub/pkg/logger"
)

// EventPublisher receives booking lifecycle notifications after the store
// update has been applied. Publish failures never undo a booking.
type EventPublisher interface {
	BookingConfirmed(ctx context.Context, booking *Booking) error
	BookingCancelled(ctx context.Context, booking *Booking, seatsReleased bool) error
}

// Service is the booking ledger.
type Service interface {
	Commit(ctx context.Context, userID, eventID int64, sel *selection.Session, paymentMethod string) (*Booking, error)
	Cancel(ctx context.Context, bookingID int64, actor Actor) (*Booking, error)
	GetBooking(ctx context.Context, bookingID int64, actor Actor) (*Booking, error)
	ListUserBookings(ctx context.Context, userID int64) ([]Booking, error)
	ListBookings(ctx context.Context, query ListQuery) ([]Booking, error)
	DeleteUserBookings(ctx context.Context, userID int64) (int, error)
	Quote(ctx context.Context, eventID int64, seatIDs []string) (*QuoteResponse, error)
	Prepare(ctx context.Context, eventID int64, seatIDs []string) (*selection.Session, error)
}

type service struct {
	repo            Repository
	log             *logger.Logger
	metrics         *metrics.Metrics
	publisher       EventPublisher
	now             func() time.Time
	releaseOnCancel bool
}

// Option configures the ledger.
type Option func(*service)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *service) { s.now = now }
}

// WithReleaseOnCancel frees a booking's seats when it is cancelled.
func WithReleaseOnCancel(release bool) Option {
	return func(s *service) { s.releaseOnCancel = release }
}

func WithPublisher(p EventPublisher) Option {
	return func(s *service) { s.publisher = p }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *service) { s.metrics = m }
}

func WithLogger(l *logger.Logger) Option {
	return func(s *service) { s.log = l }
}

// NewService creates a new booking ledger
func NewService(repo Repository, opts ...Option) Service {
	s := &service{
		repo: repo,
		log:  logger.GetDefault(),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Commit turns a selection into a confirmed booking. Availability is checked
// again against the stored seat map, and either every seat is booked or
// nothing changes.
func (s *service) Commit(ctx context.Context, userID, eventID int64, sel *selection.Session, paymentMethod string) (*Booking, error) {
	if sel == nil || sel.Len() == 0 {
		return nil, ErrEmptySelection
	}
	if sel.EventID() != eventID {
		return nil, ErrInvalidEventReference
	}

	seats := sel.Seats()
	summary := sel.Summary()
	now := s.now()

	var booking *Booking
	err := s.repo.WithTx(ctx, func(tx Repository) error {
		// Step 1: Load the live seat map
		event, err := tx.GetEvent(ctx, eventID)
		if err != nil {
			return err
		}

		// Step 2: Every picked seat must still exist and be free
		var taken []string
		for _, snap := range seats {
			seat, ok := event.SeatMap.Find(snap.ID)
			if !ok || seat.Occupied {
				taken = append(taken, snap.ID)
			}
		}
		if len(taken) > 0 {
			return &SeatAlreadyTakenError{SeatIDs: taken}
		}

		// Step 3: Occupy seats and write both collections
		for _, snap := range seats {
			seat, _ := event.SeatMap.Find(snap.ID)
			seat.Occupied = true
		}
		event.AvailableSeats -= len(seats)

		existing, err := tx.ListBookings(ctx)
		if err != nil {
			return err
		}
		var last int64
		for _, b := range existing {
			if b.ID > last {
				last = b.ID
			}
		}

		booking = &Booking{
			ID:            idgen.NextSequential(now, last),
			UserID:        userID,
			EventID:       event.ID,
			EventTitle:    event.Title,
			Seats:         seats,
			PaymentMethod: paymentMethod,
			TransactionID: idgen.TransactionID(now),
			BookingDate:   now,
			Status:        StatusConfirmed,
			TotalAmount:   summary.Total,
		}
		if err := tx.AppendBooking(ctx, booking); err != nil {
			return err
		}
		return tx.SaveEvent(ctx, event)
	})
	if err != nil {
		var conflict *SeatAlreadyTakenError
		if errors.As(err, &conflict) {
			s.log.LogSeatConflict(ctx, eventID, userID, conflict.SeatIDs)
			s.metrics.SeatConflict(eventID)
			return nil, conflict
		}
		return nil, err
	}

	s.log.LogBookingCommitted(ctx, booking.ID, booking.EventID, booking.UserID, len(booking.Seats), booking.TransactionID)
	s.metrics.BookingCommitted(booking.EventID, len(booking.Seats), booking.TotalAmount.Cents())
	if s.publisher != nil {
		if err := s.publisher.BookingConfirmed(ctx, booking); err != nil {
			s.log.ErrorWithContext(ctx, "Failed to publish booking confirmation", err, map[string]interface{}{
				"booking_id": booking.ID,
			})
		}
	}
	return booking, nil
}

// Cancel marks a booking cancelled. Cancelling a cancelled booking returns it
// unchanged.
func (s *service) Cancel(ctx context.Context, bookingID int64, actor Actor) (*Booking, error) {
	var (
		booking      *Booking
		transitioned bool
		released     bool
	)
	err := s.repo.WithTx(ctx, func(tx Repository) error {
		// fn may be replayed; only the attempt that commits decides the outcome.
		booking, transitioned, released = nil, false, false

		b, err := tx.GetBooking(ctx, bookingID)
		if err != nil {
			return err
		}
		if !actor.CanAccess(b) {
			return ErrForbidden
		}
		booking = b
		if !b.Cancel(actor.UserID, s.now()) {
			return nil
		}
		transitioned = true

		if s.releaseOnCancel {
			released, err = releaseSeats(ctx, tx, b)
			if err != nil {
				return err
			}
		}
		return tx.SaveBooking(ctx, b)
	})
	if err != nil {
		return nil, err
	}
	if !transitioned {
		return booking, nil
	}

	s.log.LogBookingCancelled(ctx, booking.ID, booking.EventID, actor.UserID, released)
	s.metrics.BookingCancelled(released)
	if s.publisher != nil {
		if err := s.publisher.BookingCancelled(ctx, booking, released); err != nil {
			s.log.ErrorWithContext(ctx, "Failed to publish booking cancellation", err, map[string]interface{}{
				"booking_id": booking.ID,
			})
		}
	}
	return booking, nil
}

// releaseSeats frees the booking's seats on its event. A deleted event leaves
// nothing to release.
func releaseSeats(ctx context.Context, tx Repository, b *Booking) (bool, error) {
	event, err := tx.GetEvent(ctx, b.EventID)
	if errors.Is(err, ErrInvalidEventReference) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	freed := 0
	for _, snap := range b.Seats {
		if seat, ok := event.SeatMap.Find(snap.ID); ok && seat.Occupied {
			seat.Occupied = false
			freed++
		}
	}
	if freed == 0 {
		return false, nil
	}
	event.AvailableSeats += freed
	if event.AvailableSeats > event.TotalSeats {
		event.AvailableSeats = event.TotalSeats
	}
	return true, tx.SaveEvent(ctx, event)
}

func (s *service) GetBooking(ctx context.Context, bookingID int64, actor Actor) (*Booking, error) {
	b, err := s.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccess(b) {
		return nil, ErrForbidden
	}
	return b, nil
}

// ListUserBookings returns a user's bookings, newest first.
func (s *service) ListUserBookings(ctx context.Context, userID int64) ([]Booking, error) {
	all, err := s.repo.ListBookings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	out := make([]Booking, 0)
	for _, b := range all {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (s *service) ListBookings(ctx context.Context, query ListQuery) ([]Booking, error) {
	all, err := s.repo.ListBookings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	out := make([]Booking, 0, len(all))
	for _, b := range all {
		if query.matches(&b) {
			out = append(out, b)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

// DeleteUserBookings removes every booking owned by the user. Seat occupancy
// is left as is.
func (s *service) DeleteUserBookings(ctx context.Context, userID int64) (int, error) {
	var removed int
	err := s.repo.WithTx(ctx, func(tx Repository) error {
		var err error
		removed, err = tx.DeleteBookingsByUser(ctx, userID)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("failed to delete bookings for user %d: %w", userID, err)
	}
	return removed, nil
}

// Quote prices seat ids against the current map without committing anything.
func (s *service) Quote(ctx context.Context, eventID int64, seatIDs []string) (*QuoteResponse, error) {
	event, err := s.repo.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	sel, rejected := selection.FromSeatIDs(event, seatIDs)
	return newQuoteResponse(event, sel, rejected), nil
}

// Prepare builds a session from seat ids and fails if any id cannot be picked.
func (s *service) Prepare(ctx context.Context, eventID int64, seatIDs []string) (*selection.Session, error) {
	if len(seatIDs) == 0 {
		return nil, ErrEmptySelection
	}
	if dup := firstDuplicate(seatIDs); dup != "" {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateSeat, dup)
	}
	event, err := s.repo.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	sel, rejected := selection.FromSeatIDs(event, seatIDs)
	if len(rejected) > 0 {
		return nil, &SeatAlreadyTakenError{SeatIDs: rejected}
	}
	return sel, nil
}

func firstDuplicate(ids []string) string {
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			return id
		}
		seen[id] = true
	}
	return ""
}

func sortNewestFirst(list []Booking) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].BookingDate.After(list[j].BookingDate)
	})
}

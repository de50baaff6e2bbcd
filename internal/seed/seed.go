// Package seed loads the sample catalogue used by the demo server and CLI.
package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventhub/internal/bookings"
	"eventhub/internal/events"
	"eventhub/internal/seatmap"
	"eventhub/internal/shared/constants"
	"eventhub/internal/storage"
	"eventhub/internal/users"
	"eventhub/pkg/logger"
	"eventhub/pkg/money"
)

// DefaultOccupancy is the share of seats marked sold in seeded maps.
const DefaultOccupancy = seatmap.DefaultOccupancy

type Options struct {
	// Occupancy is the probability each seeded seat starts occupied.
	Occupancy float64
	// Seed fixes the occupancy pattern. Zero picks a time-based seed.
	Seed      uint64
	Now       time.Time
}

// Result summarizes what was written.
type Result struct {
	Users         int
	Events        int
	OccupiedSeats int
}

// Users returns the sample accounts. Passwords are stored as entered.
func Users(now time.Time) []users.User {
	return []users.User{
		{ID: 1, Name: "John Doe", Email: "john@example.com", Password: "password123", Phone: "09171234567", Role: constants.RoleUser, CreatedAt: now},
		{ID: 2, Name: "Jane Smith", Email: "jane@example.com", Password: "password123", Phone: "09177654321", Role: constants.RoleUser, CreatedAt: now},
		{ID: 3, Name: "Admin User", Email: "admin@example.com", Password: "admin123", Phone: "09170000000", Role: constants.RoleAdmin, CreatedAt: now},
	}
}

type sampleEvent struct {
	title       string
	description string
	date        string
	clock       string
	location    string
	category    string
	rows, cols  int
	prices      [3]int64 // VIP, Premium, Standard
	rating      float64
	reviews     int
	performers  []string
	images      []string
}

var samples = []sampleEvent{
	{
		title:       "Summer Music Festival",
		description: "A day of music from top local and international artists, with food stalls and art installations.",
		date:        "2026-07-18",
		clock:       "14:00",
		location:    "Music Park, Manila",
		category:    "Music",
		rows:        10,
		cols:        15,
		prices:      [3]int64{2500, 1800, 1500},
		rating:      4.8,
		reviews:     245,
		performers:  []string{"The Local Band", "DJ Summer", "International Singer"},
		images: []string{
			"https://images.unsplash.com/photo-1533174072545-7a4b6ad7a6c3?auto=format&fit=crop&w=800&q=80",
			"https://images.unsplash.com/photo-1470225620780-dba8ba36b745?auto=format&fit=crop&w=800&q=80",
		},
	},
	{
		title:       "Tech Conference",
		description: "Industry leaders, workshops and networking on AI, blockchain and cloud computing.",
		date:        "2026-08-22",
		clock:       "09:00",
		location:    "Convention Center, Makati",
		category:    "Conference",
		rows:        8,
		cols:        12,
		prices:      [3]int64{5000, 4000, 3500},
		rating:      4.6,
		reviews:     189,
		performers:  []string{"Tech CEO", "AI Researcher", "Blockchain Expert"},
		images: []string{
			"https://images.unsplash.com/photo-1540575467063-178a50c2df87?auto=format&fit=crop&w=800&q=80",
			"https://images.unsplash.com/photo-1515187029135-18ee286d815b?auto=format&fit=crop&w=800&q=80",
		},
	},
	{
		title:       "Food and Wine Expo",
		description: "Culinary delights from around the world paired with fine wines. Cooking demos and tastings included.",
		date:        "2026-09-10",
		clock:       "11:00",
		location:    "Expo Center, Taguig",
		category:    "Food & Drink",
		rows:        6,
		cols:        10,
		prices:      [3]int64{2000, 1500, 1200},
		rating:      4.9,
		reviews:     312,
		performers:  []string{"Master Chef", "Sommelier", "Pastry Chef"},
		images: []string{
			"https://images.unsplash.com/photo-1414235077428-338989a2e8c0?auto=format&fit=crop&w=800&q=80",
			"https://images.unsplash.com/photo-1476224203421-9ac39bcb3327?auto=format&fit=crop&w=800&q=80",
		},
	},
}

// Events builds the sample events with occupancy applied and availability
// recomputed from each map.
func Events(opts Options) []events.Event {
	seed := opts.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := seatmap.NewRand(seed)

	out := make([]events.Event, 0, len(samples))
	for i, s := range samples {
		e := events.Event{
			ID:           int64(i + 1),
			Title:        s.title,
			Description:  s.description,
			Date:         s.date,
			Time:         s.clock,
			Location:     s.location,
			Category:     s.category,
			Rating:       s.rating,
			TotalReviews: s.reviews,
			Images:       append([]string(nil), s.images...),
			Performers:   append([]string(nil), s.performers...),
			Featured:     true,
			Price:        money.FromUnits(s.prices[2]),
			SeatPrices: map[seatmap.Tier]money.Amount{
				seatmap.TierVIP:      money.FromUnits(s.prices[0]),
				seatmap.TierPremium:  money.FromUnits(s.prices[1]),
				seatmap.TierStandard: money.FromUnits(s.prices[2]),
			},
			SeatMap: seatmap.Generate(s.rows, s.cols),
		}
		if opts.Occupancy > 0 {
			seatmap.Randomize(e.SeatMap, rng, opts.Occupancy)
		}
		e.Reconcile()
		out = append(out, e)
	}
	return out
}

// Load replaces users, events and bookings with the sample data and clears
// the current user.
func Load(ctx context.Context, store storage.Store, opts Options, log *logger.Logger) (*Result, error) {
	if log == nil {
		log = logger.GetDefault()
	}
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	sampleUsers := Users(now)
	sampleEvents := Events(opts)
	res := &Result{Users: len(sampleUsers), Events: len(sampleEvents)}
	for i := range sampleEvents {
		res.OccupiedSeats += sampleEvents[i].OccupiedSeats()
	}

	keys := []string{storage.KeyUsers, storage.KeyEvents, storage.KeyBookings, storage.KeyCurrentUser}
	err := store.Update(ctx, keys, func(tx storage.Accessor) error {
		if err := storage.SaveCollection(ctx, tx, storage.KeyUsers, &storage.Collection[users.User]{Items: sampleUsers}); err != nil {
			return err
		}
		if err := storage.SaveCollection(ctx, tx, storage.KeyEvents, &storage.Collection[events.Event]{Items: sampleEvents}); err != nil {
			return err
		}
		if err := storage.SaveCollection(ctx, tx, storage.KeyBookings, &storage.Collection[bookings.Booking]{Items: []bookings.Booking{}}); err != nil {
			return err
		}
		return tx.Delete(ctx, storage.KeyCurrentUser)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to seed store: %w", err)
	}

	log.Info("Store seeded",
		"users", res.Users,
		"events", res.Events,
		"occupied_seats", res.OccupiedSeats,
	)
	return res, nil
}

// IfEmpty seeds only when no events have been stored yet.
func IfEmpty(ctx context.Context, store storage.Store, opts Options, log *logger.Logger) (bool, error) {
	_, err := store.Get(ctx, storage.KeyEvents)
	switch {
	case err == nil:
		return false, nil
	case !errors.Is(err, storage.ErrNotFound):
		return false, fmt.Errorf("failed to read events: %w", err)
	}
	if _, err := Load(ctx, store, opts, log); err != nil {
		return false, err
	}
	return true, nil
}

package seed

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventhub/internal/events"
	"eventhub/internal/seatmap"
	"eventhub/internal/storage"
	"eventhub/internal/users"
	"eventhub/pkg/logger"
	"eventhub/pkg/money"
)

func TestEventsAreReconciled(t *testing.T) {
	list := Events(Options{Occupancy: DefaultOccupancy, Seed: 42})
	require.Len(t, list, 3)

	wantSeats := []int{150, 96, 60}
	for i, e := range list {
		assert.Equal(t, wantSeats[i], e.TotalSeats, e.Title)
		assert.True(t, e.IsReconciled(), e.Title)
		assert.Equal(t, e.TotalSeats-e.OccupiedSeats(), e.AvailableSeats)
	}
	assert.Equal(t, money.FromUnits(2500), list[0].PriceFor(seatmap.TierVIP))
	assert.Equal(t, money.FromUnits(3500), list[1].Price)
}

func TestEventsDeterministicForSeed(t *testing.T) {
	a := Events(Options{Occupancy: 0.3, Seed: 7})
	b := Events(Options{Occupancy: 0.3, Seed: 7})
	for i := range a {
		assert.Equal(t, a[i].SeatMap, b[i].SeatMap)
	}

	empty := Events(Options{})
	for _, e := range empty {
		assert.Equal(t, e.TotalSeats, e.AvailableSeats)
	}
}

func TestLoad(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	userRepo := users.NewRepository(store, logger.Nop())
	require.NoError(t, userRepo.SetCurrentUser(ctx, &users.User{ID: 9, Name: "Old", Email: "old@example.com", Role: "user"}))

	res, err := Load(ctx, store, Options{Occupancy: 0.5, Seed: 1, Now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}, logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, 3, res.Users)
	assert.Equal(t, 3, res.Events)
	assert.Positive(t, res.OccupiedSeats)

	list, err := userRepo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	admin, err := userRepo.GetByEmail(ctx, "admin@example.com")
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin())

	_, err = userRepo.CurrentUser(ctx)
	assert.ErrorIs(t, err, users.ErrUserNotFound)

	stored, err := events.NewRepository(store, logger.Nop()).List(ctx)
	require.NoError(t, err)
	assert.Len(t, stored, 3)
}

func TestIfEmpty(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()

	seeded, err := IfEmpty(ctx, store, Options{Seed: 1}, logger.Nop())
	require.NoError(t, err)
	assert.True(t, seeded)

	seeded, err = IfEmpty(ctx, store, Options{Seed: 1}, logger.Nop())
	require.NoError(t, err)
	assert.False(t, seeded)
}

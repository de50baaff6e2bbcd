package events

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventhub/internal/seatmap"
	"eventhub/internal/storage"
	"eventhub/pkg/logger"
	"eventhub/pkg/money"
)

func newTestService(t *testing.T) (Service, Repository) {
	t.Helper()
	repo := NewRepository(storage.NewMemoryStore(), logger.Nop())
	return NewService(repo, logger.Nop()), repo
}

func createRequest(title, category string) CreateEventRequest {
	return CreateEventRequest{
		Title:      title,
		Date:       "2026-06-20",
		Time:       "18:00",
		Location:   "SM Mall of Asia Arena",
		Category:   category,
		Price:      money.FromUnits(1500),
		Rows:       3,
		TotalSeats: 10,
	}
}

func TestCreateEvent(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	e, err := svc.CreateEvent(ctx, createRequest("Summer Music Festival", "Music"))
	require.NoError(t, err)

	assert.Equal(t, int64(1), e.ID)
	assert.Equal(t, 3, e.SeatMap.Rows())
	assert.Equal(t, 4, e.SeatMap.Cols())
	assert.Equal(t, 12, e.TotalSeats)
	assert.Equal(t, 12, e.AvailableSeats)
	assert.True(t, e.IsReconciled())
	assert.Len(t, e.Images, len(defaultImages))
	assert.Equal(t, money.FromUnits(2250), e.SeatPrices[seatmap.TierVIP])
	assert.Equal(t, money.FromUnits(1950), e.SeatPrices[seatmap.TierPremium])
	assert.Equal(t, money.FromUnits(1500), e.SeatPrices[seatmap.TierStandard])

	second, err := svc.CreateEvent(ctx, createRequest("Tech Conference", "Technology"))
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.ID)

	stored, err := repo.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Summer Music Festival", stored.Title)
}

func TestCreateEventExplicitTierPrices(t *testing.T) {
	svc, _ := newTestService(t)
	req := createRequest("Tech Conference", "Technology")
	vip := money.FromUnits(5000)
	req.VIPPrice = &vip
	req.Performers = []string{" Keynote ", "", "Panel"}

	e, err := svc.CreateEvent(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, vip, e.SeatPrices[seatmap.TierVIP])
	assert.Equal(t, money.FromUnits(1950), e.SeatPrices[seatmap.TierPremium])
	assert.Equal(t, []string{"Keynote", "Panel"}, e.Performers)
}

func TestListEventsFilter(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	for _, r := range []CreateEventRequest{
		createRequest("Summer Music Festival", "Music"),
		createRequest("Tech Conference", "Technology"),
		createRequest("Food and Wine Expo", "Food"),
	} {
		_, err := svc.CreateEvent(ctx, r)
		require.NoError(t, err)
	}

	tests := []struct {
		name  string
		query ListQuery
		want  []string
	}{
		{"all", ListQuery{}, []string{"Summer Music Festival", "Tech Conference", "Food and Wine Expo"}},
		{"all category", ListQuery{Category: "All"}, []string{"Summer Music Festival", "Tech Conference", "Food and Wine Expo"}},
		{"search is case insensitive", ListQuery{Search: "TECH"}, []string{"Tech Conference"}},
		{"search location", ListQuery{Search: "arena"}, []string{"Summer Music Festival", "Tech Conference", "Food and Wine Expo"}},
		{"category", ListQuery{Category: "Food"}, []string{"Food and Wine Expo"}},
		{"search and category", ListQuery{Search: "festival", Category: "Food"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list, err := svc.ListEvents(ctx, tt.query)
			require.NoError(t, err)
			var titles []string
			for _, e := range list {
				titles = append(titles, e.Title)
			}
			assert.Equal(t, tt.want, titles)
		})
	}
}

func TestFeaturedAndCategories(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	for i, cat := range []string{"Music", "Music", "Tech", "Food", "Art"} {
		req := createRequest("Event", cat)
		req.Featured = i != 1
		_, err := svc.CreateEvent(ctx, req)
		require.NoError(t, err)
	}

	featured, err := svc.GetFeaturedEvents(ctx)
	require.NoError(t, err)
	require.Len(t, featured, FeaturedLimit)
	assert.Equal(t, []int64{1, 3, 4}, []int64{featured[0].ID, featured[1].ID, featured[2].ID})

	categories, err := svc.GetCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Music", "Tech", "Food", "Art"}, categories)
}

func TestUpdateEventKeepsSeatMap(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()
	e, err := svc.CreateEvent(ctx, createRequest("Summer Music Festival", "Music"))
	require.NoError(t, err)

	occupied := e.Clone()
	seat, ok := occupied.SeatMap.Find("R1C1")
	require.True(t, ok)
	seat.Occupied = true
	occupied.Reconcile()
	require.NoError(t, repo.Save(ctx, occupied))

	title := "Summer Music Festival 2026"
	price := money.FromUnits(3000)
	updated, err := svc.UpdateEvent(ctx, e.ID, UpdateEventRequest{Title: &title, VIPPrice: &price})
	require.NoError(t, err)

	assert.Equal(t, title, updated.Title)
	assert.Equal(t, price, updated.SeatPrices[seatmap.TierVIP])
	assert.Equal(t, 11, updated.AvailableSeats)
	seat, ok = updated.SeatMap.Find("R1C1")
	require.True(t, ok)
	assert.True(t, seat.Occupied)

	_, err = svc.UpdateEvent(ctx, 99, UpdateEventRequest{Title: &title})
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestDeleteEvent(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	e, err := svc.CreateEvent(ctx, createRequest("Summer Music Festival", "Music"))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteEvent(ctx, e.ID))
	_, err = svc.GetEvent(ctx, e.ID)
	assert.ErrorIs(t, err, ErrEventNotFound)
	assert.ErrorIs(t, svc.DeleteEvent(ctx, e.ID), ErrEventNotFound)
}

func TestEventStatus(t *testing.T) {
	e := &Event{SeatMap: seatmap.Generate(1, 2)}
	e.Reconcile()
	assert.Equal(t, StatusActive, e.Status())

	for i := range e.SeatMap[0] {
		e.SeatMap[0][i].Occupied = true
	}
	e.Reconcile()
	assert.Equal(t, 0, e.AvailableSeats)
	assert.Equal(t, StatusSoldOut, e.Status())
	assert.True(t, e.IsReconciled())
}

func TestPriceForFallsBackToBase(t *testing.T) {
	e := &Event{
		Price:      money.FromUnits(1500),
		SeatPrices: map[seatmap.Tier]money.Amount{seatmap.TierVIP: money.FromUnits(2500), seatmap.TierPremium: 0},
	}
	assert.Equal(t, money.FromUnits(2500), e.PriceFor(seatmap.TierVIP))
	assert.Equal(t, money.FromUnits(1500), e.PriceFor(seatmap.TierPremium))
	assert.Equal(t, money.FromUnits(1500), e.PriceFor(seatmap.TierStandard))
}

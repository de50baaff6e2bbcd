package analytics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventhub/internal/bookings"
	"eventhub/internal/events"
	"eventhub/internal/seatmap"
	"eventhub/internal/selection"
	"eventhub/internal/shared/constants"
	"eventhub/internal/storage"
	"eventhub/internal/users"
	"eventhub/pkg/logger"
	"eventhub/pkg/money"
)

func event(id int64, title, category string, rows, cols, occupied int) events.Event {
	e := events.Event{ID: id, Title: title, Category: category, SeatMap: seatmap.Generate(rows, cols)}
	n := 0
	for r := range e.SeatMap {
		for c := range e.SeatMap[r] {
			if n < occupied {
				e.SeatMap[r][c].Occupied = true
				n++
			}
		}
	}
	e.Reconcile()
	return e
}

func booking(id, eventID int64, status bookings.Status, method string, units int64, day time.Time, seats int) bookings.Booking {
	b := bookings.Booking{
		ID: id, UserID: 1, EventID: eventID, TransactionID: "TXN", Status: status,
		PaymentMethod: method, TotalAmount: money.FromUnits(units), BookingDate: day,
	}
	for i := 0; i < seats; i++ {
		b.Seats = append(b.Seats, selection.SeatSnapshot{ID: seatmap.SeatID(1, i+1), Row: 1, Col: i + 1, Tier: seatmap.TierVIP})
	}
	return b
}

func sampleSnapshot() *Snapshot {
	d1 := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	d2 := d1.AddDate(0, 0, 1)
	return &Snapshot{
		Events: []events.Event{
			event(1, "Summer Music Festival", "Music", 2, 5, 4),
			event(2, "Tech Conference", "Technology", 1, 2, 2),
			event(3, "Food and Wine Expo", "", 1, 4, 0),
		},
		Bookings: []bookings.Booking{
			booking(10, 1, bookings.StatusConfirmed, "GCash", 5250, d1, 2),
			booking(11, 1, bookings.StatusCancelled, "GCash", 2500, d1, 1),
			booking(12, 2, bookings.StatusConfirmed, "Credit Card", 8000, d2, 2),
			booking(13, 9, bookings.StatusConfirmed, "", 100, d2, 1),
		},
		Users: 3,
	}
}

func TestBuildOverview(t *testing.T) {
	d := Build(sampleSnapshot())
	o := d.Overview

	assert.Equal(t, 3, o.TotalEvents)
	assert.Equal(t, 4, o.TotalBookings)
	assert.Equal(t, 3, o.ConfirmedBookings)
	assert.Equal(t, 1, o.CancelledBookings)
	assert.Equal(t, money.FromUnits(13350), o.TotalRevenue)
	assert.Equal(t, 5, o.SeatsSold)
	assert.Equal(t, 3, o.TotalUsers)
	assert.Equal(t, 1, o.SoldOutEvents)
	assert.Equal(t, 25.0, o.CancellationRate)
	assert.Equal(t, 46.67, o.AverageUtilization)
}

func TestBuildBreakdowns(t *testing.T) {
	d := Build(sampleSnapshot())

	assert.Equal(t, []CategoryRevenue{
		{Category: "Technology", Revenue: money.FromUnits(8000)},
		{Category: "Music", Revenue: money.FromUnits(5250)},
		{Category: "Uncategorized", Revenue: money.FromUnits(100)},
	}, d.RevenueByCategory)

	assert.Equal(t, []PaymentMethodUse{
		{Method: "GCash", Bookings: 2},
		{Method: "Credit Card", Bookings: 1},
		{Method: "Unknown", Bookings: 1},
	}, d.PaymentMethods)

	require.Len(t, d.TopEvents, 3)
	assert.Equal(t, int64(2), d.TopEvents[0].EventID)
	assert.Equal(t, 100.0, d.TopEvents[0].Utilization)
	assert.Equal(t, int64(1), d.TopEvents[1].EventID)
	assert.Equal(t, 1, d.TopEvents[1].Bookings)
	assert.Equal(t, 2, d.TopEvents[1].SeatsSold)

	assert.Equal(t, []DailyMetric{
		{Date: "2026-05-01", Bookings: 2, Revenue: money.FromUnits(5250)},
		{Date: "2026-05-02", Bookings: 2, Revenue: money.FromUnits(8100)},
	}, d.BookingTrends)
}

func TestBuildEmpty(t *testing.T) {
	d := Build(&Snapshot{})
	assert.Equal(t, OverviewMetrics{}, d.Overview)
	assert.Empty(t, d.TopEvents)
	assert.Empty(t, d.BookingTrends)
}

func TestDashboardEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := storage.NewMemoryStore()
	ctx := context.Background()
	snap := sampleSnapshot()

	evRepo := events.NewRepository(store, logger.Nop())
	for i := range snap.Events {
		require.NoError(t, evRepo.Save(ctx, &snap.Events[i]))
	}
	bkRepo := bookings.NewRepository(store, logger.Nop())
	for i := range snap.Bookings {
		require.NoError(t, bkRepo.AppendBooking(ctx, &snap.Bookings[i]))
	}
	require.NoError(t, users.NewRepository(store, logger.Nop()).Save(ctx, &users.User{ID: 1, Name: "John Doe", Email: "john@example.com", Role: constants.RoleUser}))

	r := gin.New()
	admin := func(c *gin.Context) {
		c.Set(constants.CtxUserID, int64(3))
		c.Set(constants.CtxUserRole, constants.RoleAdmin)
		c.Next()
	}
	SetupAnalyticsRoutes(r.Group("/api/v1"), NewController(NewService(NewRepository(store, logger.Nop()))), admin)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/analytics/dashboard", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total_revenue":13350`)
	assert.Contains(t, w.Body.String(), `"total_users":1`)
}

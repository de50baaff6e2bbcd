package analytics

import (
	"context"
	"fmt"
	"sort"

	"eventhub/internal/bookings"
	"eventhub/internal/events"
	"eventhub/pkg/money"
)

const (
	// TopEventsLimit caps the top performers list.
	TopEventsLimit = 5

	uncategorized = "Uncategorized"
	unknownMethod = "Unknown"
)

// Service defines the analytics service interface
type Service interface {
	GetDashboardAnalytics(ctx context.Context) (*DashboardAnalytics, error)
}

// service implements the Service interface
type service struct {
	repo Repository
}

// NewService creates a new analytics service instance
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetDashboardAnalytics(ctx context.Context) (*DashboardAnalytics, error) {
	snap, err := s.repo.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load analytics snapshot: %w", err)
	}
	return Build(snap), nil
}

// Build aggregates a snapshot. Revenue counts confirmed bookings only.
func Build(snap *Snapshot) *DashboardAnalytics {
	byID := make(map[int64]*events.Event, len(snap.Events))
	for i := range snap.Events {
		byID[snap.Events[i].ID] = &snap.Events[i]
	}

	d := &DashboardAnalytics{
		Overview:          overview(snap),
		RevenueByCategory: revenueByCategory(snap.Bookings, byID),
		PaymentMethods:    paymentMethods(snap.Bookings),
		TopEvents:         topEvents(snap.Bookings, snap.Events),
		BookingTrends:     dailyTrends(snap.Bookings),
	}
	return d
}

func overview(snap *Snapshot) OverviewMetrics {
	o := OverviewMetrics{
		TotalEvents:   len(snap.Events),
		TotalBookings: len(snap.Bookings),
		TotalUsers:    snap.Users,
	}
	for _, b := range snap.Bookings {
		switch b.Status {
		case bookings.StatusConfirmed:
			o.ConfirmedBookings++
			o.TotalRevenue += b.TotalAmount
			o.SeatsSold += len(b.Seats)
		case bookings.StatusCancelled:
			o.CancelledBookings++
		}
	}
	if o.TotalBookings > 0 {
		o.CancellationRate = percent(o.CancelledBookings, o.TotalBookings)
	}

	var utilization float64
	for i := range snap.Events {
		e := &snap.Events[i]
		if e.IsSoldOut() {
			o.SoldOutEvents++
		}
		if e.TotalSeats > 0 {
			utilization += percent(e.TotalSeats-e.AvailableSeats, e.TotalSeats)
		}
	}
	if len(snap.Events) > 0 {
		o.AverageUtilization = round2(utilization / float64(len(snap.Events)))
	}
	return o
}

func revenueByCategory(list []bookings.Booking, byID map[int64]*events.Event) []CategoryRevenue {
	totals := make(map[string]money.Amount)
	for _, b := range list {
		if !b.IsConfirmed() {
			continue
		}
		category := uncategorized
		if e, ok := byID[b.EventID]; ok && e.Category != "" {
			category = e.Category
		}
		totals[category] += b.TotalAmount
	}
	out := make([]CategoryRevenue, 0, len(totals))
	for c, r := range totals {
		out = append(out, CategoryRevenue{Category: c, Revenue: r})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Revenue != out[j].Revenue {
			return out[i].Revenue > out[j].Revenue
		}
		return out[i].Category < out[j].Category
	})
	return out
}

func paymentMethods(list []bookings.Booking) []PaymentMethodUse {
	counts := make(map[string]int)
	for _, b := range list {
		method := b.PaymentMethod
		if method == "" {
			method = unknownMethod
		}
		counts[method]++
	}
	out := make([]PaymentMethodUse, 0, len(counts))
	for m, n := range counts {
		out = append(out, PaymentMethodUse{Method: m, Bookings: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Bookings != out[j].Bookings {
			return out[i].Bookings > out[j].Bookings
		}
		return out[i].Method < out[j].Method
	})
	return out
}

func topEvents(list []bookings.Booking, evs []events.Event) []EventPerformance {
	perf := make(map[int64]*EventPerformance, len(evs))
	order := make([]int64, 0, len(evs))
	for i := range evs {
		e := &evs[i]
		p := &EventPerformance{EventID: e.ID, Title: e.Title}
		if e.TotalSeats > 0 {
			p.Utilization = percent(e.TotalSeats-e.AvailableSeats, e.TotalSeats)
		}
		perf[e.ID] = p
		order = append(order, e.ID)
	}
	for _, b := range list {
		p, ok := perf[b.EventID]
		if !ok || !b.IsConfirmed() {
			continue
		}
		p.Bookings++
		p.SeatsSold += len(b.Seats)
		p.Revenue += b.TotalAmount
	}

	out := make([]EventPerformance, 0, len(order))
	for _, id := range order {
		out = append(out, *perf[id])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Revenue > out[j].Revenue
	})
	if len(out) > TopEventsLimit {
		out = out[:TopEventsLimit]
	}
	return out
}

func dailyTrends(list []bookings.Booking) []DailyMetric {
	days := make(map[string]*DailyMetric)
	for _, b := range list {
		key := b.BookingDate.Format("2006-01-02")
		d, ok := days[key]
		if !ok {
			d = &DailyMetric{Date: key}
			days[key] = d
		}
		d.Bookings++
		if b.IsConfirmed() {
			d.Revenue += b.TotalAmount
		}
	}
	out := make([]DailyMetric, 0, len(days))
	for _, d := range days {
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

func percent(part, whole int) float64 {
	return round2(float64(part) * 100 / float64(whole))
}

func round2(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}

package analytics

import "eventhub/pkg/money"

// Dashboard & Overview Models

type DashboardAnalytics struct {
	Overview          OverviewMetrics    `json:"overview"`
	RevenueByCategory []CategoryRevenue  `json:"revenue_by_category"`
	PaymentMethods    []PaymentMethodUse `json:"payment_methods"`
	TopEvents         []EventPerformance `json:"top_events"`
	BookingTrends     []DailyMetric      `json:"booking_trends"`
}

type OverviewMetrics struct {
	TotalEvents        int          `json:"total_events"`
	TotalBookings      int          `json:"total_bookings"`
	ConfirmedBookings  int          `json:"confirmed_bookings"`
	CancelledBookings  int          `json:"cancelled_bookings"`
	TotalRevenue       money.Amount `json:"total_revenue"`
	TotalUsers         int          `json:"total_users"`
	SeatsSold          int          `json:"seats_sold"`
	SoldOutEvents      int          `json:"sold_out_events"`
	CancellationRate   float64      `json:"cancellation_rate"`
	AverageUtilization float64      `json:"avg_utilization"`
}

type CategoryRevenue struct {
	Category string       `json:"category"`
	Revenue  money.Amount `json:"revenue"`
}

type PaymentMethodUse struct {
	Method   string `json:"method"`
	Bookings int    `json:"bookings"`
}

type EventPerformance struct {
	EventID     int64        `json:"event_id"`
	Title       string       `json:"title"`
	Bookings    int          `json:"bookings"`
	SeatsSold   int          `json:"seats_sold"`
	Revenue     money.Amount `json:"revenue"`
	Utilization float64      `json:"utilization"`
}

type DailyMetric struct {
	Date     string       `json:"date"`
	Bookings int          `json:"bookings"`
	Revenue  money.Amount `json:"revenue"`
}

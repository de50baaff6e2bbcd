// Package metrics exposes Prometheus instruments for the booking engine.
// All methods are safe on a nil *Metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "eventhub"

type Metrics struct {
	registry *prometheus.Registry

	bookingsCommitted *prometheus.CounterVec
	bookingsCancelled *prometheus.CounterVec
	seatConflicts     *prometheus.CounterVec
	seatsBooked       prometheus.Counter
	revenueCents      prometheus.Counter
	httpRequests      *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
}

// New builds a private registry with Go and process collectors plus the booking instruments.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		bookingsCommitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bookings_committed_total",
			Help:      "Bookings committed, by event.",
		}, []string{"event_id"}),
		bookingsCancelled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bookings_cancelled_total",
			Help:      "Bookings moved to cancelled, by whether seats were released.",
		}, []string{"released"}),
		seatConflicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "seat_conflicts_total",
			Help:      "Commits rejected because a selected seat was already taken.",
		}, []string{"event_id"}),
		seatsBooked: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "seats_booked_total",
			Help:      "Seats marked occupied by committed bookings.",
		}),
		revenueCents: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_revenue_centavos_total",
			Help:      "Total amount of committed bookings in centavos.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.bookingsCommitted,
		m.bookingsCancelled,
		m.seatConflicts,
		m.seatsBooked,
		m.revenueCents,
		m.httpRequests,
		m.httpDuration,
	)
	return m
}

// Registry exposes the underlying registry for tests and custom collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) BookingCommitted(eventID int64, seats int, totalCents int64) {
	if m == nil {
		return
	}
	m.bookingsCommitted.WithLabelValues(strconv.FormatInt(eventID, 10)).Inc()
	m.seatsBooked.Add(float64(seats))
	m.revenueCents.Add(float64(totalCents))
}

func (m *Metrics) BookingCancelled(released bool) {
	if m == nil {
		return
	}
	m.bookingsCancelled.WithLabelValues(strconv.FormatBool(released)).Inc()
}

func (m *Metrics) SeatConflict(eventID int64) {
	if m == nil {
		return
	}
	m.seatConflicts.WithLabelValues(strconv.FormatInt(eventID, 10)).Inc()
}

func (m *Metrics) ObserveHTTP(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

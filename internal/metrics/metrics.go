// Package metrics holds the prometheus collectors of the service.
// A nil *Metrics records nothing.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	reg *prometheus.Registry

	ticketsIssued    prometheus.Counter
	seatsReserved    prometheus.Counter
	checkoutFailures *prometheus.CounterVec
	checkins         *prometheus.CounterVec
	httpRequests     *prometheus.HistogramVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	f := promauto.With(reg)

	return &Metrics{
		reg: reg,
		ticketsIssued: f.NewCounter(prometheus.CounterOpts{
			Name: "eventbuzz_tickets_issued_total",
			Help: "Tickets issued",
		}),
		seatsReserved: f.NewCounter(prometheus.CounterOpts{
			Name: "eventbuzz_seats_reserved_total",
			Help: "Seats reserved by issued tickets",
		}),
		checkoutFailures: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "eventbuzz_checkout_failures_total",
				Help: "Rejected checkouts by reason",
			},
			[]string{"reason"},
		),
		checkins: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "eventbuzz_checkins_total",
				Help: "Check-in attempts by outcome",
			},
			[]string{"outcome"},
		),
		httpRequests: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "eventbuzz_http_request_duration_seconds",
				Help:    "HTTP request latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
	}
}

func (m *Metrics) TicketIssued(seats int) {
	if m == nil {
		return
	}
	m.ticketsIssued.Inc()
	m.seatsReserved.Add(float64(seats))
}

func (m *Metrics) CheckoutFailed(reason string) {
	if m == nil {
		return
	}
	m.checkoutFailures.WithLabelValues(reason).Inc()
}

func (m *Metrics) CheckIn(outcome string) {
	if m == nil {
		return
	}
	m.checkins.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveHTTP(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Observe(d.Seconds())
}

// Handler exposes the registry in the prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}

// Gatherer is the registry backing the collectors.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.reg
}

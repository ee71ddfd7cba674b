package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	bookingConfirmed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "lacquer",
			Name:      "booking_confirmed_total",
			Help:      "Count of booking sessions confirmed.",
		},
	)

	bookingCancelled = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lacquer",
			Name:      "booking_cancelled_total",
			Help:      "Count of bookings cancelled by kind (session, pending).",
		},
		[]string{"kind"},
	)

	navigationDenied = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "lacquer",
			Name:      "navigation_denied_total",
			Help:      "Count of navigations redirected to login.",
		},
	)

	authRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lacquer",
			Name:      "auth_requests_total",
			Help:      "Count of auth service calls by operation and outcome.",
		},
		[]string{"op", "outcome"},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(bookingConfirmed, bookingCancelled, navigationDenied, authRequests)
	})
}

func IncBookingConfirmed() {
	bookingConfirmed.Inc()
}

func IncBookingCancelled(kind string) {
	bookingCancelled.WithLabelValues(kind).Inc()
}

func IncNavigationDenied() {
	navigationDenied.Inc()
}

func IncAuthRequest(op, outcome string) {
	authRequests.WithLabelValues(op, outcome).Inc()
}

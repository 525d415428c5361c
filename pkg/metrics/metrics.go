package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics
type Metrics struct {
	BookingsTotal      prometheus.Counter
	BookingConflicts   *prometheus.CounterVec
	CancellationsTotal prometheus.Counter
	CompletionsTotal   prometheus.Counter

	OpenSlotCacheHits   prometheus.Counter
	OpenSlotCacheMisses prometheus.Counter
}

// NewMetrics creates and registers all application metrics
func NewMetrics(namespace, subsystem string) *Metrics {
	return &Metrics{
		BookingsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "bookings_total",
			Help:      "Total number of appointments booked",
		}),
		BookingConflicts: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "booking_conflicts_total",
			Help:      "Total number of rejected bookings by reason",
		}, []string{"reason"}),
		CancellationsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "cancellations_total",
			Help:      "Total number of appointments cancelled",
		}),
		CompletionsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "completions_total",
			Help:      "Total number of appointments completed",
		}),
		OpenSlotCacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "open_slot_cache_hits_total",
			Help:      "Open-slot lookups served from cache",
		}),
		OpenSlotCacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "open_slot_cache_misses_total",
			Help:      "Open-slot lookups computed from the database",
		}),
	}
}

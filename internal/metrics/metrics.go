package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	LookupsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "geoip_lookups_total",
		Help: "Total number of lookups by outcome (found, not_found, error)",
	}, []string{"outcome"})
	LookupDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "geoip_lookup_duration_ms",
		Help:    "Lookup duration in milliseconds",
		Buckets: []float64{0.05, 0.1, 0.5, 1, 5, 10, 50, 100, 500},
	})
	ReloadsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "geoip_reloads_total",
		Help: "Database reloads by status (ok, failed)",
	}, []string{"status"})
)

func init() {
	prometheus.MustRegister(LookupsTotal)
	prometheus.MustRegister(LookupDurationMs)
	prometheus.MustRegister(ReloadsTotal)
}

// ObserveLookup records one lookup.
func ObserveLookup(outcome string, d time.Duration) {
	LookupsTotal.WithLabelValues(outcome).Inc()
	LookupDurationMs.Observe(float64(d.Microseconds()) / 1000)
}

// Handler exposes the registered metrics for scraping.
func Handler() http.Handler { return promhttp.Handler() }

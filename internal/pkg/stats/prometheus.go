package stats

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type prometheusStats struct {
	urlsFetched    prometheus.Counter
	fetchSeconds   prometheus.Histogram
	terminalStates *prometheus.CounterVec
}

var prom *prometheusStats

// InitPrometheus registers the metrics under the given prefix and returns
// the HTTP handler serving them. Must be called after Init.
func InitPrometheus(prefix string) http.Handler {
	registry := prometheus.NewRegistry()

	prom = &prometheusStats{
		urlsFetched: prometheus.NewCounter(
			prometheus.CounterOpts{Name: prefix + "urls_fetched", Help: "Total number of URLs fetched"},
		),
		fetchSeconds: prometheus.NewHistogram(
			prometheus.HistogramOpts{Name: prefix + "fetch_seconds", Help: "Fetch duration in seconds", Buckets: prometheus.DefBuckets},
		),
		terminalStates: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: prefix + "resources_total", Help: "Resources per terminal state"},
			[]string{"state"},
		),
	}

	registry.MustRegister(prom.urlsFetched, prom.fetchSeconds, prom.terminalStates)

	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}

// ServePrometheus exposes the /metrics endpoint on the given port. It runs
// until the process exits.
func ServePrometheus(port int, handler http.Handler) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", handler)

	go http.ListenAndServe(fmt.Sprintf(":%d", port), mux)
}

package observability

import (
	"context"
	"errors"
	"fmt"
	"github.com/rs/zerolog/log"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"room_balancer/internal/domain"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "balancer", Name: "http_requests_total", Help: "HTTP requests."},
		[]string{"route", "method", "status"},
	)
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "balancer", Name: "http_request_duration_seconds",
			Help:    "HTTP request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
	ExternalRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "balancer", Name: "external_requests_total", Help: "Outbound requests."},
		[]string{"service", "endpoint", "status"},
	)
	ExternalLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "balancer", Name: "external_request_duration_seconds",
			Help:    "Outbound request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "endpoint"},
	)
	CacheEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "balancer", Name: "cache_events_total", Help: "Cache hits/misses/sets/dels."},
		[]string{"cache", "event"}, // event: hit|miss|set|del
	)
	Runs = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "balancer", Name: "runs_total", Help: "Balancing runs by outcome."},
		[]string{"outcome"}, // outcome: computed|memoized|error
	)
	RunLatency = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "balancer", Name: "run_duration_seconds",
			Help:    "Balancing run duration seconds.",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 14),
		},
	)
	Placements = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "balancer", Name: "placements_total", Help: "Guest placements by kind."},
		[]string{"kind"},
	)
	Alerts = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "balancer", Name: "alerts_total", Help: "Alerts raised by kind and severity."},
		[]string{"kind", "severity"},
	)
	Ingested = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "balancer", Name: "ingested_records_total", Help: "Ingested reservation records."},
		[]string{"result"}, // result: stored|rejected
	)
	AdvisorFallbacks = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "balancer", Name: "advisor_fallbacks_total", Help: "Recommendations served by the heuristic after the remote advisor failed."},
		[]string{"reason"},
	)
)

// Serve exposes reg on a separate listener; an empty addr disables it.
func Serve(addr string, reg *prometheus.Registry) {
	if addr == "" {
		return // disabled
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", MetricsHandler(reg))

	go func() {
		srv := &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		log.Info().Str("addr", addr).Msg("metrics server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("metrics server failed")
		}
	}()
}

func InitRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(HTTPRequests, HTTPLatency, ExternalRequests, ExternalLatency, CacheEvents,
		Runs, RunLatency, Placements, Alerts, Ingested, AdvisorFallbacks)
	return reg
}

func MetricsHandler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

func ObserveHTTP(route, method string, status int, dur time.Duration) {
	HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	HTTPLatency.WithLabelValues(route, method).Observe(dur.Seconds())
}

func ObserveExternal(service, endpoint string, status int, dur time.Duration) {
	ExternalRequests.WithLabelValues(service, endpoint, strconv.Itoa(status)).Inc()
	ExternalLatency.WithLabelValues(service, endpoint).Observe(dur.Seconds())
}

func ObserveCache(cache, event string) { // event: hit|miss|set|del
	CacheEvents.WithLabelValues(cache, event).Inc()
}

func LabelErr(err error) string {
	if err == nil {
		return "none"
	}
	return fmt.Sprintf("%T", err)
}

// ObserveRun records one analysis. Placement and alert counters are only
// bumped for computed runs so memoized reads do not double count.
func ObserveRun(res domain.Result, outcome string, dur time.Duration) {
	Runs.WithLabelValues(outcome).Inc()
	if outcome != "computed" {
		return
	}
	RunLatency.Observe(dur.Seconds())
	for _, a := range res.Assignments {
		Placements.WithLabelValues(string(a.Kind)).Inc()
	}
	for _, a := range res.Alerts {
		Alerts.WithLabelValues(string(a.Kind), string(a.Severity)).Inc()
	}
}

// ObserveFallback counts a heuristic fallback; a nil err means the remote
// advisor answered with nothing.
func ObserveFallback(err error) {
	reason := LabelErr(err)
	if errors.Is(err, context.DeadlineExceeded) {
		reason = "timeout"
	}
	AdvisorFallbacks.WithLabelValues(reason).Inc()
}

func ObserveIngest(stored, rejected int) {
	Ingested.WithLabelValues("stored").Add(float64(stored))
	Ingested.WithLabelValues("rejected").Add(float64(rejected))
}

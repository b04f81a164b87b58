// Package metrics exposes Prometheus collectors for pipeline and delivery runs.
package metrics

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Run outcomes.
const (
	OutcomeSuccess         = "success"
	OutcomeFetchError      = "fetch_error"
	OutcomeExtractionError = "extraction_error"
)

// Image fallback reasons.
const (
	FallbackNoCandidates    = "no_candidates"
	FallbackResolveFailed   = "resolve_failed"
	FallbackNormalizeFailed = "normalize_failed"
)

// Delivery results.
const (
	DeliveryPublished = "published"
	DeliverySkipped   = "skipped"
	DeliveryFailed    = "failed"
)

// Metrics groups the collectors. A nil *Metrics records nothing.
type Metrics struct {
	runsTotal      *prometheus.CounterVec
	fallbacksTotal *prometheus.CounterVec
	deliveries     *prometheus.CounterVec
	runDuration    prometheus.Histogram
}

// New registers the collectors with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		runsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "apod_runs_total",
				Help: "Total number of pipeline runs, labeled by outcome.",
			},
			[]string{"outcome"},
		),
		fallbacksTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "apod_image_fallbacks_total",
				Help: "Total number of runs that degraded to a text-only post, labeled by reason.",
			},
			[]string{"reason"},
		),
		deliveries: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "apod_deliveries_total",
				Help: "Total number of per-destination deliveries, labeled by result.",
			},
			[]string{"result"},
		),
		runDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "apod_run_duration_seconds",
				Help:    "Histogram of pipeline run durations.",
				Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 30, 60},
			},
		),
	}
}

func (m *Metrics) ObserveRun(outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.runsTotal.WithLabelValues(outcome).Inc()
	m.runDuration.Observe(d.Seconds())
}

func (m *Metrics) ImageFallback(reason string) {
	if m == nil {
		return
	}
	m.fallbacksTotal.WithLabelValues(reason).Inc()
}

func (m *Metrics) Delivery(result string) {
	if m == nil {
		return
	}
	m.deliveries.WithLabelValues(result).Inc()
}

// Serve exposes gatherer on addr under /metrics until ctx is done.
func Serve(ctx context.Context, addr string, gatherer prometheus.Gatherer, logger *slog.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("metrics server listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

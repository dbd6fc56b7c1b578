package telemetry

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"rhystmorgan/folioterm/internal/form"
	"rhystmorgan/folioterm/internal/transport"
)

const (
	namespace = "folioterm"
	subsystem = "contact_form"
)

// Metrics counts contact form activity
type Metrics struct {
	registry *prometheus.Registry

	submitsTotal     *prometheus.CounterVec
	deliveriesTotal  *prometheus.CounterVec
	deliveryDuration prometheus.Histogram
}

func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		submitsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "submits_total",
				Help:      "Submit requests by outcome (submitted, invalid, spam_dropped, busy)",
			},
			[]string{"outcome"},
		),
		deliveriesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "deliveries_total",
				Help:      "Finished transport calls by result and error type",
			},
			[]string{"result", "error_type"},
		),
		deliveryDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "delivery_duration_seconds",
				Help:      "Time from submit to transport completion",
				Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			},
		),
	}
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) recordSubmit(outcome form.SubmissionOutcome) {
	m.submitsTotal.WithLabelValues(outcome.String()).Inc()
}

func (m *Metrics) recordDelivery(elapsed time.Duration, err error) {
	m.deliveryDuration.Observe(elapsed.Seconds())

	if err == nil {
		m.deliveriesTotal.WithLabelValues("delivered", "").Inc()
		return
	}
	m.deliveriesTotal.WithLabelValues("failed", string(transport.ClassifyError(err).Type)).Inc()
}

// Serve exposes the registry on addr until ctx is cancelled and returns
// the address actually bound.
func (m *Metrics) Serve(ctx context.Context, addr string, logger *zap.SugaredLogger) (net.Addr, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))

	server := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	go func() {
		logger.Infof("Serving metrics on %s", listener.Addr())
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf("Metrics server stopped: %v", err)
		}
	}()

	return listener.Addr(), nil
}

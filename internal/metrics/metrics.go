// Package metrics exports simulation timings to Prometheus.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector implements physics.Observer and records stream client counts.
type Collector struct {
	stepDuration       prometheus.Histogram
	stepsTotal         prometheus.Counter
	bodies             prometheus.Gauge
	predictionDuration prometheus.Histogram
	predictionSteps    prometheus.Gauge
	predictionsTotal   prometheus.Counter
	predictionErrors   prometheus.Counter
	streamClients      prometheus.Gauge
	gatherer           prometheus.Gatherer
}

// NewCollector creates the metrics and registers them with reg. Pass a fresh
// prometheus.NewRegistry() in tests to avoid clashing with the default registry.
func NewCollector(reg *prometheus.Registry) *Collector {
	m := &Collector{
		stepDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "sim_step_duration_seconds",
			Help:    "Time spent in one integrator step",
			Buckets: prometheus.ExponentialBuckets(1e-6, 4, 10),
		}),
		stepsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sim_steps_total",
			Help: "Total integrator steps taken",
		}),
		bodies: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "sim_bodies",
			Help: "Bodies registered at the last step",
		}),
		predictionDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "orbit_prediction_duration_seconds",
			Help:    "Time spent predicting orbits",
			Buckets: prometheus.ExponentialBuckets(1e-5, 4, 10),
		}),
		predictionSteps: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "orbit_prediction_steps",
			Help: "Steps simulated by the last orbit prediction",
		}),
		predictionsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "orbit_predictions_total",
			Help: "Total orbit predictions run",
		}),
		predictionErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "orbit_prediction_errors_total",
			Help: "Orbit predictions rejected for invalid configuration",
		}),
		streamClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "stream_clients",
			Help: "Connected state stream clients",
		}),
		gatherer: reg,
	}

	reg.MustRegister(
		m.stepDuration,
		m.stepsTotal,
		m.bodies,
		m.predictionDuration,
		m.predictionSteps,
		m.predictionsTotal,
		m.predictionErrors,
		m.streamClients,
	)
	return m
}

// ObserveStep records one integrator step over the given number of bodies.
func (m *Collector) ObserveStep(bodies int, d time.Duration) {
	m.stepDuration.Observe(d.Seconds())
	m.stepsTotal.Inc()
	m.bodies.Set(float64(bodies))
}

// ObservePrediction records one completed orbit prediction and its step count.
func (m *Collector) ObservePrediction(bodies, steps int, d time.Duration) {
	m.predictionDuration.Observe(d.Seconds())
	m.predictionSteps.Set(float64(steps))
	m.predictionsTotal.Inc()
}

// PredictionFailed counts a prediction that was rejected before running.
func (m *Collector) PredictionFailed() {
	m.predictionErrors.Inc()
}

// SetStreamClients records the number of connected stream clients.
func (m *Collector) SetStreamClients(n int) {
	m.streamClients.Set(float64(n))
}

// Handler serves the registry in the Prometheus text format.
func (m *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

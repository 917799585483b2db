package observability

import (
	"github.com/couchcryptid/umbrella-gate/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the panel service.
type Metrics struct {
	// Panel metrics.
	Evaluations *prometheus.CounterVec // labels: source
	InputState  *prometheus.GaugeVec   // labels: input
	GateSignal  *prometheus.GaugeVec   // labels: gate
	ReminderOn  prometheus.Gauge

	// Command pipeline metrics.
	MessagesConsumed        prometheus.Counter
	MessagesProduced        prometheus.Counter
	CommandErrors           prometheus.Counter
	PipelineRunning         prometheus.Gauge
	BatchSize               prometheus.Histogram
	BatchProcessingDuration prometheus.Histogram
	PublishRetries          prometheus.Counter

	// Weather feed metrics.
	WeatherRequests    *prometheus.CounterVec // labels: outcome={success,error}
	WeatherAPIDuration prometheus.Histogram
	WeatherEnabled     prometheus.Gauge
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := NewUnregisteredMetrics()

	prometheus.MustRegister(
		m.Evaluations,
		m.InputState,
		m.GateSignal,
		m.ReminderOn,
		m.MessagesConsumed,
		m.MessagesProduced,
		m.CommandErrors,
		m.PipelineRunning,
		m.BatchSize,
		m.BatchProcessingDuration,
		m.PublishRetries,
		m.WeatherRequests,
		m.WeatherAPIDuration,
		m.WeatherEnabled,
	)

	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return NewUnregisteredMetrics()
}

// NewUnregisteredMetrics creates Metrics that no registry exports, for
// processes such as the terminal panel that do not serve /metrics.
func NewUnregisteredMetrics() *Metrics {
	return &Metrics{
		Evaluations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "umbrella",
			Name:      "evaluations_total",
			Help:      "Panel evaluations by the adapter that triggered them.",
		}, []string{"source"}),
		InputState: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "umbrella",
			Name:      "input_state",
			Help:      "Current value of each panel input (1 on, 0 off).",
		}, []string{"input"}),
		GateSignal: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "umbrella",
			Name:      "gate_signal",
			Help:      "Current output of each gate (1 on, 0 off).",
		}, []string{"gate"}),
		ReminderOn: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "umbrella",
			Name:      "reminder_on",
			Help:      "1 when an umbrella is recommended, 0 otherwise.",
		}),
		MessagesConsumed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "umbrella",
			Name:      "messages_consumed_total",
			Help:      "Total command messages read from the source topic.",
		}),
		MessagesProduced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "umbrella",
			Name:      "messages_produced_total",
			Help:      "Total evaluations written to the sink topic.",
		}),
		CommandErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "umbrella",
			Name:      "command_errors_total",
			Help:      "Total source messages skipped as invalid commands.",
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "umbrella",
			Name:      "pipeline_running",
			Help:      "1 when the command pipeline is active, 0 when shut down.",
		}),
		BatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "umbrella",
			Name:      "batch_size",
			Help:      "Number of command messages per batch extracted from Kafka.",
			Buckets:   []float64{1, 5, 10, 20, 30, 40, 50, 75, 100},
		}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "umbrella",
			Name:      "batch_processing_duration_seconds",
			Help:      "Duration of a complete extract-apply-load cycle.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
		PublishRetries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "umbrella",
			Name:      "publish_retries_total",
			Help:      "Failed sink writes that were retried with the same batch.",
		}),
		WeatherRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "umbrella",
			Name:      "weather_requests_total",
			Help:      "Weather API requests by outcome.",
		}, []string{"outcome"}),
		WeatherAPIDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "umbrella",
			Name:      "weather_api_duration_seconds",
			Help:      "Weather API request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		WeatherEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "umbrella",
			Name:      "weather_enabled",
			Help:      "1 when the weather feed drives the inputs, 0 otherwise.",
		}),
	}
}

// ObserveEvaluation records a panel snapshot. It is registered as a panel subscriber.
func (m *Metrics) ObserveEvaluation(ev domain.Evaluation) {
	m.Evaluations.WithLabelValues(ev.Source).Inc()
	for _, in := range domain.Inputs() {
		m.InputState.WithLabelValues(string(in)).Set(boolToFloat(ev.Inputs.Get(in)))
	}
	for _, s := range ev.Result.Signals() {
		m.GateSignal.WithLabelValues(s.Name).Set(boolToFloat(s.Value))
	}
	m.ReminderOn.Set(boolToFloat(ev.Result.ReminderOn))
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

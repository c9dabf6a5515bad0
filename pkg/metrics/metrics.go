package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Store metrics
	TablesTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "sharknado_tables_total",
			Help: "Total number of tables in the store",
		},
	)

	DocumentsTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "sharknado_documents_total",
			Help: "Total number of documents across all tables",
		},
	)

	MutationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sharknado_mutations_total",
			Help: "Total number of applied mutations by operation",
		},
		[]string{"op"},
	)

	// Operation log metrics
	LogRecordsReplayed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "sharknado_log_records_replayed_total",
			Help: "Total number of log records replayed at startup",
		},
	)

	LogAppendFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "sharknado_log_append_failures_total",
			Help: "Total number of failed log appends",
		},
	)

	// Protocol metrics
	CommandsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sharknado_commands_total",
			Help: "Total number of commands by verb and status",
		},
		[]string{"verb", "status"},
	)

	CommandDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sharknado_command_duration_seconds",
			Help:    "Command handling duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"verb"},
	)

	AuthFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "sharknado_auth_failures_total",
			Help: "Total number of failed LOGIN attempts",
		},
	)

	// Session metrics
	SessionsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "sharknado_sessions_active",
			Help: "Number of currently open client sessions",
		},
	)

	SessionsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "sharknado_sessions_total",
			Help: "Total number of client sessions accepted",
		},
	)
)

func init() {
	prometheus.MustRegister(TablesTotal)
	prometheus.MustRegister(DocumentsTotal)
	prometheus.MustRegister(MutationsTotal)
	prometheus.MustRegister(LogRecordsReplayed)
	prometheus.MustRegister(LogAppendFailures)
	prometheus.MustRegister(CommandsTotal)
	prometheus.MustRegister(CommandDuration)
	prometheus.MustRegister(AuthFailuresTotal)
	prometheus.MustRegister(SessionsActive)
	prometheus.MustRegister(SessionsTotal)
}

// Handler returns the Prometheus HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// Timer is a helper for timing operations
type Timer struct {
	start time.Time
}

// NewTimer creates a new timer
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// ObserveDurationVec records the duration to a histogram vec with labels
func (t *Timer) ObserveDurationVec(histogram prometheus.ObserverVec, labels ...string) {
	duration := time.Since(t.start).Seconds()
	histogram.WithLabelValues(labels...).Observe(duration)
}

// Duration returns the elapsed time since timer started
func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}

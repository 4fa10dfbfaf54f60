package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	PipelineLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "btcpulse",
			Subsystem: "pipeline",
			Name:      "stage_duration_seconds",
			Help:      "Latency of pipeline stages (collect, decision, alerts)",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"stage"},
	)

	ProviderErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "btcpulse",
			Subsystem: "pipeline",
			Name:      "provider_errors_total",
			Help:      "Upstream provider fetch failures",
		},
		[]string{"provider"},
	)

	LastPrice = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "btcpulse",
			Subsystem: "pipeline",
			Name:      "last_price_usd",
			Help:      "Last observed Bitcoin price",
		},
	)

	AlertsGenerated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "btcpulse",
			Subsystem: "pipeline",
			Name:      "alerts_generated_total",
			Help:      "Alerts generated per severity",
		},
		[]string{"severity"},
	)
)

func Register() {
	once.Do(func() {
		prometheus.MustRegister(PipelineLatency, ProviderErrors, LastPrice, AlertsGenerated)
	})
}

// Recorder implements domain/service.Metrics on top of the package collectors.
type Recorder struct{}

func NewRecorder() *Recorder {
	Register()
	return &Recorder{}
}

func (Recorder) RecordStageLatency(stage string, seconds float64) {
	PipelineLatency.WithLabelValues(stage).Observe(seconds)
}

func (Recorder) RecordProviderError(provider string) {
	ProviderErrors.WithLabelValues(provider).Inc()
}

func (Recorder) RecordLastPrice(price float64) {
	LastPrice.Set(price)
}

func (Recorder) RecordAlerts(severity string, count int) {
	AlertsGenerated.WithLabelValues(severity).Add(float64(count))
}

package controller

import (
	"github.com/clambin/ecobee-controller/internal/ecobee"
	"github.com/prometheus/client_golang/prometheus"
)

var _ prometheus.Collector = &Metrics{}

// Metrics exposes the controller's state as Prometheus metrics. A nil *Metrics records nothing.
type Metrics struct {
	temperature       prometheus.Gauge
	mode              *prometheus.GaugeVec
	modeChanges       *prometheus.CounterVec
	temperatureErrors prometheus.Counter
	deviceErrors      prometheus.Counter
}

func NewMetrics(namespace, subsystem string, labels prometheus.Labels) *Metrics {
	return &Metrics{
		temperature: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   subsystem,
			Name:        "outdoor_temperature",
			Help:        "Last outdoor temperature reading",
			ConstLabels: labels,
		}),
		mode: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   subsystem,
			Name:        "hvac_mode",
			Help:        "Current hvac mode of the thermostats",
			ConstLabels: labels,
		}, []string{"mode"}),
		modeChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   subsystem,
			Name:        "mode_changes_total",
			Help:        "Number of hvac mode changes",
			ConstLabels: labels,
		}, []string{"mode"}),
		temperatureErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   subsystem,
			Name:        "temperature_errors_total",
			Help:        "Number of failed outdoor temperature readings",
			ConstLabels: labels,
		}),
		deviceErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   subsystem,
			Name:        "device_update_errors_total",
			Help:        "Number of failed thermostat updates",
			ConstLabels: labels,
		}),
	}
}

func (m *Metrics) setTemperature(temperature float64) {
	if m != nil {
		m.temperature.Set(temperature)
	}
}

func (m *Metrics) setMode(mode ecobee.Mode) {
	if m != nil {
		m.mode.Reset()
		m.mode.WithLabelValues(mode.String()).Set(1)
	}
}

func (m *Metrics) modeChanged(mode ecobee.Mode) {
	if m != nil {
		m.modeChanges.WithLabelValues(mode.String()).Inc()
	}
}

func (m *Metrics) temperatureFailed() {
	if m != nil {
		m.temperatureErrors.Inc()
	}
}

func (m *Metrics) deviceFailed() {
	if m != nil {
		m.deviceErrors.Inc()
	}
}

func (m *Metrics) Describe(ch chan<- *prometheus.Desc) {
	m.temperature.Describe(ch)
	m.mode.Describe(ch)
	m.modeChanges.Describe(ch)
	m.temperatureErrors.Describe(ch)
	m.deviceErrors.Describe(ch)
}

func (m *Metrics) Collect(ch chan<- prometheus.Metric) {
	m.temperature.Collect(ch)
	m.mode.Collect(ch)
	m.modeChanges.Collect(ch)
	m.temperatureErrors.Collect(ch)
	m.deviceErrors.Collect(ch)
}

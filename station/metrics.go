package station

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Cycle outcomes.
const (
	OutcomeRefreshed = "refreshed"
	OutcomeUnchanged = "unchanged"
	OutcomeError     = "error"
)

// Metrics are the station's Prometheus collectors.
type Metrics struct {
	Cycles        *prometheus.CounterVec
	FetchFailures prometheus.Counter
	Battery       prometheus.Gauge
	DataAge       prometheus.Gauge
	RenderSeconds prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg, if reg is not nil.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Cycles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "weather_display_cycles_total",
			Help: "Number of update cycles by outcome.",
		}, []string{"outcome"}),
		FetchFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "weather_display_fetch_failures_total",
			Help: "Number of failed weather fetches.",
		}),
		Battery: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "weather_display_battery_percent",
			Help: "Battery charge in percent.",
		}),
		DataAge: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "weather_display_data_age_minutes",
			Help: "Age of the displayed weather data in minutes, -1 if unknown.",
		}),
		RenderSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "weather_display_render_seconds",
			Help:    "Time spent composing and transferring a frame.",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		}),
	}
	if reg == nil {
		return m, nil
	}
	for _, c := range []prometheus.Collector{m.Cycles, m.FetchFailures, m.Battery, m.DataAge, m.RenderSeconds} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

package observability

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// EngineCollector exposes computation-side Prometheus metrics.
type EngineCollector struct {
	gatherer prometheus.Gatherer

	ScanDuration      prometheus.Histogram
	WindowsDetected   prometheus.Counter
	PositionsComputed prometheus.Counter
	ScansInFlight     prometheus.Gauge
}

// NewEngineCollector registers engine metrics against the provided registerer.
func NewEngineCollector(reg prometheus.Registerer) (*EngineCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	scanHistogram := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "engine_scan_duration_seconds",
		Help:    "Duration of activation window scans.",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
	})
	scanHistogram, err := registerHistogram(reg, scanHistogram, "engine_scan_duration_seconds")
	if err != nil {
		return nil, err
	}

	windows := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "engine_windows_detected_total",
		Help: "Cumulative number of activation windows produced by scans.",
	})
	windows, err = registerCounter(reg, windows, "engine_windows_detected_total")
	if err != nil {
		return nil, err
	}

	positions := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "engine_positions_computed_total",
		Help: "Cumulative number of body positions computed.",
	})
	positions, err = registerCounter(reg, positions, "engine_positions_computed_total")
	if err != nil {
		return nil, err
	}

	inFlight := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "engine_scans_in_flight",
		Help: "Number of window scans currently running.",
	})
	inFlight, err = registerGauge(reg, inFlight, "engine_scans_in_flight")
	if err != nil {
		return nil, err
	}

	return &EngineCollector{
		gatherer:          gatherer,
		ScanDuration:      scanHistogram,
		WindowsDetected:   windows,
		PositionsComputed: positions,
		ScansInFlight:     inFlight,
	}, nil
}

// Gatherer returns the Prometheus gatherer associated with the collector.
func (c *EngineCollector) Gatherer() prometheus.Gatherer {
	if c == nil {
		return nil
	}
	return c.gatherer
}

// ObserveScan records a completed scan's duration and window count.
func (c *EngineCollector) ObserveScan(d time.Duration, windows int) {
	if c == nil {
		return
	}
	if c.ScanDuration != nil {
		c.ScanDuration.Observe(d.Seconds())
	}
	if c.WindowsDetected != nil {
		c.WindowsDetected.Add(float64(windows))
	}
}

// AddPositionsComputed increments the position counter by n.
func (c *EngineCollector) AddPositionsComputed(n int) {
	if c == nil || c.PositionsComputed == nil {
		return
	}
	c.PositionsComputed.Add(float64(n))
}

// ScanStarted and ScanFinished bracket a running scan for the in-flight gauge.
func (c *EngineCollector) ScanStarted() {
	if c == nil || c.ScansInFlight == nil {
		return
	}
	c.ScansInFlight.Inc()
}

func (c *EngineCollector) ScanFinished() {
	if c == nil || c.ScansInFlight == nil {
		return
	}
	c.ScansInFlight.Dec()
}

func registerHistogram(reg prometheus.Registerer, hist prometheus.Histogram, name string) (prometheus.Histogram, error) {
	if err := reg.Register(hist); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Histogram); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return hist, nil
}

func registerCounter(reg prometheus.Registerer, counter prometheus.Counter, name string) (prometheus.Counter, error) {
	if err := reg.Register(counter); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return counter, nil
}

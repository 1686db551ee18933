// Package telemetry exports lattice activity as Prometheus metrics.
//
// A Collector implements lattice.Observer; install it with
// lattice.WithObserver and register it once per registry.
package telemetry

import (
	"io"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/katalvlaran/crystal/lattice"
)

const namespace = "crystal"

// Collector counts nodes, searches and compass builds.
type Collector struct {
	nodes    *prometheus.CounterVec
	searches *prometheus.CounterVec
	listed   prometheus.Histogram

	compassCycle   prometheus.Gauge
	compassModulus prometheus.Gauge
	compassWarmup  prometheus.Gauge

	commands *prometheus.HistogramVec
}

var _ lattice.Observer = (*Collector)(nil)

// NewCollector creates the metrics and registers them with reg.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		nodes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "lattice",
			Name:      "nodes_total",
			Help:      "Materialized lattice nodes",
		}, []string{"variation", "kind"}),
		searches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "distance",
			Name:      "searches_total",
			Help:      "Cylinder searches by outcome",
		}, []string{"result"}),
		listed: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "distance",
			Name:      "search_listed_nodes",
			Help:      "Nodes listed by one cylinder search",
			Buckets:   prometheus.ExponentialBuckets(16, 4, 8),
		}),
		compassCycle: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "compass",
			Name:      "cycle_layers",
			Help:      "BFS layers per accepted compass window",
		}),
		compassModulus: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "compass",
			Name:      "window",
			Help:      "Accepted compass window in representative units",
		}),
		compassWarmup: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "compass",
			Name:      "warmup_nodes",
			Help:      "Nodes listed by the last compass warm-up",
		}),
		commands: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "cli",
			Name:      "command_duration_seconds",
			Help:      "Wall time of CLI commands",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		}, []string{"command"}),
	}
	for _, m := range []prometheus.Collector{
		c.nodes, c.searches, c.listed,
		c.compassCycle, c.compassModulus, c.compassWarmup,
		c.commands,
	} {
		if err := reg.Register(m); err != nil {
			return nil, errors.Wrap(err, "telemetry: register")
		}
	}
	return c, nil
}

// NodeCreated implements lattice.Observer.
func (c *Collector) NodeCreated(v lattice.Variation, halfStep bool) {
	kind := "face"
	if halfStep {
		kind = "corner"
	}
	c.nodes.WithLabelValues(v.String(), kind).Inc()
}

// SearchFinished implements lattice.Observer.
func (c *Collector) SearchFinished(found bool, listed int) {
	result := "found"
	if !found {
		result = "not_found"
	}
	c.searches.WithLabelValues(result).Inc()
	c.listed.Observe(float64(listed))
}

// CompassBuilt implements lattice.Observer.
func (c *Collector) CompassBuilt(cycle, modulus, visited int) {
	c.compassCycle.Set(float64(cycle))
	c.compassModulus.Set(float64(modulus))
	c.compassWarmup.Set(float64(visited))
}

// ObserveCommand records the duration of a CLI command.
func (c *Collector) ObserveCommand(name string, d time.Duration) {
	c.commands.WithLabelValues(name).Observe(d.Seconds())
}

// WriteText writes every family gathered from g in the text exposition format.
func WriteText(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return errors.Wrap(err, "telemetry: gather")
	}
	for _, mf := range families {
		if _, err = expfmt.MetricFamilyToText(w, mf); err != nil {
			return errors.Wrapf(err, "telemetry: writing %s", mf.GetName())
		}
	}
	return nil
}

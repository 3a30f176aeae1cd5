// Package promstats exports sketch operation metrics to Prometheus.
package promstats

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"honnef.co/go/sketch"
)

// Collector implements sketch.MetricsCollector with Prometheus metrics.
type Collector struct {
	opLatency *prometheus.HistogramVec
	ops       *prometheus.CounterVec
	failures  *prometheus.CounterVec
}

var _ sketch.MetricsCollector = (*Collector)(nil)

// New creates a Collector and registers its metrics with reg. If reg is
// nil, prometheus.DefaultRegisterer is used.
func New(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	c := &Collector{
		opLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "sketch_operation_latency_seconds",
			Help:    "Latency of sketch operations",
			Buckets: prometheus.DefBuckets,
		}, []string{"op", "status"}),
		ops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sketch_operations_total",
			Help: "Total sketch operations",
		}, []string{"op"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sketch_operation_failures_total",
			Help: "Total failed sketch operations, by kind of failure",
		}, []string{"op", "reason"}),
	}
	for _, m := range []prometheus.Collector{c.opLatency, c.ops, c.failures} {
		if err := reg.Register(m); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// RecordOperation implements sketch.MetricsCollector.
func (c *Collector) RecordOperation(op sketch.Op, d time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
		c.failures.WithLabelValues(string(op), reason(err)).Inc()
	}
	c.opLatency.WithLabelValues(string(op), status).Observe(d.Seconds())
	c.ops.WithLabelValues(string(op)).Inc()
}

func reason(err error) string {
	switch {
	case errors.Is(err, sketch.ErrGeometricPrecondition):
		return "precondition"
	case errors.Is(err, sketch.ErrValue):
		return "value"
	case errors.Is(err, sketch.ErrOutOfRange):
		return "out_of_range"
	case errors.Is(err, sketch.ErrNotAngle):
		return "not_angle"
	default:
		return "other"
	}
}

package sketch

import (
	"sync/atomic"
	"time"
)

// Op names a sketch operation for logging and metrics.
type Op string

const (
	OpAddGeometry       Op = "add_geometry"
	OpDelGeometry       Op = "del_geometry"
	OpAddConstraint     Op = "add_constraint"
	OpDelConstraint     Op = "del_constraint"
	OpExposeInternal    Op = "expose_internal"
	OpDeleteInternal    Op = "delete_internal"
	OpSplit             Op = "split"
	OpTrim              Op = "trim"
	OpJoin              Op = "join"
	OpModifyKnot        Op = "modify_knot"
	OpInsertKnot        Op = "insert_knot"
	OpReverseAngle      Op = "reverse_angle"
	OpAddExternal       Op = "add_external"
	OpDelExternal       Op = "del_external"
	OpDelGeometriesBulk Op = "del_geometries"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus;
// see package promstats.
type MetricsCollector interface {
	// RecordOperation is called after each mutating operation.
	// duration is the total time taken, err is nil if successful.
	RecordOperation(op Op, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordOperation(Op, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
type BasicMetricsCollector struct {
	GeometryOps      atomic.Int64
	GeometryErrors   atomic.Int64
	ConstraintOps    atomic.Int64
	ConstraintErrors atomic.Int64
	InternalOps      atomic.Int64
	InternalErrors   atomic.Int64
	EditCount        atomic.Int64
	EditErrors       atomic.Int64
	EditTotalNanos   atomic.Int64
	KnotCount        atomic.Int64
	KnotErrors       atomic.Int64
}

// RecordOperation implements MetricsCollector.
func (b *BasicMetricsCollector) RecordOperation(op Op, duration time.Duration, err error) {
	var count, errs *atomic.Int64
	switch op {
	case OpAddGeometry, OpDelGeometry, OpDelGeometriesBulk, OpAddExternal, OpDelExternal:
		count, errs = &b.GeometryOps, &b.GeometryErrors
	case OpAddConstraint, OpDelConstraint, OpReverseAngle:
		count, errs = &b.ConstraintOps, &b.ConstraintErrors
	case OpExposeInternal, OpDeleteInternal:
		count, errs = &b.InternalOps, &b.InternalErrors
	case OpSplit, OpTrim, OpJoin:
		count, errs = &b.EditCount, &b.EditErrors
		b.EditTotalNanos.Add(duration.Nanoseconds())
	case OpModifyKnot, OpInsertKnot:
		count, errs = &b.KnotCount, &b.KnotErrors
	default:
		return
	}
	count.Add(1)
	if err != nil {
		errs.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		GeometryOps:      b.GeometryOps.Load(),
		GeometryErrors:   b.GeometryErrors.Load(),
		ConstraintOps:    b.ConstraintOps.Load(),
		ConstraintErrors: b.ConstraintErrors.Load(),
		InternalOps:      b.InternalOps.Load(),
		InternalErrors:   b.InternalErrors.Load(),
		EditCount:        b.EditCount.Load(),
		EditErrors:       b.EditErrors.Load(),
		EditAvgNanos:     b.getAvgEditNanos(),
		KnotCount:        b.KnotCount.Load(),
		KnotErrors:       b.KnotErrors.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgEditNanos() int64 {
	count := b.EditCount.Load()
	if count == 0 {
		return 0
	}
	return b.EditTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	GeometryOps      int64
	GeometryErrors   int64
	ConstraintOps    int64
	ConstraintErrors int64
	InternalOps      int64
	InternalErrors   int64
	EditCount        int64
	EditErrors       int64
	EditAvgNanos     int64
	KnotCount        int64
	KnotErrors       int64
}

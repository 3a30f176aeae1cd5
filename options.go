package sketch

// DefaultPrecision is the distance below which two points are the same.
const DefaultPrecision = 1e-7

type options struct {
	logger           *Logger
	metricsCollector MetricsCollector
	expressions      Expressions
	pickTolerance    float64 // 0 means unlimited
	precision        float64
}

// Option configures a Sketch.
type Option func(*options)

// WithLogger configures the logger. If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetrics configures the metrics collector.
//
// If nil is passed, NoopMetricsCollector is used.
func WithMetrics(m MetricsCollector) Option {
	return func(o *options) {
		if m == nil {
			m = NoopMetricsCollector{}
		}
		o.metricsCollector = m
	}
}

// WithExpressions configures where the expressions bound to constraints are
// kept. If nil is passed, a fresh MemoryExpressions is used.
func WithExpressions(e Expressions) Option {
	return func(o *options) {
		if e == nil {
			e = NewMemoryExpressions()
		}
		o.expressions = e
	}
}

// WithPickTolerance limits how far from a curve the point passed to Split
// and Trim may be. By default, any point is projected onto the curve.
func WithPickTolerance(d float64) Option {
	return func(o *options) {
		o.pickTolerance = max(d, 0)
	}
}

// WithPrecision sets the distance below which two points are considered
// the same. Non-positive values select DefaultPrecision.
func WithPrecision(eps float64) Option {
	return func(o *options) {
		if eps <= 0 {
			eps = DefaultPrecision
		}
		o.precision = eps
	}
}

func defaultOptions() options {
	return options{
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
		expressions:      NewMemoryExpressions(),
		precision:        DefaultPrecision,
	}
}

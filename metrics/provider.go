// Package metrics is Orion's instrumentation seam: the store, every
// worker, and (via runtime.WithMetricsProvider) the caller share one
// Provider so object publication, task execution counts, and task
// execution latency are observable without any component depending on a
// concrete metrics backend.
package metrics

// Provider constructs the instruments Orion's store and workers record
// against. A Provider implementation must be safe for concurrent use, and
// must return the same instrument for repeated calls with the same name —
// store.New and worker.New each resolve their instrument once at
// construction and hold onto it rather than re-resolving per call.
type Provider interface {
	Counter(name string, opts ...InstrumentOption) Counter
	UpDownCounter(name string, opts ...InstrumentOption) UpDownCounter
	Histogram(name string, opts ...InstrumentOption) Histogram
}

// Counter records a monotonically increasing count, e.g. objects published
// or tasks executed. Safe for concurrent use.
type Counter interface {
	Add(n int64)
}

// UpDownCounter records a value that moves in both directions, e.g. tasks
// currently in flight on a worker. Safe for concurrent use.
type UpDownCounter interface {
	Add(n int64)
}

// Histogram records a distribution of float64 measurements, e.g. the
// seconds a task's Work closure ran for. Safe for concurrent use.
type Histogram interface {
	Record(v float64)
}

// InstrumentConfig carries advisory metadata attached at instrument
// creation. Providers may ignore all of it; BasicProvider stores it purely
// for introspection.
type InstrumentConfig struct {
	Description string
	Unit        string
	Attributes  map[string]string
}

// InstrumentOption mutates an InstrumentConfig at instrument-creation time.
type InstrumentOption func(*InstrumentConfig)

// WithDescription attaches a human-readable description to an instrument.
func WithDescription(desc string) InstrumentOption {
	return func(c *InstrumentConfig) { c.Description = desc }
}

// WithUnit attaches a unit string ("1", "seconds", ...) to an instrument.
func WithUnit(unit string) InstrumentOption {
	return func(c *InstrumentConfig) { c.Unit = unit }
}

// WithAttributes attaches static key/value attributes to an instrument.
// Keep the set small and bounded; this is not a per-measurement label.
func WithAttributes(attrs map[string]string) InstrumentOption {
	return func(c *InstrumentConfig) {
		if len(attrs) == 0 {
			return
		}
		if c.Attributes == nil {
			c.Attributes = make(map[string]string, len(attrs))
		}
		for k, v := range attrs {
			c.Attributes[k] = v
		}
	}
}

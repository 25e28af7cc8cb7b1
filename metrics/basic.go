package metrics

import (
	"math"
	"sync"
	"sync/atomic"
)

// BasicProvider is an in-memory Provider: every instrument lives for the
// life of the process and is reused across calls with the same name.
// Nothing installs it by default (runtime defaults to NoopProvider); a
// caller opts in via runtime.WithMetricsProvider and reads recorded values
// through each instrument's Snapshot.
type BasicProvider struct {
	mu         sync.RWMutex
	counters   map[string]*BasicCounter
	updowns    map[string]*BasicUpDownCounter
	histograms map[string]*BasicHistogram
	meta       map[string]InstrumentConfig
}

// NewBasicProvider constructs an empty BasicProvider.
func NewBasicProvider() *BasicProvider {
	return &BasicProvider{
		counters:   make(map[string]*BasicCounter),
		updowns:    make(map[string]*BasicUpDownCounter),
		histograms: make(map[string]*BasicHistogram),
		meta:       make(map[string]InstrumentConfig),
	}
}

func applyOptions(opts []InstrumentOption) InstrumentConfig {
	var cfg InstrumentConfig
	for _, o := range opts {
		if o != nil {
			o(&cfg)
		}
	}
	return cfg
}

// getOrCreate resolves the instrument named name from m under mu, creating
// it via newInstrument on first use and recording its InstrumentConfig
// under name in meta. Shared by Counter/UpDownCounter/Histogram below so
// the lock-then-recheck-then-create sequence exists exactly once.
func getOrCreate[T any](mu *sync.RWMutex, m map[string]T, meta map[string]InstrumentConfig, name string, opts []InstrumentOption, newInstrument func() T) T {
	mu.RLock()
	if v, ok := m[name]; ok {
		mu.RUnlock()
		return v
	}
	mu.RUnlock()

	mu.Lock()
	defer mu.Unlock()
	if v, ok := m[name]; ok {
		return v
	}
	meta[name] = applyOptions(opts)
	v := newInstrument()
	m[name] = v
	return v
}

// Counter returns the monotonic counter named name, creating it on first use.
func (p *BasicProvider) Counter(name string, opts ...InstrumentOption) Counter {
	return getOrCreate(&p.mu, p.counters, p.meta, name, opts, func() *BasicCounter { return &BasicCounter{} })
}

// UpDownCounter returns the up/down counter named name, creating it on first use.
func (p *BasicProvider) UpDownCounter(name string, opts ...InstrumentOption) UpDownCounter {
	return getOrCreate(&p.mu, p.updowns, p.meta, name, opts, func() *BasicUpDownCounter { return &BasicUpDownCounter{} })
}

// Histogram returns the histogram named name, creating it on first use.
func (p *BasicProvider) Histogram(name string, opts ...InstrumentOption) Histogram {
	return getOrCreate(&p.mu, p.histograms, p.meta, name, opts, func() *BasicHistogram {
		return &BasicHistogram{min: math.Inf(1), max: math.Inf(-1)}
	})
}

// BasicCounter is a thread-safe monotonic counter backed by atomic.Int64.
type BasicCounter struct {
	val atomic.Int64
}

// Add increments the counter by n.
func (c *BasicCounter) Add(n int64) { c.val.Add(n) }

// Snapshot returns the counter's current value.
func (c *BasicCounter) Snapshot() int64 { return c.val.Load() }

// BasicUpDownCounter is a thread-safe counter that can move in either direction.
type BasicUpDownCounter struct {
	val atomic.Int64
}

// Add adds n (positive or negative) to the current value.
func (u *BasicUpDownCounter) Add(n int64) { u.val.Add(n) }

// Snapshot returns the counter's current value.
func (u *BasicUpDownCounter) Snapshot() int64 { return u.val.Load() }

// BasicHistogram tracks count, sum, min, and max of recorded measurements
// without maintaining buckets — enough to report task-execution latency
// without pulling in a real metrics backend.
type BasicHistogram struct {
	mu    sync.Mutex
	count int64
	sum   float64
	min   float64
	max   float64
}

// Record adds v as a measurement.
func (h *BasicHistogram) Record(v float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.count == 0 {
		h.min, h.max = v, v
	} else if v < h.min {
		h.min = v
	} else if v > h.max {
		h.max = v
	}
	h.count++
	h.sum += v
}

// HistSnapshot is an immutable point-in-time view of a BasicHistogram.
type HistSnapshot struct {
	Count int64
	Sum   float64
	Min   float64
	Max   float64
	Mean  float64
}

// Snapshot returns the histogram's current state.
func (h *BasicHistogram) Snapshot() HistSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	mean := 0.0
	if h.count > 0 {
		mean = h.sum / float64(h.count)
	}
	return HistSnapshot{Count: h.count, Sum: h.sum, Min: h.min, Max: h.max, Mean: mean}
}

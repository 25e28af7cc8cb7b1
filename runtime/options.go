package runtime

import (
	"github.com/SamarthMahendra/Orion/metrics"
	"oss.nandlabs.io/golly/l3"
)

// Option configures a Runtime. Use NewOptions(ctx, opts...) to construct one
// via options, mirroring the teacher library's functional-options builder.
type Option func(*Config)

// WithWorkerCount sets the number of local workers.
func WithWorkerCount(n uint) Option {
	return func(c *Config) { c.WorkerCount = n }
}

// WithMetricsProvider sets the metrics.Provider workers and the store
// register instruments against.
func WithMetricsProvider(p metrics.Provider) Option {
	return func(c *Config) { c.MetricsProvider = p }
}

// WithLogger sets the logger the store, every worker, and the scheduler log
// through, overriding the default of l3.Get().
func WithLogger(log l3.Logger) Option {
	return func(c *Config) { c.Logger = log }
}

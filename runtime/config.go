package runtime

import (
	"github.com/SamarthMahendra/Orion/metrics"
	"oss.nandlabs.io/golly/l3"
)

// Config holds Runtime configuration.
type Config struct {
	// WorkerCount is the number of local workers started by the runtime.
	// Zero is legal (spec.md §8 #9): submissions are accepted but every
	// Wait/Get blocks forever, since nothing will ever dispatch.
	WorkerCount uint

	// MetricsProvider receives worker and store instrument registrations.
	// Defaults to a no-op provider.
	MetricsProvider metrics.Provider

	// Logger receives the store's, every worker's, and the scheduler's log
	// output. Defaults to l3.Get(), the process-wide logger.
	Logger l3.Logger
}

// defaultConfig centralizes Config defaults, mirroring the teacher's
// defaultConfig in defaults.go.
func defaultConfig() Config {
	return Config{
		WorkerCount:     4,
		MetricsProvider: metrics.NewNoopProvider(),
		Logger:          l3.Get(),
	}
}

// Package runtime composes the object store, a fixed pool of workers, and
// the local scheduler into the single-node facade callers submit tasks to.
package runtime

import (
	"context"
	"sync"

	"github.com/SamarthMahendra/Orion/orion"
	"github.com/SamarthMahendra/Orion/scheduler"
	"github.com/SamarthMahendra/Orion/store"
	"github.com/SamarthMahendra/Orion/worker"
)

// Runtime composes a Store, N Workers, and a Scheduler. Submit forwards to
// the scheduler and triggers one scheduling pass; Wait and Get delegate to
// the store; Shutdown signals every worker to exit after draining its
// current task and joins them.
type Runtime struct {
	store   *store.Store
	workers []*worker.Worker
	sched   *scheduler.Scheduler

	cancel context.CancelFunc
	once   sync.Once
}

// New constructs a Runtime from an explicit Config. A nil config applies
// defaultConfig, mirroring the teacher's Config-based New constructor.
func New(ctx context.Context, config *Config) *Runtime {
	if config == nil {
		cfg := defaultConfig()
		config = &cfg
	}
	if config.MetricsProvider == nil {
		config.MetricsProvider = defaultConfig().MetricsProvider
	}
	if config.Logger == nil {
		config.Logger = defaultConfig().Logger
	}

	runCtx, cancel := context.WithCancel(ctx)

	s := store.New(config.MetricsProvider)
	s.SetLogger(config.Logger)
	workers := make([]*worker.Worker, config.WorkerCount)
	for i := range workers {
		w := worker.New(workerID(i), s, config.MetricsProvider)
		w.SetLogger(config.Logger)
		w.Start(runCtx)
		workers[i] = w
	}

	sched := scheduler.New(s, workers)
	sched.SetLogger(config.Logger)

	return &Runtime{
		store:   s,
		workers: workers,
		sched:   sched,
		cancel:  cancel,
	}
}

// NewOptions constructs a Runtime via functional options, delegating to New
// exactly as the teacher's NewOptions delegates to New.
func NewOptions(ctx context.Context, opts ...Option) *Runtime {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return New(ctx, &cfg)
}

func workerID(i int) string {
	const letters = "abcdefghijklmnopqrstuvwxyz0123456789"
	if i < len(letters) {
		return "w-" + string(letters[i])
	}
	return "w-" + string(rune('a'+i%26)) + string(rune('0'+i/26))
}

// Submit forwards task to the scheduler and triggers one scheduling pass.
// If task has deps, a further pass is triggered once all of them have been
// published, so a task left pending on an unpublished dep is re-offered.
func (r *Runtime) Submit(task orion.Task) orion.ObjectRef {
	r.sched.Submit(task)
	r.sched.Schedule()
	if len(task.Deps) > 0 {
		go func(deps []orion.ObjectId) {
			for _, dep := range deps {
				_, _ = r.store.GetBlocking(context.Background(), dep)
				r.sched.OnObjectCreated(dep)
			}
			r.sched.Schedule()
		}(task.Deps)
	}
	return task.Ref()
}

// Wait blocks until ref's object is published.
func (r *Runtime) Wait(ctx context.Context, ref orion.ObjectRef) error {
	_, err := r.store.GetBlocking(ctx, ref.ID)
	return err
}

// Get returns ref's published value, blocking until it is published or ctx
// is done.
func (r *Runtime) Get(ctx context.Context, ref orion.ObjectRef) (orion.Value, error) {
	return r.store.GetBlocking(ctx, ref.ID)
}

// Store exposes the underlying object store, e.g. so a cluster-facing
// caller can call OnObjectCreated-style hooks after a local publish.
func (r *Runtime) Store() *store.Store { return r.store }

// Shutdown cancels every worker's context, then joins each worker in turn
// after it has drained its current task.
func (r *Runtime) Shutdown() {
	r.once.Do(func() {
		r.cancel()
		for _, w := range r.workers {
			w.Stop()
		}
	})
}

// Package scheduler implements Orion's local, dependency-aware admission
// controller: it tracks pending tasks and dispatches only those whose
// dependencies are already published in the object store, placing runnable
// tasks across workers in round-robin order.
package scheduler

import (
	"sync"

	"github.com/SamarthMahendra/Orion/orion"
	"github.com/SamarthMahendra/Orion/roundrobin"
	"github.com/SamarthMahendra/Orion/store"
	"github.com/SamarthMahendra/Orion/worker"
	"oss.nandlabs.io/golly/l3"
)

// Scheduler holds the pending task queue and references to every worker and
// the shared object store.
type Scheduler struct {
	store   *store.Store
	workers []*worker.Worker
	cursor  roundrobin.Cursor
	log     l3.Logger

	mu      sync.Mutex
	pending []orion.Task
}

// New constructs a Scheduler over the given workers and store. workers must
// be non-empty for Schedule to ever place a task (submitting to a runtime
// with zero workers blocks forever on the first output, per spec.md §8 #9).
func New(s *store.Store, workers []*worker.Worker) *Scheduler {
	return &Scheduler{store: s, workers: workers, log: l3.Get()}
}

// SetLogger replaces the scheduler's logger, e.g. so runtime.WithLogger can
// propagate a caller-supplied logger down from Runtime construction.
func (sch *Scheduler) SetLogger(log l3.Logger) {
	sch.log = log
}

// Submit appends task to the pending queue. Callers should follow with a
// Schedule pass (Runtime.Submit does this automatically).
func (sch *Scheduler) Submit(task orion.Task) {
	sch.mu.Lock()
	sch.pending = append(sch.pending, task)
	sch.mu.Unlock()
}

// OnObjectCreated is a completion notification hook; Runtime calls it as
// each dep of a submitted task is published, then triggers a new Schedule
// pass. The scheduler
// itself holds no per-object state — readiness is always re-derived from
// the store — so this is presently a no-op retained for symmetry with
// ClusterScheduler.OnObjectCreated and as a hook point for future metrics.
func (sch *Scheduler) OnObjectCreated(_ orion.ObjectId) {}

// Schedule performs one pass, placing as many runnable tasks as possible
// without starving later pending tasks behind an unready one: each pending
// task is visited once, ready tasks are dispatched and removed, unready
// tasks are kept in their original relative order.
func (sch *Scheduler) Schedule() {
	if len(sch.workers) == 0 {
		return
	}

	sch.mu.Lock()
	remaining := sch.pending[:0]
	toDispatch := make([]orion.Task, 0, len(sch.pending))
	for _, task := range sch.pending {
		if sch.ready(task) {
			toDispatch = append(toDispatch, task)
		} else {
			remaining = append(remaining, task)
		}
	}
	sch.pending = remaining
	sch.mu.Unlock()

	for _, task := range toDispatch {
		idx := sch.cursor.Next(len(sch.workers))
		w := sch.workers[idx]
		sch.log.DebugF("scheduler: placing task %q on worker %s", string(task.ID), w.ID())
		w.Submit(task)
	}
}

// ready reports whether every dep of task has already been published. This
// is the conservative, always-safe readiness rule spec.md §4.3 describes:
// workers use GetBlocking, so a task whose deps are merely "assigned to a
// worker" but not yet published would still be safe to place, but checking
// only actual publication keeps the scheduler itself free of any
// in-flight bookkeeping.
func (sch *Scheduler) ready(task orion.Task) bool {
	for _, dep := range task.Deps {
		if _, ok := sch.store.Get(dep); !ok {
			return false
		}
	}
	return true
}

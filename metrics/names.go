package metrics

// Instrument names Orion's store and worker register against. Centralized
// here so the store, worker, and their tests agree on one string per
// instrument instead of repeating literals.
const (
	// ObjectsPublished counts every Store.Put call, including overwrites of
	// an already-published object.
	ObjectsPublished = "orion_store_objects_published_total"

	// TasksExecuted counts every task whose value a worker published; a
	// task whose Work returned an error or panicked is not counted.
	TasksExecuted = "orion_worker_tasks_executed_total"

	// TaskExecutionSeconds records wall-clock time spent inside a task's
	// Work closure, including time blocked resolving dependencies.
	TaskExecutionSeconds = "orion_worker_execution_seconds"
)

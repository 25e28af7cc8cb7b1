package orion

import "context"

// ObjectId names a task's output in the store. By convention it equals the
// id of the task that produces it.
type ObjectId string

// Value is an opaque holder for anything the object store publishes. Go's
// any already erases static type, so no tagged-variant wrapper is needed.
type Value = any

// ObjectRef identifies a task's eventual output. It is returned by Submit
// before the task has necessarily executed.
type ObjectRef struct {
	ID ObjectId
}

// Work is the local execution closure a Task carries. It receives dependency
// values in declaration order and returns the task's published value.
type Work func(ctx context.Context, deps []Value) (Value, error)

// Task is an immutable description of one unit of work.
//
// Either Work is populated (single-process execution) or FunctionName is,
// and resolvable in a FunctionRegistry at the executing node. Args and Deps
// preserve declaration order; dependency values are presented to Work (or to
// the registered function) in that same order.
type Task struct {
	ID           ObjectId
	FunctionName string
	Args         [][]byte
	Deps         []ObjectId
	Work         Work
}

// Runnable reports whether the task can be dispatched locally: either it
// carries a closure, or a function name a registry can later resolve.
func (t Task) Runnable() bool {
	return t.Work != nil || t.FunctionName != ""
}

// Ref returns the ObjectRef naming this task's eventual output.
func (t Task) Ref() ObjectRef {
	return ObjectRef{ID: t.ID}
}

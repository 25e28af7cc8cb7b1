package orion

import "errors"

// Namespace prefixes every sentinel error below, matching the teacher
// library's convention of namespacing errors by package.
const Namespace = "orion"

var (
	// ErrUnknownFunction is returned when a task's FunctionName isn't
	// registered in the FunctionRegistry the executing node holds.
	ErrUnknownFunction = errors.New(Namespace + ": unknown function")

	// ErrUnknownNode is returned by an in-process NodeClient when a node_id
	// isn't present in its dispatch table.
	ErrUnknownNode = errors.New(Namespace + ": unknown node")

	// ErrNoNodeAvailable names the case where no alive node exists.
	// NodeRegistry.PickNode reports that case by returning false rather than
	// this error, and ClusterScheduler simply leaves the task pending.
	ErrNoNodeAvailable = errors.New(Namespace + ": no node available")

	// ErrBindFailure is returned when the head or node binary cannot bind
	// its listening port.
	ErrBindFailure = errors.New(Namespace + ": bind failure")

	// ErrDispatchFailure is returned when a remote node refuses a task or
	// the transport errors while dispatching it.
	ErrDispatchFailure = errors.New(Namespace + ": dispatch failure")

	// ErrTaskPanicked marks a task whose Work closure panicked. The object
	// is never published; per spec this is a known deficiency, not
	// resolved here (see design notes on the failed-object sentinel).
	ErrTaskPanicked = errors.New(Namespace + ": task execution panicked")

	// ErrInvalidTask is returned by a worker when a task carries no Work
	// closure, whether or not it names a function.
	ErrInvalidTask = errors.New(Namespace + ": task has no Work closure")
)

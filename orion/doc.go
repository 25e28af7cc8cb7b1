// Package orion defines the shared data model of the Orion task-execution
// runtime: the opaque Value held by the object store, the Task record
// submitted by callers, and the sentinel errors and correlation wrapper
// used across the local runtime and the cluster layer.
//
// Everything else — the store, the worker, the two schedulers, the function
// registry, the node registry, the transport, and the head/node services —
// lives in its own package and depends on the types declared here.
package orion

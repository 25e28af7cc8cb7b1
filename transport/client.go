package transport

import (
	"sync"

	"github.com/SamarthMahendra/Orion/orion"
)

// NodeClient is the abstract capability "submit task to node X": a
// fire-and-forget execution request that always returns an ObjectRef for
// the task's eventual output, regardless of whether the node actually
// accepted it (spec.md §4.8).
type NodeClient interface {
	SubmitTask(nodeID string, task orion.Task) (orion.ObjectRef, error)
}

// LocalSubmitter is the subset of *runtime.Runtime (or anything wrapping
// it, e.g. *node.NodeRuntime) InProcess dispatches to. Declared here rather
// than imported, to avoid transport depending on runtime/node.
type LocalSubmitter interface {
	Submit(task orion.Task) orion.ObjectRef
}

// InProcess dispatches by calling runtime.Submit directly against a table
// of node_id -> LocalSubmitter, for single-process tests and examples that
// want cluster semantics without separate processes (spec.md §4.8,
// scenario S3).
type InProcess struct {
	mu    sync.RWMutex
	nodes map[string]LocalSubmitter
}

// NewInProcess constructs an empty InProcess client.
func NewInProcess() *InProcess {
	return &InProcess{nodes: make(map[string]LocalSubmitter)}
}

// Register binds nodeID to a LocalSubmitter. Call this once per node
// before any task is dispatched to it.
func (c *InProcess) Register(nodeID string, submitter LocalSubmitter) {
	c.mu.Lock()
	c.nodes[nodeID] = submitter
	c.mu.Unlock()
}

// SubmitTask forwards task to the runtime registered for nodeID, failing
// with orion.ErrUnknownNode if absent.
func (c *InProcess) SubmitTask(nodeID string, task orion.Task) (orion.ObjectRef, error) {
	c.mu.RLock()
	rt, ok := c.nodes[nodeID]
	c.mu.RUnlock()
	if !ok {
		return task.Ref(), orion.TagNode(orion.ErrUnknownNode, task.ID, nodeID)
	}
	return rt.Submit(task), nil
}

package orion

import (
	"errors"
	"fmt"
)

// TaggedError exposes correlation metadata for a failure: the task and,
// when relevant, the node it was executing on or being dispatched to.
// Ported from the teacher's taskTaggedError, generalized with an optional
// node id for the cluster layer.
type TaggedError interface {
	error
	Unwrap() error
	TaskID() (ObjectId, bool)
	NodeID() (string, bool)
}

type taggedError struct {
	err    error
	taskID ObjectId
	nodeID string
	hasTID bool
	hasNID bool
}

// Tag wraps err with a task id for correlation. Returns nil if err is nil.
func Tag(err error, taskID ObjectId) error {
	if err == nil {
		return nil
	}
	return &taggedError{err: err, taskID: taskID, hasTID: true}
}

// TagNode wraps err with both a task id and a node id, for failures that
// occur while dispatching or executing on a specific node.
func TagNode(err error, taskID ObjectId, nodeID string) error {
	if err == nil {
		return nil
	}
	return &taggedError{err: err, taskID: taskID, hasTID: true, nodeID: nodeID, hasNID: true}
}

func (e *taggedError) Error() string { return e.err.Error() }
func (e *taggedError) Unwrap() error { return e.err }

func (e *taggedError) TaskID() (ObjectId, bool) {
	if !e.hasTID {
		return "", false
	}
	return e.taskID, true
}

func (e *taggedError) NodeID() (string, bool) {
	if !e.hasNID {
		return "", false
	}
	return e.nodeID, true
}

func (e *taggedError) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			_, _ = fmt.Fprintf(s, "task(id=%v,node=%v): %+v", e.taskID, e.nodeID, e.err)
			return
		}
		fallthrough
	case 's':
		_, _ = fmt.Fprint(s, e.Error())
	case 'q':
		_, _ = fmt.Fprintf(s, "%q", e.Error())
	}
}

// ExtractTaskID returns the task ID from err if present anywhere in its chain.
func ExtractTaskID(err error) (ObjectId, bool) {
	var te TaggedError
	if errors.As(err, &te) {
		return te.TaskID()
	}
	return "", false
}

// ExtractNodeID returns the node ID from err if present anywhere in its chain.
func ExtractNodeID(err error) (string, bool) {
	var te TaggedError
	if errors.As(err, &te) {
		return te.NodeID()
	}
	return "", false
}

// Package transport implements Orion's NodeClient abstraction — "submit
// task to node X" — and its two conforming implementations: in-process
// (direct Go calls) and HTTP (JSON over net/http, grounded on
// fentz26-Neona's controlplane/server.go net/http+encoding/json service
// pattern, the only RPC-shaped idiom present anywhere in the retrieval
// pack; see DESIGN.md for why no third-party transport library is wired
// here instead).
package transport

import "github.com/SamarthMahendra/Orion/orion"

// TaskRequest is the wire form of a Task (spec.md §6). Args are carried as
// opaque byte blobs and round-trip byte-for-byte through JSON's base64
// encoding of []byte fields.
type TaskRequest struct {
	TaskID       string   `json:"task_id"`
	FunctionName string   `json:"function_name"`
	DepIDs       []string `json:"dep_ids"`
	Args         [][]byte `json:"args"`
}

// TaskReply answers SubmitTask/ExecuteTask.
type TaskReply struct {
	Accepted bool   `json:"accepted"`
	NodeID   string `json:"node_id"`
}

// RegisterNodeRequest registers a node with the head.
type RegisterNodeRequest struct {
	NodeID  string `json:"node_id"`
	Address string `json:"address"`
}

// RegisterNodeReply answers RegisterNode.
type RegisterNodeReply struct {
	Success bool `json:"success"`
}

// HeartbeatRequest refreshes a node's liveness without touching its
// registered Address or capacity (unlike re-sending RegisterNodeRequest).
type HeartbeatRequest struct {
	NodeID string `json:"node_id"`
}

// HeartbeatReply answers Heartbeat.
type HeartbeatReply struct {
	Success bool `json:"success"`
}

// ObjectReport notifies the head that node_id published object_id.
type ObjectReport struct {
	ObjectID string `json:"object_id"`
	NodeID   string `json:"node_id"`
}

// ObjectLocationReply answers GetObjectLocation.
type ObjectLocationReply struct {
	NodeID  string `json:"node_id"`
	Address string `json:"address"`
}

// ToWire converts a Task to its wire representation.
func ToWire(t orion.Task) TaskRequest {
	deps := make([]string, len(t.Deps))
	for i, d := range t.Deps {
		deps[i] = string(d)
	}
	return TaskRequest{
		TaskID:       string(t.ID),
		FunctionName: t.FunctionName,
		DepIDs:       deps,
		Args:         t.Args,
	}
}

// FromWire converts a TaskRequest back into a Task with no local Work
// closure; the executing node attaches one via FunctionRegistry.Invoke.
func FromWire(r TaskRequest) orion.Task {
	deps := make([]orion.ObjectId, len(r.DepIDs))
	for i, d := range r.DepIDs {
		deps[i] = orion.ObjectId(d)
	}
	return orion.Task{
		ID:           orion.ObjectId(r.TaskID),
		FunctionName: r.FunctionName,
		Args:         r.Args,
		Deps:         deps,
	}
}

// Package node implements the per-machine node service: the HTTP surface a
// head dispatches tasks to, and NodeRuntime, which composes a local
// runtime.Runtime with that surface plus head registration and heartbeat
// (spec.md §4.10).
package node

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/SamarthMahendra/Orion/functions"
	"github.com/SamarthMahendra/Orion/orion"
	"github.com/SamarthMahendra/Orion/runtime"
	"github.com/SamarthMahendra/Orion/transport"
)

// Service is a node's HTTP surface: it decodes an incoming TaskRequest into
// a local Task whose Work closure resolves FunctionName against fns and
// submits it to rt.
type Service struct {
	rt  *runtime.Runtime
	fns *functions.Registry
}

// NewService constructs a node Service executing tasks on rt via fns.
func NewService(rt *runtime.Runtime, fns *functions.Registry) *Service {
	return &Service{rt: rt, fns: fns}
}

// Mux builds the node's route table.
func (s *Service) Mux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/tasks", s.handleExecuteTask)
	mux.HandleFunc("/objects/", s.handleGetObject)
	return mux
}

func (s *Service) handleExecuteTask(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req transport.TaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	task := transport.FromWire(req)
	fns := s.fns
	fnName := task.FunctionName
	literalArgs := task.Args
	task.Work = func(_ context.Context, deps []orion.Value) (orion.Value, error) {
		// effective_args is literal Args when present, else the resolved
		// Deps values (spec.md §4.9): a task carrying both is legal, and
		// literal Args take precedence.
		if len(literalArgs) > 0 {
			args := make([]orion.Value, len(literalArgs))
			for i, b := range literalArgs {
				args[i] = b
			}
			return fns.Invoke(fnName, args)
		}
		return fns.Invoke(fnName, deps)
	}

	ref := s.rt.Submit(task)
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(transport.TaskReply{Accepted: true, NodeID: string(ref.ID)})
}

// handleGetObject is reserved: direct cross-node object fetch is not
// implemented (spec.md §9 open question — resolved as out of scope for this
// rendition; objects are only ever read by the node that produced them).
func (s *Service) handleGetObject(w http.ResponseWriter, _ *http.Request) {
	http.Error(w, "not implemented", http.StatusNotImplemented)
}

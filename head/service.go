// Package head implements the head service: the central coordinator that
// receives node registrations, task submissions, object-creation reports,
// and location queries (spec.md §4.9, §6).
package head

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"strings"

	"github.com/SamarthMahendra/Orion/clusterscheduler"
	"github.com/SamarthMahendra/Orion/orion"
	"github.com/SamarthMahendra/Orion/registry"
	"github.com/SamarthMahendra/Orion/transport"
	"oss.nandlabs.io/golly/l3"
)

// Service is the head's HTTP surface, composing a NodeRegistry and a
// ClusterScheduler over a transport.NodeClient.
type Service struct {
	nodes  *registry.NodeRegistry
	sched  *clusterscheduler.Scheduler
	log    l3.Logger
	server *http.Server
}

// New constructs a head Service over nodes, dispatching cluster tasks
// through client. Callers construct nodes first (registry.New()) so a
// transport.HTTP client can resolve addresses via nodes.Address before the
// Service itself exists — see cmd/head for the wiring order.
func New(nodes *registry.NodeRegistry, client clusterscheduler.NodeClient) *Service {
	return &Service{
		nodes: nodes,
		sched: clusterscheduler.New(nodes, client),
		log:   l3.Get(),
	}
}

// Nodes exposes the registry, e.g. so a transport.HTTP can resolve
// addresses via nodes.Address.
func (s *Service) Nodes() *registry.NodeRegistry { return s.nodes }

// Mux builds the head's route table.
func (s *Service) Mux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/nodes", s.handleRegisterNode)
	mux.HandleFunc("/nodes/heartbeat", s.handleHeartbeat)
	mux.HandleFunc("/tasks", s.handleSubmitTask)
	mux.HandleFunc("/objects", s.handleReportObjectCreated)
	mux.HandleFunc("/objects/", s.handleGetObjectLocation)
	return mux
}

// ListenAndServe binds addr and serves until Shutdown is called. Returns an
// error wrapping orion.ErrBindFailure if the listener can't be created; the
// underlying net error is logged, not wrapped.
func (s *Service) ListenAndServe(addr string) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		s.log.ErrorF("head: failed to bind %s: %v", addr, err)
		return orion.Tag(orion.ErrBindFailure, "")
	}
	s.server = &http.Server{Handler: s.Mux()}
	s.log.InfoF("head: listening on %s", addr)
	return s.server.Serve(lis)
}

// Shutdown gracefully stops the HTTP server.
func (s *Service) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *Service) handleRegisterNode(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req transport.RegisterNodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	s.nodes.RegisterNode(registry.NodeInfo{NodeID: req.NodeID, Address: req.Address})
	s.log.InfoF("head: registered node %s at %s", req.NodeID, req.Address)
	writeJSON(w, http.StatusOK, transport.RegisterNodeReply{Success: true})
}

func (s *Service) handleHeartbeat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req transport.HeartbeatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	s.nodes.Heartbeat(req.NodeID)
	writeJSON(w, http.StatusOK, transport.HeartbeatReply{Success: true})
}

func (s *Service) handleSubmitTask(w http.ResponseWriter, r *http.Request) {
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
	ref := s.sched.Submit(task)
	nodeID, _ := s.sched.ObjectLocation(ref.ID)
	// Accepted as soon as the cluster scheduler admits the task (Open
	// Question resolved: see SPEC_FULL.md §9).
	writeJSON(w, http.StatusOK, transport.TaskReply{Accepted: true, NodeID: nodeID})
}

func (s *Service) handleReportObjectCreated(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req transport.ObjectReport
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	s.sched.OnObjectCreated(orion.ObjectId(req.ObjectID), req.NodeID)
	s.sched.Schedule() // a freshly-located object may unblock pending deps.
	w.WriteHeader(http.StatusOK)
}

func (s *Service) handleGetObjectLocation(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/objects/")
	nodeID, ok := s.sched.ObjectLocation(orion.ObjectId(id))
	if !ok {
		http.NotFound(w, r)
		return
	}
	info, _ := s.nodes.Lookup(nodeID)
	writeJSON(w, http.StatusOK, transport.ObjectLocationReply{NodeID: nodeID, Address: info.Address})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

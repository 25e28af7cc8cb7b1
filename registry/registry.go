// Package registry implements the head's NodeRegistry: a liveness-tracked
// mapping of node id to address and capacity, with deterministic
// round-robin selection over the currently-alive subset.
package registry

import (
	"sort"
	"sync"

	"github.com/SamarthMahendra/Orion/roundrobin"
)

// NodeInfo describes one registered node.
type NodeInfo struct {
	NodeID           string
	Address          string
	AvailableWorkers int
	Alive            bool
}

// NodeRegistry is a thread-safe mapping of node_id to NodeInfo.
type NodeRegistry struct {
	mu     sync.Mutex
	nodes  map[string]NodeInfo
	cursor roundrobin.Cursor
}

// New constructs an empty NodeRegistry.
func New() *NodeRegistry {
	return &NodeRegistry{nodes: make(map[string]NodeInfo)}
}

// RegisterNode inserts or overwrites info, marking the node alive.
func (r *NodeRegistry) RegisterNode(info NodeInfo) {
	info.Alive = true
	r.mu.Lock()
	r.nodes[info.NodeID] = info
	r.mu.Unlock()
}

// RemoveNode deletes id from the registry.
func (r *NodeRegistry) RemoveNode(id string) {
	r.mu.Lock()
	delete(r.nodes, id)
	r.mu.Unlock()
}

// Heartbeat marks id alive if present; it is a no-op otherwise.
func (r *NodeRegistry) Heartbeat(id string) {
	r.mu.Lock()
	if n, ok := r.nodes[id]; ok {
		n.Alive = true
		r.nodes[id] = n
	}
	r.mu.Unlock()
}

// MarkDead marks id as not alive without removing it, so PickNode will
// skip it while heartbeat or explicit removal has not yet happened.
func (r *NodeRegistry) MarkDead(id string) {
	r.mu.Lock()
	if n, ok := r.nodes[id]; ok {
		n.Alive = false
		r.nodes[id] = n
	}
	r.mu.Unlock()
}

// Lookup returns the NodeInfo for id regardless of liveness, so a transport
// can resolve an address for a node_id already chosen by PickNode.
func (r *NodeRegistry) Lookup(id string) (NodeInfo, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.nodes[id]
	return n, ok
}

// Address resolves id to its dial address, the narrow function
// transport.NewHTTP needs.
func (r *NodeRegistry) Address(id string) (string, bool) {
	n, ok := r.Lookup(id)
	if !ok {
		return "", false
	}
	return n.Address, true
}

// Nodes returns a snapshot of currently-alive nodes.
func (r *NodeRegistry) Nodes() []NodeInfo {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.aliveSnapshotLocked()
}

func (r *NodeRegistry) aliveSnapshotLocked() []NodeInfo {
	alive := make([]NodeInfo, 0, len(r.nodes))
	for _, n := range r.nodes {
		if n.Alive {
			alive = append(alive, n)
		}
	}
	sort.Slice(alive, func(i, j int) bool { return alive[i].NodeID < alive[j].NodeID })
	return alive
}

// PickNode returns the next node in round-robin order over the
// lexicographically-sorted alive snapshot, advancing the cursor once per
// call even if the alive set changes between calls. Returns false iff no
// alive node exists.
func (r *NodeRegistry) PickNode() (NodeInfo, bool) {
	r.mu.Lock()
	alive := r.aliveSnapshotLocked()
	r.mu.Unlock()

	if len(alive) == 0 {
		return NodeInfo{}, false
	}
	idx := r.cursor.Next(len(alive))
	return alive[idx], true
}

package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/SamarthMahendra/Orion/orion"
	"oss.nandlabs.io/golly/l3"
)

// addressLookup is the narrow function shape HTTP actually needs; callers
// pass (*registry.NodeRegistry).Address (see NewHTTP), keeping transport
// decoupled from registry's struct layout.
type addressLookup func(nodeID string) (string, bool)

// HTTP dispatches tasks to nodes over JSON-over-net/http through one shared
// *http.Client, recording per node_id whether a delivery has succeeded yet
// (see Reached). Marshals Task to the wire form {task_id, function_name, dep_ids, args}
// and POSTs it to the node's /tasks endpoint. Never propagates transport
// errors to the caller: failures are logged and an ObjectRef is still
// returned, per spec.md §4.8.
type HTTP struct {
	resolve addressLookup
	client  *http.Client
	log     l3.Logger

	mu      sync.Mutex
	dialed  map[string]bool // node_ids this client has successfully reached at least once
}

// NewHTTP constructs an HTTP client that resolves node addresses via
// resolve (typically (*registry.NodeRegistry).Address).
func NewHTTP(resolve func(nodeID string) (string, bool)) *HTTP {
	return &HTTP{
		resolve: resolve,
		client:  &http.Client{Timeout: 10 * time.Second},
		log:     l3.Get(),
		dialed:  make(map[string]bool),
	}
}

// SubmitTask POSTs task to the node's /tasks endpoint as a TaskRequest.
func (c *HTTP) SubmitTask(nodeID string, task orion.Task) (orion.ObjectRef, error) {
	ref := task.Ref()

	addr, ok := c.resolve(nodeID)
	if !ok {
		return ref, orion.TagNode(orion.ErrUnknownNode, task.ID, nodeID)
	}

	body, err := json.Marshal(ToWire(task))
	if err != nil {
		return ref, orion.TagNode(fmt.Errorf("%w: %v", orion.ErrDispatchFailure, err), task.ID, nodeID)
	}

	url := fmt.Sprintf("http://%s/tasks", addr)
	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return ref, orion.TagNode(fmt.Errorf("%w: %v", orion.ErrDispatchFailure, err), task.ID, nodeID)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.log.WarnF("transport: dispatching task %q to node %s failed: %v", string(task.ID), nodeID, err)
		return ref, nil // fire-and-forget: caller still gets an ObjectRef.
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.WarnF("transport: node %s rejected task %q: status %d", nodeID, string(task.ID), resp.StatusCode)
		return ref, nil
	}

	c.mu.Lock()
	c.dialed[nodeID] = true
	c.mu.Unlock()

	var reply TaskReply
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		c.log.WarnF("transport: decoding reply from node %s for task %q: %v", nodeID, string(task.ID), err)
	}
	return ref, nil
}

// Reached reports whether a task has ever been successfully delivered to
// nodeID, i.e. whether this client's lazy per-node connection has been
// established at least once.
func (c *HTTP) Reached(nodeID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dialed[nodeID]
}

package node

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/SamarthMahendra/Orion/functions"
	"github.com/SamarthMahendra/Orion/orion"
	"github.com/SamarthMahendra/Orion/runtime"
	"github.com/SamarthMahendra/Orion/transport"
	"oss.nandlabs.io/golly/l3"
)

// HeartbeatInterval is how often NodeRuntime re-announces liveness to the
// head, grounded on fentz26-Neona's ticker-driven scheduler loop.
const HeartbeatInterval = 5 * time.Second

// NodeRuntime owns one machine's lifecycle: a local runtime.Runtime and
// function registry, an HTTP surface nodes expose to the head, and a
// background registration/heartbeat loop against the head's address.
type NodeRuntime struct {
	id       string
	selfAddr string
	headAddr string

	rt      *runtime.Runtime
	fns     *functions.Registry
	svc     *Service
	client  *http.Client
	log     l3.Logger
	server  *http.Server
	running int32
}

// New constructs a NodeRuntime identified by id, reachable at selfAddr, and
// registering with a head at headAddr. rt and fns are supplied by the
// caller so cmd/node can wire metrics/worker-count options through
// runtime.Config before handing the Runtime over.
func New(id, selfAddr, headAddr string, rt *runtime.Runtime, fns *functions.Registry) *NodeRuntime {
	return &NodeRuntime{
		id:       id,
		selfAddr: selfAddr,
		headAddr: headAddr,
		rt:       rt,
		fns:      fns,
		svc:      NewService(rt, fns),
		client:   &http.Client{Timeout: 10 * time.Second},
		log:      l3.Get(),
	}
}

// RegisterWithHead POSTs a RegisterNodeRequest to the head. Called once at
// startup before heartbeating begins.
func (n *NodeRuntime) RegisterWithHead(ctx context.Context) error {
	body, err := json.Marshal(transport.RegisterNodeRequest{NodeID: n.id, Address: n.selfAddr})
	if err != nil {
		return err
	}
	url := fmt.Sprintf("http://%s/nodes", n.headAddr)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := n.client.Do(req)
	if err != nil {
		return orion.TagNode(fmt.Errorf("%w: %v", orion.ErrDispatchFailure, err), "", n.id)
	}
	defer resp.Body.Close()
	n.log.InfoF("node %s: registered with head at %s", n.id, n.headAddr)
	return nil
}

// heartbeatOnce POSTs a HeartbeatRequest to the head, refreshing this node's
// liveness without re-announcing Address (that only happens once, in
// RegisterWithHead, at startup).
func (n *NodeRuntime) heartbeatOnce(ctx context.Context) {
	body, err := json.Marshal(transport.HeartbeatRequest{NodeID: n.id})
	if err != nil {
		n.log.WarnF("node %s: heartbeat encode failed: %v", n.id, err)
		return
	}
	url := fmt.Sprintf("http://%s/nodes/heartbeat", n.headAddr)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		n.log.WarnF("node %s: heartbeat request build failed: %v", n.id, err)
		return
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := n.client.Do(req)
	if err != nil {
		n.log.WarnF("node %s: heartbeat to head failed: %v", n.id, err)
		return
	}
	defer resp.Body.Close()
}

// Run starts the HTTP server and the heartbeat loop, blocking until ctx is
// canceled.
func (n *NodeRuntime) Run(ctx context.Context) error {
	atomic.StoreInt32(&n.running, 1)
	defer atomic.StoreInt32(&n.running, 0)

	lis, err := net.Listen("tcp", n.selfAddr)
	if err != nil {
		n.log.ErrorF("node %s: failed to bind %s: %v", n.id, n.selfAddr, err)
		return orion.Tag(orion.ErrBindFailure, "")
	}
	n.server = &http.Server{Handler: n.svc.Mux()}

	serveErr := make(chan error, 1)
	go func() { serveErr <- n.server.Serve(lis) }()

	if err := n.RegisterWithHead(ctx); err != nil {
		n.log.WarnF("node %s: initial registration failed (heartbeats do not re-register): %v", n.id, err)
	}

	ticker := time.NewTicker(HeartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = n.server.Shutdown(shutdownCtx)
			n.rt.Shutdown()
			return nil
		case err := <-serveErr:
			return err
		case <-ticker.C:
			n.heartbeatOnce(ctx)
		}
	}
}

// Running reports whether the node's serve loop is currently active,
// mirroring spec.md §9's g_running convention for CLI shutdown signaling.
func (n *NodeRuntime) Running() bool { return atomic.LoadInt32(&n.running) == 1 }

package node_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/SamarthMahendra/Orion/functions"
	"github.com/SamarthMahendra/Orion/node"
	"github.com/SamarthMahendra/Orion/runtime"
	"github.com/SamarthMahendra/Orion/transport"
)

func TestExecuteTask_InvokesRegisteredFunctionFromLiteralArgs(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rt := runtime.NewOptions(ctx, runtime.WithWorkerCount(2))
	defer rt.Shutdown()

	fns := functions.Builtins()
	svc := node.NewService(rt, fns)
	srv := httptest.NewServer(svc.Mux())
	defer srv.Close()

	req := transport.TaskRequest{
		TaskID:       "sum",
		FunctionName: "add",
		Args:         [][]byte{functions.EncodeInt32(3), functions.EncodeInt32(7)},
	}
	data, err := json.Marshal(req)
	require.NoError(t, err)

	resp, err := http.Post(srv.URL+"/tasks", "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	waitCtx, waitCancel := context.WithTimeout(ctx, time.Second)
	defer waitCancel()
	v, err := rt.Get(waitCtx, transport.FromWire(req).Ref())
	require.NoError(t, err)
	require.Equal(t, int32(10), v)
}

// A task carrying both literal Args and Deps is legal (spec.md §4.9);
// literal Args must take precedence over the resolved Deps values.
func TestExecuteTask_LiteralArgsTakePrecedenceOverDeps(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rt := runtime.NewOptions(ctx, runtime.WithWorkerCount(2))
	defer rt.Shutdown()

	// Published upstream so Deps resolves to a single value; "add" requires
	// exactly two args, so falling back to Deps here would fail the task.
	rt.Store().Put("upstream", int32(999))

	fns := functions.Builtins()
	svc := node.NewService(rt, fns)
	srv := httptest.NewServer(svc.Mux())
	defer srv.Close()

	req := transport.TaskRequest{
		TaskID:       "sum-with-deps",
		FunctionName: "add",
		Args:         [][]byte{functions.EncodeInt32(3), functions.EncodeInt32(7)},
		DepIDs:       []string{"upstream"},
	}
	data, err := json.Marshal(req)
	require.NoError(t, err)

	resp, err := http.Post(srv.URL+"/tasks", "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	waitCtx, waitCancel := context.WithTimeout(ctx, time.Second)
	defer waitCancel()
	v, err := rt.Get(waitCtx, transport.FromWire(req).Ref())
	require.NoError(t, err)
	require.Equal(t, int32(10), v)
}

func TestGetObject_ReturnsNotImplemented(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rt := runtime.NewOptions(ctx)
	defer rt.Shutdown()

	svc := node.NewService(rt, functions.NewRegistry())
	srv := httptest.NewServer(svc.Mux())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/objects/whatever")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusNotImplemented, resp.StatusCode)
}

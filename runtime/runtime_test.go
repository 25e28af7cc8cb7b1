package runtime_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/SamarthMahendra/Orion/orion"
	"github.com/SamarthMahendra/Orion/runtime"
)

// recordingLogger implements l3.Logger, counting DebugF calls so
// TestRuntime_WithLoggerReceivesScheduleLogs can assert the logger passed
// to WithLogger is the one actually exercised by the scheduler, not the
// process-wide default.
type recordingLogger struct {
	mu     sync.Mutex
	debugs int
}

func (r *recordingLogger) Error(a ...interface{})            {}
func (r *recordingLogger) ErrorF(f string, a ...interface{}) {}
func (r *recordingLogger) Warn(a ...interface{})             {}
func (r *recordingLogger) WarnF(f string, a ...interface{})  {}
func (r *recordingLogger) Info(a ...interface{})             {}
func (r *recordingLogger) InfoF(f string, a ...interface{})  {}
func (r *recordingLogger) Debug(a ...interface{})            {}
func (r *recordingLogger) DebugF(f string, a ...interface{}) {
	r.mu.Lock()
	r.debugs++
	r.mu.Unlock()
}
func (r *recordingLogger) Trace(a ...interface{})            {}
func (r *recordingLogger) TraceF(f string, a ...interface{}) {}

func (r *recordingLogger) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.debugs
}

// S1 — local single task.
func TestRuntime_SingleTaskNoDeps(t *testing.T) {
	ctx := context.Background()
	rt := runtime.NewOptions(ctx, runtime.WithWorkerCount(2))
	defer rt.Shutdown()

	ref := rt.Submit(orion.Task{
		ID: "A",
		Work: func(ctx context.Context, deps []orion.Value) (orion.Value, error) {
			return 2, nil
		},
	})

	waitCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	require.NoError(t, rt.Wait(waitCtx, ref))

	v, err := rt.Get(waitCtx, ref)
	require.NoError(t, err)
	require.Equal(t, 2, v)
}

// S2 — local dependency chain.
func TestRuntime_DependencyChain(t *testing.T) {
	ctx := context.Background()
	rt := runtime.NewOptions(ctx, runtime.WithWorkerCount(2))
	defer rt.Shutdown()

	rt.Submit(orion.Task{
		ID: "A",
		Work: func(ctx context.Context, deps []orion.Value) (orion.Value, error) {
			return 10, nil
		},
	})
	refB := rt.Submit(orion.Task{
		ID:   "B",
		Deps: []orion.ObjectId{"A"},
		Work: func(ctx context.Context, deps []orion.Value) (orion.Value, error) {
			return deps[0].(int) + 32, nil
		},
	})

	getCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	v, err := rt.Get(getCtx, refB)
	require.NoError(t, err)
	require.Equal(t, 42, v)
}

func TestRuntime_ConcurrentIndependentTasks(t *testing.T) {
	ctx := context.Background()
	rt := runtime.NewOptions(ctx, runtime.WithWorkerCount(4))
	defer rt.Shutdown()

	started := make(chan struct{}, 2)
	release := make(chan struct{})

	rt.Submit(orion.Task{ID: "X", Work: func(ctx context.Context, deps []orion.Value) (orion.Value, error) {
		started <- struct{}{}
		<-release
		return 1, nil
	}})
	rt.Submit(orion.Task{ID: "Y", Work: func(ctx context.Context, deps []orion.Value) (orion.Value, error) {
		started <- struct{}{}
		<-release
		return 2, nil
	}})

	// Both tasks must be able to start concurrently (no shared deps), i.e.
	// the runtime does not globally serialize them.
	select {
	case <-started:
	case <-time.After(time.Second):
		t.Fatal("first task never started")
	}
	select {
	case <-started:
	case <-time.After(time.Second):
		t.Fatal("second task never started concurrently with the first")
	}
	close(release)
}

func TestRuntime_WithLoggerReceivesScheduleLogs(t *testing.T) {
	ctx := context.Background()
	log := &recordingLogger{}
	rt := runtime.NewOptions(ctx, runtime.WithWorkerCount(1), runtime.WithLogger(log))
	defer rt.Shutdown()

	ref := rt.Submit(orion.Task{
		ID: "A",
		Work: func(ctx context.Context, deps []orion.Value) (orion.Value, error) {
			return 1, nil
		},
	})

	waitCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	require.NoError(t, rt.Wait(waitCtx, ref))
	require.Greater(t, log.count(), 0)
}

func TestRuntime_ZeroWorkersBlocksForever(t *testing.T) {
	ctx := context.Background()
	rt := runtime.NewOptions(ctx, runtime.WithWorkerCount(0))
	defer rt.Shutdown()

	ref := rt.Submit(orion.Task{ID: "A", Work: func(ctx context.Context, deps []orion.Value) (orion.Value, error) {
		return 1, nil
	}})

	waitCtx, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
	defer cancel()
	err := rt.Wait(waitCtx, ref)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

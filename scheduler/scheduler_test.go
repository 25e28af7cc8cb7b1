package scheduler_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/SamarthMahendra/Orion/orion"
	"github.com/SamarthMahendra/Orion/scheduler"
	"github.com/SamarthMahendra/Orion/store"
	"github.com/SamarthMahendra/Orion/worker"
)

func newWorkers(t *testing.T, s *store.Store, n int) []*worker.Worker {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	workers := make([]*worker.Worker, n)
	for i := range workers {
		w := worker.New(string(rune('0'+i)), s, nil)
		w.Start(ctx)
		t.Cleanup(w.Stop)
		workers[i] = w
	}
	return workers
}

func TestSchedule_RunsTaskWithNoDeps(t *testing.T) {
	s := store.New(nil)
	workers := newWorkers(t, s, 2)
	sch := scheduler.New(s, workers)

	sch.Submit(orion.Task{
		ID: "A",
		Work: func(ctx context.Context, deps []orion.Value) (orion.Value, error) {
			return 2, nil
		},
	})
	sch.Schedule()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	v, err := s.GetBlocking(ctx, "A")
	require.NoError(t, err)
	require.Equal(t, 2, v)
}

func TestSchedule_GatesOnDependency(t *testing.T) {
	s := store.New(nil)
	workers := newWorkers(t, s, 2)
	sch := scheduler.New(s, workers)

	sch.Submit(orion.Task{
		ID:   "B",
		Deps: []orion.ObjectId{"A"},
		Work: func(ctx context.Context, deps []orion.Value) (orion.Value, error) {
			return deps[0].(int) + 32, nil
		},
	})
	sch.Schedule() // B isn't ready yet; stays pending.

	select {
	case <-time.After(30 * time.Millisecond):
	}
	_, ok := s.Get("B")
	require.False(t, ok, "B must not start before A is published")

	sch.Submit(orion.Task{
		ID: "A",
		Work: func(ctx context.Context, deps []orion.Value) (orion.Value, error) {
			return 10, nil
		},
	})
	sch.Schedule()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_, err := s.GetBlocking(ctx, "A")
	require.NoError(t, err)

	sch.Schedule() // now B is ready.
	v, err := s.GetBlocking(ctx, "B")
	require.NoError(t, err)
	require.Equal(t, 42, v)
}

func TestSchedule_DoesNotStarveLaterReadyTask(t *testing.T) {
	s := store.New(nil)
	workers := newWorkers(t, s, 1)
	sch := scheduler.New(s, workers)

	// "blocked" has an unsatisfied dep and is submitted first; "ready" has
	// none and must still get dispatched despite coming later.
	sch.Submit(orion.Task{ID: "blocked", Deps: []orion.ObjectId{"never"}, Work: func(ctx context.Context, deps []orion.Value) (orion.Value, error) {
		return nil, nil
	}})
	sch.Submit(orion.Task{ID: "ready", Work: func(ctx context.Context, deps []orion.Value) (orion.Value, error) {
		return "ok", nil
	}})
	sch.Schedule()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	v, err := s.GetBlocking(ctx, "ready")
	require.NoError(t, err)
	require.Equal(t, "ok", v)

	_, ok := s.Get("blocked")
	require.False(t, ok)
}

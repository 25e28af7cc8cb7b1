package metrics_test

import (
	"reflect"
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/SamarthMahendra/Orion/metrics"
)

func TestBasicProvider_Counter_ReusedAndAccumulates(t *testing.T) {
	p := metrics.NewBasicProvider()

	c1 := p.Counter(metrics.ObjectsPublished)
	c2 := p.Counter(metrics.ObjectsPublished)
	require.Equal(t, reflect.ValueOf(c1).Pointer(), reflect.ValueOf(c2).Pointer())

	bc, ok := c1.(*metrics.BasicCounter)
	require.True(t, ok)

	c1.Add(3)
	c2.Add(2)
	require.Equal(t, int64(5), bc.Snapshot())

	cOther := p.Counter(metrics.TasksExecuted)
	require.NotEqual(t, reflect.ValueOf(c1).Pointer(), reflect.ValueOf(cOther).Pointer())
}

func TestBasicProvider_UpDownCounter_ReusedAndMoves(t *testing.T) {
	p := metrics.NewBasicProvider()
	u1 := p.UpDownCounter("orion_worker_inflight_tasks")
	u2 := p.UpDownCounter("orion_worker_inflight_tasks")
	require.Equal(t, reflect.ValueOf(u1).Pointer(), reflect.ValueOf(u2).Pointer())

	bu, ok := u1.(*metrics.BasicUpDownCounter)
	require.True(t, ok)

	u1.Add(3)
	u2.Add(-1)
	u1.Add(10)
	require.Equal(t, int64(12), bu.Snapshot())
}

func TestBasicProvider_Histogram_RecordsStats(t *testing.T) {
	p := metrics.NewBasicProvider()
	h := p.Histogram(metrics.TaskExecutionSeconds)

	bh, ok := h.(*metrics.BasicHistogram)
	require.True(t, ok)

	h.Record(0.1)
	h.Record(0.3)
	h.Record(0.2)
	s := bh.Snapshot()
	require.Equal(t, int64(3), s.Count)
	require.InDelta(t, 0.1, s.Min, 1e-9)
	require.InDelta(t, 0.3, s.Max, 1e-9)
	require.InDelta(t, 0.6, s.Sum, 0.01)
	require.InDelta(t, 0.2, s.Mean, 0.01)
}

func TestBasicProvider_Concurrent_GetSameInstrument(t *testing.T) {
	p := metrics.NewBasicProvider()
	n := 50
	ptrs := make([]uintptr, n)
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(idx int) {
			defer wg.Done()
			c := p.Counter(metrics.ObjectsPublished)
			ptrs[idx] = reflect.ValueOf(c).Pointer()
		}(i)
	}
	wg.Wait()
	for i := 1; i < n; i++ {
		require.Equal(t, ptrs[0], ptrs[i])
	}
}

func TestBasicProvider_Concurrent_CounterAdd(t *testing.T) {
	p := metrics.NewBasicProvider()
	c := p.Counter(metrics.TasksExecuted)
	bc := c.(*metrics.BasicCounter)

	workers := runtime.NumCPU() * 2
	iters := 1000
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := 0; i < iters; i++ {
				c.Add(1)
			}
		}()
	}
	wg.Wait()
	require.Equal(t, int64(workers*iters), bc.Snapshot())
}

func TestBasicProvider_Concurrent_HistogramRecord(t *testing.T) {
	p := metrics.NewBasicProvider()
	h := p.Histogram(metrics.TaskExecutionSeconds)
	bh := h.(*metrics.BasicHistogram)

	workers := runtime.NumCPU() * 2
	iters := 500
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(base int) {
			defer wg.Done()
			for i := 0; i < iters; i++ {
				v := float64((base%10)+i%10) / 100.0
				h.Record(v)
			}
		}(w)
	}
	wg.Wait()
	s := bh.Snapshot()
	require.Equal(t, int64(workers*iters), s.Count)
	require.GreaterOrEqual(t, s.Min, 0.0)
	require.LessOrEqual(t, s.Max, 0.19)
}

package roundrobin

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCursor_RotatesThroughEveryIndex(t *testing.T) {
	var c Cursor
	seen := make(map[int]int)
	for i := 0; i < 9; i++ {
		seen[c.Next(3)]++
	}
	require.Equal(t, 3, len(seen))
	for _, count := range seen {
		require.Equal(t, 3, count)
	}
}

func TestCursor_AdvancesAcrossSizeChanges(t *testing.T) {
	var c Cursor
	require.Equal(t, 0, c.Next(2))
	require.Equal(t, 1, c.Next(2))
	// size shrinks; cursor still advances rather than resetting.
	require.Equal(t, 0, c.Next(1))
	require.Equal(t, 3, c.Next(4))
}

func TestCursor_ConcurrentCallsAreSerialized(t *testing.T) {
	var c Cursor
	var wg sync.WaitGroup
	results := make(chan int, 100)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- c.Next(10)
		}()
	}
	wg.Wait()
	close(results)
	count := 0
	for range results {
		count++
	}
	require.Equal(t, 100, count)
}

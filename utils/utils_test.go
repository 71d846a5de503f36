package utils

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetNumThreadsClampsToOne(t *testing.T) {
	defer SetNumThreads(1)

	SetNumThreads(0)
	require.Equal(t, 1, NumThreads())

	SetNumThreads(-5)
	require.Equal(t, 1, NumThreads())

	SetNumThreads(4)
	require.Equal(t, 4, NumThreads())
}

func TestMinMaxInt(t *testing.T) {
	require.Equal(t, 2, MinInt(2, 5))
	require.Equal(t, 5, MinInt(7, 5))
	require.Equal(t, 5, MaxInt(2, 5))
	require.Equal(t, 7, MaxInt(7, 5))
	require.Equal(t, 1.5, MinInt(1.5, 2.5))
}

func TestBitReverse64(t *testing.T) {
	// 3-bit reversal: 0b001 -> 0b100, 0b011 -> 0b110
	require.Equal(t, uint64(0b100), BitReverse64(0b001, 3))
	require.Equal(t, uint64(0b110), BitReverse64(0b011, 3))
	require.Equal(t, uint64(0), BitReverse64(0, 3))
}

func TestRunGoRoutinesCoversAllTasks(t *testing.T) {
	defer SetNumThreads(1)
	SetNumThreads(4)

	const n = 37
	var covered int64
	seen := make([]int32, n)

	RunGoRoutines(n, func(start, end int) {
		for i := start; i < end; i++ {
			atomic.AddInt32(&seen[i], 1)
			atomic.AddInt64(&covered, 1)
		}
	})

	require.Equal(t, int64(n), covered)
	for i, c := range seen {
		require.Equal(t, int32(1), c, "index %d covered %d times", i, c)
	}
}

func TestRunGoRoutinesSingleThread(t *testing.T) {
	defer SetNumThreads(1)
	SetNumThreads(1)

	var total int
	RunGoRoutines(10, func(start, end int) {
		total += end - start
	})
	require.Equal(t, 10, total)
}

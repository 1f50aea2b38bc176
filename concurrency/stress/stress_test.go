package stress

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/embeddedgo/tinyheap/concurrency/critical"
	"github.com/embeddedgo/tinyheap/unsafex/malloc"
)

func TestRunUnderMutexLeavesNoLiveBlocks(t *testing.T) {
	var sec critical.Mutex
	h, err := malloc.NewHeap(malloc.Config{
		ArenaSizeBytes: 64 * 1024,
		CellSize:       16,
		CriticalEnter:  sec.Enter,
		CriticalExit:   sec.Exit,
	})
	require.NoError(t, err)

	result := Run(Config{
		Heap:       h,
		Workers:    8,
		OpsPerWork: 500,
		MaxSize:    256,
		Seed:       42,
	})

	assert.Greater(t, result.Allocations, int64(0))

	h.Info(nil, false)
	stats := h.Stats()
	assert.Equal(t, 0, stats.UsedBlocks, "every worker frees its own live allocations before returning")
}

func TestRunUnderSpinLeavesNoLiveBlocks(t *testing.T) {
	var sec critical.Spin
	h, err := malloc.NewHeap(malloc.Config{
		ArenaSizeBytes: 64 * 1024,
		CellSize:       16,
		CriticalEnter:  sec.Enter,
		CriticalExit:   sec.Exit,
	})
	require.NoError(t, err)

	result := Run(Config{
		Heap:       h,
		Workers:    8,
		OpsPerWork: 500,
		MaxSize:    256,
		Seed:       7,
	})

	assert.Greater(t, result.Allocations, int64(0))

	h.Info(nil, false)
	stats := h.Stats()
	assert.Equal(t, 0, stats.UsedBlocks)
}

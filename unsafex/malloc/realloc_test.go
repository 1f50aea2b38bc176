package malloc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReallocateNilActsAsAllocate(t *testing.T) {
	h := newTestHeap(t, 256)
	b := h.Reallocate(nil, 4)
	require.NotNil(t, b)
	assert.Equal(t, 4, len(b))
}

func TestReallocateZeroActsAsFree(t *testing.T) {
	h := newTestHeap(t, 256)
	b := h.Allocate(4)
	out := h.Reallocate(b, 0)
	assert.Nil(t, out)

	h.Info(nil, false)
	assert.Equal(t, 0, h.Stats().UsedBlocks)
}

func TestReallocateSameBlockCountIsNoop(t *testing.T) {
	h := newTestHeap(t, 256)
	b := h.Allocate(4)
	before := h.indexOf(b)
	out := h.Reallocate(b, 3) // still rounds to 1 cell
	assert.Equal(t, before, h.indexOf(out))
}

func TestReallocateShrinkSplitsOffTail(t *testing.T) {
	h := newTestHeap(t, 16*8)
	b := h.Allocate(100) // several cells

	before := h.indexOf(b)
	out := h.Reallocate(b, 1)
	require.NotNil(t, out)
	assert.Equal(t, before, h.indexOf(out))

	h.Info(nil, false)
	stats := h.Stats()
	assert.Equal(t, 1, stats.UsedBlocks)
	assert.GreaterOrEqual(t, stats.FreeBlocks, 1)
}

func TestReallocateGrowMovesDownIntoFreedPredecessor(t *testing.T) {
	h := newTestHeap(t, 32*8)
	p := h.Allocate(28) // 4 cells, big enough to absorb q's growth
	q := h.Allocate(4)  // 1 cell
	pIdx := h.indexOf(p)

	h.Free(p)
	out := h.Reallocate(q, 20) // needs 3 cells: fits in p's freed 4
	require.NotNil(t, out)

	// The grown block should have moved down into p's old position.
	assert.Equal(t, pIdx, h.indexOf(out))
}

func TestReallocateGrowFallsBackToFreshAllocation(t *testing.T) {
	h := newTestHeap(t, 32*8)
	a := h.Allocate(4)
	_ = h.Allocate(4) // neighbor keeps a from growing in place
	copy(a, []byte("abcd"))

	out := h.Reallocate(a, 100)
	require.NotNil(t, out)
	assert.Equal(t, []byte("abcd"), out[:4])
}

func TestReallocateGrowFailurePreservesOriginal(t *testing.T) {
	h := newTestHeap(t, 4*8) // tiny arena
	a := h.Allocate(4)
	require.NotNil(t, a)

	out := h.Reallocate(a, 10000)
	assert.Equal(t, a, out)
}

package malloc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceRecordsBoundedHistory(t *testing.T) {
	h, err := NewHeap(Config{ArenaSizeBytes: 256, CellSize: 8, TraceDepth: 3})
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		h.Allocate(4)
	}

	entries := h.trace.entries()
	assert.Len(t, entries, 3)
	for _, e := range entries {
		assert.Equal(t, traceAllocate, e.kind)
	}
}

func TestTraceDisabledByDefault(t *testing.T) {
	h := newTestHeap(t, 256)
	h.Allocate(4)
	assert.Nil(t, h.trace)
}

func TestTraceRecordsOperationKinds(t *testing.T) {
	h, err := NewHeap(Config{ArenaSizeBytes: 256, CellSize: 8, TraceDepth: 8})
	require.NoError(t, err)

	b := h.Allocate(4)
	b = h.Reallocate(b, 4)
	h.Free(b)
	h.Info(nil, false)

	entries := h.trace.entries()
	require.Len(t, entries, 4)
	assert.Equal(t, traceAllocate, entries[0].kind)
	assert.Equal(t, traceReallocate, entries[1].kind)
	assert.Equal(t, traceFree, entries[2].kind)
	assert.Equal(t, traceInfo, entries[3].kind)
}

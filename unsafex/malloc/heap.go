// Package malloc implements a fixed-region, block-indexed heap allocator
// suitable for memory-constrained environments where a full general-purpose
// allocator is too heavy. A single contiguous arena is carved into
// fixed-size cells; both the in-heap neighbor list and the free list are
// threaded through 15-bit cell indices stored directly in the arena bytes,
// rather than through pointers, so a free block's bookkeeping costs nothing
// beyond the cells it already occupies.
package malloc

import (
	"fmt"
	"unsafe"
)

const (
	// freeFlag marks a block as free; it lives in the high bit of a
	// block's next-block field.
	freeFlag uint16 = 0x8000

	// indexMask strips the free flag off a next-block field, leaving the
	// plain 15-bit cell index.
	indexMask uint16 = 0x7fff

	// maxCells is the largest arena the 15-bit index space can address.
	maxCells = int(indexMask) + 1

	// minCellSize is the smallest cell width that can hold both the
	// two-field header and the two-field free-list body.
	minCellSize = 8
)

// FitPolicy selects how Allocate chooses among free blocks that are large
// enough to satisfy a request.
type FitPolicy uint8

const (
	// FitBestFit scans the whole free list and takes the smallest block
	// that still fits. It is the zero value, so a zero Config defaults to
	// best-fit without any extra wiring.
	FitBestFit FitPolicy = iota

	// FitFirstFit takes the first block encountered that fits, trading
	// fragmentation quality for a shorter average scan.
	FitFirstFit
)

// CriticalEnterFunc and CriticalExitFunc bracket every public operation.
// They stand in for whatever mutual-exclusion primitive the host uses,
// disabling interrupts on a microcontroller, a spinlock, or a mutex on a
// larger system. The allocator never calls these recursively: a single
// Enter/Exit pair wraps one call to Allocate, Free, Reallocate, or Info,
// start to finish.
type CriticalEnterFunc func()
type CriticalExitFunc func()

// DebugLogFunc receives allocator trace lines when DebugLogLevel admits
// them. It is the Go analogue of the original's compile-time DBG_LOG_*
// macros, just realized as a runtime hook instead.
type DebugLogFunc func(format string, args ...any)

// Config describes the fixed, build-time shape of a Heap. All fields are
// consumed once, in NewHeap; nothing here can change afterward.
type Config struct {
	// ArenaSizeBytes is the total size of the backing arena. It is rounded
	// down to a whole number of cells.
	ArenaSizeBytes int

	// CellSize is the width of one cell in bytes. It must be a multiple
	// of 4 and at least minCellSize. Zero defaults to 8.
	CellSize int

	// Fit chooses the free-block search strategy. The zero value is
	// FitBestFit.
	Fit FitPolicy

	// CriticalEnter and CriticalExit bracket every public call. Either may
	// be left nil, in which case it is a no-op, appropriate only when the
	// host guarantees single-threaded access on its own.
	CriticalEnter CriticalEnterFunc
	CriticalExit  CriticalExitFunc

	// DebugLog receives trace output when non-nil. DebugLogLevel gates
	// which severity of message is emitted; 0 disables the leveled output.
	// Info's forceLog summary line is emitted through DebugLog at any level.
	DebugLog      DebugLogFunc
	DebugLogLevel int

	// TraceDepth sets the capacity of the bounded diagnostics ring buffer.
	// 0 disables tracing.
	TraceDepth int

	// Redirect, when true, makes this Heap the package-level default via
	// SetDefault as the final step of NewHeap, the Go analogue of
	// redefining the standard allocation names at link time.
	Redirect bool
}

// Heap is a single fixed-region allocator instance. The zero Heap is not
// usable; construct one with NewHeap.
type Heap struct {
	arena     []byte
	arenaBase unsafe.Pointer
	cellSize  int
	numCells  int

	fit FitPolicy

	criticalEnter CriticalEnterFunc
	criticalExit  CriticalExitFunc

	debugLog      DebugLogFunc
	debugLogLevel int

	trace *traceLog

	stats      Stats
	statsValid bool
}

// NewHeap builds a Heap over a freshly zeroed arena sized from cfg. The
// zero-initialization requirement the data model relies on is satisfied for
// free by make([]byte, n): a fresh Heap's arena needs no explicit clearing
// pass before first use.
func NewHeap(cfg Config) (*Heap, error) {
	cellSize := cfg.CellSize
	if cellSize == 0 {
		cellSize = minCellSize
	}
	if cellSize < minCellSize {
		return nil, fmt.Errorf("malloc: cell size must be >= %d, got %d", minCellSize, cellSize)
	}
	if cellSize%4 != 0 {
		return nil, fmt.Errorf("malloc: cell size must be a multiple of 4, got %d", cellSize)
	}
	if cfg.ArenaSizeBytes <= 0 {
		return nil, fmt.Errorf("malloc: arena size must be positive, got %d", cfg.ArenaSizeBytes)
	}

	numCells := cfg.ArenaSizeBytes / cellSize
	if numCells < 2 {
		return nil, fmt.Errorf("malloc: arena too small for cell size %d: need at least 2 cells, got %d", cellSize, numCells)
	}
	if numCells > maxCells {
		return nil, fmt.Errorf("malloc: arena holds %d cells, exceeding the 15-bit index limit of %d", numCells, maxCells)
	}
	if cfg.Fit != FitBestFit && cfg.Fit != FitFirstFit {
		return nil, fmt.Errorf("malloc: unknown fit policy %d", cfg.Fit)
	}

	arena := make([]byte, numCells*cellSize)
	h := &Heap{
		arena:         arena,
		arenaBase:     unsafe.Pointer(&arena[0]),
		cellSize:      cellSize,
		numCells:      numCells,
		fit:           cfg.Fit,
		criticalEnter: cfg.CriticalEnter,
		criticalExit:  cfg.CriticalExit,
		debugLog:      cfg.DebugLog,
		debugLogLevel: cfg.DebugLogLevel,
	}
	if cfg.TraceDepth > 0 {
		h.trace = newTraceLog(cfg.TraceDepth)
	}

	if cfg.Redirect {
		SetDefault(h)
	}

	return h, nil
}

func (h *Heap) enter() {
	if h.criticalEnter != nil {
		h.criticalEnter()
	}
}

func (h *Heap) exit() {
	if h.criticalExit != nil {
		h.criticalExit()
	}
}

// cellPtr returns a pointer to the start of cell c.
func (h *Heap) cellPtr(c uint16) unsafe.Pointer {
	return unsafe.Add(h.arenaBase, int(c)*h.cellSize)
}

// nextField returns a pointer to cell c's next-block field (free flag and
// index packed together).
func (h *Heap) nextField(c uint16) *uint16 {
	return (*uint16)(h.cellPtr(c))
}

// prevField returns a pointer to cell c's prev-block field.
func (h *Heap) prevField(c uint16) *uint16 {
	return (*uint16)(unsafe.Add(h.cellPtr(c), 2))
}

// freeNextField returns a pointer to cell c's next-free field. Valid only
// while c is free (or is the sentinel).
func (h *Heap) freeNextField(c uint16) *uint16 {
	return (*uint16)(unsafe.Add(h.cellPtr(c), 4))
}

// freePrevField returns a pointer to cell c's prev-free field. Valid only
// while c is free (or is the sentinel).
func (h *Heap) freePrevField(c uint16) *uint16 {
	return (*uint16)(unsafe.Add(h.cellPtr(c), 6))
}

func (h *Heap) nextBlock(c uint16) uint16 { return *h.nextField(c) & indexMask }
func (h *Heap) isFree(c uint16) bool      { return *h.nextField(c)&freeFlag != 0 }

// data returns the user-visible slice for the body of block c: everything
// in the block past the header, i.e. past the first two index fields.
func (h *Heap) data(c uint16) []byte {
	size := h.blockCells(c)
	return unsafe.Slice((*byte)(unsafe.Add(h.cellPtr(c), 4)), size*h.cellSize-4)
}

// blockCells returns the size of block c, in cells, derived from its
// distance to its neighbor-list successor.
func (h *Heap) blockCells(c uint16) int {
	return int(h.nextBlock(c) - c)
}

// indexOf recovers the cell index owning a data slice previously handed
// back by Allocate or Reallocate, mirroring the pointer-to-offset recovery
// the teacher's buddy allocator performs in Free.
func (h *Heap) indexOf(data []byte) uint16 {
	dataPtr := unsafe.Pointer(unsafe.SliceData(data))
	offset := uintptr(dataPtr) - uintptr(h.arenaBase) - 4
	return uint16(int(offset) / h.cellSize)
}

// blocksFor computes how many cells are needed to hold s bytes of user
// data, per the allocator's sizing rule: one cell if the data fits in a
// single cell's body, otherwise two cells plus however many additional
// whole cells are needed to cover the remainder.
func (h *Heap) blocksFor(s int) int {
	bodySize := h.cellSize - 4
	if s <= bodySize {
		return 1
	}
	return 2 + (s-1-bodySize)/h.cellSize
}

// Stats summarizes the last Info walk of the heap.
type Stats struct {
	TotalCells int
	UsedCells  int
	FreeCells  int
	UsedBlocks int
	FreeBlocks int
}

// Stats returns the most recently computed statistics snapshot. Call Info
// first (with any arguments) to refresh it.
func (h *Heap) Stats() Stats {
	h.enter()
	defer h.exit()
	return h.stats
}

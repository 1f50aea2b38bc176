package malloc

import "unsafe"

// Allocate reserves size bytes and returns a slice over them, or nil if
// size is zero or the arena cannot satisfy the request. The returned slice
// must eventually be passed to Free or Reallocate on the same Heap; its
// length and capacity are exactly the usable body of the block chosen to
// hold it, which may be larger than size.
func (h *Heap) Allocate(size int) []byte {
	h.enter()
	defer h.exit()
	return h.allocateLocked(size)
}

func (h *Heap) allocateLocked(size int) []byte {
	if size <= 0 {
		h.logf(1, "allocate(%d): zero-size request", size)
		return nil
	}

	k := uint16(h.blocksFor(size))
	cf := h.scanFreeList(k)
	bs := h.nextBlock(cf) - cf

	if h.nextBlock(cf) != 0 {
		// Interior free block: take it whole or split off the head.
		if bs == k {
			h.unlinkFree(cf)
		} else {
			h.makeNewBlock(cf, bs-k, freeFlag)
			cf = cf + (bs - k)
		}
		h.trace_(traceAllocate, cf, size)
		return h.data(cf)
	}

	// We are at the frontier: cf is the terminal free block (or the
	// sentinel itself, on a heap that has never allocated anything).
	if int(cf)+int(k)+1 >= h.numCells {
		h.logf(1, "allocate(%d): out of memory", size)
		return nil
	}

	if cf == 0 {
		// One-shot initialization: materialize the very first block.
		*h.nextField(0) = 1
		*h.freeNextField(0) = 1
		cf = 1
	}

	newFrontier := cf + k
	*h.freeNextField(*h.freePrevField(cf)) = newFrontier
	h.copyCell(cf, newFrontier)
	*h.nextField(cf) = newFrontier
	*h.prevField(newFrontier) = cf

	h.trace_(traceAllocate, cf, size)
	return h.data(cf)
}

// copyCell copies the raw contents of cell src to cell dst, carrying the
// frontier's terminal marker (and whatever free-list links happened to be
// sitting in it) forward along with it.
func (h *Heap) copyCell(src, dst uint16) {
	copy(h.rawCell(dst), h.rawCell(src))
}

func (h *Heap) rawCell(c uint16) []byte {
	return unsafe.Slice((*byte)(h.cellPtr(c)), h.cellSize)
}

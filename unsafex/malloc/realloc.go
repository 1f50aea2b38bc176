package malloc

// Reallocate resizes the block backing data to hold size bytes, returning
// the (possibly moved) slice, or nil if size is zero. A nil data behaves
// as Allocate(size); a zero size behaves as Free(data) followed by a nil
// return.
//
// Three fast paths avoid a full allocate+copy+free: no change at all when
// the request already rounds to the current block's cell count, a
// downward move into a freed-up predecessor when one is big enough, and an
// in-place split when the block shrinks enough to shed a trailing free
// block. Only when none of those apply does Reallocate fall back to a
// fresh allocation.
func (h *Heap) Reallocate(data []byte, size int) []byte {
	h.enter()
	defer h.exit()

	if data == nil {
		return h.allocateLocked(size)
	}
	if size <= 0 {
		h.freeLocked(data)
		return nil
	}

	c := h.indexOf(data)
	k := uint16(h.blocksFor(size))
	bs := uint16(h.blockCells(c))
	curSize := bs*uint16(h.cellSize) - 4

	if bs == k {
		h.trace_(traceReallocate, c, size)
		return data
	}

	// Unconditionally try to merge with the up-neighbor first, exactly as
	// the allocator this one is modeled on does, even though, for a
	// shrinking request, this merge is simply wasted work that a
	// subsequent in-place split will immediately undo by carving the tail
	// back off again.
	h.assimilateUp(c)
	bs = uint16(h.blockCells(c))

	p := *h.prevField(c)
	if h.isFree(p) && k <= bs+uint16(h.blockCells(p)) {
		h.unlinkFree(p)
		oldData := h.data(c)
		c = h.assimilateDown(c, 0)
		newData := h.data(c)
		copy(newData, oldData[:curSize])
		bs = uint16(h.blockCells(c))
		data = newData
	}

	if bs == k {
		h.trace_(traceReallocate, c, size)
		return h.data(c)
	}

	if bs > k {
		h.makeNewBlock(c, k, 0)
		h.freeBlockLocked(c + k)
		h.trace_(traceReallocate, c, size)
		return h.data(c)
	}

	// bs < k: no cheap path worked out; fall back to a fresh allocation,
	// copy the live bytes over, and free the old block. On failure the
	// original data is left untouched and returned unmoved, as a slice over
	// the block's current body (which the up-merge above may have enlarged).
	fresh := h.allocateLocked(size)
	if fresh == nil {
		return h.data(c)
	}
	copy(fresh, data[:curSize])
	h.freeBlockLocked(c)
	h.trace_(traceReallocate, c, size)
	return fresh
}

package malloc

// Free returns data to the pool it was allocated from. data must be a
// slice previously returned by Allocate or Reallocate on this Heap, or
// nil; passing anything else is undefined behavior, just as with the
// allocator this one is modeled on. A nil data is a no-op.
func (h *Heap) Free(data []byte) {
	if data == nil {
		return
	}
	h.enter()
	defer h.exit()
	h.freeLocked(data)
}

func (h *Heap) freeLocked(data []byte) {
	c := h.indexOf(data)
	h.trace_(traceFree, c, 0)
	h.freeBlockLocked(c)
}

// freeBlockLocked returns block c to the free pool, coalescing with its
// up-neighbor and then, if that still leaves a free down-neighbor, with
// its down-neighbor too. If neither neighbor is free it is simply pushed
// onto the head of the free list.
func (h *Heap) freeBlockLocked(c uint16) {
	h.assimilateUp(c)

	p := *h.prevField(c)
	if h.isFree(p) {
		h.assimilateDown(c, freeFlag)
		return
	}

	h.pushFreeHead(c)
}

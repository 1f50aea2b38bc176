package malloc

// makeNewBlock splits the block starting at cell c so that c keeps the
// first k cells, with freemask as its free state, and the remainder, from
// c+k up to c's old successor, becomes a separate block with its free flag
// clear. The new tail block's free-list links are not touched here; a
// caller that puts it on the free list must patch those separately.
func (h *Heap) makeNewBlock(c uint16, k uint16, freemask uint16) {
	tail := c + k
	oldNext := h.nextBlock(c)

	*h.nextField(tail) = oldNext
	*h.prevField(tail) = c
	*h.prevField(oldNext) = tail

	*h.nextField(c) = tail | freemask
}

// assimilateUp merges block c with its neighbor-list successor, provided
// that successor is free. The free flag tested is the successor's own
// next-block field, not c's: a block's own free flag says nothing about
// whether its neighbor is free. A no-op when the successor is not free.
func (h *Heap) assimilateUp(c uint16) {
	u := h.nextBlock(c)
	if !h.isFree(u) {
		return
	}
	h.unlinkFree(u)

	uNext := h.nextBlock(u)
	*h.prevField(uNext) = c
	*h.nextField(c) = uNext | (*h.nextField(c) & freeFlag)
}

// assimilateDown merges block c into its neighbor-list predecessor p,
// returning p as the new current block index. freemask sets the merged
// block's free state in p's next-block field; the caller is responsible
// for having already removed p from the free list if the merged result is
// to end up allocated.
func (h *Heap) assimilateDown(c uint16, freemask uint16) uint16 {
	p := *h.prevField(c)
	cNext := h.nextBlock(c)

	*h.nextField(p) = cNext | freemask
	*h.prevField(cNext) = p

	return p
}

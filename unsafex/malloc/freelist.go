package malloc

// unlinkFree removes block c from the free list and clears its free flag.
func (h *Heap) unlinkFree(c uint16) {
	next := *h.freeNextField(c)
	prev := *h.freePrevField(c)
	*h.freeNextField(prev) = next
	*h.freePrevField(next) = prev

	*h.nextField(c) &^= freeFlag
}

// pushFreeHead splices block c in immediately after the sentinel, making
// it the new head of the free list, and sets its free flag.
func (h *Heap) pushFreeHead(c uint16) {
	oldHead := *h.freeNextField(0)

	*h.freePrevField(oldHead) = c
	*h.freeNextField(c) = oldHead
	*h.freePrevField(c) = 0
	*h.freeNextField(0) = c

	*h.nextField(c) |= freeFlag
}

// scanFreeList walks the free list looking for a block of at least k
// cells, honoring h's configured fit policy. It returns the chosen block's
// index.
//
// The loop only sizes blocks whose own next-free link is nonzero, so the
// terminal free block (the one abutting the unextended frontier, always
// the tail of the free list) is never sized. It is returned when no
// interior block of at least k cells was found: first-fit returns the
// first interior match, best-fit the smallest one, and otherwise the scan
// falls out of the loop onto the terminal block.
func (h *Heap) scanFreeList(k uint16) uint16 {
	cf := *h.freeNextField(0)

	const bestSizeSentinel = uint16(0x7fff)
	bestSize := bestSizeSentinel
	bestBlock := cf

	for *h.freeNextField(cf) != 0 {
		size := h.nextBlock(cf) - cf
		if size >= k {
			if h.fit == FitFirstFit {
				return cf
			}
			if size < bestSize {
				bestSize = size
				bestBlock = cf
			}
		}
		cf = *h.freeNextField(cf)
	}

	// cf now sits on the terminal free block (or the sentinel, on a fresh
	// heap). Under best-fit, prefer whatever interior block matched.
	if bestSize != bestSizeSentinel {
		cf = bestBlock
	}
	return cf
}

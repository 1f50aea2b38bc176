package malloc

// Info walks the whole neighbor list, refreshing the heap's Stats and, if
// tracing is enabled, appending a summary entry. If probe is non-nil, Info
// additionally checks whether probe's address matches a free block
// encountered during the walk and returns that block's data slice if so.
// This is the supported way to check whether a pointer you are holding
// still names a free (and therefore stale) block, since Free and
// Reallocate themselves perform no such validation. When forceLog is set,
// a summary line is always emitted through the debug-log hook regardless
// of the configured level.
func (h *Heap) Info(probe []byte, forceLog bool) []byte {
	h.enter()
	defer h.exit()
	return h.infoLocked(probe, forceLog)
}

func (h *Heap) infoLocked(probe []byte, forceLog bool) []byte {
	var probeIdx uint16
	havePendingProbe := probe != nil
	if havePendingProbe {
		probeIdx = h.indexOf(probe)
	}

	var stats Stats
	var found []byte

	// term walks the real, materialized blocks. It stops at the terminal
	// block, the one whose own next-block index is 0, without treating
	// that block's (undefined) size as real: the terminal block is just a
	// marker for where the unmaterialized frontier begins.
	term := h.nextBlock(0)
	for term != 0 && h.nextBlock(term) != 0 {
		size := h.blockCells(term)
		stats.TotalCells += size
		if h.isFree(term) {
			stats.FreeCells += size
			stats.FreeBlocks++
			if havePendingProbe && term == probeIdx {
				found = h.data(term)
				havePendingProbe = false
			}
		} else {
			stats.UsedCells += size
			stats.UsedBlocks++
		}
		term = h.nextBlock(term)
	}

	// Cells from the frontier marker to the end of the arena have never
	// been carved into a block; they are implicitly free.
	frontier := term
	if frontier == 0 {
		frontier = 1 // nothing allocated yet: cell 0 is the sentinel, never usable
	}
	if tail := h.numCells - int(frontier); tail > 0 {
		stats.TotalCells += tail
		stats.FreeCells += tail
	}

	h.stats = stats
	h.statsValid = true
	h.trace_(traceInfo, term, stats.UsedCells*h.cellSize)

	if forceLog && h.debugLog != nil {
		h.debugLog("info: total=%d used=%d(%d blocks) free=%d(%d blocks)",
			stats.TotalCells, stats.UsedCells, stats.UsedBlocks, stats.FreeCells, stats.FreeBlocks)
	}

	return found
}

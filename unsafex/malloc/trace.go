package malloc

// traceKind identifies which public operation produced a traceEntry.
type traceKind uint8

const (
	traceAllocate traceKind = iota
	traceFree
	traceReallocate
	traceInfo
)

func (k traceKind) String() string {
	switch k {
	case traceAllocate:
		return "allocate"
	case traceFree:
		return "free"
	case traceReallocate:
		return "reallocate"
	case traceInfo:
		return "info"
	default:
		return "unknown"
	}
}

// traceEntry is one recorded operation.
type traceEntry struct {
	kind  traceKind
	cell  uint16
	size  int
	valid bool
}

// traceLog is a bounded, overwrite-oldest circular log of the last depth
// operations. The backing slice is allocated once at depth and never
// grows; record overwrites the oldest slot once the log wraps.
type traceLog struct {
	entriesSlice []traceEntry
	next         int
}

func newTraceLog(depth int) *traceLog {
	return &traceLog{entriesSlice: make([]traceEntry, depth)}
}

func (t *traceLog) record(kind traceKind, cell uint16, size int) {
	if t == nil || len(t.entriesSlice) == 0 {
		return
	}
	t.entriesSlice[t.next] = traceEntry{kind: kind, cell: cell, size: size, valid: true}
	t.next++
	if t.next >= len(t.entriesSlice) {
		t.next = 0
	}
}

// entries returns a snapshot of the recorded entries in insertion order,
// oldest first.
func (t *traceLog) entries() []traceEntry {
	if t == nil {
		return nil
	}
	n := len(t.entriesSlice)
	out := make([]traceEntry, 0, n)
	for i := 0; i < n; i++ {
		idx := (t.next + i) % n
		if e := t.entriesSlice[idx]; e.valid {
			out = append(out, e)
		}
	}
	return out
}

// trace_ appends an entry to h's diagnostics ring, if tracing is enabled,
// and mirrors it to the debug log at level 2 (verbose per-operation trace).
func (h *Heap) trace_(kind traceKind, cell uint16, size int) {
	h.trace.record(kind, cell, size)
	h.logf(2, "%s: cell=%d size=%d", kind, cell, size)
}

// logf emits a formatted line through the configured debug hook if level
// is at or below DebugLogLevel.
func (h *Heap) logf(level int, format string, args ...any) {
	if h.debugLog == nil || h.debugLogLevel < level {
		return
	}
	h.debugLog(format, args...)
}

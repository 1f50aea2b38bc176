package malloc

import "sync/atomic"

// defaultHeap is the Heap package-level Allocate/Free/Reallocate/Info
// redirect to when one has been installed via SetDefault or Config.Redirect.
// This is the Go analogue of UMM_REDEFINE_MEM_FUNCTIONS: instead of
// preprocessor-level renaming of malloc/free/realloc, callers that want
// drop-in global functions install a default instance once at startup.
var defaultHeap atomic.Pointer[Heap]

// SetDefault installs h as the target of the package-level Allocate, Free,
// Reallocate, and Info functions. Passing nil clears the default, making
// those functions no-ops.
func SetDefault(h *Heap) {
	defaultHeap.Store(h)
}

// Default returns the currently installed default Heap, or nil if none has
// been set.
func Default() *Heap {
	return defaultHeap.Load()
}

// Allocate calls Allocate on the default Heap. It returns nil if no
// default has been installed.
func Allocate(size int) []byte {
	h := defaultHeap.Load()
	if h == nil {
		return nil
	}
	return h.Allocate(size)
}

// Free calls Free on the default Heap. It is a no-op if no default has
// been installed.
func Free(data []byte) {
	h := defaultHeap.Load()
	if h == nil {
		return
	}
	h.Free(data)
}

// Reallocate calls Reallocate on the default Heap. It returns nil if no
// default has been installed.
func Reallocate(data []byte, size int) []byte {
	h := defaultHeap.Load()
	if h == nil {
		return nil
	}
	return h.Reallocate(data, size)
}

// Info calls Info on the default Heap. It returns nil if no default has
// been installed.
func Info(probe []byte, forceLog bool) []byte {
	h := defaultHeap.Load()
	if h == nil {
		return nil
	}
	return h.Info(probe, forceLog)
}

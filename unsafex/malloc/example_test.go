package malloc

import "fmt"

func Example() {
	h, _ := NewHeap(Config{ArenaSizeBytes: 512, CellSize: 8})

	b1 := h.Allocate(4)
	b2 := h.Allocate(20)

	fmt.Printf("b1: len=%d cap=%d\n", len(b1), cap(b1))
	fmt.Printf("b2: len=%d cap=%d\n", len(b2), cap(b2))

	h.Free(b1)
	h.Free(b2)

	h.Info(nil, false)
	fmt.Printf("used blocks after free: %d\n", h.Stats().UsedBlocks)

	// Output:
	// b1: len=4 cap=4
	// b2: len=20 cap=20
	// used blocks after free: 0
}

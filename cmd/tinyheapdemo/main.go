// Command tinyheapdemo builds a Heap from a YAML configuration file,
// exercises allocate/free/realloc against it, and prints a usage report.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/embeddedgo/tinyheap/unsafex/malloc"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML heap configuration; defaults to a built-in 4KB arena")
	flag.Parse()

	cfg := malloc.Config{ArenaSizeBytes: 4096, CellSize: 8}
	if *configPath != "" {
		loaded, err := loadConfig(*configPath)
		if err != nil {
			log.Fatal(err)
		}
		cfg = loaded
	}
	cfg.DebugLog = func(format string, args ...any) {
		fmt.Fprintf(os.Stderr, "[heap] "+format+"\n", args...)
	}

	h, err := malloc.NewHeap(cfg)
	if err != nil {
		log.Fatalf("tinyheapdemo: %v", err)
	}

	run(h)
}

func run(h *malloc.Heap) {
	greeting := h.Allocate(len("hello, tinyheap"))
	copy(greeting, "hello, tinyheap")
	fmt.Printf("allocated %d bytes: %q\n", len(greeting), greeting)

	grown := h.Reallocate(greeting, 64)
	fmt.Printf("grown to %d bytes, still reads: %q\n", len(grown), grown[:len("hello, tinyheap")])

	h.Info(nil, true)
	stats := h.Stats()
	fmt.Printf("heap usage: %d/%d cells used across %d blocks, %d cells free across %d blocks\n",
		stats.UsedCells, stats.TotalCells, stats.UsedBlocks, stats.FreeCells, stats.FreeBlocks)

	h.Free(grown)
	h.Info(nil, false)
	fmt.Printf("after free: %d blocks used\n", h.Stats().UsedBlocks)
}

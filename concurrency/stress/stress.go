// Package stress fans out concurrent allocate/free/realloc traffic against
// a single malloc.Heap through a goroutine worker pool, the way an
// interrupt-context allocate and a main-context allocate would race against
// each other on a real target. Here the race is made safe by a
// critical.Section rather than left as the caller's responsibility.
package stress

import (
	"math/rand"
	"sync"

	"github.com/embeddedgo/tinyheap/concurrency/gopool"
	"github.com/embeddedgo/tinyheap/unsafex/malloc"
)

// Config describes one stress run.
type Config struct {
	Heap       *malloc.Heap
	Workers    int
	OpsPerWork int
	MaxSize    int
	Seed       int64
}

// Result summarizes what a run did, for the caller to assert invariants on
// afterward.
type Result struct {
	Allocations int64
	Frees       int64
	Reallocs    int64
	OutOfMemory int64
}

// Run drives Config.Workers goroutines, each performing Config.OpsPerWork
// randomized allocate/free/realloc calls against Config.Heap, dispatched
// through a dedicated gopool.GoPool, and blocks until every worker has
// finished. The Heap's own critical section (configured when it was built)
// is what makes concurrent access to it safe; Run itself holds no lock.
func Run(cfg Config) Result {
	pool := gopool.NewGoPool("malloc-stress", nil)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		allocs   int64
		frees    int64
		reallocs int64
		outOfMem int64
	)

	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		seed := cfg.Seed + int64(w)
		pool.Go(func() {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			var live [][]byte

			for i := 0; i < cfg.OpsPerWork; i++ {
				switch rng.Intn(3) {
				case 0:
					size := 1 + rng.Intn(cfg.MaxSize)
					b := cfg.Heap.Allocate(size)
					mu.Lock()
					if b != nil {
						live = append(live, b)
						allocs++
					} else {
						outOfMem++
					}
					mu.Unlock()
				case 1:
					if len(live) == 0 {
						continue
					}
					b := live[len(live)-1]
					live = live[:len(live)-1]
					cfg.Heap.Free(b)
					mu.Lock()
					frees++
					mu.Unlock()
				case 2:
					if len(live) == 0 {
						continue
					}
					idx := rng.Intn(len(live))
					size := 1 + rng.Intn(cfg.MaxSize)
					out := cfg.Heap.Reallocate(live[idx], size)
					mu.Lock()
					reallocs++
					mu.Unlock()
					if out != nil {
						live[idx] = out
					} else {
						live = append(live[:idx], live[idx+1:]...)
					}
				}
			}

			for _, b := range live {
				cfg.Heap.Free(b)
				mu.Lock()
				frees++
				mu.Unlock()
			}
		})
	}

	wg.Wait()

	return Result{
		Allocations: allocs,
		Frees:       frees,
		Reallocs:    reallocs,
		OutOfMemory: outOfMem,
	}
}

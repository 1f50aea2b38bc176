package critical

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMutexSerializesAccess(t *testing.T) {
	var m Mutex
	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.Enter()
			defer m.Exit()
			counter++
		}()
	}
	wg.Wait()
	assert.Equal(t, 100, counter)
}

func TestSpinSerializesAccess(t *testing.T) {
	var s Spin
	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Enter()
			defer s.Exit()
			counter++
		}()
	}
	wg.Wait()
	assert.Equal(t, 100, counter)
}

package testutils

import (
	"fmt"
	"sync"
)

// DeterministicIDs returns a generator of UUID-shaped identifiers for golden
// output: 00000001-0000-4000-8000-000000000001, 00000002-..., and so on.
// Each generator has its own counter, so tests do not interfere.
func DeterministicIDs() func() string {
	var (
		mu      sync.Mutex
		counter uint64
	)

	return func() string {
		mu.Lock()
		defer mu.Unlock()

		counter++

		// Format: xxxxxxxx-xxxx-4xxx-yxxx-xxxxxxxxxxxx
		return fmt.Sprintf("%08x-0000-4000-8000-%012x", counter, counter)
	}
}

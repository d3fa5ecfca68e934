package core

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestSuppressHeaderDefault verifies headers are shown unless suppressed.
func TestSuppressHeaderDefault(t *testing.T) {
	ctx := context.Background()
	assert.False(t, shouldSuppressHeader(ctx))

	ctx = withSuppressHeader(ctx)
	assert.True(t, shouldSuppressHeader(ctx))
}

// TestSuppressHeaderIsolation tests that derived contexts do not leak the
// flag back into their parent.
func TestSuppressHeaderIsolation(t *testing.T) {
	base := context.Background()
	suppressed := withSuppressHeader(base)

	assert.False(t, shouldSuppressHeader(base))
	assert.True(t, shouldSuppressHeader(suppressed))
}

// TestSuppressHeaderConcurrentReads tests that the flag can be read from
// many goroutines at once.
func TestSuppressHeaderConcurrentReads(t *testing.T) {
	ctx := withSuppressHeader(context.Background())

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.True(t, shouldSuppressHeader(ctx))
		}()
	}
	wg.Wait()
}

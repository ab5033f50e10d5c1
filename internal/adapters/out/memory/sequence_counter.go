// Package memory provides in-process adapters for single-instance deployments and tests.
package memory

import (
	"context"
	"sync"
)

// SequenceCounter is a mutex-guarded counter. It is only safe when exactly one
// process issues order numbers.
type SequenceCounter struct {
	mu    sync.Mutex
	value int64
}

// NewSequenceCounter starts the counter at start; the first Next returns start+1.
func NewSequenceCounter(start int64) *SequenceCounter {
	return &SequenceCounter{value: start}
}

func (c *SequenceCounter) Next(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value++
	return c.value, nil
}

func (c *SequenceCounter) EnsureAtLeast(ctx context.Context, n int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if n > c.value {
		c.value = n
	}
	return nil
}

// Current returns the last issued value.
func (c *SequenceCounter) Current() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

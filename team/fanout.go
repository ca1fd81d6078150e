package team

import (
	"sync"

	"github.com/panjf2000/ants/v2"
)

// DefaultPoolSize bounds concurrent member calls within a fan-out stage.
const DefaultPoolSize = 10

// Pool bounds the goroutines used by fan-out stages. One pool is shared by
// all executions of an orchestrator.
type Pool struct {
	inner *ants.Pool
}

// NewPool creates a bounded worker pool of the given size.
func NewPool(size int) (*Pool, error) {
	if size <= 0 {
		size = DefaultPoolSize
	}
	inner, err := ants.NewPool(size)
	if err != nil {
		return nil, err
	}
	return &Pool{inner: inner}, nil
}

// Release shuts the pool down. Pending tasks finish; new submissions fall
// back to plain goroutines.
func (p *Pool) Release() {
	p.inner.Release()
}

// fanOut runs fn for every index in [0, n) concurrently and joins before
// returning. Every branch runs to completion even when a sibling fails, so
// partial results survive; the first error observed is returned and fails
// the stage. A nil pool runs branches on plain goroutines.
func fanOut(pool *Pool, n int, fn func(i int) error) error {
	var wg sync.WaitGroup
	errCh := make(chan error, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		branch := func() {
			defer wg.Done()
			if err := fn(i); err != nil {
				errCh <- err
			}
		}
		if pool == nil || pool.inner.Submit(branch) != nil {
			go branch()
		}
	}

	wg.Wait()
	close(errCh)
	return <-errCh
}

package workerpool

import (
	"context"
	"sync"
)

type Task func(ctx context.Context) error

type Result struct {
	Err error
}

// WorkerPool runs submitted tasks on a fixed number of goroutines.
type WorkerPool struct {
	workers int
	tasks   chan Task
	wg      sync.WaitGroup
}

func NewWorkerPool(workers, buffer int) *WorkerPool {
	if workers <= 0 {
		workers = 1
	}
	if buffer < 0 {
		buffer = 0
	}
	return &WorkerPool{
		workers: workers,
		tasks:   make(chan Task, buffer),
	}
}

func (p *WorkerPool) Submit(t Task) {
	if p == nil || t == nil {
		return
	}
	p.tasks <- t
}

// Close stops accepting tasks. Workers exit once the queue drains.
func (p *WorkerPool) Close() {
	if p == nil {
		return
	}
	close(p.tasks)
}

// Run starts the workers. The returned channel carries one Result per task
// and is closed when every worker has exited.
func (p *WorkerPool) Run(ctx context.Context) <-chan Result {
	if p == nil {
		out := make(chan Result)
		close(out)
		return out
	}

	out := make(chan Result, p.workers)
	p.wg.Add(p.workers)
	for i := 0; i < p.workers; i++ {
		go func() {
			defer p.wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case t, ok := <-p.tasks:
					if !ok {
						return
					}
					if t == nil {
						continue
					}
					err := t(ctx)
					select {
					case <-ctx.Done():
						return
					case out <- Result{Err: err}:
					}
				}
			}
		}()
	}

	go func() {
		p.wg.Wait()
		close(out)
	}()

	return out
}

// Chunks splits [0, n) into ranges of at most size items and calls fn for
// each range on up to workers goroutines. It returns the first error, or
// ctx.Err() when ctx ends first.
func Chunks(ctx context.Context, workers, n, size int, fn func(lo, hi int) error) error {
	if n <= 0 {
		return nil
	}
	if size <= 0 {
		size = n
	}
	if workers <= 1 || n <= size {
		return fn(0, n)
	}

	tasks := (n + size - 1) / size
	p := NewWorkerPool(workers, tasks)
	for lo := 0; lo < n; lo += size {
		lo, hi := lo, min(lo+size, n)
		p.Submit(func(context.Context) error { return fn(lo, hi) })
	}
	p.Close()

	var first error
	for res := range p.Run(ctx) {
		if res.Err != nil && first == nil {
			first = res.Err
		}
	}
	if first != nil {
		return first
	}
	return ctx.Err()
}

// Package workerpool provides a fixed-size pool of workers executing queued
// tasks, with a completion barrier that accounts for tasks enqueued while the
// barrier is waiting. Tasks may enqueue further tasks onto the same pool.
package workerpool

import "sync"

// Pool runs tasks on a fixed number of worker goroutines.
type Pool struct {
	mu          sync.Mutex
	taskReady   *sync.Cond // signalled when the queue becomes non-empty
	idle        *sync.Cond // broadcast when outstanding drops to zero
	queue       []func()
	outstanding int // queued plus currently-running tasks
	stopped     bool
}

// New creates a pool with the given number of workers. A worker count below
// one is raised to one.
func New(workers int) *Pool {
	if workers < 1 {
		workers = 1
	}

	p := &Pool{}
	p.taskReady = sync.NewCond(&p.mu)
	p.idle = sync.NewCond(&p.mu)

	for i := 0; i < workers; i++ {
		go p.worker()
	}

	return p
}

// Enqueue adds a task to the end of the queue. It is safe to call from a
// running task; Wait will not return until such nested tasks have also
// completed. Enqueue on a closed pool panics.
func (p *Pool) Enqueue(task func()) {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		panic("workerpool: Enqueue on closed pool")
	}
	p.queue = append(p.queue, task)
	p.outstanding++
	p.mu.Unlock()

	p.taskReady.Signal()
}

// Wait blocks until every task, including tasks enqueued after Wait was
// called, has finished. It returns immediately if the pool is idle.
func (p *Pool) Wait() {
	p.mu.Lock()
	for p.outstanding > 0 {
		p.idle.Wait()
	}
	p.mu.Unlock()
}

// Close waits for all outstanding work and then stops the workers. The pool
// must not be used after Close.
func (p *Pool) Close() {
	p.Wait()

	p.mu.Lock()
	p.stopped = true
	p.mu.Unlock()

	p.taskReady.Broadcast()
}

// worker is the main loop for each worker goroutine.
func (p *Pool) worker() {
	for {
		p.mu.Lock()
		for len(p.queue) == 0 && !p.stopped {
			p.taskReady.Wait()
		}
		if len(p.queue) == 0 {
			// Stopped with nothing left to run.
			p.mu.Unlock()
			return
		}
		task := p.queue[0]
		p.queue = p.queue[1:]
		p.mu.Unlock()

		task()

		p.mu.Lock()
		p.outstanding--
		if p.outstanding == 0 {
			p.idle.Broadcast()
		}
		p.mu.Unlock()
	}
}

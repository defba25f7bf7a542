package worker

import (
	"errors"
	"runtime"
	"sync"

	"github.com/getsentry/sentry-go"
	"github.com/oomph-ac/climbsim/oerror"
)

// Pool runs submitted jobs on a fixed set of goroutines. A job that panics is reported to sentry,
// does not take its worker down and fails the batch like a job returning an error.
type Pool struct {
	jobs    chan func() error
	pending sync.WaitGroup
	workers sync.WaitGroup
	once    sync.Once

	mu   sync.Mutex
	errs []error
}

// New starts a pool with n workers, or one per CPU if n is not positive.
func New(n int) *Pool {
	if n <= 0 {
		n = runtime.NumCPU()
	}
	p := &Pool{jobs: make(chan func() error, n)}
	p.workers.Add(n)
	for i := 0; i < n; i++ {
		go p.work()
	}
	return p
}

// Submit queues f. It blocks while every worker is busy and the queue is full. Submitting after
// Close panics.
func (p *Pool) Submit(f func() error) {
	p.pending.Add(1)
	p.jobs <- f
}

// Wait blocks until every submitted job has finished and returns the errors of the jobs that failed
// since the last Wait, joined.
func (p *Pool) Wait() error {
	p.pending.Wait()

	p.mu.Lock()
	defer p.mu.Unlock()
	err := errors.Join(p.errs...)
	p.errs = nil
	return err
}

// Close stops the workers once the queued jobs have run.
func (p *Pool) Close() {
	p.once.Do(func() {
		close(p.jobs)
		p.workers.Wait()
	})
}

func (p *Pool) work() {
	defer p.workers.Done()
	for f := range p.jobs {
		p.run(f)
	}
}

func (p *Pool) run(f func() error) {
	defer p.pending.Done()
	defer func() {
		if v := recover(); v != nil {
			sentry.CurrentHub().Recover(v)
			p.fail(oerror.New("worker: job panicked: %v", v))
		}
	}()
	if err := f(); err != nil {
		p.fail(err)
	}
}

func (p *Pool) fail(err error) {
	p.mu.Lock()
	p.errs = append(p.errs, err)
	p.mu.Unlock()
}

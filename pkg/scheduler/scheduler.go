package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"github.com/himtrails/tourbook/pkg/logger"
)

// Task is the unit of work. ctx is cancelled when the scheduler stops.
type Task func(ctx context.Context)

type entry struct {
	seq   uint64
	timer *time.Timer
}

// Scheduler is safe for concurrent use.
type Scheduler struct {
	mu      sync.Mutex
	pending map[string]*entry
	seq     uint64
	stopped bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	logger *slog.Logger
}

func New(opts ...Option) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Scheduler{
		pending: make(map[string]*entry),
		ctx:     ctx,
		cancel:  cancel,
		logger:  logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Schedule runs task once after delay, replacing any task pending under key.
// A non-positive delay still runs the task on its own goroutine.
func (s *Scheduler) Schedule(key string, delay time.Duration, task Task) error {
	if task == nil {
		return ErrNilTask
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return ErrStopped
	}
	if prev, ok := s.pending[key]; ok {
		prev.timer.Stop()
	}

	// A timer that already fired may still be waiting for the lock; the
	// sequence number lets it see it was superseded.
	s.seq++
	seq := s.seq
	s.pending[key] = &entry{
		seq:   seq,
		timer: time.AfterFunc(max(delay, 0), func() { s.fire(key, seq, task) }),
	}
	return nil
}

// Cancel drops the task pending under key. It reports whether one was pending.
func (s *Scheduler) Cancel(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.pending[key]
	if !ok {
		return false
	}
	e.timer.Stop()
	delete(s.pending, key)
	return true
}

func (s *Scheduler) Pending(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.pending[key]
	return ok
}

// Len returns the number of pending tasks.
func (s *Scheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Stop cancels pending tasks and waits for running ones. Further calls to
// Schedule return ErrStopped. Stop is idempotent.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		s.wg.Wait()
		return
	}
	s.stopped = true
	for key, e := range s.pending {
		e.timer.Stop()
		delete(s.pending, key)
	}
	s.mu.Unlock()

	s.cancel()
	s.wg.Wait()
}

func (s *Scheduler) fire(key string, seq uint64, task Task) {
	s.mu.Lock()
	e, ok := s.pending[key]
	if !ok || e.seq != seq || s.stopped {
		s.mu.Unlock()
		return
	}
	delete(s.pending, key)
	s.wg.Add(1)
	s.mu.Unlock()

	defer s.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("scheduled task panicked",
				logger.Component("scheduler"),
				logger.Task(key),
				logger.Error(fmt.Errorf("panic: %v", r)),
				slog.String("stack", string(debug.Stack())),
			)
		}
	}()

	task(s.ctx)
}

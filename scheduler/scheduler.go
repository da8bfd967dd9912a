package scheduler

import (
	"context"
	"runtime/debug"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// Scheduler runs a background task at a fixed interval until stopped
type Scheduler struct {
	name     string
	interval time.Duration
	task     func(context.Context)
	// overlap runs every tick in its own goroutine so a slow run does not
	// delay or swallow the next tick
	overlap bool
	wg      sync.WaitGroup
	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
}

// Option customizes a Scheduler
type Option func(*Scheduler)

// WithName labels log lines of the scheduler
func WithName(name string) Option {
	return func(s *Scheduler) { s.name = name }
}

// WithOverlap makes ticks independent: each run starts in its own goroutine
func WithOverlap() Option {
	return func(s *Scheduler) { s.overlap = true }
}

// New creates a new Scheduler instance
func New(interval time.Duration, task func(context.Context), opts ...Option) *Scheduler {
	s := &Scheduler{
		name:     "scheduler",
		interval: interval,
		task:     task,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start begins executing the task at the specified interval
func (s *Scheduler) Start(ctx context.Context, firstRunImmediately bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return
	}
	if s.interval <= 0 {
		log.Printf("Scheduler %s: Non-positive interval %v, not starting", s.name, s.interval)
		return
	}

	ctx, s.cancel = context.WithCancel(ctx)
	s.running = true

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		if firstRunImmediately {
			s.dispatch(ctx)
		}

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.dispatch(ctx)
			case <-ctx.Done():
				return
			}
		}
	}()
}

func (s *Scheduler) dispatch(ctx context.Context) {
	if !s.overlap {
		s.run(ctx)
		return
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.run(ctx)
	}()
}

// run executes one task invocation; a panic is logged and the schedule continues
func (s *Scheduler) run(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("Scheduler %s: task panicked: %v\n%s", s.name, r, debug.Stack())
		}
	}()
	s.task(ctx)
}

// Stop terminates the periodic task execution and waits for running tasks
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	s.running = false
}

// IsRunning returns true if the task is currently running
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

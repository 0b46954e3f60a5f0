// Package frame paces the render loop at a fixed interval.
package frame

import (
	"context"
	"sync/atomic"
	"time"
)

// Pacing defaults.
const (
	DefaultInterval = 12 * time.Millisecond
	DefaultIdle     = 1 * time.Millisecond
)

// State is the scheduler's lifecycle state.
type State int32

const (
	Running State = iota
	Stopped
)

func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "stopped"
}

// StepFunc runs one frame. Returning false stops the loop gracefully.
type StepFunc func() (bool, error)

// Scheduler calls a step function at most once per Interval, sleeping Idle
// between checks. Once Stopped it never runs again.
type Scheduler struct {
	Interval time.Duration
	Idle     time.Duration

	// Now and Sleep default to the wall clock. Sleep must return early
	// with ctx.Err() when ctx is done.
	Now   func() time.Time
	Sleep func(ctx context.Context, d time.Duration) error

	state  atomic.Int32
	frames atomic.Uint64
}

// New creates a scheduler in the Running state.
func New(interval, idle time.Duration) *Scheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if idle <= 0 {
		idle = DefaultIdle
	}
	return &Scheduler{
		Interval: interval,
		Idle:     idle,
		Now:      time.Now,
		Sleep:    sleepContext,
	}
}

// State returns the current state. Safe from any goroutine.
func (s *Scheduler) State() State { return State(s.state.Load()) }

// Frames returns how many steps have run.
func (s *Scheduler) Frames() uint64 { return s.frames.Load() }

// Stop requests the loop to end after the current step. Safe from any
// goroutine, idempotent.
func (s *Scheduler) Stop() { s.state.Store(int32(Stopped)) }

// Run drives step until Stop, a false return from step, a step error or
// ctx cancellation. A step error is returned; every other exit returns nil.
func (s *Scheduler) Run(ctx context.Context, step StepFunc) error {
	now, sleep := s.Now, s.Sleep
	if now == nil {
		now = time.Now
	}
	if sleep == nil {
		sleep = sleepContext
	}

	last := now()
	for s.State() == Running {
		if ctx.Err() != nil {
			s.Stop()
			break
		}

		current := now()
		if current.Sub(last) < s.Interval {
			if err := sleep(ctx, s.Idle); err != nil {
				s.Stop()
				break
			}
			continue
		}

		last = current
		s.frames.Add(1)
		cont, err := step()
		if err != nil {
			s.Stop()
			return err
		}
		if !cont {
			s.Stop()
		}
	}
	return nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

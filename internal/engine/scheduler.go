package engine

import (
	"sync"
	"time"
)

// Scheduler drives a Simulation from a fixed-interval ticker and exposes the
// start/stop/reset lifecycle. All methods are safe for concurrent use.
//
// Each tick's pipeline runs under the scheduler's mutex, so ticks never
// overlap and readers never observe a partial tick. Events are dispatched
// after the mutex is released; handlers may call back into the scheduler.
type Scheduler struct {
	mu       sync.Mutex
	sim      *Simulation
	interval time.Duration

	running bool
	gen     uint64 // bumped on every Start/Stop; loops from older generations exit
	stop    chan struct{}
	handler Handler
}

// NewScheduler wraps sim. A non-positive interval selects DefaultInterval.
func NewScheduler(sim *Simulation, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Scheduler{
		sim:      sim,
		interval: interval,
	}
}

// Start begins ticking and routes events to h. Starting a running scheduler
// replaces its loop and handler.
func (s *Scheduler) Start(h Handler) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		close(s.stop)
	}
	s.gen++
	s.running = true
	s.handler = h
	s.stop = make(chan struct{})

	go s.loop(s.gen, s.stop)
}

// Stop halts ticking. Once Stop returns no further tick starts. Calling Stop
// on a stopped scheduler does nothing.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	close(s.stop)
	s.gen++
	s.running = false
	s.handler = nil
}

// Running reports whether the scheduler is ticking.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Interval returns the tick period.
func (s *Scheduler) Interval() time.Duration {
	return s.interval
}

func (s *Scheduler) loop(gen uint64, stop <-chan struct{}) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
		}

		s.mu.Lock()
		if s.gen != gen {
			s.mu.Unlock()
			return
		}
		events := s.sim.Tick()
		h := s.handler
		var snap Snapshot
		th, wantsTick := h.(TickHandler)
		if wantsTick {
			snap = s.sim.Snapshot()
		}
		s.mu.Unlock()

		Dispatch(h, events)
		if wantsTick {
			th.OnTick(snap)
		}
	}
}

// Reset restores the initial level state. It does not stop a running
// scheduler; callers that want a clean restart call Stop first.
func (s *Scheduler) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sim.Reset()
}

// MoveLeft requests walking left from the next tick on.
func (s *Scheduler) MoveLeft() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sim.MoveLeft()
}

// MoveRight requests walking right from the next tick on.
func (s *Scheduler) MoveRight() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sim.MoveRight()
}

// StopMoving requests zero horizontal speed from the next tick on.
func (s *Scheduler) StopMoving() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sim.StopMoving()
}

// Jump requests a jump at the start of the next tick.
func (s *Scheduler) Jump() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sim.Jump()
}

// Respawn moves the player back to spawn.
func (s *Scheduler) Respawn() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sim.Respawn()
}

// Snapshot returns a copy of the state as of the last completed tick.
func (s *Scheduler) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sim.Snapshot()
}

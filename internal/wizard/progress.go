package wizard

import (
	"math/rand"
	"sync"
	"time"
)

// clampBelow is the ceiling simulated progress may reach before the real
// response arrives. Only Finish moves the value to 100.
const clampBelow = 95

// Simulator renders incremental progress for a backend operation that
// provides no progress stream. It advances a value by a bounded random
// increment on a fixed interval, clamped below 100 until the operation
// resolves. It carries no information about actual backend progress.
type Simulator struct {
	interval time.Duration
	maxStep  float64
	onTick   func(percent float64)
	randFn   func() float64

	mu     sync.Mutex
	value  float64
	ticker *time.Ticker
	done   chan struct{}
	once   sync.Once
}

// NewSimulator constructs a Simulator that emits to onTick every interval,
// advancing by a random amount below maxStep per tick. A nil onTick is
// allowed; Value can be polled instead.
func NewSimulator(interval time.Duration, maxStep float64, onTick func(float64)) *Simulator {
	if interval <= 0 {
		interval = 500 * time.Millisecond
	}
	if maxStep <= 0 {
		maxStep = 10
	}
	return &Simulator{
		interval: interval,
		maxStep:  maxStep,
		onTick:   onTick,
		randFn:   rand.Float64,
		done:     make(chan struct{}),
	}
}

// Start begins ticking. It must be called at most once.
func (s *Simulator) Start() {
	s.mu.Lock()
	s.ticker = time.NewTicker(s.interval)
	ticker := s.ticker
	s.mu.Unlock()

	go func() {
		for {
			select {
			case <-ticker.C:
				s.advance()
			case <-s.done:
				return
			}
		}
	}()
}

// Value returns the current simulated percentage.
func (s *Simulator) Value() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// Finish stops the ticker and forces the value to exactly 100. A tick queued
// before cancellation may still apply, but the final value is 100 regardless.
func (s *Simulator) Finish() {
	s.stop()
	s.mu.Lock()
	s.value = 100
	s.mu.Unlock()
	s.emit(100)
}

// Abort stops the ticker without forcing completion, for the failure path.
func (s *Simulator) Abort() {
	s.stop()
}

func (s *Simulator) advance() {
	s.mu.Lock()
	select {
	case <-s.done:
		// Stray tick after cancellation; Finish already owns the value.
		s.mu.Unlock()
		return
	default:
	}
	s.value += s.randFn() * s.maxStep
	if s.value >= clampBelow {
		s.value = clampBelow
	}
	v := s.value
	s.mu.Unlock()
	s.emit(v)
}

func (s *Simulator) stop() {
	s.once.Do(func() {
		close(s.done)
		s.mu.Lock()
		if s.ticker != nil {
			s.ticker.Stop()
		}
		s.mu.Unlock()
	})
}

func (s *Simulator) emit(v float64) {
	if s.onTick != nil {
		s.onTick(v)
	}
}
